// Package eval implements the compile-time constant folder (spec.md
// §4.F/§4.I, component F). It has no direct teacher counterpart — the
// retrieved snapshot of the teacher's internal/sema carries no constant
// folder — so the fold rules and EvalResult shape are grounded on
// original_source/lib/glint/sema.cc's EvalResult/evaluate() call sites
// (ConvertImpl's "Integer to integer" branch at sema.cc:187-217,
// EvaluateAsInt at sema.cc:314), expressed in this repo's arena/Result
// idiom rather than translated line-for-line.
package eval

import (
	"glint/internal/ast"
	"glint/internal/source"
	"glint/internal/types"
)

// Result is the folder's output: either a width-64 integer with an
// explicit sign, or an interned string-literal reference, per spec.md
// §4.F ("Integer values are represented as an arbitrary-signed 64-bit
// number... String literals fold to an interned string reference").
type Result struct {
	IsString bool
	Int      int64
	Width    uint8
	Signed   bool
	Str      source.StringID
}

// AsInt returns the raw 64-bit value, valid only when !IsString.
func (r Result) AsInt() int64 { return r.Int }

// Fits reports whether r's integer value round-trips through a target
// of the given bit width and signedness without loss, per spec.md
// §4.F's "overflow in extension is an error when the value would not
// round-trip at 64 bits".
func (r Result) Fits(width uint8, signed bool) bool {
	if r.IsString {
		return false
	}
	v := r.Int
	if !signed {
		if v < 0 {
			return false
		}
		if width >= 64 {
			return true
		}
		max := uint64(1)<<width - 1
		return uint64(v) <= max
	}
	if width >= 64 {
		return true
	}
	min := -(int64(1) << (width - 1))
	max := int64(1)<<(width-1) - 1
	return v >= min && v <= max
}

// SignExtend sign-extends a value already truncated to width bits back
// to a full int64, per spec.md §4.F/§4.I's "explicit sign/zero extend".
func SignExtend(v int64, width uint8) int64 {
	if width >= 64 {
		return v
	}
	shift := 64 - width
	return (v << shift) >> shift
}

// ZeroExtend masks v down to width bits, reinterpreted unsigned.
func ZeroExtend(v int64, width uint8) int64 {
	if width >= 64 {
		return v
	}
	mask := int64(1)<<width - 1
	return v & mask
}

// Fold attempts to evaluate expr to a compile-time constant. It
// returns ok=false for anything that is not a closed-form constant
// expression, per spec.md §4.F: "Anything else returns failure, which
// the caller either surfaces as a diagnostic or treats as non-constant."
func Fold(b *ast.Builder, in *types.Interner, expr ast.ExprID) (Result, bool) {
	e := b.Get(expr)
	if e == nil {
		return Result{}, false
	}
	switch e.Kind {
	case ast.ExprLiteral:
		return foldLiteral(b, expr)
	case ast.ExprEvaluatedConstant:
		return foldEvaluatedConstant(b, expr)
	case ast.ExprUnary:
		return foldUnary(b, in, expr)
	case ast.ExprBinary:
		return foldBinary(b, in, expr)
	case ast.ExprCast:
		return foldCast(b, in, expr)
	case ast.ExprIf:
		return foldIf(b, in, expr)
	default:
		return Result{}, false
	}
}

func foldLiteral(b *ast.Builder, expr ast.ExprID) (Result, bool) {
	lit, ok := b.Literal(expr)
	if !ok {
		return Result{}, false
	}
	switch lit.Kind {
	case ast.LitInt:
		return Result{Int: lit.Int, Width: 64, Signed: true}, true
	case ast.LitBool:
		v := int64(0)
		if lit.Bool {
			v = 1
		}
		return Result{Int: v, Width: 1, Signed: false}, true
	case ast.LitByte:
		return Result{Int: lit.Int, Width: 8, Signed: false}, true
	case ast.LitString:
		return Result{IsString: true, Str: lit.Str}, true
	default:
		return Result{}, false
	}
}

func foldEvaluatedConstant(b *ast.Builder, expr ast.ExprID) (Result, bool) {
	ec, ok := b.EvaluatedConstant(expr)
	if !ok {
		return Result{}, false
	}
	if ec.IsString {
		return Result{IsString: true, Str: ec.Str}, true
	}
	return Result{Int: ec.Int, Width: ec.Width, Signed: ec.Signed}, true
}

func foldUnary(b *ast.Builder, in *types.Interner, expr ast.ExprID) (Result, bool) {
	u, ok := b.Unary(expr)
	if !ok {
		return Result{}, false
	}
	operand, ok := Fold(b, in, u.Operand)
	if !ok || operand.IsString {
		return Result{}, false
	}
	switch u.Op {
	case ast.UnaryNegFree:
		return Result{Int: -operand.Int, Width: operand.Width, Signed: true}, true
	case ast.UnaryBitNot:
		return Result{Int: ^operand.Int, Width: operand.Width, Signed: operand.Signed}, true
	case ast.UnaryLogNot:
		v := int64(0)
		if operand.Int == 0 {
			v = 1
		}
		return Result{Int: v, Width: 1, Signed: false}, true
	default:
		return Result{}, false
	}
}

func foldBinary(b *ast.Builder, in *types.Interner, expr ast.ExprID) (Result, bool) {
	bin, ok := b.Binary(expr)
	if !ok {
		return Result{}, false
	}
	l, ok := Fold(b, in, bin.Left)
	if !ok || l.IsString {
		return Result{}, false
	}
	r, ok := Fold(b, in, bin.Right)
	if !ok || r.IsString {
		return Result{}, false
	}
	width := l.Width
	if r.Width > width {
		width = r.Width
	}
	signed := l.Signed || r.Signed
	boolResult := func(v bool) (Result, bool) {
		if v {
			return Result{Int: 1, Width: 1}, true
		}
		return Result{Int: 0, Width: 1}, true
	}
	switch bin.Op {
	case ast.BinAdd:
		return Result{Int: l.Int + r.Int, Width: width, Signed: signed}, true
	case ast.BinSub:
		return Result{Int: l.Int - r.Int, Width: width, Signed: signed}, true
	case ast.BinMul:
		return Result{Int: l.Int * r.Int, Width: width, Signed: signed}, true
	case ast.BinDiv:
		if r.Int == 0 {
			return Result{}, false
		}
		return Result{Int: l.Int / r.Int, Width: width, Signed: signed}, true
	case ast.BinMod:
		if r.Int == 0 {
			return Result{}, false
		}
		return Result{Int: l.Int % r.Int, Width: width, Signed: signed}, true
	case ast.BinEq:
		return boolResult(l.Int == r.Int)
	case ast.BinNe:
		return boolResult(l.Int != r.Int)
	case ast.BinLt:
		return boolResult(l.Int < r.Int)
	case ast.BinLe:
		return boolResult(l.Int <= r.Int)
	case ast.BinGt:
		return boolResult(l.Int > r.Int)
	case ast.BinGe:
		return boolResult(l.Int >= r.Int)
	case ast.BinAnd:
		return boolResult(l.Int != 0 && r.Int != 0)
	case ast.BinOr:
		return boolResult(l.Int != 0 || r.Int != 0)
	case ast.BinBitAnd:
		return Result{Int: l.Int & r.Int, Width: width, Signed: signed}, true
	case ast.BinBitOr:
		return Result{Int: l.Int | r.Int, Width: width, Signed: signed}, true
	case ast.BinBitXor:
		return Result{Int: l.Int ^ r.Int, Width: width, Signed: signed}, true
	case ast.BinShl:
		return Result{Int: l.Int << uint64(r.Int), Width: width, Signed: signed}, true
	case ast.BinShr:
		return Result{Int: l.Int >> uint64(r.Int), Width: width, Signed: signed}, true
	default:
		return Result{}, false
	}
}

// foldCast folds a cast to/from an integer under the same rules the
// conversion engine uses (spec.md §4.I: "Cast-to-integer and
// cast-from-integer fold under the same rules as the conversion
// engine").
func foldCast(b *ast.Builder, in *types.Interner, expr ast.ExprID) (Result, bool) {
	c, ok := b.Cast(expr)
	if !ok {
		return Result{}, false
	}
	operand, ok := Fold(b, in, c.Expr)
	if !ok || operand.IsString {
		return Result{}, false
	}
	t, ok := in.Lookup(c.To)
	if !ok {
		return Result{}, false
	}
	switch t.Kind {
	case types.KindInteger:
		v := operand.Int
		if t.Signed {
			v = SignExtend(ZeroExtend(v, t.BitWidth), t.BitWidth)
		} else {
			v = ZeroExtend(v, t.BitWidth)
		}
		return Result{Int: v, Width: t.BitWidth, Signed: t.Signed}, true
	case types.KindByte:
		width := uint8(types.Size(in, c.To))
		return Result{Int: ZeroExtend(operand.Int, width), Width: width, Signed: false}, true
	case types.KindBool:
		v := int64(0)
		if operand.Int != 0 {
			v = 1
		}
		return Result{Int: v, Width: 1}, true
	default:
		return Result{}, false
	}
}

// foldIf folds a conditional when its condition folds, per spec.md
// §4.I: "Conditionals fold when the condition folds."
func foldIf(b *ast.Builder, in *types.Interner, expr ast.ExprID) (Result, bool) {
	data, ok := b.If(expr)
	if !ok {
		return Result{}, false
	}
	cond, ok := Fold(b, in, data.Cond)
	if !ok || cond.IsString {
		return Result{}, false
	}
	if cond.Int != 0 {
		return Fold(b, in, data.Then)
	}
	if !data.Else.IsValid() {
		return Result{}, false
	}
	return Fold(b, in, data.Else)
}
