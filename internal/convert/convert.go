// Package convert implements the implicit-conversion engine (spec.md
// §4.H/§9's "Conversion engine", component I): a closed, order-sensitive
// rule list scoring how (and whether) an expression can be made to
// match a target type, inserting casts along the way. Grounded directly
// on original_source/lib/glint/sema.cc's ConvertImpl<PerformConversion>
// (lines 30-232) and ConvertToCommonType/DeclTypeDecay/Deproceduring
// (lines 242-270); the C++ template bool parameter becomes a Go bool
// argument.
package convert

import (
	"glint/internal/ast"
	"glint/internal/eval"
	"glint/internal/types"
)

const (
	typesContainErrors = -2
	impossible         = -1
	noOp               = 0
)

// TryConvert computes ConvertImpl's score without mutating the tree
// (spec.md §4.H/§8: "TryConvert(e, T) >= 0" must predict whether
// Convert would succeed).
func TryConvert(b *ast.Builder, in *types.Interner, exprPtr *ast.ExprID, to types.TypeID) int {
	return convertImpl(b, in, exprPtr, to, false)
}

// Convert performs the conversion in place, returning whether it
// succeeded (score >= 0), per spec.md §4.H.
func Convert(b *ast.Builder, in *types.Interner, exprPtr *ast.ExprID, to types.TypeID) bool {
	if e := b.Get(*exprPtr); e != nil && e.State == ast.Errored {
		return true
	}
	return convertImpl(b, in, exprPtr, to, true) >= 0
}

// convertImpl mirrors ConvertImpl<PerformConversion>'s rule order
// exactly; each numbered comment matches spec.md §4.H's own numbering.
func convertImpl(b *ast.Builder, in *types.Interner, exprPtr *ast.ExprID, to types.TypeID, perform bool) int {
	e := b.Get(*exprPtr)
	if e == nil {
		return impossible
	}
	from := e.Type

	// 1. Either type errored.
	if from == types.NoTypeID || to == types.NoTypeID {
		return typesContainErrors
	}

	score := 0

	// 2. Target is void.
	if types.IsVoid(in, to) {
		return noOp
	}

	// 3. Types equal (rvalue fast path only: an lvalue of T converting to
	// T still needs the L->R cast inserted below, per spec §8's
	// "Convert(lvalue of T, T) inserts exactly one L->R cast").
	if !e.LValue && types.Equal(in, from, to) {
		return noOp
	}

	// 4. Target is reference to exactly the source's type, source lvalue.
	toT, _ := in.Lookup(to)
	if toT.Kind == types.KindReference && types.Equal(in, from, toT.Elem) {
		if e.LValue {
			if perform {
				wrapCast(b, exprPtr, to, ast.CastLValueToReference)
			}
			return noOp
		}
		return impossible
	}

	// 5. Source is lvalue -> add 1, apply L->R.
	if e.LValue {
		score++
		if perform {
			applyLValueToRValue(b, exprPtr)
		}
	}
	e = b.Get(*exprPtr)
	from = e.Type
	fromT, _ := in.Lookup(from)

	// 6. Reference-to-reference.
	if fromT.Kind == types.KindReference && toT.Kind == types.KindReference {
		if types.Equal(in, from, to) {
			return noOp
		}
		if elemT, ok := in.Lookup(fromT.Elem); ok && elemT.Kind == types.KindArray && types.Equal(in, elemT.Elem, toT.Elem) {
			if perform {
				insertImplicitCast(b, exprPtr, to)
			}
			return score + 1
		}
		return impossible
	}

	// 7. Strip reference from source if still present.
	if fromT.Kind == types.KindReference {
		score++
		if perform {
			applyLValueToRValue(b, exprPtr)
		}
		e = b.Get(*exprPtr)
		from = e.Type
		fromT, _ = in.Lookup(from)
	}

	// 8. Function type -> pointer to identical function type.
	if fromT.Kind == types.KindFunction && toT.Kind == types.KindPointer && types.Equal(in, toT.Elem, from) {
		if perform {
			insertImplicitCast(b, exprPtr, to)
		}
		return noOp
	}

	// 9. Deproceduring.
	if Deproceduring(b, in, exprPtr) {
		return score + 1
	}
	e = b.Get(*exprPtr)
	from = e.Type
	fromT, _ = in.Lookup(from)

	if types.Equal(in, from, to) {
		return noOp
	}

	// 10. Pointer to pointer.
	if fromT.Kind == types.KindPointer && toT.Kind == types.KindPointer {
		if elemT, ok := in.Lookup(fromT.Elem); ok && elemT.Kind == types.KindArray && types.Equal(in, elemT.Elem, toT.Elem) {
			if perform {
				insertImplicitCast(b, exprPtr, to)
			}
			return score + 1
		}
		if toT.Kind == types.KindVoidPtr || types.Equal(in, to, in.Builtins().VoidPtr) {
			if perform {
				insertImplicitCast(b, exprPtr, to)
			}
			return score + 1
		}
	}

	// 11. Array to array (element compatibility deliberately unchecked,
	// spec.md §9: "do not silently change semantics").
	if fromT.Kind == types.KindArray && toT.Kind == types.KindArray {
		fromN, _ := in.ArraySize(from)
		toN, _ := in.ArraySize(to)
		if fromN > toN {
			return impossible
		}
		if perform {
			insertImplicitCast(b, exprPtr, to)
		}
		return score + 1
	}

	// Function type -> pointer to identical function type (second path,
	// mirroring the original's duplicated check after deproceduring).
	if fromT.Kind == types.KindFunction && toT.Kind == types.KindPointer && types.Equal(in, toT.Elem, from) {
		if perform {
			insertImplicitCast(b, exprPtr, to)
		}
		return noOp
	}

	// 12. Integer <-> bool.
	if (types.IsInteger(in, from, false) && toT.Kind == types.KindBool) ||
		(fromT.Kind == types.KindBool && types.IsInteger(in, to, false)) {
		if perform {
			insertImplicitCast(b, exprPtr, to)
		}
		return score + 1
	}

	// 13. Integer to integer.
	if types.IsInteger(in, from, false) && types.IsInteger(in, to, false) {
		return convertIntegerToInteger(b, in, exprPtr, from, to, fromT, toT, score, perform)
	}

	// Try deproceduring one last time.
	if Deproceduring(b, in, exprPtr) {
		return score + 1
	}

	return impossible
}

func applyLValueToRValue(b *ast.Builder, exprPtr *ast.ExprID) {
	e := b.Get(*exprPtr)
	to := e.Type
	wrapCast(b, exprPtr, to, ast.CastLValueToRValue)
	if ne := b.Get(*exprPtr); ne != nil {
		ne.LValue = false
		ne.Type = to
	}
}

func insertImplicitCast(b *ast.Builder, exprPtr *ast.ExprID, to types.TypeID) {
	wrapCast(b, exprPtr, to, ast.CastImplicit)
}

func wrapCast(b *ast.Builder, exprPtr *ast.ExprID, to types.TypeID, kind ast.CastKind) {
	id := b.WrapWithCast(exprPtr, to, kind)
	if e := b.Get(id); e != nil {
		e.Type = to
		e.State = ast.Done
	}
}

// Deproceduring implicitly calls a zero-argument function value used in
// rvalue position, per spec.md §9 ("Deproceduring is scoped... applies
// only to zero-arg function expressions and only once per site").
// Declarations and blocks are never deprocedured automatically
// (sema.cc:257-270).
func Deproceduring(b *ast.Builder, in *types.Interner, exprPtr *ast.ExprID) bool {
	e := b.Get(*exprPtr)
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.ExprVarDecl, ast.ExprFnDecl, ast.ExprTypeDecl, ast.ExprAliasDecl,
		ast.ExprEnumeratorDecl, ast.ExprModuleDecl, ast.ExprBlock:
		return false
	}

	fnType := e.Type
	t, ok := in.Lookup(fnType)
	if !ok {
		return false
	}
	switch t.Kind {
	case types.KindFunction:
		// direct function value
	case types.KindPointer:
		elem, ok := in.Lookup(t.Elem)
		if !ok || elem.Kind != types.KindFunction {
			return false
		}
		fnType = t.Elem
	default:
		return false
	}
	fn, ok := in.FnInfoOf(fnType)
	if !ok || len(fn.Params) != 0 {
		return false
	}

	id := b.NewCall(e.Span, *exprPtr, nil)
	*exprPtr = id
	if ne := b.Get(id); ne != nil {
		ne.Type = fn.Return
	}
	return true
}

// ConvertToCommonType unifies a and b to one type, favouring an integer
// literal's conversion toward the other side (literal-favouring rule),
// per sema.cc:242-256.
func ConvertToCommonType(b *ast.Builder, in *types.Interner, a, bb *ast.ExprID) bool {
	isLit := func(id ast.ExprID) bool {
		e := b.Get(id)
		return e != nil && e.Kind == ast.ExprLiteral
	}
	aLit, bLit := isLit(*a), isLit(*bb)
	if aLit != bLit {
		if aLit {
			return Convert(b, in, a, b.Get(*bb).Type)
		}
		return Convert(b, in, bb, b.Get(*a).Type)
	}
	toB := b.Get(*bb).Type
	toA := b.Get(*a).Type
	if Convert(b, in, a, toB) {
		return true
	}
	return Convert(b, in, bb, toA)
}

// DeclTypeDecay replaces a declared function type with a pointer to
// that function, per spec.md's Glossary entry and sema.cc:260-262.
func DeclTypeDecay(in *types.Interner, declared types.TypeID) types.TypeID {
	if types.IsFunction(in, declared) {
		return in.MakePointer(declared)
	}
	return declared
}

// convertIntegerToInteger implements spec.md §4.H rule 13: a widening
// (or equal-width) conversion always succeeds; a narrowing conversion
// succeeds only when the source folds to a compile-time constant that
// fits in the target, in which case the expression is rewritten to an
// evaluated constant of the target's width (spec.md §4.F/§4.I, "H
// consults F"). Width is taken from types.Size rather than the raw
// Type.BitWidth field, since BitWidth is meaningful only for
// KindInteger — Byte (and Bool) carry it as zero.
func convertIntegerToInteger(b *ast.Builder, in *types.Interner, exprPtr *ast.ExprID, from, to types.TypeID, fromT, toT types.Type, score int, perform bool) int {
	fromWidth := uint8(types.Size(in, from))
	toWidth := uint8(types.Size(in, to))
	if fromWidth <= toWidth {
		if perform {
			insertImplicitCast(b, exprPtr, to)
		}
		return score + 1
	}
	if result, ok := eval.Fold(b, in, *exprPtr); ok && !result.IsString && result.Fits(toWidth, toT.Signed) {
		if perform {
			v := eval.ZeroExtend(result.AsInt(), toWidth)
			if toT.Signed {
				v = eval.SignExtend(v, toWidth)
			}
			span := b.Get(*exprPtr).Span
			id := b.NewEvaluatedConstant(span, ast.EvaluatedConstantData{
				Int: v, Width: toWidth, Signed: toT.Signed,
			})
			*exprPtr = id
			e := b.Get(id)
			e.Type = to
			e.State = ast.Done
		}
		return score + 1
	}
	return impossible
}
