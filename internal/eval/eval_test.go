package eval

import (
	"testing"

	"glint/internal/ast"
	"glint/internal/source"
	"glint/internal/types"
)

func TestFoldIntegerArithmetic(t *testing.T) {
	b := ast.NewBuilder(0)
	in := types.NewInterner()
	lit := func(v int64) ast.ExprID {
		return b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: v})
	}
	mul := b.NewBinary(source.Span{}, ast.BinMul, lit(6), lit(7))
	res, ok := Fold(b, in, mul)
	if !ok || res.Int != 42 {
		t.Fatalf("expected fold to 42, got %v ok=%v", res, ok)
	}
}

func TestFoldDivisionByZeroFails(t *testing.T) {
	b := ast.NewBuilder(0)
	in := types.NewInterner()
	lit := func(v int64) ast.ExprID {
		return b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: v})
	}
	div := b.NewBinary(source.Span{}, ast.BinDiv, lit(1), lit(0))
	if _, ok := Fold(b, in, div); ok {
		t.Fatalf("division by zero must not fold")
	}
}

func TestFoldIfFollowsCondition(t *testing.T) {
	b := ast.NewBuilder(0)
	in := types.NewInterner()
	lit := func(v int64) ast.ExprID {
		return b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: v})
	}
	ifExpr := b.NewIf(source.Span{}, lit(1), lit(10), lit(20))
	res, ok := Fold(b, in, ifExpr)
	if !ok || res.Int != 10 {
		t.Fatalf("expected condition-true branch to fold to 10, got %v", res)
	}
}

func TestResultFitsRespectsSignedness(t *testing.T) {
	r := Result{Int: -1, Width: 64, Signed: true}
	if r.Fits(8, false) {
		t.Fatalf("-1 must not fit an unsigned 8-bit target")
	}
	if !r.Fits(8, true) {
		t.Fatalf("-1 must fit a signed 8-bit target")
	}
}

func TestFoldCastTruncatesAndSignExtends(t *testing.T) {
	b := ast.NewBuilder(0)
	in := types.NewInterner()
	lit := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 255})
	i8 := in.MakeInteger(8, true)
	cast := b.NewCast(source.Span{}, ast.CastHard, lit, i8)
	res, ok := Fold(b, in, cast)
	if !ok || res.Int != -1 {
		t.Fatalf("expected 255 cast to signed 8-bit to fold to -1, got %v", res)
	}
}

func TestFoldCastToByteFolds(t *testing.T) {
	b := ast.NewBuilder(0)
	in := types.NewInterner()
	lit := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 321})
	cast := b.NewCast(source.Span{}, ast.CastHard, lit, in.Builtins().Byte)
	res, ok := Fold(b, in, cast)
	if !ok || res.Int != 65 || res.Width != 8 || res.Signed {
		t.Fatalf("expected 321 cast to byte to fold to 65, got %+v ok=%v", res, ok)
	}
}
