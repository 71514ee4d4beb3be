package sema

import (
	"testing"

	"glint/internal/ast"
	"glint/internal/source"
	"glint/internal/types"
)

// scenario 5: "100 x y where x,y:int rewrites to 100 * (x * (y)) whose
// type is int; AST after sema shows a BinaryExpr(*) with a
// BinaryExpr(*) right child."
func TestIntegerCalleeFoldsToMultiplication(t *testing.T) {
	c, b, in, strs, _, _ := newTestChecker()
	hundred := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 100})
	x := declaredIntRef(b, strs, in, "x")
	y := declaredIntRef(b, strs, in, "y")
	call := b.NewCall(source.Span{}, hundred, []ast.ExprID{x, y})

	if !c.Analyse(&call, types.NoTypeID) {
		t.Fatalf("expected the integer-callee call to fold successfully")
	}
	top, ok := b.Binary(call)
	if !ok || top.Op != ast.BinMul {
		t.Fatalf("expected the rewritten node to be a BinMul, got %v", b.Get(call).Kind)
	}
	rightChild, ok := b.Binary(top.Right)
	if !ok || rightChild.Op != ast.BinMul {
		t.Fatalf("expected the right child to also be a BinMul")
	}
	if e := b.Get(call); e.Type != in.Builtins().Int {
		t.Fatalf("expected the folded expression's type to be int")
	}
}

func declaredIntRef(b *ast.Builder, strs *source.Interner, in *types.Interner, name string) ast.ExprID {
	decl := b.NewVarDecl(source.Span{}, ast.VarDeclData{Name: strs.Intern(name), DeclaredTy: in.Builtins().Int})
	if e := b.Get(decl); e != nil {
		e.State = ast.Done
		e.Type = in.Builtins().Int
		e.LValue = true
	}
	ref := b.NewNameRef(source.Span{}, strs.Intern(name), ast.NoScopeID)
	re, _ := b.NameRef(ref)
	re.Target = decl
	if e := b.Get(ref); e != nil {
		e.State = ast.Done
		e.Type = in.Builtins().Int
		e.LValue = true
	}
	return ref
}

func TestBuiltinCallRewritesToIntrinsic(t *testing.T) {
	c, b, in, strs, _, _ := newTestChecker()
	callee := b.NewNameRef(source.Span{}, strs.Intern("__builtin_debugtrap"), ast.NoScopeID)
	call := b.NewCall(source.Span{}, callee, nil)

	if !c.Analyse(&call, types.NoTypeID) {
		t.Fatalf("expected the builtin call to analyse successfully")
	}
	if b.Get(call).Kind != ast.ExprIntrinsicCall {
		t.Fatalf("expected the call to be rewritten to an intrinsic call")
	}
	if e := b.Get(call); e.Type != in.Builtins().Void {
		t.Fatalf("expected __builtin_debugtrap's type to be void")
	}
}

func TestMemcpyIntrinsicRequiresThreeArgs(t *testing.T) {
	c, b, in, strs, _, ctx := newTestChecker()
	callee := b.NewNameRef(source.Span{}, strs.Intern("__builtin_memcpy"), ast.NoScopeID)
	p := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 0})
	if e := b.Get(p); e != nil {
		e.State = ast.Done
		e.Type = in.Builtins().VoidPtr
	}
	call := b.NewCall(source.Span{}, callee, []ast.ExprID{p})

	c.Analyse(&call, types.NoTypeID)
	if !ctx.HasError() {
		t.Fatalf("expected a wrong-arity __builtin_memcpy call to error")
	}
}

// The memset builtin's middle parameter is Byte; passing the literal 0
// (typed Int) must succeed by constant-folding the narrowing conversion
// rather than rejecting it on a raw bit-width mismatch.
func TestMemsetIntrinsicAcceptsConstantZeroFillByte(t *testing.T) {
	c, b, in, strs, _, ctx := newTestChecker()
	callee := b.NewNameRef(source.Span{}, strs.Intern("__builtin_memset"), ast.NoScopeID)
	p := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 0})
	if e := b.Get(p); e != nil {
		e.State = ast.Done
		e.Type = in.Builtins().VoidPtr
	}
	fill := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 0})
	n := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 16})
	call := b.NewCall(source.Span{}, callee, []ast.ExprID{p, fill, n})

	if !c.Analyse(&call, types.NoTypeID) {
		t.Fatalf("expected __builtin_memset(p, 0, n) to type-check")
	}
	if ctx.HasError() {
		t.Fatalf("expected no diagnostics, got errors")
	}
}

func TestOrdinaryFunctionCallConvertsArguments(t *testing.T) {
	c, b, in, strs, _, _ := newTestChecker()
	fn := b.NewFnDecl(source.Span{}, ast.FnDeclData{
		Name:   strs.Intern("add1"),
		Params: []ast.FnParam{{Name: strs.Intern("n"), Type: in.Builtins().Int}},
		Return: in.Builtins().Int,
	})
	c.analyseFnSignature(fn)

	fnRef := b.NewNameRef(source.Span{}, strs.Intern("add1"), ast.NoScopeID)
	re, _ := b.NameRef(fnRef)
	re.Target = fn
	fnData, _ := b.FnDecl(fn)
	if e := b.Get(fnRef); e != nil {
		e.State = ast.Done
		e.Type = fnData.FnType
		e.LValue = true
	}
	arg := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 3})
	call := b.NewCall(source.Span{}, fnRef, []ast.ExprID{arg})

	if !c.Analyse(&call, types.NoTypeID) {
		t.Fatalf("expected the function call to succeed")
	}
	if e := b.Get(call); e.Type != in.Builtins().Int {
		t.Fatalf("expected the call's type to be the function's return type")
	}
}
