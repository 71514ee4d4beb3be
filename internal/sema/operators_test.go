package sema

import (
	"testing"

	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/source"
	"glint/internal/symbols"
	"glint/internal/types"
)

func TestArithmeticBinaryUnifiesOperandTypes(t *testing.T) {
	c, b, in, _, _, _ := newTestChecker()
	lhs := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 1})
	rhs := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 2})
	expr := b.NewBinary(source.Span{}, ast.BinAdd, lhs, rhs)

	if !c.Analyse(&expr, types.NoTypeID) {
		t.Fatalf("expected arithmetic on two ints to succeed")
	}
	if e := b.Get(expr); e.Type != in.Builtins().Int {
		t.Fatalf("expected the sum's type to be int")
	}
}

func TestArithmeticOnBoolOperandsIsAnError(t *testing.T) {
	c, b, _, _, _, ctx := newTestChecker()
	lhs := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitBool, Bool: true})
	rhs := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 2})
	expr := b.NewBinary(source.Span{}, ast.BinAdd, lhs, rhs)

	if c.Analyse(&expr, types.NoTypeID) {
		t.Fatalf("expected arithmetic between bool and int to fail")
	}
	if !ctx.HasError() {
		t.Fatalf("expected the error flag to be set")
	}
}

func TestAssignmentRequiresLValueLeftSide(t *testing.T) {
	c, b, _, _, _, ctx := newTestChecker()
	lhs := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 1})
	rhs := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 2})
	expr := b.NewBinary(source.Span{}, ast.BinAssign, lhs, rhs)

	if c.Analyse(&expr, types.NoTypeID) {
		t.Fatalf("expected assignment to an rvalue to fail")
	}
	if !ctx.HasError() {
		t.Fatalf("expected the error flag to be set")
	}
}

func TestAssignmentToVarDeclSucceeds(t *testing.T) {
	c, b, in, strs, _, _ := newTestChecker()
	decl := b.NewVarDecl(source.Span{}, ast.VarDeclData{Name: strs.Intern("x"), DeclaredTy: in.Builtins().Int})
	if e := b.Get(decl); e != nil {
		e.State = ast.Done
		e.Type = in.Builtins().Int
		e.LValue = true
	}
	ref := b.NewNameRef(source.Span{}, strs.Intern("x"), ast.NoScopeID)
	if re, ok := b.NameRef(ref); ok {
		re.Target = decl
	}
	if e := b.Get(ref); e != nil {
		e.State = ast.Done
		e.Type = in.Builtins().Int
		e.LValue = true
	}
	rhs := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 7})
	expr := b.NewBinary(source.Span{}, ast.BinAssign, ref, rhs)

	if !c.Analyse(&expr, types.NoTypeID) {
		t.Fatalf("expected assignment to a declared variable to succeed")
	}
}

// scenario 4: "a :[int dynamic]; -a; -a; — the second -a raises a
// 'no longer viable' Error on the NameRef."
func TestDynamicArrayDoubleFreeErrors(t *testing.T) {
	c, b, in, strs, table, ctx := newTestChecker()
	dynT := in.MakeDynamicArray(in.Builtins().Int, 0, false)
	aName := strs.Intern("a")
	scope := table.Scopes.New(symbols.ScopeModule, symbols.NoScopeID, source.Span{})

	decl := b.NewVarDecl(source.Span{}, ast.VarDeclData{Name: aName, DeclaredTy: dynT, IsDynArray: true})
	table.Scopes.Declare(b, scope, aName, decl)
	if e := b.Get(decl); e != nil {
		e.State = ast.Done
		e.Type = dynT
		e.LValue = true
	}

	fn := b.NewFnDecl(source.Span{}, ast.FnDeclData{Name: strs.Intern("f"), Return: in.Builtins().Void})
	data, _ := b.FnDecl(fn)
	data.Dangling[decl] = struct{}{}
	c.fnStack = append(c.fnStack, &fnContext{decl: fn, data: data, isVoid: true})
	defer func() { c.fnStack = c.fnStack[:0] }()

	firstRef := b.NewNameRef(source.Span{}, aName, ast.ScopeID(scope))
	first := b.NewUnary(source.Span{}, ast.UnaryNegFree, firstRef)
	if !c.Analyse(&first, types.NoTypeID) {
		t.Fatalf("expected the first free to succeed")
	}
	if got := b.Get(decl); got.State != ast.NoLongerViable {
		t.Fatalf("expected the declaration to become NoLongerViable after the first free")
	}

	secondRef := b.NewNameRef(source.Span{}, aName, ast.ScopeID(scope))
	second := b.NewUnary(source.Span{}, ast.UnaryNegFree, secondRef)
	if c.Analyse(&second, types.NoTypeID) {
		t.Fatalf("expected the second free to fail")
	}
	found := false
	for _, d := range ctx.Bag.Items() {
		if d.Code == diag.NameNoLongerViable {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a NameNoLongerViable diagnostic")
	}
}
