package sema

import (
	"testing"

	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/source"
	"glint/internal/symbols"
	"glint/internal/types"
)

func newTestChecker() (*Checker, *ast.Builder, *types.Interner, *source.Interner, *symbols.Table, *diag.Context) {
	b := ast.NewBuilder(0)
	in := types.NewInterner()
	strs := source.NewInterner()
	table := symbols.NewTable(0)
	ctx := diag.NewContext(nil)
	ctx.Exit = func(int) {}
	c := &Checker{b: b, in: in, ctx: ctx, table: table, strings: strs}
	return c, b, in, strs, table, ctx
}

// scenario 1: "Module declares foo :int 3; then uses fob. After sema: a
// warning is emitted, the reference targets foo, the program compiles
// with exit 0."
func TestNameTypoAutoCorrect(t *testing.T) {
	c, b, in, strs, table, ctx := newTestChecker()
	scope := table.Scopes.New(symbols.ScopeModule, symbols.NoScopeID, source.Span{})

	fooName := strs.Intern("foo")
	three := b.NewLiteral(source.Span{}, ast.LiteralData{Kind: ast.LitInt, Int: 3})
	foo := b.NewVarDecl(source.Span{}, ast.VarDeclData{Name: fooName, DeclaredTy: in.Builtins().Int, Init: three})
	table.Scopes.Declare(b, scope, fooName, foo)
	if fe := b.Get(foo); fe != nil {
		fe.State = ast.Done
		fe.Type = in.Builtins().Int
	}

	fobRef := b.NewNameRef(source.Span{}, strs.Intern("fob"), ast.ScopeID(scope))
	ok := c.Analyse(&fobRef, types.NoTypeID)
	if !ok {
		t.Fatalf("expected auto-correct to succeed, got failure")
	}
	ref, _ := b.NameRef(fobRef)
	if ref.Target != foo {
		t.Fatalf("expected corrected reference to target foo, got %v", ref.Target)
	}
	if ctx.HasError() {
		t.Fatalf("auto-correct must not set the error flag")
	}
	found := false
	for _, d := range ctx.Bag.Items() {
		if d.Code == diag.NameAutoCorrected {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a NameAutoCorrected warning in the bag")
	}
}

// scenario 2: "x :int = x; raises an Error 'Cannot use x in its own
// initialiser'; exit 1."
func TestUseBeforeInitialiserErrors(t *testing.T) {
	c, b, in, strs, table, ctx := newTestChecker()
	scope := table.Scopes.New(symbols.ScopeModule, symbols.NoScopeID, source.Span{})

	xName := strs.Intern("x")
	selfRef := b.NewNameRef(source.Span{}, xName, ast.ScopeID(scope))
	decl := b.NewVarDecl(source.Span{}, ast.VarDeclData{Name: xName, DeclaredTy: in.Builtins().Int, Init: selfRef})
	table.Scopes.Declare(b, scope, xName, decl)

	ok := c.Analyse(&decl, types.NoTypeID)
	if ok {
		t.Fatalf("expected use-in-own-initialiser to fail analysis")
	}
	if !ctx.HasError() {
		t.Fatalf("expected the error flag to be set")
	}
	found := false
	for _, d := range ctx.Bag.Items() {
		if d.Code == diag.NameOwnInitialiser {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a NameOwnInitialiser diagnostic")
	}
}

func TestDuplicateOverloadSignatureIsAnError(t *testing.T) {
	c, b, in, strs, table, _ := newTestChecker()
	scope := table.Scopes.New(symbols.ScopeModule, symbols.NoScopeID, source.Span{})
	name := strs.Intern("f")

	f1 := b.NewFnDecl(source.Span{}, ast.FnDeclData{Name: name, Params: []ast.FnParam{{Type: in.Builtins().Int}}, Return: in.Builtins().Void})
	f2 := b.NewFnDecl(source.Span{}, ast.FnDeclData{Name: name, Params: []ast.FnParam{{Type: in.Builtins().Int}}, Return: in.Builtins().Void})
	table.Scopes.Declare(b, scope, name, f1)
	table.Scopes.Declare(b, scope, name, f2)
	c.analyseFnSignature(f1)
	c.analyseFnSignature(f2)

	ref := b.NewNameRef(source.Span{}, name, ast.ScopeID(scope))
	ok := c.Analyse(&ref, types.NoTypeID)
	if ok {
		t.Fatalf("expected duplicate-signature overload set to fail")
	}
}

func TestOverloadSetOfDistinctSignaturesResolves(t *testing.T) {
	c, b, in, strs, table, _ := newTestChecker()
	scope := table.Scopes.New(symbols.ScopeModule, symbols.NoScopeID, source.Span{})
	name := strs.Intern("f")

	f1 := b.NewFnDecl(source.Span{}, ast.FnDeclData{Name: name, Params: []ast.FnParam{{Type: in.Builtins().Int}}, Return: in.Builtins().Void})
	f2 := b.NewFnDecl(source.Span{}, ast.FnDeclData{Name: name, Params: []ast.FnParam{{Type: in.Builtins().Bool}}, Return: in.Builtins().Void})
	table.Scopes.Declare(b, scope, name, f1)
	table.Scopes.Declare(b, scope, name, f2)
	c.analyseFnSignature(f1)
	c.analyseFnSignature(f2)

	ref := b.NewNameRef(source.Span{}, name, ast.ScopeID(scope))
	ok := c.Analyse(&ref, types.NoTypeID)
	if !ok {
		t.Fatalf("expected distinct-signature overload set to resolve cleanly")
	}
	e := b.Get(ref)
	if e.Type != in.Builtins().OverloadSet {
		t.Fatalf("expected overload-set type on the rewritten node")
	}
}
