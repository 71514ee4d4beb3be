package parser_test

import (
	"testing"

	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/lexer"
	"glint/internal/parser"
	"glint/internal/source"
	"glint/internal/symbols"
	"glint/internal/types"
)

type harness struct {
	b     *ast.Builder
	in    *types.Interner
	strs  *source.Interner
	table *symbols.Table
	ctx   *diag.Context
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := diag.NewContext(nil)
	ctx.Exit = func(int) {}
	return &harness{
		b:     ast.NewBuilder(0),
		in:    types.NewInterner(),
		strs:  source.NewInterner(),
		table: symbols.NewTable(0),
		ctx:   ctx,
	}
}

func (h *harness) parse(t *testing.T, src string) *ast.Module {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.glint", []byte(src))
	lx := lexer.New(fs.Get(id), h.ctx)
	return parser.ParseModule(id, lx, parser.Options{
		Builder: h.b,
		Types:   h.in,
		Strings: h.strs,
		Symbols: h.table,
		Context: h.ctx,
	})
}

func (h *harness) requireNoErrors(t *testing.T) {
	t.Helper()
	if h.ctx.HasError() {
		t.Fatalf("expected no parse errors")
	}
}

func TestVarDeclWithJuxtaposedInitializer(t *testing.T) {
	h := newHarness(t)
	mod := h.parse(t, "foo :int 3;")
	h.requireNoErrors(t)
	if len(mod.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(mod.Decls))
	}
	vd, ok := h.b.VarDecl(mod.Decls[0])
	if !ok {
		t.Fatalf("expected a VarDecl")
	}
	if vd.DeclaredTy != h.in.Builtins().Int {
		t.Fatalf("expected declared type int")
	}
	lit, ok := h.b.Literal(vd.Init)
	if !ok || lit.Kind != ast.LitInt || lit.Int != 3 {
		t.Fatalf("expected initializer literal 3, got %+v ok=%v", lit, ok)
	}
}

func TestDynamicArrayVarDecl(t *testing.T) {
	h := newHarness(t)
	mod := h.parse(t, "a :[int dynamic];")
	h.requireNoErrors(t)
	vd, ok := h.b.VarDecl(mod.Decls[0])
	if !ok {
		t.Fatalf("expected a VarDecl")
	}
	if !vd.IsDynArray {
		t.Fatalf("expected IsDynArray to be set")
	}
	if !types.IsDynamicArray(h.in, vd.DeclaredTy) {
		t.Fatalf("expected the declared type to be a dynamic array")
	}
}

func TestSumDeclWithMembers(t *testing.T) {
	h := newHarness(t)
	mod := h.parse(t, "foo : sum { x :int; y :uint; }; bar :foo;")
	h.requireNoErrors(t)
	if len(mod.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(mod.Decls))
	}
	td, ok := h.b.TypeDecl(mod.Decls[0])
	if !ok {
		t.Fatalf("expected a TypeDecl")
	}
	info, ok := h.in.SumInfoOf(td.Type)
	if !ok {
		t.Fatalf("expected sum info")
	}
	if len(info.Members) != 2 || info.Members[0].Name != "x" || info.Members[1].Name != "y" {
		t.Fatalf("unexpected sum fields: %+v", info.Members)
	}

	vd, ok := h.b.VarDecl(mod.Decls[1])
	if !ok {
		t.Fatalf("expected the second decl to be a VarDecl")
	}
	if vd.DeclaredTy != td.Type {
		t.Fatalf("expected bar's declared type to be foo")
	}
}

// firstBodyStmtExpr digs out the ExprID of a function decl's first
// body statement, for inspecting expression statements that can only
// appear inside a block (top-level items must be `name : ...` decls).
func (h *harness) firstBodyStmtExpr(t *testing.T, fnDecl ast.ExprID) ast.ExprID {
	t.Helper()
	fd, ok := h.b.FnDecl(fnDecl)
	if !ok {
		t.Fatalf("expected an FnDecl")
	}
	body, ok := h.b.Block(fd.Body)
	if !ok || len(body.Stmts) == 0 {
		t.Fatalf("expected a non-empty body block")
	}
	return h.b.GetStmt(body.Stmts[0]).Expr
}

func TestMemberAccess(t *testing.T) {
	h := newHarness(t)
	mod := h.parse(t, "foo : sum { x :int; y :uint; }; bar :foo; f : fn() int { bar.x; return 0; }")
	h.requireNoErrors(t)
	if len(mod.Decls) != 3 {
		t.Fatalf("expected 3 decls, got %d", len(mod.Decls))
	}
	expr := h.firstBodyStmtExpr(t, mod.Decls[2])
	if h.b.Get(expr).Kind != ast.ExprMember {
		t.Fatalf("expected a member expr, got %v", h.b.Get(expr).Kind)
	}
	md, ok := h.b.Member(expr)
	if !ok {
		t.Fatalf("expected member data")
	}
	name, _ := h.strs.Lookup(md.MemberName)
	if name != "x" {
		t.Fatalf("expected member name x, got %s", name)
	}
}

func TestUnaryFreeOnDynamicArray(t *testing.T) {
	h := newHarness(t)
	mod := h.parse(t, "f : fn() int { a :[int dynamic]; -a; return 0; }")
	h.requireNoErrors(t)
	fd, _ := h.b.FnDecl(mod.Decls[0])
	body, _ := h.b.Block(fd.Body)
	freeExpr := h.b.GetStmt(body.Stmts[1]).Expr
	if h.b.Get(freeExpr).Kind != ast.ExprUnary {
		t.Fatalf("expected a unary expr, got %v", h.b.Get(freeExpr).Kind)
	}
	ud, ok := h.b.Unary(freeExpr)
	if !ok || ud.Op != ast.UnaryNegFree {
		t.Fatalf("expected UnaryNegFree, got %+v ok=%v", ud, ok)
	}
}

func TestJuxtapositionCallFoldsArgsUnderOneCall(t *testing.T) {
	h := newHarness(t)
	mod := h.parse(t, "f : fn() int { x :int 1; y :int 2; 100 x y; return 0; }")
	h.requireNoErrors(t)
	fd, _ := h.b.FnDecl(mod.Decls[0])
	body, _ := h.b.Block(fd.Body)
	callExpr := h.b.GetStmt(body.Stmts[2]).Expr
	if h.b.Get(callExpr).Kind != ast.ExprCall {
		t.Fatalf("expected a call expr, got %v", h.b.Get(callExpr).Kind)
	}
	cd, ok := h.b.Call(callExpr)
	if !ok {
		t.Fatalf("expected call data")
	}
	callee, ok := h.b.Literal(cd.Callee)
	if !ok || callee.Int != 100 {
		t.Fatalf("expected callee literal 100, got %+v ok=%v", callee, ok)
	}
	if len(cd.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(cd.Args))
	}
}

func TestFnDeclWithParamsAndBody(t *testing.T) {
	h := newHarness(t)
	mod := h.parse(t, "add : fn(a:int, b:int) int { return a + b; }")
	h.requireNoErrors(t)
	fd, ok := h.b.FnDecl(mod.Decls[0])
	if !ok {
		t.Fatalf("expected an FnDecl")
	}
	if len(fd.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fd.Params))
	}
	if fd.Return != h.in.Builtins().Int {
		t.Fatalf("expected return type int")
	}
	if fd.Body == ast.NoExprID {
		t.Fatalf("expected a body to be set")
	}
	body := h.b.Get(fd.Body)
	if body.Kind != ast.ExprBlock {
		t.Fatalf("expected the body to be a block")
	}
}

func TestForwardFunctionReference(t *testing.T) {
	h := newHarness(t)
	mod := h.parse(t, "f : fn() int { return g; } g : fn() int { return 5; }")
	h.requireNoErrors(t)
	if len(mod.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(mod.Decls))
	}
}

func TestIfElseIfChain(t *testing.T) {
	h := newHarness(t)
	src := "f : fn(n:int) int { if n { return 1; } else if n { return 2; } else { return 3; } }"
	h.parse(t, src)
	h.requireNoErrors(t)
}

func TestWhileAndForLoops(t *testing.T) {
	h := newHarness(t)
	src := `f : fn(n:int) int {
		while n { n = n; }
		for (n = n; n; n = n) { n = n; }
		return n;
	}`
	h.parse(t, src)
	h.requireNoErrors(t)
}

func TestImportStatement(t *testing.T) {
	h := newHarness(t)
	mod := h.parse(t, "import other;")
	h.requireNoErrors(t)
	if len(mod.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(mod.Imports))
	}
	name, _ := h.strs.Lookup(mod.Imports[0].Name)
	if name != "other" {
		t.Fatalf("expected import name 'other', got %q", name)
	}
}

func TestEnumDeclWithExplicitAndAutoValues(t *testing.T) {
	h := newHarness(t)
	mod := h.parse(t, "color : enum : int { Red, Green = 3, Blue };")
	h.requireNoErrors(t)
	td, ok := h.b.TypeDecl(mod.Decls[0])
	if !ok {
		t.Fatalf("expected a TypeDecl")
	}
	info, ok := h.in.EnumInfoOf(td.Type)
	if !ok {
		t.Fatalf("expected enum info")
	}
	if len(info.Enumerators) != 3 {
		t.Fatalf("expected 3 enumerators, got %d", len(info.Enumerators))
	}
	if info.Enumerators[0].Value != 0 || info.Enumerators[1].Value != 3 || info.Enumerators[2].Value != 4 {
		t.Fatalf("unexpected enumerator values: %+v", info.Enumerators)
	}
}

func TestMalformedDeclRecoversAtNextStatement(t *testing.T) {
	h := newHarness(t)
	mod := h.parse(t, "a :int 1; b ::: garbage ;;; c :int 2;")
	if !h.ctx.HasError() {
		t.Fatalf("expected the malformed middle declaration to report an error")
	}
	if len(mod.Decls) < 2 {
		t.Fatalf("expected parsing to recover and continue past the bad decl, got %d decls", len(mod.Decls))
	}
}
