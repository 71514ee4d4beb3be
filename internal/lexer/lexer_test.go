package lexer_test

import (
	"testing"

	"glint/internal/diag"
	"glint/internal/lexer"
	"glint/internal/source"
	"glint/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Context) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.glint", []byte(src))
	ctx := diag.NewContext(fs)
	ctx.Exit = func(int) {}
	lx := lexer.New(fs.Get(id), ctx)

	var toks []token.Token
	for {
		tk := lx.Next()
		toks = append(toks, tk)
		if tk.Kind == token.EOF {
			break
		}
	}
	return toks, ctx
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tk := range toks {
		ks[i] = tk.Kind
	}
	return ks
}

func TestVarDeclWithJuxtaposedInitializer(t *testing.T) {
	toks, ctx := lexAll(t, "foo :int 3;")
	if ctx.HasError() {
		t.Fatalf("unexpected lex error")
	}
	want := []token.Kind{token.Ident, token.Colon, token.Ident, token.IntLit, token.Semi, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestKeywordsClassifyAsKeywordKinds(t *testing.T) {
	toks, _ := lexAll(t, "struct sum union enum fn return if else while for import dynamic true false sizeof alignof has")
	want := []token.Kind{
		token.KwStruct, token.KwSum, token.KwUnion, token.KwEnum, token.KwFn,
		token.KwReturn, token.KwIf, token.KwElse, token.KwWhile, token.KwFor,
		token.KwImport, token.KwDynamic, token.KwTrue, token.KwFalse,
		token.KwSizeof, token.KwAlignof, token.KwHas, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBuiltinTypeNamesLexAsOrdinaryIdentifiers(t *testing.T) {
	toks, _ := lexAll(t, "int bool byte void")
	for _, tk := range toks[:len(toks)-1] {
		if tk.Kind != token.Ident {
			t.Fatalf("expected %q to lex as Ident, got %v", tk.Text, tk.Kind)
		}
	}
}

func TestJuxtapositionCallLexesAsBareIdentifierRun(t *testing.T) {
	toks, _ := lexAll(t, "100 x y")
	want := []token.Kind{token.IntLit, token.Ident, token.Ident, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMemberAccessAndUnaryFree(t *testing.T) {
	toks, _ := lexAll(t, "bar.x; -a;")
	want := []token.Kind{
		token.Ident, token.Dot, token.Ident, token.Semi,
		token.Minus, token.Ident, token.Semi, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDynamicArrayTypeSyntax(t *testing.T) {
	toks, ctx := lexAll(t, "a :[int dynamic];")
	if ctx.HasError() {
		t.Fatalf("unexpected lex error")
	}
	want := []token.Kind{
		token.Ident, token.Colon, token.LBracket, token.Ident, token.KwDynamic,
		token.RBracket, token.Semi, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLineCommentIsSkipped(t *testing.T) {
	toks, _ := lexAll(t, "foo // a trailing comment\nbar")
	want := []token.Kind{token.Ident, token.Ident, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUnterminatedStringReportsError(t *testing.T) {
	_, ctx := lexAll(t, `"oops`)
	if !ctx.HasError() {
		t.Fatalf("expected an unterminated string literal to report an error")
	}
}

func TestNewlineInStringReportsError(t *testing.T) {
	_, ctx := lexAll(t, "\"oops\nno\"")
	if !ctx.HasError() {
		t.Fatalf("expected a newline inside a string literal to report an error")
	}
}

func TestByteLiteral(t *testing.T) {
	toks, ctx := lexAll(t, "'a'")
	if ctx.HasError() {
		t.Fatalf("unexpected lex error")
	}
	if toks[0].Kind != token.ByteLit || toks[0].Text != "'a'" {
		t.Fatalf("got %v %q, want ByteLit %q", toks[0].Kind, toks[0].Text, "'a'")
	}
}

func TestShiftOperatorsPreferLongerSpelling(t *testing.T) {
	toks, _ := lexAll(t, "a << b >> c <= d >= e")
	want := []token.Kind{
		token.Ident, token.Shl, token.Ident, token.Shr, token.Ident,
		token.LtEq, token.Ident, token.GtEq, token.Ident, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUnexpectedByteReportsError(t *testing.T) {
	_, ctx := lexAll(t, "a $ b")
	if !ctx.HasError() {
		t.Fatalf("expected an unrecognised byte to report an error")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.glint", []byte("foo bar"))
	ctx := diag.NewContext(fs)
	ctx.Exit = func(int) {}
	lx := lexer.New(fs.Get(id), ctx)

	peeked := lx.Peek()
	if peeked.Text != "foo" {
		t.Fatalf("expected Peek to return %q, got %q", "foo", peeked.Text)
	}
	next := lx.Next()
	if next.Text != "foo" {
		t.Fatalf("expected Next after Peek to return the same token, got %q", next.Text)
	}
	after := lx.Next()
	if after.Text != "bar" {
		t.Fatalf("expected the lexer to resume correctly after Peek, got %q", after.Text)
	}
}
