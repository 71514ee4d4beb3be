// Package parser builds the AST internal/sema consumes from the
// surface syntax spec.md's scenarios name: var decls with a juxtaposed
// initializer, struct/sum/union/enum decls, function decls, member
// access, unary free, and juxtaposition calls. Grounded on the
// teacher's internal/parser item/statement/expression split
// (parser.go, stmt_parser.go, expression.go, op_table.go), trimmed to
// this much smaller grammar — full Glint surface syntax (generics,
// contracts, async/spawn/select, tags) is out of scope per spec.md §1.
//
// Scope resolution for user-declared type names (structs, sums,
// unions, enums, aliases) happens eagerly during parsing rather than
// as a later sema pass, so a type name must be declared textually
// before its first use; this is the one place this minimal parser is
// less permissive than a full front-end would be.
package parser

import (
	"fmt"

	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/lexer"
	"glint/internal/source"
	"glint/internal/symbols"
	"glint/internal/token"
	"glint/internal/types"
)

// Parser holds one file's parsing state.
type Parser struct {
	lx  *lexer.Lexer
	buf []token.Token

	b       *ast.Builder
	in      *types.Interner
	strings *source.Interner
	table   *symbols.Table
	ctx     *diag.Context

	modScope symbols.ScopeID
	fnScope  symbols.ScopeID // 0 (NoScopeID) at top level
	fnDecl   ast.ExprID      // the enclosing ExprFnDecl, NoExprID at top level
}

// Options bundles the shared interners/tables a Parser threads its
// output through, mirroring sema.Options's shape.
type Options struct {
	Builder *ast.Builder
	Types   *types.Interner
	Strings *source.Interner
	Symbols *symbols.Table
	Context *diag.Context
}

// ParseModule parses file's token stream into an *ast.Module, ready for
// sema.Check.
func ParseModule(file source.FileID, lx *lexer.Lexer, opts Options) *ast.Module {
	p := &Parser{
		lx:       lx,
		b:        opts.Builder,
		in:       opts.Types,
		strings:  opts.Strings,
		table:    opts.Symbols,
		ctx:      opts.Context,
		modScope: opts.Symbols.ModuleRoot(fmt.Sprintf("file#%d", file), symbols.NoScopeID, source.Span{}),
	}

	mod := ast.NewModule(file)
	mod.Builder = p.b
	mod.Scope = ast.ScopeID(p.modScope)

	for p.peek().Kind != token.EOF {
		if p.peek().Kind == token.KwImport {
			mod.Imports = append(mod.Imports, p.parseImport())
			continue
		}
		if id, ok := p.parseItem(); ok {
			mod.Decls = append(mod.Decls, id)
		} else {
			p.resync()
		}
	}
	return mod
}

// peekN returns the token n positions ahead without consuming it,
// pulling fresh tokens from the lexer as needed.
func (p *Parser) peekN(n int) token.Token {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lx.Next())
	}
	return p.buf[n]
}

func (p *Parser) peek() token.Token { return p.peekN(0) }

func (p *Parser) advance() token.Token {
	tk := p.peek()
	if len(p.buf) > 0 {
		p.buf = p.buf[1:]
	}
	return tk
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

// expect consumes the current token if it has kind k, else reports a
// diagnostic and returns the zero Token with ok false.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	tk := p.peek()
	p.errorf(tk.Span, diag.SyntaxExpectedToken, "expected %v, got %v", k, tk.Kind)
	return token.Token{}, false
}

func (p *Parser) errorf(sp source.Span, code diag.Code, format string, args ...any) {
	if p.ctx != nil {
		p.ctx.Error(code, sp, fmt.Sprintf(format, args...))
	}
}

// resync discards tokens up to the next ';' or a token that starts a
// new top-level item, so one malformed declaration doesn't cascade.
func (p *Parser) resync() {
	for {
		switch p.peek().Kind {
		case token.Semi:
			p.advance()
			return
		case token.EOF, token.KwImport:
			return
		case token.Ident:
			if p.peekN(1).Kind == token.Colon {
				return
			}
			p.advance()
		default:
			p.advance()
		}
	}
}

// parseImport consumes `import <name>;`.
func (p *Parser) parseImport() ast.Import {
	start := p.advance() // 'import'
	nameTok, ok := p.expect(token.Ident)
	if !ok {
		return ast.Import{}
	}
	end, _ := p.expect(token.Semi)
	sp := start.Span.Cover(end.Span)
	return ast.Import{Name: p.strings.Intern(nameTok.Text), Span: sp}
}

// parseItem dispatches a top-level `name : ...` declaration.
func (p *Parser) parseItem() (ast.ExprID, bool) {
	if !p.at(token.Ident) || p.peekN(1).Kind != token.Colon {
		tk := p.peek()
		p.errorf(tk.Span, diag.SyntaxUnexpectedToken, "expected a top-level declaration, got %v", tk.Kind)
		return ast.NoExprID, false
	}
	return p.parseDecl(p.modScope, ast.NoExprID)
}
