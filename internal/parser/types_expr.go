package parser

import (
	"glint/internal/diag"
	"glint/internal/symbols"
	"glint/internal/token"
	"glint/internal/types"
)

type sizedInt struct {
	width  uint8
	signed bool
}

var sizedIntTypes = map[string]sizedInt{
	"i8": {8, true}, "i16": {16, true}, "i32": {32, true}, "i64": {64, true},
	"u8": {8, false}, "u16": {16, false}, "u32": {32, false}, "u64": {64, false},
	"uint": {64, false},
}

// parseType parses a type expression: a builtin or user-declared name,
// an `@`-prefixed pointer, or a `[elem N]`/`[elem dynamic]` array.
func (p *Parser) parseType(scope symbols.ScopeID) (types.TypeID, bool) {
	switch p.peek().Kind {
	case token.At:
		p.advance()
		elem, ok := p.parseType(scope)
		if !ok {
			return types.NoTypeID, false
		}
		return p.in.MakePointer(elem), true

	case token.LBracket:
		p.advance()
		elem, ok := p.parseType(scope)
		if !ok {
			return types.NoTypeID, false
		}
		if p.at(token.KwDynamic) {
			p.advance()
			p.expect(token.RBracket)
			return p.in.MakeDynamicArray(elem, 0, false), true
		}
		sizeTok, ok := p.expect(token.IntLit)
		if !ok {
			return types.NoTypeID, false
		}
		p.expect(token.RBracket)
		return p.in.MakeArray(elem, uint32(parseIntLit(sizeTok.Text))), true

	case token.Ident:
		return p.resolveNamedType(scope)

	default:
		tk := p.peek()
		p.errorf(tk.Span, diag.SyntaxExpectedToken, "expected a type, got %v", tk.Kind)
		return types.NoTypeID, false
	}
}

// resolveNamedType consumes one identifier and maps it to a builtin, a
// sized-integer spelling (i8/u8/.../uint), or a previously declared
// struct/sum/union/enum/alias; an unknown name becomes an unresolved
// KindNamed placeholder rather than a parse error, matching spec.md
// §3's treatment of KindNamed as identity-only until resolved.
func (p *Parser) resolveNamedType(scope symbols.ScopeID) (types.TypeID, bool) {
	tok := p.advance()
	builtins := p.in.Builtins()
	switch tok.Text {
	case "int":
		return builtins.Int, true
	case "bool":
		return builtins.Bool, true
	case "byte":
		return builtins.Byte, true
	case "void":
		return builtins.Void, true
	}
	if w, ok := sizedIntTypes[tok.Text]; ok {
		return p.in.MakeInteger(w.width, w.signed), true
	}

	name := p.strings.Intern(tok.Text)
	if decls := p.table.Scopes.FindRecursive(scope, name); len(decls) > 0 {
		for _, id := range decls {
			if td, ok := p.b.TypeDecl(id); ok {
				return td.Type, true
			}
			if ad, ok := p.b.AliasDecl(id); ok {
				return ad.Target, true
			}
		}
	}
	return p.in.MakeNamed(tok.Text, uint32(scope)), true
}
