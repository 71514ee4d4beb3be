package lexer

import "glint/internal/token"

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// scanNumber consumes a decimal integer literal. The surface grammar
// named in spec.md's scenarios has no float literals, so unlike the
// teacher's scanner this never promotes to a FloatLit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
