package lexer

import (
	"glint/internal/diag"
	"glint/internal/token"
)

// try2 consumes two bytes if they match a and b, greedily preferring
// the longer operator spelling (e.g. "<<" over "<").
func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}

var singleByteOps = map[byte]token.Kind{
	'+': token.Plus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'^': token.Caret, '~': token.Tilde, '@': token.At,
	':': token.Colon, ';': token.Semi, ',': token.Comma, '.': token.Dot,
	'(': token.LParen, ')': token.RParen,
	'{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
}

// scanOperatorOrPunct consumes one operator or punctuation token,
// greedily matching the longest spelling first.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch lx.cursor.Peek() {
	case '<':
		if lx.try2('<', '<') {
			return lx.finish(start, token.Shl)
		}
		if lx.try2('<', '=') {
			return lx.finish(start, token.LtEq)
		}
		lx.cursor.Bump()
		return lx.finish(start, token.Lt)
	case '>':
		if lx.try2('>', '>') {
			return lx.finish(start, token.Shr)
		}
		if lx.try2('>', '=') {
			return lx.finish(start, token.GtEq)
		}
		lx.cursor.Bump()
		return lx.finish(start, token.Gt)
	case '=':
		if lx.try2('=', '=') {
			return lx.finish(start, token.EqEq)
		}
		lx.cursor.Bump()
		return lx.finish(start, token.Assign)
	case '!':
		if lx.try2('!', '=') {
			return lx.finish(start, token.BangEq)
		}
		lx.cursor.Bump()
		return lx.finish(start, token.Bang)
	case '&':
		if lx.try2('&', '&') {
			return lx.finish(start, token.AndAnd)
		}
		lx.cursor.Bump()
		return lx.finish(start, token.Amp)
	case '|':
		if lx.try2('|', '|') {
			return lx.finish(start, token.OrOr)
		}
		lx.cursor.Bump()
		return lx.finish(start, token.Pipe)
	}

	if kind, ok := singleByteOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return lx.finish(start, kind)
	}

	bad := lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.SyntaxUnexpectedByte, sp, "unexpected byte %q in source", bad)
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) finish(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
