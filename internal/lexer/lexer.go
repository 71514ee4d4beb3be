// Package lexer tokenizes the surface syntax spec.md's scenarios name
// (var decls with a juxtaposed initializer, struct/sum/union/enum
// decls, function decls, juxtaposition calls, member access, unary
// free) into the token.Kind set internal/token defines. Grounded on
// the teacher's internal/lexer Cursor/Lexer split (cursor.go,
// lexer.go, scan_*.go), trimmed to ASCII-only identifiers and a single
// integer literal shape since the surface grammar this core parses has
// no need for Unicode identifiers, floats, or numeric-base prefixes.
package lexer

import (
	"fmt"

	"glint/internal/diag"
	"glint/internal/source"
	"glint/internal/token"
)

// Lexer produces a stream of tokens from one source file.
type Lexer struct {
	file   *source.File
	cursor Cursor
	ctx    *diag.Context
	look   *token.Token
}

// New creates a Lexer over file, reporting lexical errors through ctx
// (which may be nil to lex without diagnostics, e.g. in tests).
func New(file *source.File, ctx *diag.Context) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), ctx: ctx}
}

// Next returns the next significant token, skipping whitespace and
// comments. Past EOF it always returns an EOF token.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tk := *lx.look
		lx.look = nil
		return tk
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '\'':
		return lx.scanByte()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	tk := lx.Next()
	lx.look = &tk
	return tk
}

// skipTrivia consumes whitespace and line comments ("// ..."), neither
// of which the trimmed token.Kind set records.
func (lx *Lexer) skipTrivia() {
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r', '\n':
			lx.cursor.Bump()
		case '/':
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != '/' || b1 != '/' {
				return
			}
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) report(code diag.Code, sp source.Span, format string, args ...any) {
	if lx.ctx == nil {
		return
	}
	lx.ctx.Error(code, sp, fmt.Sprintf(format, args...))
}
