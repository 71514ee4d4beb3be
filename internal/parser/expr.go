package parser

import (
	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/symbols"
	"glint/internal/token"
)

// parseExpr is the entry point for parsing one expression, starting
// the precedence-climbing loop at the lowest precedence.
func (p *Parser) parseExpr(scope symbols.ScopeID) (ast.ExprID, bool) {
	return p.parseBinaryExpr(scope, 0)
}

// parseBinaryExpr implements Pratt parsing over the binary operators:
// it parses one unary-led operand, then repeatedly folds in operators
// at or above minPrec, recursing one level deeper for each operator's
// right-hand side so higher-precedence operators bind tighter.
func (p *Parser) parseBinaryExpr(scope symbols.ScopeID, minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnary(scope)
	if !ok {
		return ast.NoExprID, false
	}
	for {
		prec, rightAssoc := binaryOperatorPrec(p.peek().Kind)
		if prec < minPrec {
			break
		}
		opTok := p.advance()
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right, ok := p.parseBinaryExpr(scope, nextMin)
		if !ok {
			p.errorf(opTok.Span, diag.SyntaxExpectedToken, "expected expression after %v", opTok.Kind)
			return ast.NoExprID, false
		}
		op := tokenKindToBinaryOp(opTok.Kind)
		sp := p.b.Get(left).Span.Cover(p.b.Get(right).Span)
		left = p.b.NewBinary(sp, op, left, right)
	}
	return left, true
}

// parseUnary handles prefix operators: &x (address-of), @x (deref),
// -x (numeric negate, or dynamic-array free per spec.md's free-via-
// unary-minus scenario), ~x, !x, and `has x`.
func (p *Parser) parseUnary(scope symbols.ScopeID) (ast.ExprID, bool) {
	if op, ok := tokenKindToUnaryOp(p.peek().Kind); ok {
		opTok := p.advance()
		operand, ok := p.parseUnary(scope)
		if !ok {
			return ast.NoExprID, false
		}
		sp := opTok.Span.Cover(p.b.Get(operand).Span)
		return p.b.NewUnary(sp, op, operand), true
	}
	return p.parsePostfix(scope)
}

// parsePostfix handles `.`-member access and juxtaposition calls: once
// a primary is parsed, if the next token can itself start a primary
// with no intervening operator, the whole run of atoms is folded into
// one ExprCall (spec.md §8 scenario 5's `100 x y`).
func (p *Parser) parsePostfix(scope symbols.ScopeID) (ast.ExprID, bool) {
	expr, ok := p.parsePrimary(scope)
	if !ok {
		return ast.NoExprID, false
	}
	for {
		if p.at(token.Dot) {
			p.advance()
			memberTok, ok := p.expect(token.Ident)
			if !ok {
				return ast.NoExprID, false
			}
			sp := p.b.Get(expr).Span.Cover(memberTok.Span)
			expr = p.b.NewMember(sp, ast.MemberData{
				Object:     expr,
				MemberName: p.strings.Intern(memberTok.Text),
			})
			continue
		}
		if startsPrimary(p.peek().Kind) {
			var args []ast.ExprID
			for startsPrimary(p.peek().Kind) {
				arg, ok := p.parsePrimary(scope)
				if !ok {
					return ast.NoExprID, false
				}
				for p.at(token.Dot) {
					p.advance()
					memberTok, ok := p.expect(token.Ident)
					if !ok {
						return ast.NoExprID, false
					}
					sp := p.b.Get(arg).Span.Cover(memberTok.Span)
					arg = p.b.NewMember(sp, ast.MemberData{
						Object:     arg,
						MemberName: p.strings.Intern(memberTok.Text),
					})
				}
				args = append(args, arg)
			}
			sp := p.b.Get(expr).Span.Cover(p.b.Get(args[len(args)-1]).Span)
			expr = p.b.NewCall(sp, expr, args)
			continue
		}
		break
	}
	return expr, true
}

// decodeByteLit strips the surrounding quotes from a 'a'/'\n'-style
// byte literal's raw text and resolves the common backslash escapes.
func decodeByteLit(text string) uint8 {
	if len(text) < 3 {
		return 0
	}
	body := text[1 : len(text)-1]
	if body[0] != '\\' {
		return body[0]
	}
	if len(body) < 2 {
		return '\\'
	}
	switch body[1] {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\':
		return '\\'
	case '\'':
		return '\''
	default:
		return body[1]
	}
}

// parsePrimary parses literals, name references, parenthesised
// grouping, and sizeof/alignof.
func (p *Parser) parsePrimary(scope symbols.ScopeID) (ast.ExprID, bool) {
	tk := p.peek()
	switch tk.Kind {
	case token.IntLit:
		p.advance()
		return p.b.NewLiteral(tk.Span, ast.LiteralData{Kind: ast.LitInt, Int: parseIntLit(tk.Text)}), true

	case token.StringLit:
		p.advance()
		return p.b.NewLiteral(tk.Span, ast.LiteralData{Kind: ast.LitString, Str: p.strings.Intern(tk.Text)}), true

	case token.ByteLit:
		p.advance()
		return p.b.NewLiteral(tk.Span, ast.LiteralData{Kind: ast.LitByte, Int: int64(decodeByteLit(tk.Text))}), true

	case token.KwTrue:
		p.advance()
		return p.b.NewLiteral(tk.Span, ast.LiteralData{Kind: ast.LitBool, Bool: true}), true

	case token.KwFalse:
		p.advance()
		return p.b.NewLiteral(tk.Span, ast.LiteralData{Kind: ast.LitBool, Bool: false}), true

	case token.Ident:
		p.advance()
		return p.b.NewNameRef(tk.Span, p.strings.Intern(tk.Text), ast.ScopeID(scope)), true

	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr(scope)
		if !ok {
			return ast.NoExprID, false
		}
		p.expect(token.RParen)
		return inner, true

	case token.KwSizeof:
		p.advance()
		if _, ok := p.expect(token.LParen); !ok {
			return ast.NoExprID, false
		}
		ty, ok := p.parseType(scope)
		if !ok {
			return ast.NoExprID, false
		}
		end, _ := p.expect(token.RParen)
		return p.b.NewSizeof(tk.Span.Cover(end.Span), ty), true

	case token.KwAlignof:
		p.advance()
		if _, ok := p.expect(token.LParen); !ok {
			return ast.NoExprID, false
		}
		ty, ok := p.parseType(scope)
		if !ok {
			return ast.NoExprID, false
		}
		end, _ := p.expect(token.RParen)
		return p.b.NewAlignof(tk.Span.Cover(end.Span), ty), true

	default:
		p.errorf(tk.Span, diag.SyntaxUnexpectedToken, "expected an expression, got %v", tk.Kind)
		return ast.NoExprID, false
	}
}
