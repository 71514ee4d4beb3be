package parser

import (
	"glint/internal/ast"
	"glint/internal/symbols"
	"glint/internal/token"
)

// parseBlock consumes `{ stmt* }`, building an ExprBlock. enclosingFn is
// threaded through so var decls inside it register in the right
// function's dangling-array bookkeeping.
func (p *Parser) parseBlock(scope symbols.ScopeID, enclosingFn ast.ExprID) (ast.ExprID, bool) {
	start, ok := p.expect(token.LBrace)
	if !ok {
		return ast.NoExprID, false
	}
	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, ok := p.parseStmt(scope, enclosingFn)
		if !ok {
			p.resyncStmt()
			continue
		}
		stmts = append(stmts, stmt)
	}
	end, _ := p.expect(token.RBrace)
	return p.b.NewBlock(start.Span.Cover(end.Span), ast.ScopeID(scope), stmts), true
}

// resyncStmt discards tokens up to the next ';' or '}' after a
// malformed statement.
func (p *Parser) resyncStmt() {
	for {
		switch p.peek().Kind {
		case token.Semi:
			p.advance()
			return
		case token.RBrace, token.EOF:
			return
		default:
			p.advance()
		}
	}
}

// parseStmt parses one statement inside a function body.
func (p *Parser) parseStmt(scope symbols.ScopeID, enclosingFn ast.ExprID) (ast.StmtID, bool) {
	if p.at(token.Ident) && p.peekN(1).Kind == token.Colon {
		id, ok := p.parseDecl(scope, enclosingFn)
		if !ok {
			return ast.NoStmtID, false
		}
		e := p.b.Get(id)
		return p.b.NewStmt(e.Span, id), true
	}

	switch p.peek().Kind {
	case token.KwReturn:
		return p.parseReturnStmt(scope)
	case token.KwIf:
		return p.parseIfStmt(scope, enclosingFn)
	case token.KwWhile:
		return p.parseWhileStmt(scope, enclosingFn)
	case token.KwFor:
		return p.parseForStmt(scope, enclosingFn)
	case token.LBrace:
		id, ok := p.parseBlock(scope, enclosingFn)
		if !ok {
			return ast.NoStmtID, false
		}
		return p.b.NewStmt(p.b.Get(id).Span, id), true
	default:
		expr, ok := p.parseExpr(scope)
		if !ok {
			return ast.NoStmtID, false
		}
		end, _ := p.expect(token.Semi)
		sp := p.b.Get(expr).Span.Cover(end.Span)
		return p.b.NewStmt(sp, expr), true
	}
}

func (p *Parser) parseReturnStmt(scope symbols.ScopeID) (ast.StmtID, bool) {
	start := p.advance() // 'return'
	value := ast.NoExprID
	if !p.at(token.Semi) {
		e, ok := p.parseExpr(scope)
		if !ok {
			return ast.NoStmtID, false
		}
		value = e
	}
	end, _ := p.expect(token.Semi)
	sp := start.Span.Cover(end.Span)
	id := p.b.NewReturn(sp, value)
	return p.b.NewStmt(sp, id), true
}

func (p *Parser) parseIfStmt(scope symbols.ScopeID, enclosingFn ast.ExprID) (ast.StmtID, bool) {
	start := p.advance() // 'if'
	cond, ok := p.parseExpr(scope)
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseBlock(scope, enclosingFn)
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoExprID
	end := p.b.Get(then).Span
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			elsStmt, ok := p.parseIfStmt(scope, enclosingFn)
			if !ok {
				return ast.NoStmtID, false
			}
			els = p.b.GetStmt(elsStmt).Expr
		} else {
			e, ok := p.parseBlock(scope, enclosingFn)
			if !ok {
				return ast.NoStmtID, false
			}
			els = e
		}
		end = p.b.Get(els).Span
	}
	sp := start.Span.Cover(end)
	id := p.b.NewIf(sp, cond, then, els)
	return p.b.NewStmt(sp, id), true
}

func (p *Parser) parseWhileStmt(scope symbols.ScopeID, enclosingFn ast.ExprID) (ast.StmtID, bool) {
	start := p.advance() // 'while'
	cond, ok := p.parseExpr(scope)
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock(scope, enclosingFn)
	if !ok {
		return ast.NoStmtID, false
	}
	sp := start.Span.Cover(p.b.Get(body).Span)
	id := p.b.NewWhile(sp, cond, body)
	return p.b.NewStmt(sp, id), true
}

// parseForStmt consumes `for ( [init] ; [cond] ; [incr] ) { body }`; the
// three clauses are bare expressions (e.g. an assignment), not
// statements, matching ast.ForData's ExprID fields.
func (p *Parser) parseForStmt(scope symbols.ScopeID, enclosingFn ast.ExprID) (ast.StmtID, bool) {
	start := p.advance() // 'for'
	if _, ok := p.expect(token.LParen); !ok {
		return ast.NoStmtID, false
	}

	init := ast.NoExprID
	if !p.at(token.Semi) {
		e, ok := p.parseExpr(scope)
		if !ok {
			return ast.NoStmtID, false
		}
		init = e
	}
	p.expect(token.Semi)

	cond := ast.NoExprID
	if !p.at(token.Semi) {
		e, ok := p.parseExpr(scope)
		if !ok {
			return ast.NoStmtID, false
		}
		cond = e
	}
	p.expect(token.Semi)

	incr := ast.NoExprID
	if !p.at(token.RParen) {
		e, ok := p.parseExpr(scope)
		if !ok {
			return ast.NoStmtID, false
		}
		incr = e
	}
	p.expect(token.RParen)

	body, ok := p.parseBlock(scope, enclosingFn)
	if !ok {
		return ast.NoStmtID, false
	}
	sp := start.Span.Cover(p.b.Get(body).Span)
	id := p.b.NewFor(sp, init, cond, incr, body)
	return p.b.NewStmt(sp, id), true
}
