package parser

import (
	"glint/internal/ast"
	"glint/internal/source"
	"glint/internal/symbols"
	"glint/internal/token"
	"glint/internal/types"
)

// parseDecl consumes `name : <rhs> [;]`, dispatching on the token right
// after the colon. scope is where the new declaration is registered;
// enclosingFn is the ExprFnDecl a var decl belongs to (NoExprID at
// top level).
func (p *Parser) parseDecl(scope symbols.ScopeID, enclosingFn ast.ExprID) (ast.ExprID, bool) {
	nameTok := p.advance() // Ident
	p.advance()            // ':'
	name := p.strings.Intern(nameTok.Text)

	switch p.peek().Kind {
	case token.KwStruct, token.KwSum, token.KwUnion:
		return p.parseAggregateDecl(scope, nameTok.Span, name)
	case token.KwEnum:
		return p.parseEnumDecl(scope, nameTok.Span, name)
	case token.KwFn:
		return p.parseFnDecl(scope, nameTok.Span, name)
	default:
		return p.parseVarDecl(scope, enclosingFn, nameTok.Span, name)
	}
}

// parseVarDecl consumes `<type> [init] ;` after the name and colon have
// already been eaten, per spec.md's `foo :int 3;` shape.
func (p *Parser) parseVarDecl(scope symbols.ScopeID, enclosingFn ast.ExprID, start source.Span, name source.StringID) (ast.ExprID, bool) {
	ty, ok := p.parseType(scope)
	if !ok {
		return ast.NoExprID, false
	}

	init := ast.NoExprID
	if !p.at(token.Semi) {
		e, ok := p.parseExpr(scope)
		if !ok {
			return ast.NoExprID, false
		}
		init = e
	}
	end, _ := p.expect(token.Semi)

	id := p.b.NewVarDecl(start.Cover(end.Span), ast.VarDeclData{
		Name:        name,
		DeclaredTy:  ty,
		Init:        init,
		IsDynArray:  types.IsDynamicArray(p.in, ty),
		FnScopeDecl: enclosingFn,
	})
	p.table.Scopes.Declare(p.b, scope, name, id)
	return id, true
}

// parseAggregateDecl consumes `struct|sum|union { field:Type; ... }`.
func (p *Parser) parseAggregateDecl(scope symbols.ScopeID, start source.Span, name source.StringID) (ast.ExprID, bool) {
	kw := p.advance().Kind
	spelling, _ := p.strings.Lookup(name)

	var ty types.TypeID
	switch kw {
	case token.KwStruct:
		ty = p.in.DeclareStruct(spelling)
	case token.KwSum:
		ty = p.in.DeclareSum(spelling)
	default:
		ty = p.in.DeclareUnion(spelling)
	}

	decl := p.b.NewTypeDecl(start, name, ty)
	p.table.Scopes.Declare(p.b, scope, name, decl)

	if _, ok := p.expect(token.LBrace); !ok {
		return decl, false
	}
	var members []types.Field
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fieldTok, ok := p.expect(token.Ident)
		if !ok {
			break
		}
		if _, ok := p.expect(token.Colon); !ok {
			break
		}
		fieldTy, ok := p.parseType(scope)
		if !ok {
			break
		}
		p.expect(token.Semi)
		members = append(members, types.Field{Name: fieldTok.Text, Type: fieldTy})
	}
	end, _ := p.expect(token.RBrace)
	p.expect(token.Semi)

	switch kw {
	case token.KwStruct:
		p.in.FinalizeStruct(ty, members)
	case token.KwSum:
		p.in.FinalizeSum(ty, members)
	default:
		p.in.FinalizeUnion(ty, members)
	}

	if e := p.b.Get(decl); e != nil {
		e.Span = start.Cover(end.Span)
		e.State = ast.Done
	}
	return decl, true
}

// parseEnumDecl consumes `enum : <underlying> { A, B = 3, C };`.
func (p *Parser) parseEnumDecl(scope symbols.ScopeID, start source.Span, name source.StringID) (ast.ExprID, bool) {
	p.advance() // 'enum'
	if _, ok := p.expect(token.Colon); !ok {
		return ast.NoExprID, false
	}
	underlying, ok := p.parseType(scope)
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.LBrace); !ok {
		return ast.NoExprID, false
	}

	type pending struct {
		name source.StringID
		text string
		span source.Span
	}
	var entries []pending
	var values []int64
	next := int64(0)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		tok, ok := p.expect(token.Ident)
		if !ok {
			break
		}
		v := next
		if p.at(token.Assign) {
			p.advance()
			lit, ok := p.expect(token.IntLit)
			if ok {
				v = parseIntLit(lit.Text)
			}
		}
		entries = append(entries, pending{name: p.strings.Intern(tok.Text), text: tok.Text, span: tok.Span})
		values = append(values, v)
		next = v + 1
		if p.at(token.Comma) {
			p.advance()
		}
	}
	end, _ := p.expect(token.RBrace)
	p.expect(token.Semi)

	spelling, _ := p.strings.Lookup(name)
	enumerators := make([]types.Enumerator, len(entries))
	for i, e := range entries {
		enumerators[i] = types.Enumerator{Name: e.text, Value: values[i]}
	}
	ty := p.in.MakeEnum(spelling, underlying, enumerators)

	decl := p.b.NewTypeDecl(start.Cover(end.Span), name, ty)
	if e := p.b.Get(decl); e != nil {
		e.State = ast.Done
	}
	p.table.Scopes.Declare(p.b, scope, name, decl)

	for i, e := range entries {
		enumDecl := p.b.NewEnumeratorDecl(e.span, e.name, ty, values[i])
		if ee := p.b.Get(enumDecl); ee != nil {
			ee.State = ast.Done
		}
		p.table.Scopes.Declare(p.b, scope, e.name, enumDecl)
	}
	return decl, true
}

// parseFnDecl consumes `fn(params) RetType { body }`, after the name
// and colon have already been eaten.
func (p *Parser) parseFnDecl(scope symbols.ScopeID, start source.Span, name source.StringID) (ast.ExprID, bool) {
	p.advance() // 'fn'
	fnScope := p.table.Scopes.New(symbols.ScopeFunction, scope, start)

	if _, ok := p.expect(token.LParen); !ok {
		return ast.NoExprID, false
	}
	var params []ast.FnParam
	for !p.at(token.RParen) && !p.at(token.EOF) {
		pTok, ok := p.expect(token.Ident)
		if !ok {
			break
		}
		if _, ok := p.expect(token.Colon); !ok {
			break
		}
		pTy, ok := p.parseType(fnScope)
		if !ok {
			break
		}
		pName := p.strings.Intern(pTok.Text)
		params = append(params, ast.FnParam{Name: pName, Type: pTy})

		paramDecl := p.b.NewVarDecl(pTok.Span, ast.VarDeclData{Name: pName, DeclaredTy: pTy})
		if pe := p.b.Get(paramDecl); pe != nil {
			pe.Type = pTy
			pe.LValue = true
			pe.State = ast.Done
		}
		p.table.Scopes.Declare(p.b, fnScope, pName, paramDecl)

		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RParen)

	ret, ok := p.parseType(fnScope)
	if !ok {
		return ast.NoExprID, false
	}

	decl := p.b.NewFnDecl(start, ast.FnDeclData{Name: name, Params: params, Return: ret})
	p.table.Scopes.Declare(p.b, scope, name, decl)

	savedScope, savedFn := p.fnScope, p.fnDecl
	p.fnScope, p.fnDecl = fnScope, decl
	body, ok := p.parseBlock(fnScope, decl)
	p.fnScope, p.fnDecl = savedScope, savedFn
	if !ok {
		return decl, false
	}

	if fd, _ := p.b.FnDecl(decl); fd != nil {
		fd.Body = body
	}
	if e := p.b.Get(decl); e != nil {
		if be := p.b.Get(body); be != nil {
			e.Span = start.Cover(be.Span)
		}
	}
	return decl, true
}

func parseIntLit(text string) int64 {
	var v int64
	for _, c := range text {
		if c == '_' {
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int64(c-'0')
	}
	return v
}
