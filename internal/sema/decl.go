package sema

import (
	"glint/internal/ast"
	"glint/internal/convert"
	"glint/internal/diag"
	"glint/internal/source"
	"glint/internal/types"
)

// analyseVarDecl implements spec.md §4.H's VarDecl rule: top-down type
// inference when no declared type is given, decltype decay for a
// function-typed declaration, initialiser conversion, and dynamic-array
// dangling-set registration.
func (c *Checker) analyseVarDecl(exprPtr *ast.ExprID) bool {
	data, _ := c.b.VarDecl(*exprPtr)
	e := c.b.Get(*exprPtr)
	inferType := data.DeclaredTy == types.NoTypeID

	ok := true
	if data.Init.IsValid() {
		expected := data.DeclaredTy
		if !inferType {
			expected = convert.DeclTypeDecay(c.in, data.DeclaredTy)
		}
		if !c.Analyse(&data.Init, expected) {
			ok = false
		}
		if inferType {
			if !ok {
				return false
			}
			data.DeclaredTy = c.b.Get(data.Init).Type
		}
	}

	data.DeclaredTy = convert.DeclTypeDecay(c.in, data.DeclaredTy)
	e.Type = data.DeclaredTy

	if data.Init.IsValid() {
		if !convert.Convert(c.b, c.in, &data.Init, data.DeclaredTy) {
			c.reportf(c.spanOf(data.Init), diag.TypeMismatch,
				"type of the initialiser is not convertible to the variable's type")
		}
		c.lvalueToRValue(&data.Init)
	}

	data.IsDynArray = types.IsDynamicArray(c.in, data.DeclaredTy)
	if data.IsDynArray {
		if fn := c.currentFn(); fn != nil {
			if fn.data.Dangling == nil {
				fn.data.Dangling = make(map[ast.ExprID]struct{})
			}
			fn.data.Dangling[*exprPtr] = struct{}{}
			data.FnScopeDecl = fn.decl
		}
	}

	e.LValue = true
	return ok
}

// analyseCompoundLiteral implements spec.md §4.H's CompoundLiteral rule:
// every argument is analysed and lvalue-to-rvalue-converted, and the
// literal must either carry its own type or have one supplied by the
// caller (spec.md §8's "Call rewrite" scenario feeds this in directly).
func (c *Checker) analyseCompoundLiteral(exprPtr *ast.ExprID) bool {
	data, _ := c.b.CompoundLiteral(*exprPtr)
	e := c.b.Get(*exprPtr)
	ok := true
	for i := range data.Args {
		if c.Analyse(&data.Args[i], types.NoTypeID) {
			c.lvalueToRValue(&data.Args[i])
		} else {
			ok = false
		}
	}
	if data.Type == types.NoTypeID {
		c.reportf(e.Span, diag.TypeMismatch, "cannot infer the type of this compound literal")
		ok = false
	}
	e.Type = data.Type
	return ok
}

// analyseFnSignature validates a function's declared type before any
// body is analysed, per spec.md §5's two-pass module order.
func (c *Checker) analyseFnSignature(id ast.ExprID) {
	e := c.b.Get(id)
	if e.State != ast.NotAnalysed {
		return
	}
	e.State = ast.InProgress
	data, _ := c.b.FnDecl(id)
	if data.FnType == types.NoTypeID {
		names := make([]string, len(data.Params))
		paramTypes := make([]types.TypeID, len(data.Params))
		for i, p := range data.Params {
			names[i] = c.lookupString(p.Name)
			paramTypes[i] = p.Type
		}
		data.FnType = c.in.MakeFunction(c.lookupString(data.Name), data.Return, paramTypes, names, data.Attrs)
	}
	e.Type = data.FnType
	e.State = ast.Done
}

// analyseFnBody implements spec.md §4.H/§5's function-body pass: analyse
// the body against the declared return type, report any dynamic array
// still dangling afterward, and ensure the body ends in a Return.
func (c *Checker) analyseFnBody(id ast.ExprID) {
	data, _ := c.b.FnDecl(id)
	if !data.Body.IsValid() {
		return
	}

	fc := &fnContext{
		decl:   id,
		data:   data,
		isVoid: types.IsVoid(c.in, data.Return),
		isMain: c.lookupString(data.Name) == "main",
	}
	if data.Dangling == nil {
		data.Dangling = make(map[ast.ExprID]struct{})
	} else {
		for k := range data.Dangling {
			delete(data.Dangling, k)
		}
	}

	c.fnStack = append(c.fnStack, fc)
	ok := c.Analyse(&data.Body, data.Return)
	c.fnStack = c.fnStack[:len(c.fnStack)-1]

	if !ok || c.ctx.HasError() {
		return
	}

	for dangling := range data.Dangling {
		c.reportf(c.spanOf(dangling), diag.DynArrayLeaked, "dynamic array declared here is never freed")
	}

	c.ensureTerminalReturn(data, fc)
}

// ensureTerminalReturn implements spec.md §4.H's implicit-return wrapping:
// a non-void function's last expression becomes a Return (main()
// synthesises `return 0` on an empty body), and a void function's block
// is padded with a bare `return;` if it doesn't already end in one.
func (c *Checker) ensureTerminalReturn(data *ast.FnDeclData, fc *fnContext) {
	block, isBlock := c.b.Block(data.Body)

	if fc.isVoid {
		if isBlock && (len(block.Stmts) == 0 || !c.isReturnStmt(block.Stmts[len(block.Stmts)-1])) {
			ret := c.newVoidReturn(c.spanOf(data.Body), ast.NoExprID)
			block.Stmts = append(block.Stmts, c.b.NewStmt(c.spanOf(data.Body), ret))
		}
		return
	}

	if isBlock {
		if len(block.Stmts) == 0 {
			if !fc.isMain {
				c.reportf(c.spanOf(data.Body), diag.TypeMismatch,
					"function has a non-void return type and must return a value")
				return
			}
			zero := c.b.NewLiteral(c.spanOf(data.Body), ast.LiteralData{Kind: ast.LitInt, Int: 0})
			if ze := c.b.Get(zero); ze != nil {
				ze.Type = c.in.Builtins().Int
				ze.State = ast.Done
			}
			ret := c.newVoidReturn(c.spanOf(data.Body), zero)
			block.Stmts = append(block.Stmts, c.b.NewStmt(c.spanOf(data.Body), ret))
			return
		}
		last := block.Stmts[len(block.Stmts)-1]
		if c.isReturnStmt(last) {
			return
		}
		stmt := c.b.GetStmt(last)
		value := stmt.Expr
		if !convert.Convert(c.b, c.in, &value, fc.returnType()) {
			c.reportf(c.spanOf(value), diag.TypeMismatch,
				"type of the last expression is not convertible to the function's return type")
			return
		}
		c.lvalueToRValue(&value)
		stmt.Expr = c.newVoidReturn(c.spanOf(value), value)
		return
	}

	if c.b.Get(data.Body).Kind == ast.ExprReturn {
		return
	}
	value := data.Body
	if !convert.Convert(c.b, c.in, &value, fc.returnType()) {
		c.reportf(c.spanOf(value), diag.TypeMismatch,
			"type of the function body is not convertible to its return type")
		return
	}
	c.lvalueToRValue(&value)
	data.Body = c.newVoidReturn(c.spanOf(value), value)
}

func (c *Checker) isReturnStmt(id ast.StmtID) bool {
	stmt := c.b.GetStmt(id)
	return c.b.Get(stmt.Expr).Kind == ast.ExprReturn
}

func (c *Checker) newVoidReturn(span source.Span, value ast.ExprID) ast.ExprID {
	id := c.b.NewReturn(span, value)
	if e := c.b.Get(id); e != nil {
		e.Type = c.in.Builtins().Void
		e.State = ast.Done
	}
	return id
}
