package sema

import (
	"glint/internal/ast"
	"glint/internal/convert"
	"glint/internal/diag"
	"glint/internal/source"
	"glint/internal/types"
)

// Analyse is the module's single recursive entry point, per spec.md
// §4.H: "If state != NotAnalysed, return !Errored. Mark InProgress...
// Because rewrites replace *expr_ptr, callers must re-read through the
// pointer."
func (c *Checker) Analyse(exprPtr *ast.ExprID, expected types.TypeID) bool {
	id := *exprPtr
	if !id.IsValid() {
		return true
	}
	e := c.b.Get(id)
	if e == nil {
		return true
	}
	if e.State != ast.NotAnalysed {
		return e.State != ast.Errored
	}
	e.State = ast.InProgress

	ok := c.dispatch(exprPtr, expected)

	if final := c.b.Get(*exprPtr); final != nil && final.State == ast.InProgress {
		if ok {
			final.State = ast.Done
		} else {
			final.State = ast.Errored
		}
	}
	if final := c.b.Get(*exprPtr); final != nil {
		return final.State != ast.Errored
	}
	return ok
}

func (c *Checker) dispatch(exprPtr *ast.ExprID, expected types.TypeID) bool {
	e := c.b.Get(*exprPtr)
	switch e.Kind {
	case ast.ExprLiteral:
		return c.analyseLiteral(exprPtr)
	case ast.ExprEvaluatedConstant:
		return c.analyseEvaluatedConstant(exprPtr)
	case ast.ExprNameRef:
		return c.analyseNameRef(exprPtr)
	case ast.ExprModuleRef:
		return true
	case ast.ExprMember:
		return c.analyseMember(exprPtr)
	case ast.ExprOverloadSet:
		return c.analyseOverloadSet(exprPtr)
	case ast.ExprCall:
		return c.analyseCall(exprPtr)
	case ast.ExprIntrinsicCall:
		return c.analyseIntrinsicCall(exprPtr)
	case ast.ExprCast:
		return c.analyseCast(exprPtr)
	case ast.ExprUnary:
		return c.analyseUnary(exprPtr)
	case ast.ExprBinary:
		return c.analyseBinary(exprPtr)
	case ast.ExprBlock:
		return c.analyseBlock(exprPtr)
	case ast.ExprIf:
		return c.analyseIf(exprPtr)
	case ast.ExprWhile:
		return c.analyseWhile(exprPtr)
	case ast.ExprFor:
		return c.analyseFor(exprPtr)
	case ast.ExprReturn:
		return c.analyseReturn(exprPtr)
	case ast.ExprSizeof:
		return c.analyseSizeof(exprPtr)
	case ast.ExprAlignof:
		return c.analyseAlignof(exprPtr)
	case ast.ExprCompoundLiteral:
		return c.analyseCompoundLiteral(exprPtr)
	case ast.ExprVarDecl:
		return c.analyseVarDecl(exprPtr)
	case ast.ExprFnDecl:
		return true // signatures/bodies are driven explicitly by analyseModule
	case ast.ExprTypeDecl, ast.ExprAliasDecl, ast.ExprEnumeratorDecl, ast.ExprModuleDecl:
		if e2 := c.b.Get(*exprPtr); e2 != nil {
			e2.State = ast.Done
		}
		return true
	default:
		return true
	}
}

func (c *Checker) analyseLiteral(exprPtr *ast.ExprID) bool {
	lit, _ := c.b.Literal(*exprPtr)
	e := c.b.Get(*exprPtr)
	switch lit.Kind {
	case ast.LitInt:
		e.Type = c.in.Builtins().Int
	case ast.LitBool:
		e.Type = c.in.Builtins().Bool
	case ast.LitByte:
		e.Type = c.in.Builtins().Byte
	case ast.LitString:
		e.Type = c.in.MakePointer(c.in.Builtins().Byte)
	}
	e.LValue = false
	return true
}

func (c *Checker) analyseEvaluatedConstant(exprPtr *ast.ExprID) bool {
	ec, _ := c.b.EvaluatedConstant(*exprPtr)
	e := c.b.Get(*exprPtr)
	if ec.IsString {
		e.Type = c.in.MakePointer(c.in.Builtins().Byte)
	} else {
		e.Type = c.in.MakeInteger(ec.Width, ec.Signed)
	}
	return true
}

// analyseBlock: "type and lvalue-ness of the last child; all earlier
// children are discarded. Empty block has type void." (spec.md §4.H)
func (c *Checker) analyseBlock(exprPtr *ast.ExprID) bool {
	data, _ := c.b.Block(*exprPtr)
	ok := true
	var last *ast.Expr
	for i, sid := range data.Stmts {
		stmt := c.b.GetStmt(sid)
		child := stmt.Expr
		if !c.Analyse(&child, types.NoTypeID) {
			ok = false
		}
		stmt.Expr = child
		if i == len(data.Stmts)-1 {
			last = c.b.Get(child)
		}
	}
	e := c.b.Get(*exprPtr)
	if last == nil {
		e.Type = c.in.Builtins().Void
		e.LValue = false
	} else {
		e.Type = last.Type
		e.LValue = last.LValue
	}
	return ok
}

// analyseIf: condition converts to bool; common-typed branches make the
// if itself typed and possibly an lvalue, otherwise void (spec.md §4.H).
func (c *Checker) analyseIf(exprPtr *ast.ExprID) bool {
	data, _ := c.b.If(*exprPtr)
	ok := c.Analyse(&data.Cond, types.NoTypeID)
	if ok {
		ok = convert.Convert(c.b, c.in, &data.Cond, c.in.Builtins().Bool)
		if !ok {
			c.reportf(c.spanOf(data.Cond), diag.TypeExpectedBool, "condition must convert to bool")
		}
	}
	thenOK := c.Analyse(&data.Then, types.NoTypeID)
	hasElse := data.Else.IsValid()
	elseOK := true
	if hasElse {
		elseOK = c.Analyse(&data.Else, types.NoTypeID)
	}
	e := c.b.Get(*exprPtr)
	if thenOK && elseOK && hasElse {
		thenT := c.b.Get(data.Then)
		elseT := c.b.Get(data.Else)
		if !types.IsVoid(c.in, thenT.Type) && !types.IsVoid(c.in, elseT.Type) &&
			convert.ConvertToCommonType(c.b, c.in, &data.Then, &data.Else) {
			thenT = c.b.Get(data.Then)
			elseT = c.b.Get(data.Else)
			e.Type = thenT.Type
			e.LValue = thenT.LValue && elseT.LValue
			return ok && thenOK && elseOK
		}
	}
	e.Type = c.in.Builtins().Void
	e.LValue = false
	return ok && thenOK && elseOK
}

func (c *Checker) analyseWhile(exprPtr *ast.ExprID) bool {
	data, _ := c.b.While(*exprPtr)
	ok := c.Analyse(&data.Cond, types.NoTypeID)
	if ok {
		ok = convert.Convert(c.b, c.in, &data.Cond, c.in.Builtins().Bool)
	}
	bodyOK := c.Analyse(&data.Body, types.NoTypeID)
	e := c.b.Get(*exprPtr)
	e.Type = c.in.Builtins().Void
	return ok && bodyOK
}

func (c *Checker) analyseFor(exprPtr *ast.ExprID) bool {
	data, _ := c.b.For(*exprPtr)
	ok := true
	if data.Init.IsValid() {
		ok = c.Analyse(&data.Init, types.NoTypeID) && ok
	}
	if !c.Analyse(&data.Cond, types.NoTypeID) {
		ok = false
	} else if !convert.Convert(c.b, c.in, &data.Cond, c.in.Builtins().Bool) {
		ok = false
	}
	if data.Incr.IsValid() {
		ok = c.Analyse(&data.Incr, types.NoTypeID) && ok
	}
	if !c.Analyse(&data.Body, types.NoTypeID) {
		ok = false
	}
	e := c.b.Get(*exprPtr)
	e.Type = c.in.Builtins().Void
	return ok
}

// analyseReturn converts the value to the enclosing function's declared
// return type, and clears a dynamic-array NameRef target from the
// dangling set on the way out (spec.md §4.H, §3 invariant 6).
func (c *Checker) analyseReturn(exprPtr *ast.ExprID) bool {
	data, _ := c.b.Return(*exprPtr)
	fn := c.currentFn()
	ok := true
	if data.Value.IsValid() {
		ok = c.Analyse(&data.Value, types.NoTypeID)
		var danglingTarget ast.ExprID
		hasDanglingTarget := false
		if ref, isRef := c.b.NameRef(data.Value); isRef {
			danglingTarget, hasDanglingTarget = ref.Target, true
		}
		if ok && fn != nil {
			ok = convert.Convert(c.b, c.in, &data.Value, fn.returnType())
		}
		if hasDanglingTarget && fn != nil {
			delete(fn.data.Dangling, danglingTarget)
		}
	} else if fn != nil && !fn.isVoid {
		ok = false
		c.reportf(c.spanOf(*exprPtr), diag.TypeMismatch, "non-void function must return a value")
	}
	e := c.b.Get(*exprPtr)
	e.Type = c.in.Builtins().Void
	return ok
}

func (fc *fnContext) returnType() types.TypeID { return fc.data.Return }

func (c *Checker) currentFn() *fnContext {
	if len(c.fnStack) == 0 {
		return nil
	}
	return c.fnStack[len(c.fnStack)-1]
}

func (c *Checker) analyseSizeof(exprPtr *ast.ExprID) bool {
	data, _ := c.b.SizeAlign(*exprPtr)
	bits := types.Size(c.in, data.Operand)
	id := c.b.NewLiteral(c.spanOf(*exprPtr), ast.LiteralData{Kind: ast.LitInt, Int: int64((bits + 7) / 8)})
	*exprPtr = id
	if e := c.b.Get(id); e != nil {
		e.Type = c.in.Builtins().Int
		e.State = ast.Done
	}
	return true
}

func (c *Checker) analyseAlignof(exprPtr *ast.ExprID) bool {
	data, _ := c.b.SizeAlign(*exprPtr)
	bits := types.Align(c.in, data.Operand)
	id := c.b.NewLiteral(c.spanOf(*exprPtr), ast.LiteralData{Kind: ast.LitInt, Int: int64((bits + 7) / 8)})
	*exprPtr = id
	if e := c.b.Get(id); e != nil {
		e.Type = c.in.Builtins().Int
		e.State = ast.Done
	}
	return true
}

func (c *Checker) spanOf(id ast.ExprID) source.Span {
	if e := c.b.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}
