package sema

import (
	"glint/internal/ast"
	"glint/internal/convert"
	"glint/internal/diag"
	"glint/internal/source"
	"glint/internal/types"
)

// builtinIntrinsics maps the fixed builtin-call spelling to its
// IntrinsicKind, per spec.md §4.H's Call rule: "If the callee is a name
// reference whose spelling names a builtin, rewrite to an intrinsic call
// node before any further analysis."
var builtinIntrinsics = map[string]ast.IntrinsicKind{
	"__builtin_debugtrap": ast.IntrinsicDebugTrap,
	"__builtin_filename":  ast.IntrinsicFilename,
	"__builtin_inline":    ast.IntrinsicInline,
	"__builtin_line":      ast.IntrinsicLine,
	"__builtin_memcpy":    ast.IntrinsicMemcpy,
	"__builtin_memset":    ast.IntrinsicMemset,
	"__builtin_syscall":   ast.IntrinsicSyscall,
}

// lvalueToRValue performs the L->R cast unconditionally when the operand
// is an lvalue, by routing through Convert at the operand's own type —
// the one case Convert always succeeds at while still inserting the cast.
func (c *Checker) lvalueToRValue(exprPtr *ast.ExprID) {
	if e := c.b.Get(*exprPtr); e != nil && e.LValue {
		convert.Convert(c.b, c.in, exprPtr, e.Type)
	}
}

func (c *Checker) convertOrError(exprPtr *ast.ExprID, to types.TypeID, what string) bool {
	if convert.Convert(c.b, c.in, exprPtr, to) {
		return true
	}
	c.reportf(c.spanOf(*exprPtr), diag.TypeMismatch, "%s is not convertible to the expected type", what)
	return false
}

// analyseCall implements spec.md §4.H's Call rule: builtin rewrite,
// type-callee rewrite to a cast or compound literal, overload-set
// resolution (unimplemented — an ICE, per the Glossary), integer-callee
// multiplication reshaping, and ordinary function-call argument
// conversion.
func (c *Checker) analyseCall(exprPtr *ast.ExprID) bool {
	data, _ := c.b.Call(*exprPtr)

	if ref, ok := c.b.NameRef(data.Callee); ok {
		if kind, isBuiltin := builtinIntrinsics[c.lookupString(ref.Name)]; isBuiltin {
			id := c.b.NewIntrinsicCall(c.spanOf(*exprPtr), kind, data.Args)
			*exprPtr = id
			return c.Analyse(exprPtr, types.NoTypeID)
		}
	}

	ok := true
	for i := range data.Args {
		if !c.Analyse(&data.Args[i], types.NoTypeID) {
			ok = false
		}
	}
	if !c.Analyse(&data.Callee, types.NoTypeID) {
		return false
	}
	if !ok {
		return false
	}
	callee := c.b.Get(data.Callee)

	if callee.Kind == ast.ExprOverloadSet {
		c.ctx.ICE(c.spanOf(*exprPtr), "overload resolution is not implemented")
		return false
	}

	if calleeNamesType, targetType := c.calleeNamesType(data.Callee); calleeNamesType {
		for i := range data.Args {
			c.lvalueToRValue(&data.Args[i])
		}
		if len(data.Args) == 1 {
			arg := data.Args[0]
			id := c.b.NewCast(c.spanOf(*exprPtr), ast.CastHard, arg, targetType)
			*exprPtr = id
			if e := c.b.Get(id); e != nil {
				e.Type = targetType
				e.State = ast.Done
			}
			return true
		}
		id := c.b.NewCompoundLiteral(c.spanOf(*exprPtr), targetType, data.Args)
		*exprPtr = id
		if e := c.b.Get(id); e != nil {
			e.Type = targetType
			e.State = ast.Done
		}
		return true
	}

	if fnPtr, ok := c.in.Lookup(callee.Type); ok && fnPtr.Kind == types.KindPointer {
		if elem, ok := c.in.Lookup(fnPtr.Elem); ok && elem.Kind == types.KindFunction {
			c.lvalueToRValue(&data.Callee)
		}
	}

	calleeType := c.b.Get(data.Callee).Type
	if types.IsInteger(c.in, calleeType, false) {
		return c.reshapeIntegerCall(exprPtr, data)
	}

	if !types.IsFunction(c.in, calleeType) {
		c.reportf(c.spanOf(*exprPtr), diag.TypeNotFunction, "cannot call a non-function value")
		return false
	}

	fn, _ := c.in.FnInfoOf(calleeType)
	e := c.b.Get(*exprPtr)
	e.Type = fn.Return

	if len(data.Args) != len(fn.Params) {
		c.reportf(c.spanOf(*exprPtr), diag.TypeArgCountMismatch,
			"expected %d argument(s), got %d", len(fn.Params), len(data.Args))
	}

	n := len(data.Args)
	if len(fn.Params) < n {
		n = len(fn.Params)
	}
	argsOK := true
	for i := 0; i < n; i++ {
		paramT, _ := c.in.Lookup(fn.Params[i])
		if paramT.Kind != types.KindReference {
			c.lvalueToRValue(&data.Args[i])
		}
		if !convert.Convert(c.b, c.in, &data.Args[i], fn.Params[i]) {
			c.reportf(c.spanOf(data.Args[i]), diag.TypeMismatch,
				"argument %d is not convertible to its parameter type", i+1)
			argsOK = false
		}
	}
	return argsOK
}

// calleeNamesType reports whether the call's callee is a type expression
// or a NameRef resolved to a type declaration — spec.md §4.H's
// "instantiation" branch of the Call rule — and returns the named type.
func (c *Checker) calleeNamesType(callee ast.ExprID) (bool, types.TypeID) {
	if ref, ok := c.b.NameRef(callee); ok {
		if decl, ok2 := c.b.TypeDecl(ref.Target); ok2 {
			return true, decl.Type
		}
		if decl, ok2 := c.b.AliasDecl(ref.Target); ok2 {
			return true, decl.Target
		}
	}
	return false, types.NoTypeID
}

// reshapeIntegerCall implements spec.md §4.H's "integer callee"
// transform: `f a b c` becomes `f * (a * (b * c))`, a right fold of `*`
// over the call's args with the callee as the leftmost operand.
func (c *Checker) reshapeIntegerCall(exprPtr *ast.ExprID, data *ast.CallData) bool {
	if len(data.Args) == 0 {
		e := c.b.Get(*exprPtr)
		e.Type = c.in.Builtins().Void
		return true
	}
	rhs := data.Args[len(data.Args)-1]
	for i := len(data.Args) - 2; i >= 0; i-- {
		rhs = c.b.NewBinary(c.spanOf(data.Args[i]), ast.BinMul, data.Args[i], rhs)
	}
	id := c.b.NewBinary(c.spanOf(*exprPtr), ast.BinMul, data.Callee, rhs)
	*exprPtr = id
	return c.Analyse(exprPtr, types.NoTypeID)
}

// analyseIntrinsicCall implements spec.md §6's fixed intrinsic table:
// arity and argument-type checks, plus filename/line's fold-to-constant
// behaviour.
func (c *Checker) analyseIntrinsicCall(exprPtr *ast.ExprID) bool {
	data, _ := c.b.IntrinsicCall(*exprPtr)
	e := c.b.Get(*exprPtr)

	switch data.Kind {
	case ast.IntrinsicDebugTrap:
		if len(data.Args) != 0 {
			c.reportf(e.Span, diag.IntrinsicBadArgCount, "__builtin_debugtrap takes no arguments")
		}
		e.Type = c.in.Builtins().Void
		return true

	case ast.IntrinsicFilename:
		if len(data.Args) != 0 {
			c.reportf(e.Span, diag.IntrinsicBadArgCount, "__builtin_filename takes no arguments")
		}
		name := c.filenameOf(e.Span)
		id := c.b.NewEvaluatedConstant(e.Span, ast.EvaluatedConstantData{IsString: true, Str: c.strings.Intern(name)})
		*exprPtr = id
		ce := c.b.Get(id)
		ce.Type = c.in.MakePointer(c.in.Builtins().Byte)
		ce.State = ast.Done
		return true

	case ast.IntrinsicLine:
		if len(data.Args) != 0 {
			c.reportf(e.Span, diag.IntrinsicBadArgCount, "__builtin_line takes no arguments")
		}
		id := c.b.NewLiteral(e.Span, ast.LiteralData{Kind: ast.LitInt, Int: int64(c.lineOf(e.Span))})
		*exprPtr = id
		le := c.b.Get(id)
		le.Type = c.in.Builtins().Int
		le.State = ast.Done
		return true

	case ast.IntrinsicInline:
		if len(data.Args) != 1 {
			c.reportf(e.Span, diag.IntrinsicBadArgCount, "__builtin_inline takes exactly one argument")
			return false
		}
		call := data.Args[0]
		ok := c.Analyse(&call, types.NoTypeID)
		data.Args[0] = call
		if inner := c.b.Get(call); inner == nil || inner.Kind != ast.ExprCall {
			c.reportf(c.spanOf(call), diag.IntrinsicBadArgType,
				"argument to __builtin_inline must be a function call")
			return false
		}
		if ok {
			e.Type = c.b.Get(call).Type
		}
		return ok

	case ast.IntrinsicMemcpy:
		return c.analyseFixedArityIntrinsic(exprPtr, data, 3,
			[]types.TypeID{c.in.Builtins().VoidPtr, c.in.Builtins().VoidPtr, c.in.Builtins().Int},
			c.in.Builtins().Void, "__builtin_memcpy")

	case ast.IntrinsicMemset:
		return c.analyseFixedArityIntrinsic(exprPtr, data, 3,
			[]types.TypeID{c.in.Builtins().VoidPtr, c.in.Builtins().Byte, c.in.Builtins().Int},
			c.in.Builtins().Void, "__builtin_memset")

	case ast.IntrinsicSyscall:
		if len(data.Args) == 0 || len(data.Args) > 7 {
			c.reportf(e.Span, diag.IntrinsicBadArgCount, "__builtin_syscall takes between 1 and 7 arguments")
		}
		ok := true
		for i := range data.Args {
			if !c.Analyse(&data.Args[i], types.NoTypeID) {
				ok = false
				continue
			}
			if types.IsPointer(c.in, c.b.Get(data.Args[i]).Type) {
				id := c.b.WrapWithCast(&data.Args[i], c.in.Builtins().Int, ast.CastHard)
				if ce := c.b.Get(id); ce != nil {
					ce.Type = c.in.Builtins().Int
					ce.State = ast.Done
				}
			}
			if !c.convertOrError(&data.Args[i], c.in.Builtins().Int, "__builtin_syscall argument") {
				ok = false
			}
			c.lvalueToRValue(&data.Args[i])
		}
		e.Type = c.in.Builtins().Int
		return ok

	default:
		return true
	}
}

func (c *Checker) analyseFixedArityIntrinsic(exprPtr *ast.ExprID, data *ast.IntrinsicCallData, arity int, paramTypes []types.TypeID, ret types.TypeID, name string) bool {
	e := c.b.Get(*exprPtr)
	if len(data.Args) != arity {
		c.reportf(e.Span, diag.IntrinsicBadArgCount, "%s takes exactly %d arguments", name, arity)
	}
	ok := true
	n := len(data.Args)
	if arity < n {
		n = arity
	}
	for i := 0; i < n; i++ {
		if !c.Analyse(&data.Args[i], types.NoTypeID) {
			ok = false
			continue
		}
		if !c.convertOrError(&data.Args[i], paramTypes[i], name+" argument") {
			ok = false
		}
		c.lvalueToRValue(&data.Args[i])
	}
	e.Type = ret
	return ok
}

func (c *Checker) filenameOf(span source.Span) string {
	if c.ctx == nil || c.ctx.Files == nil {
		return "<unknown>"
	}
	if f := c.ctx.Files.Get(span.File); f != nil {
		return f.Path
	}
	return "<unknown>"
}

func (c *Checker) lineOf(span source.Span) int {
	if c.ctx == nil || c.ctx.Files == nil {
		return 0
	}
	start, _ := c.ctx.Files.Resolve(span)
	return int(start.Line)
}
