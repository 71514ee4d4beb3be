package sema

import (
	"glint/internal/ast"
	"glint/internal/convert"
	"glint/internal/diag"
	"glint/internal/types"
)

// analyseCast implements spec.md §4.H's Cast rule. A cast sema itself
// produced (CastData.Kind.Trusted()) is never re-checked — its
// lvalue-ness is simply the reference-to-lvalue bit. An explicit cast
// first tries the ordinary implicit conversion (which, on failure,
// still performs the operand's lvalue-to-rvalue conversion); only if
// that fails does the explicit-cast rule ladder apply.
func (c *Checker) analyseCast(exprPtr *ast.ExprID) bool {
	data, _ := c.b.Cast(*exprPtr)
	e := c.b.Get(*exprPtr)

	if data.Kind.Trusted() {
		e.Type = data.To
		e.LValue = data.Kind == ast.CastReferenceToLValue
		return true
	}

	if !c.Analyse(&data.Expr, data.To) {
		return false
	}
	e.Type = data.To
	e.LValue = false

	if convert.Convert(c.b, c.in, &data.Expr, data.To) {
		return true
	}

	from := c.b.Get(data.Expr).Type
	to := data.To

	if types.IsReference(c.in, to) {
		c.reportf(e.Span, diag.TypeInvalidCast, "cannot cast an rvalue to a reference type")
		return false
	}

	if (types.IsInteger(c.in, from, true) || types.IsEnum(c.in, from)) && types.IsInteger(c.in, to, true) {
		return true
	}
	if types.IsPointer(c.in, from) && types.IsInteger(c.in, to, true) {
		return true
	}

	hardCast := func() bool {
		if data.Kind != ast.CastHard {
			c.reportf(e.Span, diag.TypeInvalidCast,
				"cast is unsafe: use a hard cast if this is intended")
			return false
		}
		return true
	}

	if types.IsInteger(c.in, from, true) && types.IsEnum(c.in, to) {
		return hardCast()
	}
	if types.IsPointer(c.in, to) && (types.IsInteger(c.in, from, false) || types.IsPointer(c.in, from)) {
		return hardCast()
	}
	if data.Kind == ast.CastHard && types.Size(c.in, from) == types.Size(c.in, to) {
		return true
	}

	c.reportf(e.Span, diag.TypeInvalidCast, "no valid cast from the operand's type to the target type")
	return false
}
