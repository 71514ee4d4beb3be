package sema

import (
	"glint/internal/ast"
	"glint/internal/convert"
	"glint/internal/diag"
	"glint/internal/types"
)

// analyseBinary implements spec.md §4.H/§6's operator table, grouped the
// way the teacher's sema groups token kinds: logical and/or, ordinary
// arithmetic, comparisons, and assignment each have their own operand
// rules.
func (c *Checker) analyseBinary(exprPtr *ast.ExprID) bool {
	data, _ := c.b.Binary(*exprPtr)
	if !c.Analyse(&data.Left, types.NoTypeID) || !c.Analyse(&data.Right, types.NoTypeID) {
		return false
	}
	e := c.b.Get(*exprPtr)
	switch data.Op {
	case ast.BinAnd, ast.BinOr:
		return c.analyseLogicalBinary(data, e)
	case ast.BinAssign:
		return c.analyseAssign(data, e)
	case ast.BinEq, ast.BinNe, ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		return c.analyseComparison(data, e)
	default:
		return c.analyseArithmeticBinary(data, e)
	}
}

func (c *Checker) analyseLogicalBinary(data *ast.BinaryData, e *ast.Expr) bool {
	c.lvalueToRValue(&data.Left)
	c.lvalueToRValue(&data.Right)
	lhs, rhs := c.b.Get(data.Left).Type, c.b.Get(data.Right).Type
	e.Type = c.in.Builtins().Bool
	if !types.IsInteger(c.in, lhs, true) || !types.IsInteger(c.in, rhs, true) {
		c.reportf(e.Span, diag.TypeInvalidBinaryOp, "cannot perform a logical operation on these operand types")
		return false
	}
	ok := convert.Convert(c.b, c.in, &data.Left, c.in.Builtins().Bool)
	ok = convert.Convert(c.b, c.in, &data.Right, c.in.Builtins().Bool) && ok
	if !ok {
		c.reportf(e.Span, diag.TypeMismatch, "operands of a logical operator must convert to bool")
	}
	return ok
}

// analyseArithmeticBinary covers +, -, *, /, %, <<, >>, &, |, ^, per
// spec.md §4.H: both operands must be integers, converted to a common
// type, which becomes the expression's own type.
func (c *Checker) analyseArithmeticBinary(data *ast.BinaryData, e *ast.Expr) bool {
	c.lvalueToRValue(&data.Left)
	c.lvalueToRValue(&data.Right)
	lhs, rhs := c.b.Get(data.Left).Type, c.b.Get(data.Right).Type
	if !types.IsInteger(c.in, lhs, false) || !types.IsInteger(c.in, rhs, false) {
		c.reportf(e.Span, diag.TypeInvalidBinaryOp, "cannot perform arithmetic on these operand types")
		return false
	}
	if !convert.ConvertToCommonType(c.b, c.in, &data.Left, &data.Right) {
		c.reportf(e.Span, diag.TypeInvalidBinaryOp, "operands have no common type")
		return false
	}
	e.Type = c.b.Get(data.Left).Type
	return true
}

// analyseComparison covers ==, !=, <, <=, >, >=: integers unify to a
// common type, bool compares only with bool, pointers compare only when
// structurally equal.
func (c *Checker) analyseComparison(data *ast.BinaryData, e *ast.Expr) bool {
	c.lvalueToRValue(&data.Left)
	c.lvalueToRValue(&data.Right)
	lhs, rhs := c.b.Get(data.Left).Type, c.b.Get(data.Right).Type
	e.Type = c.in.Builtins().Bool

	switch {
	case types.IsInteger(c.in, lhs, false) && types.IsInteger(c.in, rhs, false):
		if !convert.ConvertToCommonType(c.b, c.in, &data.Left, &data.Right) {
			c.reportf(e.Span, diag.TypeInvalidBinaryOp, "cannot compare these operand types")
			return false
		}
		return true
	case types.IsBool(c.in, lhs) && types.IsBool(c.in, rhs):
		return true
	case types.IsPointer(c.in, lhs) && types.IsPointer(c.in, rhs):
		if !types.Equal(c.in, lhs, rhs) {
			c.reportf(e.Span, diag.TypeInvalidBinaryOp, "cannot compare unrelated pointer types")
			return false
		}
		return true
	default:
		c.reportf(e.Span, diag.TypeInvalidBinaryOp, "cannot compare these operand types")
		return false
	}
}

// analyseAssign implements spec.md §4.H's Assignment rule: the left side
// must be an lvalue; assigning through a sum-typed member access
// converts against the member's own type rather than the sum's.
func (c *Checker) analyseAssign(data *ast.BinaryData, e *ast.Expr) bool {
	c.lvalueToRValue(&data.Right)
	lhsE := c.b.Get(data.Left)
	e.LValue = true
	e.Type = lhsE.Type
	if !lhsE.LValue {
		c.reportf(e.Span, diag.TypeMismatch, "left-hand side of assignment must be an lvalue")
		return false
	}

	target := lhsE.Type
	if st, ok := c.in.Lookup(lhsE.Type); ok && st.Kind == types.KindSum {
		if md, ok2 := c.b.Member(data.Left); ok2 {
			if info, ok3 := c.in.SumInfoOf(lhsE.Type); ok3 && int(md.MemberIndex) < len(info.Members) {
				target = info.Members[md.MemberIndex].Type
			}
		}
	}
	if !convert.Convert(c.b, c.in, &data.Right, target) {
		c.reportf(e.Span, diag.TypeMismatch, "right-hand side is not convertible to the left-hand side's type")
		return false
	}
	return true
}

// analyseUnary implements spec.md §4.H's unary operators: & (address-of
// an lvalue), @ (dereference a pointer rvalue), - (negate an integer, or
// free a dynamic-array lvalue), ~ (bitwise-not), ! (logical not), and
// has (sum-type member-presence test).
func (c *Checker) analyseUnary(exprPtr *ast.ExprID) bool {
	data, _ := c.b.Unary(*exprPtr)
	if !c.Analyse(&data.Operand, types.NoTypeID) {
		return false
	}
	e := c.b.Get(*exprPtr)

	switch data.Op {
	case ast.UnaryAddr:
		operand := c.b.Get(data.Operand)
		if !operand.LValue {
			c.reportf(e.Span, diag.TypeInvalidUnaryOp, "cannot take the address of an rvalue")
			return false
		}
		e.Type = c.in.MakePointer(operand.Type)
		return true

	case ast.UnaryDeref:
		c.lvalueToRValue(&data.Operand)
		ty := c.b.Get(data.Operand).Type
		if !types.IsPointer(c.in, ty) {
			c.reportf(e.Span, diag.TypeInvalidUnaryOp, "cannot dereference a non-pointer type")
			return false
		}
		t, _ := c.in.Lookup(ty)
		e.Type = t.Elem
		e.LValue = true
		return true

	case ast.UnaryNegFree:
		return c.analyseNegOrFree(exprPtr, data, e)

	case ast.UnaryBitNot:
		c.lvalueToRValue(&data.Operand)
		ty := c.b.Get(data.Operand).Type
		if !types.IsInteger(c.in, ty, false) {
			c.reportf(e.Span, diag.TypeInvalidUnaryOp, "operand of '~' must be an integer type")
			return false
		}
		e.Type = ty
		return true

	case ast.UnaryLogNot:
		c.lvalueToRValue(&data.Operand)
		ty := c.b.Get(data.Operand).Type
		e.Type = c.in.Builtins().Bool
		if !types.IsPointer(c.in, ty) && !types.IsInteger(c.in, ty, true) {
			c.reportf(e.Span, diag.TypeInvalidUnaryOp, "operand of '!' must be a bool, integer, or pointer type")
			return false
		}
		return true

	case ast.UnaryHas:
		return c.analyseHas(data, e)

	default:
		return true
	}
}

// analyseNegOrFree implements spec.md §4.H's dual meaning of unary '-':
// numeric negation, or (operand a dynamic-array lvalue NameRef) freeing
// it — marking the declaration NoLongerViable and clearing it from the
// enclosing function's dangling set, per §3 invariant 6.
func (c *Checker) analyseNegOrFree(exprPtr *ast.ExprID, data *ast.UnaryData, e *ast.Expr) bool {
	operand := c.b.Get(data.Operand)
	if types.IsDynamicArray(c.in, operand.Type) {
		e.Type = c.in.Builtins().Void
		ref, isRef := c.b.NameRef(data.Operand)
		if !isRef {
			c.reportf(e.Span, diag.TypeInvalidUnaryOp, "can only free a named dynamic-array variable")
			return false
		}
		if target := c.b.Get(ref.Target); target != nil {
			target.State = ast.NoLongerViable
		}
		if fn := c.currentFn(); fn != nil {
			delete(fn.data.Dangling, ref.Target)
		}
		return true
	}

	c.lvalueToRValue(&data.Operand)
	ty := c.b.Get(data.Operand).Type
	if !types.IsInteger(c.in, ty, false) {
		c.reportf(e.Span, diag.TypeInvalidUnaryOp, "operand of unary '-' must be an integer type")
		return false
	}
	e.Type = ty
	return true
}

func (c *Checker) analyseHas(data *ast.UnaryData, e *ast.Expr) bool {
	e.Type = c.in.Builtins().Bool
	member, isMember := c.b.Member(data.Operand)
	if !isMember {
		c.reportf(e.Span, diag.TypeInvalidUnaryOp, "operand of 'has' must be a member access to a sum type")
		return false
	}
	if t, ok := c.in.Lookup(member.StructType); !ok || t.Kind != types.KindSum {
		c.reportf(e.Span, diag.TypeInvalidUnaryOp, "operand of 'has' must be a sum type")
		return false
	}
	return true
}
