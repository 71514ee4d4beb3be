package parser

import (
	"glint/internal/ast"
	"glint/internal/token"
)

const (
	precAssignment = iota + 1
	precLogicalOr
	precLogicalAnd
	precEquality
	precComparison
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precShift
	precAdditive
	precMultiplicative
)

// binaryOperatorPrec returns the precedence and right-associativity of
// kind as a binary operator, or (-1, false) if kind isn't one.
func binaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign:
		return precAssignment, true
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.Shl, token.Shr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	default:
		return -1, false
	}
}

func tokenKindToBinaryOp(kind token.Kind) ast.BinaryOp {
	switch kind {
	case token.Plus:
		return ast.BinAdd
	case token.Minus:
		return ast.BinSub
	case token.Star:
		return ast.BinMul
	case token.Slash:
		return ast.BinDiv
	case token.Percent:
		return ast.BinMod
	case token.EqEq:
		return ast.BinEq
	case token.BangEq:
		return ast.BinNe
	case token.Lt:
		return ast.BinLt
	case token.LtEq:
		return ast.BinLe
	case token.Gt:
		return ast.BinGt
	case token.GtEq:
		return ast.BinGe
	case token.AndAnd:
		return ast.BinAnd
	case token.OrOr:
		return ast.BinOr
	case token.Amp:
		return ast.BinBitAnd
	case token.Pipe:
		return ast.BinBitOr
	case token.Caret:
		return ast.BinBitXor
	case token.Shl:
		return ast.BinShl
	case token.Shr:
		return ast.BinShr
	case token.Assign:
		return ast.BinAssign
	default:
		return ast.BinAdd
	}
}

func tokenKindToUnaryOp(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Amp:
		return ast.UnaryAddr, true
	case token.At:
		return ast.UnaryDeref, true
	case token.Minus:
		return ast.UnaryNegFree, true
	case token.Tilde:
		return ast.UnaryBitNot, true
	case token.Bang:
		return ast.UnaryLogNot, true
	case token.KwHas:
		return ast.UnaryHas, true
	default:
		return 0, false
	}
}

// startsPrimary reports whether kind can open a primary expression,
// used both by parsePrimary's dispatch and by the juxtaposition-call
// lookahead in parsePostfix.
func startsPrimary(kind token.Kind) bool {
	switch kind {
	case token.Ident, token.IntLit, token.StringLit, token.ByteLit,
		token.KwTrue, token.KwFalse, token.LParen, token.KwSizeof, token.KwAlignof:
		return true
	default:
		return false
	}
}
