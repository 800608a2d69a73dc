package parser

import (
	"vecl/internal/token"
	"vecl/internal/types"
)

// Таблица приоритетов: чем больше число, тем сильнее связывает.
const (
	precLogicalOr      = 1 // or
	precLogicalAnd     = 2 // and
	precEquality       = 3 // == !=
	precComparison     = 4 // < <= > >=
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * /
)

// binaryOp returns the precedence and operator for kind, or -1. All binary
// operators are left-associative.
func binaryOp(kind token.Kind) (int, types.BinaryOp) {
	switch kind {
	case token.KwOr:
		return precLogicalOr, types.OpOr
	case token.KwAnd:
		return precLogicalAnd, types.OpAnd
	case token.EqEq:
		return precEquality, types.OpEq
	case token.BangEq:
		return precEquality, types.OpNe
	case token.Lt:
		return precComparison, types.OpLt
	case token.LtEq:
		return precComparison, types.OpLe
	case token.Gt:
		return precComparison, types.OpGt
	case token.GtEq:
		return precComparison, types.OpGe
	case token.Plus:
		return precAdditive, types.OpAdd
	case token.Minus:
		return precAdditive, types.OpSub
	case token.Star:
		return precMultiplicative, types.OpMul
	case token.Slash:
		return precMultiplicative, types.OpDiv
	default:
		return -1, 0
	}
}

func unaryOp(kind token.Kind) (types.UnaryOp, bool) {
	switch kind {
	case token.Minus:
		return types.OpNeg, true
	case token.KwNot:
		return types.OpNot, true
	default:
		return 0, false
	}
}
