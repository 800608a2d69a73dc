package hir

import (
	"vecl/internal/source"
	"vecl/internal/symbols"
	"vecl/internal/types"
	"vecl/internal/value"
)

// ExprKind enumerates scope-resolved expression kinds.
type ExprKind uint8

const (
	ExprLiteral ExprKind = iota + 1
	ExprVarRef
	ExprUnaryOp
	ExprBinaryOp
	ExprCall
	ExprPack    // vecN(...) / complex(re, im)
	ExprSwizzle // v.xyz
)

func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprVarRef:
		return "VarRef"
	case ExprUnaryOp:
		return "UnaryOp"
	case ExprBinaryOp:
		return "BinaryOp"
	case ExprCall:
		return "Call"
	case ExprPack:
		return "Pack"
	case ExprSwizzle:
		return "Swizzle"
	default:
		return "Unknown"
	}
}

// Expr is an untyped, name-resolved expression.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Data ExprData
}

// ExprData is the kind-specific payload.
type ExprData interface{ exprData() }

type LiteralData struct{ Value value.Value }

type VarRefData struct{ Var symbols.VarID }

type UnaryOpData struct {
	Op      types.UnaryOp
	Operand *Expr
}

type BinaryOpData struct {
	Op          types.BinaryOp
	Left, Right *Expr
}

type CallData struct {
	Fun  symbols.FunID
	Args []*Expr
}

// PackData builds a float-lane value of Type from real components.
type PackData struct {
	Type  types.Type
	Elems []*Expr
}

type SwizzleData struct {
	Value *Expr
	Lanes []uint8 // 0..3 for x..w
}

func (LiteralData) exprData()  {}
func (VarRefData) exprData()   {}
func (UnaryOpData) exprData()  {}
func (BinaryOpData) exprData() {}
func (CallData) exprData()     {}
func (PackData) exprData()     {}
func (SwizzleData) exprData()  {}

// MaxLane is the highest component index a swizzle reads.
func (d SwizzleData) MaxLane() int {
	m := 0
	for _, l := range d.Lanes {
		m = max(m, int(l))
	}
	return m
}
