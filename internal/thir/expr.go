package thir

import (
	"vecl/internal/source"
	"vecl/internal/symbols"
	"vecl/internal/types"
	"vecl/internal/value"
)

type ExprKind uint8

const (
	ExprLiteral ExprKind = iota + 1
	ExprVarRef
	ExprUnaryOp
	ExprBinaryOp
	ExprCall
	ExprPack
	ExprSwizzle
)

// Expr is a fully typed expression. Type is types.Invalid only for calls
// to functions without a result.
type Expr struct {
	Kind ExprKind
	Type types.Type
	Span source.Span
	Data ExprData
}

type ExprData interface{ exprData() }

type LiteralData struct{ Value value.Value }

type VarRefData struct{ Var symbols.VarID }

type UnaryOpData struct {
	Op      types.UnaryOp
	Operand *Expr
}

// BinaryOpData carries the type the operator works on. For ordinary
// operators both sides have type Operand. For vector scaling Operand is the
// vector type and the other side is real.
type BinaryOpData struct {
	Op          types.BinaryOp
	Operand     types.Type
	Scaling     bool
	Left, Right *Expr
}

type CallData struct {
	Fun  symbols.FunID
	Args []*Expr
}

type PackData struct{ Elems []*Expr }

type SwizzleData struct {
	Value *Expr
	Lanes []uint8
}

func (LiteralData) exprData()  {}
func (VarRefData) exprData()   {}
func (UnaryOpData) exprData()  {}
func (BinaryOpData) exprData() {}
func (CallData) exprData()     {}
func (PackData) exprData()     {}
func (SwizzleData) exprData()  {}

// IsConst reports whether e is a literal.
func (e *Expr) IsConst() bool { return e != nil && e.Kind == ExprLiteral }
