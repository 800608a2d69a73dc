package hir

import (
	"vecl/internal/source"
	"vecl/internal/symbols"
)

// Func is a user function body.
type Func struct {
	ID   symbols.FunID
	Name string
	Body *Block
	Span source.Span
}

// Const is a global constant with its initializer.
type Const struct {
	Var   symbols.VarID
	Value *Expr
	Span  source.Span
}

// Module is the scope-resolved compilation unit.
type Module struct {
	Consts []*Const // declaration order
	Funcs  []*Func  // declaration order
	Main   symbols.FunID
}
