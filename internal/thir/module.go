// Package thir holds the typed tree produced by inference: every variable
// has a concrete type and every operator knows the type it works on.
package thir

import (
	"vecl/internal/source"
	"vecl/internal/symbols"
	"vecl/internal/types"
	"vecl/internal/value"
)

type Func struct {
	ID     symbols.FunID
	Name   string
	Params []symbols.VarID
	Result types.Type // types.Invalid when the function returns nothing
	Body   *Block
	Span   source.Span
}

// Const is a global constant after evaluation.
type Const struct {
	Var   symbols.VarID
	Value value.Value
}

type Module struct {
	Consts []Const
	Funcs  []*Func
	Main   symbols.FunID

	// VarTypes is indexed by VarID.
	VarTypes []types.Type
}

// VarType returns the inferred type of v.
func (m *Module) VarType(v symbols.VarID) types.Type {
	if int(v) >= len(m.VarTypes) {
		return types.Invalid
	}
	return m.VarTypes[v]
}

// ConstValue finds the value of a global constant.
func (m *Module) ConstValue(v symbols.VarID) (value.Value, bool) {
	for _, c := range m.Consts {
		if c.Var == v {
			return c.Value, true
		}
	}
	return value.Value{}, false
}
