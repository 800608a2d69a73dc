package mir

import (
	"vecl/internal/source"
	"vecl/internal/symbols"
	"vecl/internal/types"
)

type Func struct {
	ID     symbols.FunID
	Name   string
	Span   source.Span
	Result types.Type // types.Invalid for functions without a result

	Args   []ValueID
	Blocks []Block
	Phis   []Phi
}

// PhiOf returns the phi whose destination is id.
func (f *Func) PhiOf(id ValueID) (*Phi, bool) {
	for i := range f.Phis {
		if f.Phis[i].Dst == id {
			return &f.Phis[i], true
		}
	}
	return nil, false
}
