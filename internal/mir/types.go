package mir

import (
	"fmt"

	"vecl/internal/types"
	"vecl/internal/value"
)

type (
	// ValueID is an SSA value; allocated once per unit and defined once.
	ValueID uint32
	// LabelID names a basic block; unique across the unit.
	LabelID uint32
)

const (
	NoValueID ValueID = 0
	NoLabelID LabelID = 0
)

func (id ValueID) IsValid() bool { return id != NoValueID }
func (id LabelID) IsValid() bool { return id != NoLabelID }

func (id ValueID) String() string { return fmt.Sprintf("%%%d", id) }

type AtomKind uint8

const (
	AtomNone AtomKind = iota
	AtomLit
	AtomID
)

// Atom is an instruction operand: an immediate value or an SSA value.
type Atom struct {
	Kind AtomKind
	Type types.Type
	ID   ValueID
	Lit  value.Value
}

func Lit(v value.Value) Atom { return Atom{Kind: AtomLit, Type: v.Type, Lit: v} }

func Ref(id ValueID, t types.Type) Atom { return Atom{Kind: AtomID, Type: t, ID: id} }

func (a Atom) IsLit() bool { return a.Kind == AtomLit }

func (a Atom) String() string {
	switch a.Kind {
	case AtomLit:
		return a.Lit.String()
	case AtomID:
		return a.ID.String()
	default:
		return "_"
	}
}
