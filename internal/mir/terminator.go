package mir

import "vecl/internal/types"

type TermKind uint8

const (
	TermNone TermKind = iota
	TermIf
	TermGoto
	TermReturn
	TermHalt
)

// Terminator ends a block. TermIf branches to its target when the
// comparison holds and otherwise falls through to the next block, which
// always starts with the unconditional Goto for the false edge.
type Terminator struct {
	Kind TermKind

	If     IfTerm
	Goto   GotoTerm
	Return ReturnTerm
}

type IfTerm struct {
	L, R    Atom
	Op      types.BinaryOp // a comparison
	Operand types.Type
	Target  LabelID
}

type GotoTerm struct {
	Target LabelID
}

type ReturnTerm struct {
	HasValue bool
	Value    Atom
}

// Targets lists the labels the terminator may jump to.
func (t *Terminator) Targets() []LabelID {
	switch t.Kind {
	case TermIf:
		return []LabelID{t.If.Target}
	case TermGoto:
		return []LabelID{t.Goto.Target}
	}
	return nil
}

// FallsThrough reports whether control may continue into the next block.
func (t *Terminator) FallsThrough() bool {
	return t.Kind == TermNone || t.Kind == TermIf
}
