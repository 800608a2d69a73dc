package mir

// Block is a basic block. Label is NoLabelID for blocks only reached by
// falling through.
type Block struct {
	Label  LabelID
	Instrs []Instr
	Term   Terminator
}

func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}

// Phi selects, at entry to the block labelled Label, the branch value of
// the edge control arrived along.
type Phi struct {
	Dst      ValueID
	Branches []ValueID
	Label    LabelID
}
