package mir

import (
	"errors"
	"fmt"
)

// Validate checks MIR module invariants.
// Returns error if any invariant is violated.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	seenLabels := make(map[LabelID]string)
	for _, f := range m.Funcs {
		if err := validateFunc(m, f, seenLabels); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

func validateFunc(m *Module, f *Func, seenLabels map[LabelID]string) error {
	var errs []error

	// 1. Labels are unique across the unit
	labels := make(map[LabelID]int, len(f.Blocks))
	for i := range f.Blocks {
		l := f.Blocks[i].Label
		if !l.IsValid() {
			continue
		}
		if owner, dup := seenLabels[l]; dup {
			errs = append(errs, fmt.Errorf("label %s already used in %s", m.LabelName(l), owner))
		}
		seenLabels[l] = f.Name
		labels[l] = i
	}

	// 2. Terminators: last block terminated, If never last, targets exist
	if len(f.Blocks) == 0 {
		return errors.New("no blocks")
	}
	if !f.Blocks[len(f.Blocks)-1].Terminated() {
		errs = append(errs, errors.New("last block has no terminator"))
	}
	for i := range f.Blocks {
		t := &f.Blocks[i].Term
		if t.Kind == TermIf && i == len(f.Blocks)-1 {
			errs = append(errs, fmt.Errorf("block %d: conditional branch without a following block", i))
		}
		for _, target := range t.Targets() {
			if _, ok := labels[target]; !ok {
				errs = append(errs, fmt.Errorf("block %d: jump to unknown label %s", i, m.LabelName(target)))
			}
		}
	}

	// 3. Single definition
	defs := make(map[ValueID]struct{})
	define := func(id ValueID, what string) {
		if !id.IsValid() {
			return
		}
		if _, dup := defs[id]; dup {
			errs = append(errs, fmt.Errorf("%s redefines %s", what, id))
		}
		if _, pooled := m.Pool[id]; pooled {
			errs = append(errs, fmt.Errorf("%s redefines constant %s", what, id))
		}
		defs[id] = struct{}{}
	}
	for _, a := range f.Args {
		define(a, "argument")
	}
	for i := range f.Phis {
		define(f.Phis[i].Dst, "phi")
	}
	for i := range f.Blocks {
		for j := range f.Blocks[i].Instrs {
			define(f.Blocks[i].Instrs[j].Dst(), fmt.Sprintf("block %d instr %d", i, j))
		}
	}

	// 4. Every used value is defined
	use := func(a Atom, where string) {
		if a.Kind == AtomNone {
			errs = append(errs, fmt.Errorf("%s uses an empty operand", where))
			return
		}
		if a.Kind != AtomID {
			return
		}
		if _, ok := defs[a.ID]; ok {
			return
		}
		if _, ok := m.Pool[a.ID]; ok {
			return
		}
		errs = append(errs, fmt.Errorf("%s uses undefined %s", where, a.ID))
	}
	for i := range f.Blocks {
		b := &f.Blocks[i]
		for j := range b.Instrs {
			for _, a := range b.Instrs[j].Uses() {
				use(a, fmt.Sprintf("block %d instr %d", i, j))
			}
		}
		switch b.Term.Kind {
		case TermIf:
			use(b.Term.If.L, fmt.Sprintf("block %d branch", i))
			use(b.Term.If.R, fmt.Sprintf("block %d branch", i))
		case TermReturn:
			if b.Term.Return.HasValue {
				use(b.Term.Return.Value, fmt.Sprintf("block %d return", i))
			}
		}
	}
	for _, p := range f.Phis {
		for _, br := range p.Branches {
			use(Ref(br, m.TypeOf(br)), "phi "+p.Dst.String())
		}
	}

	// 5. Phi arity matches incoming edges
	preds := Predecessors(f)
	for _, p := range f.Phis {
		idx, ok := labels[p.Label]
		if !ok {
			errs = append(errs, fmt.Errorf("phi %s placed at unknown label %s", p.Dst, m.LabelName(p.Label)))
			continue
		}
		if n := preds[idx]; n != len(p.Branches) {
			errs = append(errs, fmt.Errorf("phi %s at %s has %d branches, block has %d incoming edges",
				p.Dst, m.LabelName(p.Label), len(p.Branches), n))
		}
	}
	return errors.Join(errs...)
}

// Predecessors counts the control-flow edges entering each block: jumps
// to its label plus the fallthrough from the block before it.
func Predecessors(f *Func) []int {
	idx := make(map[LabelID]int, len(f.Blocks))
	for i := range f.Blocks {
		if l := f.Blocks[i].Label; l.IsValid() {
			idx[l] = i
		}
	}
	preds := make([]int, len(f.Blocks))
	for i := range f.Blocks {
		t := &f.Blocks[i].Term
		for _, target := range t.Targets() {
			if j, ok := idx[target]; ok {
				preds[j]++
			}
		}
		if i+1 < len(f.Blocks) && t.FallsThrough() {
			preds[i+1]++
		}
	}
	return preds
}
