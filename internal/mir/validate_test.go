package mir

import (
	"strings"
	"testing"

	"vecl/internal/types"
	"vecl/internal/value"
)

func handModule() (*Module, *Func) {
	m := &Module{Pool: map[ValueID]value.Value{}, Labels: map[LabelID]string{}}
	c := newCounters(m)
	f := &Func{Name: "f", Result: types.Int}
	arg := c.NewValue(types.Int)
	f.Args = []ValueID{arg}
	then := c.NewLabel("then")
	end := c.NewLabel("end")
	a1, a2, p := c.NewValue(types.Int), c.NewValue(types.Int), c.NewValue(types.Int)
	f.Blocks = []Block{
		{Term: Terminator{Kind: TermIf, If: IfTerm{L: Ref(arg, types.Int), Op: types.OpLt, R: Lit(value.Int(0)), Operand: types.Int, Target: then}}},
		{Instrs: []Instr{{Kind: InstrAssign, Assign: AssignInstr{Dst: a1, Src: Lit(value.Int(1))}}},
			Term: Terminator{Kind: TermGoto, Goto: GotoTerm{Target: end}}},
		{Label: then, Instrs: []Instr{{Kind: InstrAssign, Assign: AssignInstr{Dst: a2, Src: Lit(value.Int(2))}}}},
		{Label: end, Term: Terminator{Kind: TermReturn, Return: ReturnTerm{HasValue: true, Value: Ref(p, types.Int)}}},
	}
	f.Phis = []Phi{{Dst: p, Branches: []ValueID{a1, a2}, Label: end}}
	m.Funcs = []*Func{f}
	return m, f
}

func TestValidateAcceptsWellFormed(t *testing.T) {
	m, f := handModule()
	if err := Validate(m); err != nil {
		t.Fatal(err)
	}
	if preds := Predecessors(f); preds[3] != 2 || preds[2] != 1 || preds[1] != 1 {
		t.Fatalf("preds = %v", preds)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(m *Module, f *Func)
		want   string
	}{
		{"double def", func(_ *Module, f *Func) {
			f.Blocks[2].Instrs[0].Assign.Dst = f.Blocks[1].Instrs[0].Assign.Dst
		}, "redefines"},
		{"phi arity", func(_ *Module, f *Func) {
			f.Phis[0].Branches = f.Phis[0].Branches[:1]
		}, "incoming edges"},
		{"unknown target", func(_ *Module, f *Func) {
			f.Blocks[1].Term.Goto.Target = 99
		}, "unknown label"},
		{"unterminated", func(_ *Module, f *Func) {
			f.Blocks[3].Term = Terminator{}
		}, "no terminator"},
		{"undefined use", func(_ *Module, f *Func) {
			f.Blocks[3].Term.Return.Value = Ref(42, types.Int)
		}, "undefined"},
		{"empty return value", func(_ *Module, f *Func) {
			f.Blocks[3].Term.Return.Value = Atom{}
		}, "empty operand"},
		{"empty instr operand", func(_ *Module, f *Func) {
			f.Blocks[1].Instrs[0].Assign.Src = Atom{}
		}, "empty operand"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, f := handModule()
			m.Types = append(m.Types, make([]types.Type, 64)...)
			tc.mutate(m, f)
			err := Validate(m)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}
}
