package mir

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"vecl/internal/types"
)

// DumpOptions configures MIR module dumping.
type DumpOptions struct {
	// Types annotates every defined value with its type.
	Types bool
}

// DumpModule writes a human-readable representation of a MIR module.
func DumpModule(w io.Writer, m *Module, opts DumpOptions) error {
	if w == nil || m == nil {
		return nil
	}
	bw := bufio.NewWriter(w)
	d := dumper{w: bw, m: m, opts: opts}

	pool := make([]ValueID, 0, len(m.Pool))
	for id := range m.Pool {
		pool = append(pool, id)
	}
	slices.Sort(pool)
	for _, id := range pool {
		fmt.Fprintf(bw, "const %s: %s = %s\n", id, m.TypeOf(id), m.Pool[id])
	}

	for _, f := range m.Funcs {
		d.fn(f)
	}
	return bw.Flush()
}

type dumper struct {
	w    *bufio.Writer
	m    *Module
	opts DumpOptions
}

func (d *dumper) def(id ValueID) string {
	if d.opts.Types {
		return fmt.Sprintf("%s: %s", id, d.m.TypeOf(id))
	}
	return id.String()
}

func (d *dumper) fn(f *Func) {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = fmt.Sprintf("%s: %s", a, d.m.TypeOf(a))
	}
	fmt.Fprintf(d.w, "\nfn %s(%s)", f.Name, strings.Join(args, ", "))
	if f.Result != types.Invalid {
		fmt.Fprintf(d.w, " -> %s", f.Result)
	}
	fmt.Fprintln(d.w, " {")

	for i := range f.Blocks {
		b := &f.Blocks[i]
		if b.Label.IsValid() {
			fmt.Fprintf(d.w, "%s:\n", d.m.LabelName(b.Label))
			for _, p := range f.Phis {
				if p.Label == b.Label {
					fmt.Fprintf(d.w, "    %s = phi [%s]\n", d.def(p.Dst), joinIDs(p.Branches))
				}
			}
		} else if i > 0 {
			fmt.Fprintln(d.w, "  ;")
		}
		for j := range b.Instrs {
			fmt.Fprintf(d.w, "    %s\n", d.instr(&b.Instrs[j]))
		}
		if t := d.term(&b.Term); t != "" {
			fmt.Fprintf(d.w, "    %s\n", t)
		}
	}
	fmt.Fprintln(d.w, "}")
}

func (d *dumper) instr(in *Instr) string {
	switch in.Kind {
	case InstrAssign:
		return fmt.Sprintf("%s = %s", d.def(in.Assign.Dst), in.Assign.Src)
	case InstrBinary:
		b := &in.Binary
		op := b.Op.String()
		if b.Scaling {
			op += " scale"
		}
		return fmt.Sprintf("%s = %s %s.%s %s", d.def(b.Dst), b.L, op, b.Operand, b.R)
	case InstrUnary:
		return fmt.Sprintf("%s = %s %s", d.def(in.Unary.Dst), in.Unary.Op, in.Unary.X)
	case InstrCall:
		c := &in.Call
		call := fmt.Sprintf("call %s(%s)", c.Name, joinAtoms(c.Args))
		if !c.Dst.IsValid() {
			return call
		}
		return fmt.Sprintf("%s = %s", d.def(c.Dst), call)
	case InstrPack:
		return fmt.Sprintf("%s = pack(%s)", d.def(in.Pack.Dst), joinAtoms(in.Pack.Elems))
	case InstrSwizzle:
		const lanes = "xyzw"
		var sb strings.Builder
		for _, l := range in.Swizzle.Lanes {
			sb.WriteByte(lanes[l])
		}
		return fmt.Sprintf("%s = %s.%s", d.def(in.Swizzle.Dst), in.Swizzle.X, sb.String())
	}
	return "?"
}

func (d *dumper) term(t *Terminator) string {
	switch t.Kind {
	case TermIf:
		return fmt.Sprintf("if %s %s.%s %s goto %s", t.If.L, t.If.Op, t.If.Operand, t.If.R, d.m.LabelName(t.If.Target))
	case TermGoto:
		return "goto " + d.m.LabelName(t.Goto.Target)
	case TermReturn:
		if t.Return.HasValue {
			return "return " + t.Return.Value.String()
		}
		return "return"
	case TermHalt:
		return "halt"
	}
	return ""
}

func joinIDs(ids []ValueID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}

func joinAtoms(as []Atom) string {
	parts := make([]string, len(as))
	for i, a := range as {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
