package amd64

import (
	"bytes"
	"fmt"

	"vecl/internal/layout"
	"vecl/internal/mir"
	"vecl/internal/types"
)

// funcEmitter assigns storage and emits the body of one function.
//
// Every value lives in memory. Slots are handed out lazily the first time
// a value is defined or read and never reused. Values connected through
// phis additionally share one chain slot: a phi destination lives there,
// and each phi branch is copied into it right after its own definition.
type funcEmitter struct {
	e   *Emitter
	f   *mir.Func
	buf bytes.Buffer

	frame int // bytes of locals below rbp
	slots map[mir.ValueID]addr
	chain map[mir.ValueID]addr

	phiDst  map[mir.ValueID]bool
	phiAdj  map[mir.ValueID][]mir.ValueID
	isPhiIn map[mir.ValueID]bool
}

func newFuncEmitter(e *Emitter, f *mir.Func) *funcEmitter {
	fe := &funcEmitter{
		e:       e,
		f:       f,
		slots:   make(map[mir.ValueID]addr),
		chain:   make(map[mir.ValueID]addr),
		phiDst:  make(map[mir.ValueID]bool, len(f.Phis)),
		phiAdj:  make(map[mir.ValueID][]mir.ValueID),
		isPhiIn: make(map[mir.ValueID]bool),
	}
	for _, p := range f.Phis {
		fe.phiDst[p.Dst] = true
		for _, b := range p.Branches {
			fe.isPhiIn[b] = true
			fe.phiAdj[p.Dst] = append(fe.phiAdj[p.Dst], b)
			fe.phiAdj[b] = append(fe.phiAdj[b], p.Dst)
		}
	}
	// arguments sit above the return address in declaration order
	argTypes := make([]types.Type, len(f.Args))
	for i, a := range f.Args {
		argTypes[i] = e.mod.TypeOf(a)
	}
	args := e.target.Args(argTypes)
	for i, a := range f.Args {
		fe.slots[a] = addr{base: "rbp", off: e.target.ArgBase + args.Offsets[i]}
	}
	return fe
}

func (fe *funcEmitter) typeOf(id mir.ValueID) types.Type { return fe.e.mod.TypeOf(id) }

func (fe *funcEmitter) ins(format string, args ...any) {
	fe.buf.WriteString("    ")
	fmt.Fprintf(&fe.buf, format, args...)
	fe.buf.WriteByte('\n')
}

func (fe *funcEmitter) label(name string) {
	fe.buf.WriteString(name)
	fe.buf.WriteString(":\n")
}

func (fe *funcEmitter) alloc(t types.Type) addr {
	l := fe.e.target.Of(t)
	fe.frame = layout.AlignUp(fe.frame+l.Size, l.Align)
	return addr{base: "rbp", off: -fe.frame}
}

// chainAddr resolves the slot shared by every value phi-connected to id.
// The walk stops at values that already have one, so loop phis, which
// close a cycle, terminate.
func (fe *funcEmitter) chainAddr(id mir.ValueID) addr {
	if a, ok := fe.chain[id]; ok {
		return a
	}
	a := fe.alloc(fe.typeOf(id))
	fe.assignChain(id, a)
	return a
}

func (fe *funcEmitter) assignChain(id mir.ValueID, a addr) {
	if _, done := fe.chain[id]; done {
		return
	}
	fe.chain[id] = a
	for _, next := range fe.phiAdj[id] {
		fe.assignChain(next, a)
	}
}

// addrOf is where reads of id come from.
func (fe *funcEmitter) addrOf(id mir.ValueID) addr {
	if v, ok := fe.e.mod.Pool[id]; ok {
		return fe.e.pool.addr(v)
	}
	if fe.phiDst[id] {
		return fe.chainAddr(id)
	}
	if a, ok := fe.slots[id]; ok {
		return a
	}
	a := fe.alloc(fe.typeOf(id))
	fe.slots[id] = a
	return a
}

func (fe *funcEmitter) operand(a mir.Atom) addr {
	switch a.Kind {
	case mir.AtomLit:
		return fe.e.pool.addr(a.Lit)
	case mir.AtomID:
		return fe.addrOf(a.ID)
	}
	panic("amd64: empty operand")
}

// defined must follow every store to dst.
func (fe *funcEmitter) defined(dst mir.ValueID) {
	if !fe.isPhiIn[dst] || fe.phiDst[dst] {
		return
	}
	fe.copy(fe.chainAddr(dst), fe.addrOf(dst), fe.typeOf(dst))
}

func (fe *funcEmitter) copy(dst, src addr, t types.Type) {
	if fe.e.target.Wide(t) {
		fe.ins("movups xmm0, %s", src)
		fe.ins("movups %s, xmm0", dst)
		return
	}
	fe.ins("mov rax, qword %s", src)
	fe.ins("mov qword %s, rax", dst)
}

// loadX loads the float lanes of t at a into an xmm register.
func (fe *funcEmitter) loadX(reg string, a addr, t types.Type) {
	switch t.Lanes() {
	case 1:
		fe.ins("movss %s, dword %s", reg, a)
	case 2:
		fe.ins("movq %s, qword %s", reg, a)
	default:
		fe.ins("movups %s, %s", reg, a)
	}
}

func (fe *funcEmitter) storeX(a addr, reg string, t types.Type) {
	switch t.Lanes() {
	case 1:
		fe.ins("movss dword %s, %s", a, reg)
	case 2:
		fe.ins("movq qword %s, %s", a, reg)
	default:
		fe.ins("movups %s, %s", a, reg)
	}
}

func (fe *funcEmitter) emit() []byte {
	body := fe.body()

	var out bytes.Buffer
	fmt.Fprintf(&out, "%s:\n", funcLabel(fe.f.Name))
	out.WriteString("    push rbp\n    mov rbp, rsp\n")
	if size := layout.AlignUp(fe.frame, fe.e.target.StackAlign); size > 0 {
		fmt.Fprintf(&out, "    sub rsp, %d\n", size)
	}
	out.Write(body)
	return out.Bytes()
}

func (fe *funcEmitter) body() []byte {
	for _, a := range fe.f.Args {
		fe.defined(a)
	}
	for i := range fe.f.Blocks {
		b := &fe.f.Blocks[i]
		if b.Label.IsValid() {
			fe.label(fe.e.mod.LabelName(b.Label))
		}
		for j := range b.Instrs {
			fe.instr(&b.Instrs[j])
		}
		fe.term(&b.Term)
	}
	return fe.buf.Bytes()
}

func funcLabel(name string) string { return "fn_" + name }
