package amd64

import (
	"fmt"
	"io"

	"vecl/internal/mir"
	"vecl/internal/value"
)

// literalPool holds every constant the module reads, one 16-byte entry per
// distinct bit pattern. It is filled before any function is emitted and
// only read afterwards.
type literalPool struct {
	index   map[[2]uint64]int
	entries [][2]uint64
}

// signMaskBits flips the sign of all four float lanes.
var signMaskBits = [2]uint64{0x8000000080000000, 0x8000000080000000}

func newLiteralPool() *literalPool {
	p := &literalPool{index: make(map[[2]uint64]int)}
	p.addBits(signMaskBits)
	return p
}

func (p *literalPool) addBits(bits [2]uint64) int {
	if i, ok := p.index[bits]; ok {
		return i
	}
	i := len(p.entries)
	p.index[bits] = i
	p.entries = append(p.entries, bits)
	return i
}

func (p *literalPool) add(v value.Value) int { return p.addBits(v.Bits()) }

// addr returns the pool operand for v; v must have been collected.
func (p *literalPool) addr(v value.Value) addr {
	return p.addrBits(v.Bits())
}

func (p *literalPool) addrBits(bits [2]uint64) addr {
	i, ok := p.index[bits]
	if !ok {
		panic(fmt.Sprintf("amd64: literal %#x was not collected", bits))
	}
	return addr{base: fmt.Sprintf("rel lit_%d", i)}
}

func (p *literalPool) signMask() addr { return p.addrBits(signMaskBits) }

// collect walks every atom of the module.
func (p *literalPool) collect(m *mir.Module) {
	for _, v := range m.Pool {
		p.add(v)
	}
	for _, f := range m.Funcs {
		for i := range f.Blocks {
			b := &f.Blocks[i]
			for j := range b.Instrs {
				for _, a := range b.Instrs[j].Uses() {
					if a.IsLit() {
						p.add(a.Lit)
					}
				}
			}
			switch b.Term.Kind {
			case mir.TermIf:
				for _, a := range []mir.Atom{b.Term.If.L, b.Term.If.R} {
					if a.IsLit() {
						p.add(a.Lit)
					}
				}
			case mir.TermReturn:
				if b.Term.Return.HasValue && b.Term.Return.Value.IsLit() {
					p.add(b.Term.Return.Value.Lit)
				}
			}
		}
	}
}

func (p *literalPool) write(w io.Writer) error {
	if _, err := io.WriteString(w, "section .rodata\n"); err != nil {
		return err
	}
	for i, e := range p.entries {
		if _, err := fmt.Fprintf(w, "align 16\nlit_%d: dq 0x%016x, 0x%016x\n", i, e[0], e[1]); err != nil {
			return err
		}
	}
	return nil
}
