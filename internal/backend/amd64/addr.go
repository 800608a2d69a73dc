package amd64

import (
	"fmt"

	"vecl/internal/types"
)

// addr is a memory operand: a frame slot relative to rbp or a pool entry.
type addr struct {
	base string // "rbp" or "rel lit_N"
	off  int
}

func (a addr) plus(n int) addr { return addr{base: a.base, off: a.off + n} }

func (a addr) String() string {
	if a.off == 0 {
		return "[" + a.base + "]"
	}
	return fmt.Sprintf("[%s%+d]", a.base, a.off)
}

// inXMM reports types held in SSE registers while computed.
func inXMM(t types.Type) bool { return t.IsFloat() }
