// Package layout decides how values of each type are stored in memory:
// slot sizes, alignment and the placement of call arguments.
package layout

import "vecl/internal/types"

// TypeLayout is the storage of one value.
type TypeLayout struct {
	Size  int
	Align int
}

// Of returns the slot layout of t. Every value occupies at least one
// word; vec3 and vec4 take a full 16-byte SSE register image.
func (tg Target) Of(t types.Type) TypeLayout {
	switch t {
	case types.Invalid:
		return TypeLayout{Size: 0, Align: 1}
	case types.Vec3, types.Vec4:
		return TypeLayout{Size: 16, Align: 16}
	default:
		return TypeLayout{Size: tg.WordSize, Align: tg.WordSize}
	}
}

// Wide reports whether t is returned in xmm0 rather than rax.
func (tg Target) Wide(t types.Type) bool { return tg.Of(t).Size > tg.WordSize }

// ArgBlock places call arguments one after another from the stack
// pointer at the call.
type ArgBlock struct {
	Offsets []int
	Size    int // padded to the stack alignment
}

// Args lays out arguments of the given types in declaration order.
func (tg Target) Args(ts []types.Type) ArgBlock {
	blk := ArgBlock{Offsets: make([]int, len(ts))}
	off := 0
	for i, t := range ts {
		blk.Offsets[i] = off
		off += tg.Of(t).Size
	}
	blk.Size = AlignUp(off, tg.StackAlign)
	return blk
}

// AlignUp rounds n up to a multiple of a.
func AlignUp(n, a int) int {
	if a <= 1 {
		return n
	}
	return (n + a - 1) / a * a
}
