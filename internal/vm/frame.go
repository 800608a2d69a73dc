package vm

import (
	"maps"
	"slices"

	"vecl/internal/mir"
	"vecl/internal/value"
)

// Frame represents a function activation record on the call stack.
type Frame struct {
	Func  *mir.Func
	Block int // index into Func.Blocks
	IP    int // instruction index within the block; len(Instrs) means the terminator

	info   *funcInfo
	regs   map[mir.ValueID]value.Value
	chains []value.Value
	retDst mir.ValueID // caller value receiving the result
}

func newFrame(fn *mir.Func, info *funcInfo, retDst mir.ValueID) *Frame {
	return &Frame{
		Func:   fn,
		info:   info,
		regs:   make(map[mir.ValueID]value.Value),
		chains: make([]value.Value, info.nchains),
		retDst: retDst,
	}
}

// AtTerminator returns true if the IP is past all instructions.
func (f *Frame) AtTerminator() bool {
	return f.IP >= len(f.Func.Blocks[f.Block].Instrs)
}

// funcInfo is the per-function data the interpreter derives once.
type funcInfo struct {
	blocks map[mir.LabelID]int

	// Values connected through phis form one chain and share one cell.
	// Reading a phi destination reads the cell; defining any other chain
	// member writes it.
	chain   map[mir.ValueID]int
	phiDst  map[mir.ValueID]bool
	nchains int
}

func analyzeFunc(fn *mir.Func) *funcInfo {
	info := &funcInfo{
		blocks: make(map[mir.LabelID]int, len(fn.Blocks)),
		chain:  make(map[mir.ValueID]int),
		phiDst: make(map[mir.ValueID]bool, len(fn.Phis)),
	}
	for i := range fn.Blocks {
		if l := fn.Blocks[i].Label; l.IsValid() {
			info.blocks[l] = i
		}
	}

	// union-find over phi edges
	parent := make(map[mir.ValueID]mir.ValueID)
	var find func(mir.ValueID) mir.ValueID
	find = func(id mir.ValueID) mir.ValueID {
		p, ok := parent[id]
		if !ok || p == id {
			parent[id] = id
			return id
		}
		root := find(p)
		parent[id] = root
		return root
	}
	for _, p := range fn.Phis {
		info.phiDst[p.Dst] = true
		for _, b := range p.Branches {
			parent[find(b)] = find(p.Dst)
		}
	}
	roots := make(map[mir.ValueID]int)
	for _, id := range slices.Collect(maps.Keys(parent)) {
		r := find(id)
		n, ok := roots[r]
		if !ok {
			n = len(roots)
			roots[r] = n
		}
		info.chain[id] = n
	}
	info.nchains = len(roots)
	return info
}
