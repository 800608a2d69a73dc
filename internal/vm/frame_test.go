package vm

import (
	"testing"

	"vecl/internal/mir"
)

func TestAnalyzeFuncJoinsPhiChains(t *testing.T) {
	fn := &mir.Func{
		Name:   "f",
		Blocks: []mir.Block{{}, {Label: 7}},
		Phis: []mir.Phi{
			{Dst: 10, Branches: []mir.ValueID{1, 11}, Label: 7},
			{Dst: 11, Branches: []mir.ValueID{10, 2}, Label: 7},
			{Dst: 20, Branches: []mir.ValueID{3, 4}, Label: 7},
		},
	}
	info := analyzeFunc(fn)
	if info.nchains != 2 {
		t.Fatalf("nchains = %d", info.nchains)
	}
	for _, id := range []mir.ValueID{1, 2, 11} {
		if info.chain[id] != info.chain[10] {
			t.Errorf("%s not in the chain of %%10", id)
		}
	}
	if info.chain[3] == info.chain[10] || info.chain[3] != info.chain[20] {
		t.Error("separate variables share a chain")
	}
	if !info.phiDst[11] || info.phiDst[1] {
		t.Error("phi destinations misclassified")
	}
	if info.blocks[7] != 1 {
		t.Errorf("label 7 at block %d", info.blocks[7])
	}
}
