package layout

import (
	"slices"
	"testing"

	"vecl/internal/types"
)

func TestTypeLayouts(t *testing.T) {
	tg := X86_64LinuxGNU()
	tests := []struct {
		typ  types.Type
		want TypeLayout
	}{
		{types.Int, TypeLayout{8, 8}},
		{types.Bool, TypeLayout{8, 8}},
		{types.Real, TypeLayout{8, 8}},
		{types.Complex, TypeLayout{8, 8}},
		{types.Vec2, TypeLayout{8, 8}},
		{types.Vec3, TypeLayout{16, 16}},
		{types.Vec4, TypeLayout{16, 16}},
		{types.Invalid, TypeLayout{0, 1}},
	}
	for _, tt := range tests {
		if got := tg.Of(tt.typ); got != tt.want {
			t.Errorf("Of(%s) = %+v, want %+v", tt.typ, got, tt.want)
		}
	}
	if !tg.Wide(types.Vec3) || tg.Wide(types.Vec2) {
		t.Fatal("only 16-byte values are wide")
	}
}

func TestArgs(t *testing.T) {
	tg := X86_64LinuxGNU()
	blk := tg.Args([]types.Type{types.Int, types.Vec3, types.Real})
	if !slices.Equal(blk.Offsets, []int{0, 8, 24}) {
		t.Fatalf("offsets = %v", blk.Offsets)
	}
	if blk.Size != 32 {
		t.Fatalf("size = %d", blk.Size)
	}
	if empty := tg.Args(nil); empty.Size != 0 || len(empty.Offsets) != 0 {
		t.Fatalf("empty = %+v", empty)
	}
}

func TestAlignUp(t *testing.T) {
	cases := [][3]int{{0, 16, 0}, {1, 16, 16}, {16, 16, 16}, {17, 8, 24}, {5, 1, 5}, {5, 0, 5}}
	for _, c := range cases {
		if got := AlignUp(c[0], c[1]); got != c[2] {
			t.Errorf("AlignUp(%d, %d) = %d, want %d", c[0], c[1], got, c[2])
		}
	}
}
