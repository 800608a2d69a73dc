package sema

import (
	"slices"
	"testing"

	"vecl/internal/symbols"
	"vecl/internal/types"
)

func TestUniteIsIdempotent(t *testing.T) {
	cs := newConstraintSets()
	a := cs.add(1, types.Scalar)
	cs.add(2, types.Unknown)
	id, _, _ := cs.unite(a, cs.of(2))

	before := slices.Clone(cs.members(id))
	got, tv, ok := cs.unite(id, id)
	if !ok || got != id || tv != types.Scalar {
		t.Fatalf("unite(s, s) = %d %s %v", got, tv, ok)
	}
	if !slices.Equal(cs.members(id), before) {
		t.Fatalf("members changed: %v -> %v", before, cs.members(id))
	}
}

func TestUniteJoinsAndMovesMembers(t *testing.T) {
	cs := newConstraintSets()
	a := cs.add(1, types.Linear)
	b := cs.add(2, types.Vec34)
	c := cs.add(3, types.Unknown)
	ab, tv, ok := cs.unite(a, b)
	if !ok || tv != types.Vec34 {
		t.Fatalf("unite = %s %v", tv, ok)
	}
	all, _, _ := cs.unite(c, ab)
	for _, v := range []symbols.VarID{1, 2, 3} {
		if cs.of(v) != all {
			t.Errorf("var %d in set %d, want %d", v, cs.of(v), all)
		}
	}
	if live := cs.live(); len(live) != 1 || live[0] != all {
		t.Errorf("live sets = %v", live)
	}
	if _, ok := cs.constrain(all, types.Vec4.Var()); !ok || cs.typeOf(all) != types.Vec4.Var() {
		t.Errorf("constrain to vec4 gave %s", cs.typeOf(all))
	}
}

func TestUniteFailureLeavesSetsUntouched(t *testing.T) {
	cs := newConstraintSets()
	a := cs.add(1, types.Int.Var())
	b := cs.add(2, types.Vec)
	if _, _, ok := cs.unite(a, b); ok {
		t.Fatal("int and vector united")
	}
	if cs.of(1) == cs.of(2) || cs.typeOf(a) != types.Int.Var() || cs.typeOf(b) != types.Vec {
		t.Fatal("failed unite modified the sets")
	}
}
