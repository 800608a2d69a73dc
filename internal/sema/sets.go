package sema

import (
	"fmt"

	"fortio.org/safecast"

	"vecl/internal/symbols"
	"vecl/internal/types"
)

// SetID identifies one constraint set; zero means "no set".
type SetID uint32

const NoSetID SetID = 0

type constraintSet struct {
	ty      types.TypeVar
	members []symbols.VarID
	merged  bool
}

// constraintSets partitions variables into sets that must share one type.
// Uniting moves the members of the smaller set into the larger one; there
// are no parent pointers.
type constraintSets struct {
	sets  []constraintSet // index 0 unused
	byVar map[symbols.VarID]SetID
}

func newConstraintSets() *constraintSets {
	return &constraintSets{
		sets:  make([]constraintSet, 1, 64),
		byVar: make(map[symbols.VarID]SetID),
	}
}

// add creates a singleton set for v seeded with ty. Adding a variable twice
// returns its existing set.
func (cs *constraintSets) add(v symbols.VarID, ty types.TypeVar) SetID {
	if id, ok := cs.byVar[v]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(cs.sets))
	if err != nil {
		panic(fmt.Errorf("constraint set overflow: %w", err))
	}
	id := SetID(n)
	cs.sets = append(cs.sets, constraintSet{ty: ty, members: []symbols.VarID{v}})
	cs.byVar[v] = id
	return id
}

func (cs *constraintSets) of(v symbols.VarID) SetID {
	id, ok := cs.byVar[v]
	if !ok {
		panic(fmt.Sprintf("sema: variable %d has no constraint set", v))
	}
	return id
}

func (cs *constraintSets) typeOf(id SetID) types.TypeVar { return cs.sets[id].ty }

func (cs *constraintSets) members(id SetID) []symbols.VarID { return cs.sets[id].members }

// constrain narrows the type of a set. On failure the set is left unchanged.
func (cs *constraintSets) constrain(id SetID, tv types.TypeVar) (types.TypeVar, bool) {
	s := &cs.sets[id]
	j, ok := types.Join(s.ty, tv)
	if !ok {
		return s.ty, false
	}
	s.ty = j
	return j, true
}

// unite merges two sets and joins their types. Uniting a set with itself
// changes nothing. On failure neither set is modified.
func (cs *constraintSets) unite(a, b SetID) (SetID, types.TypeVar, bool) {
	if a == b {
		return a, cs.sets[a].ty, true
	}
	j, ok := types.Join(cs.sets[a].ty, cs.sets[b].ty)
	if !ok {
		return a, cs.sets[a].ty, false
	}
	if len(cs.sets[a].members) < len(cs.sets[b].members) {
		a, b = b, a
	}
	into, from := &cs.sets[a], &cs.sets[b]
	for _, v := range from.members {
		cs.byVar[v] = a
	}
	into.members = append(into.members, from.members...)
	into.ty = j
	from.members, from.merged = nil, true
	return a, j, true
}

// live returns the sets that still own members.
func (cs *constraintSets) live() []SetID {
	out := make([]SetID, 0, len(cs.sets))
	for i := 1; i < len(cs.sets); i++ {
		if !cs.sets[i].merged {
			out = append(out, SetID(i)) //nolint:gosec // bounded by add
		}
	}
	return out
}
