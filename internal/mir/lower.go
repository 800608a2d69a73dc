package mir

import (
	"context"
	"fmt"

	"vecl/internal/symbols"
	"vecl/internal/thir"
	"vecl/internal/trace"
	"vecl/internal/types"
	"vecl/internal/value"
)

// LowerModule translates every function of a typed module into SSA form.
// Functions are lowered in declaration order and share the unit counters.
// Lowering never fails on a module that passed inference.
func LowerModule(ctx context.Context, m *thir.Module, table *symbols.Table) *Module {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePass, "mir_lower", trace.CurrentSpan(ctx))
	defer span.End("")

	out := &Module{
		Main:   m.Main,
		Pool:   make(map[ValueID]value.Value, len(m.Consts)),
		Labels: make(map[LabelID]string),
	}
	c := newCounters(out)

	consts := make(map[symbols.VarID]ValueID, len(m.Consts))
	for _, k := range m.Consts {
		id := c.NewValue(k.Value.Type)
		out.Pool[id] = k.Value
		consts[k.Var] = id
	}

	for _, f := range m.Funcs {
		fspan := trace.Begin(tr, trace.ScopeFunc, f.Name, span.ID())
		fl := &funcLowerer{
			mod:    m,
			out:    out,
			table:  table,
			c:      c,
			consts: consts,
			fn:     &Func{ID: f.ID, Name: f.Name, Span: f.Span, Result: f.Result},
		}
		lowered := fl.lower(f)
		out.Funcs = append(out.Funcs, lowered)
		fspan.End(fmt.Sprintf("blocks=%d phis=%d", len(lowered.Blocks), len(lowered.Phis)))
	}
	return out
}

// scope maps variables to their current SSA value. A child scope shadows
// its parent until the values are merged back at a join point.
type scope struct {
	parent *scope
	vars   map[symbols.VarID]ValueID
	order  []symbols.VarID // first assignment order, for deterministic merges
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[symbols.VarID]ValueID)}
}

func (s *scope) lookup(v symbols.VarID) (ValueID, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if id, ok := sc.vars[v]; ok {
			return id, true
		}
	}
	return NoValueID, false
}

func (s *scope) set(v symbols.VarID, id ValueID) {
	if _, ok := s.vars[v]; !ok {
		s.order = append(s.order, v)
	}
	s.vars[v] = id
}

type loopFrame struct {
	start, end LabelID
	carried    []symbols.VarID
	continues  [][]ValueID // carried values at each continue
	breaks     [][]ValueID // carried values at each break
}

type funcLowerer struct {
	mod    *thir.Module
	out    *Module
	table  *symbols.Table
	c      *Counters
	consts map[symbols.VarID]ValueID

	fn    *Func
	scope *scope
	loops []*loopFrame
}

func (fl *funcLowerer) lower(f *thir.Func) *Func {
	fl.scope = newScope(nil)
	for _, p := range f.Params {
		id := fl.c.NewValue(fl.mod.VarType(p))
		fl.fn.Args = append(fl.fn.Args, id)
		fl.scope.set(p, id)
	}
	fl.fn.Blocks = append(fl.fn.Blocks, Block{})
	fl.block(f.Body)

	if !fl.cur().Terminated() {
		if f.Result == types.Invalid {
			fl.terminate(Terminator{Kind: TermReturn})
		} else {
			// falling off the end of a function with a result
			fl.terminate(Terminator{Kind: TermHalt})
		}
	}
	return fl.fn
}

func (fl *funcLowerer) cur() *Block { return &fl.fn.Blocks[len(fl.fn.Blocks)-1] }

func (fl *funcLowerer) emit(in Instr) { fl.cur().Instrs = append(fl.cur().Instrs, in) }

func (fl *funcLowerer) terminate(t Terminator) { fl.cur().Term = t }

// startBlock opens a new block; the previous one falls through into it
// unless it was terminated.
func (fl *funcLowerer) startBlock(l LabelID) {
	fl.fn.Blocks = append(fl.fn.Blocks, Block{Label: l})
}

func (fl *funcLowerer) jump(l LabelID) {
	fl.terminate(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: l}})
}

func (fl *funcLowerer) phi(dst ValueID, label LabelID, branches ...ValueID) {
	fl.fn.Phis = append(fl.fn.Phis, Phi{Dst: dst, Branches: branches, Label: label})
}

func (fl *funcLowerer) varValue(v symbols.VarID) ValueID {
	if id, ok := fl.scope.lookup(v); ok {
		return id
	}
	if id, ok := fl.consts[v]; ok {
		return id
	}
	panic("mir: variable " + fl.table.Var(v).Name + " read before definition")
}
