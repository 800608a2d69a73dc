package mir

import (
	"slices"

	"github.com/hashicorp/go-set/v3"

	"vecl/internal/symbols"
	"vecl/internal/thir"
)

func (fl *funcLowerer) block(b *thir.Block) {
	if b == nil {
		return
	}
	for i := range b.Stmts {
		// code after return, break or continue is unreachable
		if fl.cur().Terminated() {
			return
		}
		fl.stmt(&b.Stmts[i])
	}
}

func (fl *funcLowerer) stmt(s *thir.Stmt) {
	switch d := s.Data.(type) {
	case thir.LetData:
		fl.bind(d.Var, fl.expr(d.Value))
	case thir.AssignData:
		fl.bind(d.Var, fl.expr(d.Value))
	case thir.ExprStmtData:
		fl.expr(d.Expr)
	case thir.ReturnData:
		t := Terminator{Kind: TermReturn}
		if d.Value != nil {
			// `return g();` with a void g keeps the call and returns nothing
			if v := fl.expr(d.Value); v.Kind != AtomNone {
				t.Return = ReturnTerm{HasValue: true, Value: v}
			}
		}
		fl.terminate(t)
	case thir.IfData:
		fl.ifStmt(d)
	case thir.WhileData:
		fl.whileStmt(d)
	default:
		switch s.Kind {
		case thir.StmtBreak:
			fl.loopExit(false)
		case thir.StmtContinue:
			fl.loopExit(true)
		}
	}
}

// bind gives v a fresh value so that no two variables share one.
func (fl *funcLowerer) bind(v symbols.VarID, a Atom) {
	dst := fl.c.NewValue(fl.mod.VarType(v))
	fl.emit(Instr{Kind: InstrAssign, Assign: AssignInstr{Dst: dst, Src: a}})
	fl.scope.set(v, dst)
}

func (fl *funcLowerer) loopExit(isContinue bool) {
	loop := fl.loops[len(fl.loops)-1]
	vals := make([]ValueID, len(loop.carried))
	for i, v := range loop.carried {
		vals[i] = fl.varValue(v)
	}
	if isContinue {
		loop.continues = append(loop.continues, vals)
		fl.jump(loop.start)
		return
	}
	loop.breaks = append(loop.breaks, vals)
	fl.jump(loop.end)
}

// ifStmt lays out
//
//	cond -> then / else
//	then:  ...; goto end
//	else:  ...
//	end:
func (fl *funcLowerer) ifStmt(d thir.IfData) {
	thenL := fl.c.NewLabel("then")
	elseL := fl.c.NewLabel("else")
	endL := fl.c.NewLabel("endif")
	fl.cond(d.Cond, thenL, elseL)

	parent := fl.scope

	fl.startBlock(thenL)
	thenScope := newScope(parent)
	fl.scope = thenScope
	fl.block(d.Then)
	thenLive := !fl.cur().Terminated()
	if thenLive {
		fl.jump(endL)
	}

	fl.startBlock(elseL)
	elseScope := newScope(parent)
	fl.scope = elseScope
	fl.block(d.Else)
	elseLive := !fl.cur().Terminated()

	fl.scope = parent
	fl.startBlock(endL)
	fl.merge(endL, parent, thenScope, thenLive, elseScope, elseLive)
}

// merge rebinds, in parent, every variable either arm assigned. A phi is
// needed only when both arms reach the join point.
func (fl *funcLowerer) merge(at LabelID, parent, a *scope, aLive bool, b *scope, bLive bool) {
	names := set.New[symbols.VarID](len(a.order) + len(b.order))
	var touched []symbols.VarID
	for _, v := range slices.Concat(a.order, b.order) {
		if names.Insert(v) {
			touched = append(touched, v)
		}
	}

	for _, v := range touched {
		outer, hasOuter := parent.lookup(v)
		av, inA := a.vars[v]
		bv, inB := b.vars[v]
		if !inA {
			av = outer
		}
		if !inB {
			bv = outer
		}
		switch {
		case aLive && bLive:
			if !hasOuter && (!inA || !inB) {
				// declared in one arm only
				if inA {
					parent.set(v, av)
				} else {
					parent.set(v, bv)
				}
				continue
			}
			dst := fl.c.NewValue(fl.mod.VarType(v))
			fl.phi(dst, at, av, bv)
			parent.set(v, dst)
		case aLive && inA:
			parent.set(v, av)
		case bLive && inB:
			parent.set(v, bv)
		}
	}
}

// whileStmt lays out
//
//	start: cond -> body / exit
//	body:  ...; goto start
//	exit:
//	end:   (break target)
//
// Variables the body reassigns get a phi at start before the body is
// lowered, so reads inside the loop see the value of the previous
// iteration.
func (fl *funcLowerer) whileStmt(d thir.WhileData) {
	startL := fl.c.NewLabel("while")
	bodyL := fl.c.NewLabel("body")
	exitL := fl.c.NewLabel("exit")
	endL := fl.c.NewLabel("endwhile")

	parent := fl.scope
	loop := &loopFrame{start: startL, end: endL}
	var entry []ValueID
	for _, v := range fl.carriedVars(d.Body) {
		if id, ok := parent.lookup(v); ok {
			loop.carried = append(loop.carried, v)
			entry = append(entry, id)
		}
	}

	loopScope := newScope(parent)
	heads := make([]ValueID, len(loop.carried))
	for i, v := range loop.carried {
		heads[i] = fl.c.NewValue(fl.mod.VarType(v))
		loopScope.set(v, heads[i])
	}

	fl.startBlock(startL)
	fl.scope = loopScope
	fl.cond(d.Cond, bodyL, exitL)

	fl.startBlock(bodyL)
	fl.loops = append(fl.loops, loop)
	fl.block(d.Body)
	fl.loops = fl.loops[:len(fl.loops)-1]
	backEdge := !fl.cur().Terminated()
	if backEdge {
		fl.jump(startL)
	}

	for i, v := range loop.carried {
		branches := []ValueID{entry[i]}
		for _, vals := range loop.continues {
			branches = append(branches, vals[i])
		}
		if backEdge {
			branches = append(branches, fl.varValue(v))
		}
		fl.phi(heads[i], startL, branches...)
	}

	fl.scope = parent
	fl.startBlock(exitL)
	fl.startBlock(endL)
	for i, v := range loop.carried {
		if len(loop.breaks) == 0 {
			parent.set(v, heads[i])
			continue
		}
		branches := make([]ValueID, 0, len(loop.breaks)+1)
		for _, vals := range loop.breaks {
			branches = append(branches, vals[i])
		}
		branches = append(branches, heads[i])
		dst := fl.c.NewValue(fl.mod.VarType(v))
		fl.phi(dst, endL, branches...)
		parent.set(v, dst)
	}
}

// carriedVars finds the variables assigned anywhere inside b, in VarID
// order. Variables declared inside the loop are filtered out by the caller
// because they have no binding outside it.
func (fl *funcLowerer) carriedVars(b *thir.Block) []symbols.VarID {
	assigned := set.New[symbols.VarID](8)
	b.Walk(func(s *thir.Stmt) {
		if d, ok := s.Data.(thir.AssignData); ok {
			assigned.Insert(d.Var)
		}
	})
	out := assigned.Slice()
	slices.Sort(out)
	return out
}
