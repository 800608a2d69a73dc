package mir

import (
	"vecl/internal/thir"
	"vecl/internal/types"
	"vecl/internal/value"
)

// constant returns the value behind a literal or a pooled constant.
func (fl *funcLowerer) constant(a Atom) (value.Value, bool) {
	switch a.Kind {
	case AtomLit:
		return a.Lit, true
	case AtomID:
		v, ok := fl.out.Pool[a.ID]
		return v, ok
	}
	return value.Value{}, false
}

func (fl *funcLowerer) fresh(t types.Type) ValueID { return fl.c.NewValue(t) }

// expr lowers e in value context. Operations whose operands are all
// constants are folded and emit nothing.
func (fl *funcLowerer) expr(e *thir.Expr) Atom {
	switch d := e.Data.(type) {
	case thir.LiteralData:
		return Lit(d.Value)

	case thir.VarRefData:
		return Ref(fl.varValue(d.Var), e.Type)

	case thir.UnaryOpData:
		x := fl.expr(d.Operand)
		if c, ok := fl.constant(x); ok {
			if v, ok := value.Unary(d.Op, c); ok {
				return Lit(v)
			}
		}
		dst := fl.fresh(e.Type)
		fl.emit(Instr{Kind: InstrUnary, Unary: UnaryInstr{Dst: dst, Op: d.Op, X: x}})
		return Ref(dst, e.Type)

	case thir.BinaryOpData:
		l, r := fl.expr(d.Left), fl.expr(d.Right)
		if lc, ok := fl.constant(l); ok {
			if rc, ok := fl.constant(r); ok {
				if v, ok := value.Binary(d.Op, lc, rc); ok {
					return Lit(v)
				}
			}
		}
		dst := fl.fresh(e.Type)
		fl.emit(Instr{Kind: InstrBinary, Binary: BinaryInstr{
			Dst: dst, Op: d.Op, Operand: d.Operand, Scaling: d.Scaling, L: l, R: r,
		}})
		return Ref(dst, e.Type)

	case thir.CallData:
		args := make([]Atom, len(d.Args))
		for i, a := range d.Args {
			args[i] = fl.expr(a)
		}
		call := CallInstr{Fun: d.Fun, Name: fl.table.Fun(d.Fun).Name, Args: args}
		if e.Type != types.Invalid {
			call.Dst = fl.fresh(e.Type)
		}
		fl.emit(Instr{Kind: InstrCall, Call: call})
		if !call.Dst.IsValid() {
			return Atom{}
		}
		return Ref(call.Dst, e.Type)

	case thir.PackData:
		elems := make([]Atom, len(d.Elems))
		consts := make([]value.Value, 0, len(d.Elems))
		for i, el := range d.Elems {
			elems[i] = fl.expr(el)
			if c, ok := fl.constant(elems[i]); ok {
				consts = append(consts, c)
			}
		}
		if len(consts) == len(elems) {
			return Lit(value.Pack(e.Type, consts))
		}
		dst := fl.fresh(e.Type)
		fl.emit(Instr{Kind: InstrPack, Pack: PackInstr{Dst: dst, Elems: elems}})
		return Ref(dst, e.Type)

	case thir.SwizzleData:
		x := fl.expr(d.Value)
		if c, ok := fl.constant(x); ok {
			return Lit(value.Swizzle(c, d.Lanes))
		}
		dst := fl.fresh(e.Type)
		fl.emit(Instr{Kind: InstrSwizzle, Swizzle: SwizzleInstr{Dst: dst, X: x, Lanes: d.Lanes}})
		return Ref(dst, e.Type)
	}
	panic("mir: unexpected expression")
}

// cond lowers a boolean expression straight into branches: control reaches
// t when it holds and f otherwise. and/or short-circuit.
func (fl *funcLowerer) cond(e *thir.Expr, t, f LabelID) {
	switch d := e.Data.(type) {
	case thir.UnaryOpData:
		if d.Op == types.OpNot {
			fl.cond(d.Operand, f, t)
			return
		}

	case thir.BinaryOpData:
		switch {
		case d.Op == types.OpAnd:
			rhs := fl.c.NewLabel("and")
			fl.cond(d.Left, rhs, f)
			fl.startBlock(rhs)
			fl.cond(d.Right, t, f)
			return
		case d.Op == types.OpOr:
			rhs := fl.c.NewLabel("or")
			fl.cond(d.Left, t, rhs)
			fl.startBlock(rhs)
			fl.cond(d.Right, t, f)
			return
		case d.Op.IsRel():
			l, r := fl.expr(d.Left), fl.expr(d.Right)
			fl.branch(l, d.Op, r, d.Operand, t, f)
			return
		}
	}

	v := fl.expr(e)
	if c, ok := fl.constant(v); ok {
		if c.AsBool() {
			fl.jump(t)
		} else {
			fl.jump(f)
		}
		return
	}
	fl.branch(v, types.OpEq, Lit(value.Bool(true)), types.Bool, t, f)
}

// branch emits "if l op r goto t" followed by "goto f" in its own block.
// A comparison of constants becomes a plain goto.
func (fl *funcLowerer) branch(l Atom, op types.BinaryOp, r Atom, operand types.Type, t, f LabelID) {
	if lc, ok := fl.constant(l); ok {
		if rc, ok := fl.constant(r); ok {
			if v, ok := value.Binary(op, lc, rc); ok {
				if v.AsBool() {
					fl.jump(t)
				} else {
					fl.jump(f)
				}
				return
			}
		}
	}
	fl.terminate(Terminator{Kind: TermIf, If: IfTerm{L: l, Op: op, R: r, Operand: operand, Target: t}})
	fl.startBlock(NoLabelID)
	fl.jump(f)
}
