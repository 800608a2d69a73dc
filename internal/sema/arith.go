package sema

import (
	"vecl/internal/hir"
	"vecl/internal/symbols"
	"vecl/internal/types"
)

// pendingArith is a * or / whose scaling decision waits until every body
// has been generated. The result lives in its own temporary set so that
// later constraints on it can still pick the vector side.
type pendingArith struct {
	e           *hir.Expr
	op          types.BinaryOp
	left, right *hir.Expr
	l, r, res   operand
}

// Temporaries are numbered after the last table variable; they never
// reach the typed module.
func (in *inferrer) isTemp(v symbols.VarID) bool {
	return int(v) >= in.table.NumVars()
}

func (in *inferrer) deferArith(e *hir.Expr, d hir.BinaryOpData, l, r operand) operand {
	tmp := in.nextTemp
	in.nextTemp++
	in.sets.add(tmp, types.Unknown)
	res := operand{anchor: tmp}
	in.pending = append(in.pending, pendingArith{e: e, op: d.Op, left: d.Left, right: d.Right, l: l, r: r, res: res})
	return res
}

// resolveArith settles pending operations until none is left. When no
// operation is forced either way, the first one in source order becomes
// plain arithmetic and the rest are retried.
func (in *inferrer) resolveArith() *Error {
	for len(in.pending) > 0 {
		rest := make([]pendingArith, 0, len(in.pending))
		progress := false
		for _, p := range in.pending {
			done, err := in.settle(p, false)
			if err != nil {
				return err
			}
			if done {
				progress = true
				continue
			}
			rest = append(rest, p)
		}
		in.pending = rest
		if !progress {
			if _, err := in.settle(rest[0], true); err != nil {
				return err
			}
			in.pending = rest[1:]
		}
	}
	return nil
}

// settle decides p when the current types force a choice. vec*real,
// real*vec and vec/real scale; everything else needs equal operand types.
func (in *inferrer) settle(p pendingArith, force bool) (bool, *Error) {
	lt, rt, xt := in.typeOf(p.l), in.typeOf(p.r), in.typeOf(p.res)
	mul := p.op == types.OpMul
	switch {
	case isVector(lt), isVector(xt) && (!mul || noVector(rt)):
		return true, in.scale(p, p.l, p.r, p.right)
	case mul && (isVector(rt) || isVector(xt) && noVector(lt)):
		return true, in.scale(p, p.r, p.l, p.left)
	case force, noVector(xt), noVector(lt) && (!mul || noVector(rt)):
		return true, in.plain(p)
	}
	return false, nil
}

func (in *inferrer) scale(p pendingArith, vec, scalar operand, scalarExpr *hir.Expr) *Error {
	if _, err := in.unify(p.e, p.res, vec); err != nil {
		return err
	}
	if _, err := in.constrain(scalarExpr, scalar, types.Real.Var()); err != nil {
		return err
	}
	o := in.exprs[p.e]
	o.scaling = true
	in.exprs[p.e] = o
	return nil
}

func (in *inferrer) plain(p pendingArith) *Error {
	joined, err := in.unify(p.e, p.l, p.r)
	if err != nil {
		return err
	}
	if joined, err = in.unify(p.e, p.res, joined); err != nil {
		return err
	}
	_, err = in.constrain(p.e, joined, types.Number)
	return err
}

func isVector(tv types.TypeVar) bool { return tv.Within(types.Vec) }

func noVector(tv types.TypeVar) bool {
	_, ok := types.Join(tv, types.Vec)
	return !ok
}
