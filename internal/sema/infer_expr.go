package sema

import (
	"vecl/internal/hir"
	"vecl/internal/types"
)

func (in *inferrer) expr(e *hir.Expr) (operand, *Error) {
	o, err := in.exprKind(e)
	if err != nil {
		return o, err
	}
	in.exprs[e] = o
	return o, nil
}

func (in *inferrer) exprKind(e *hir.Expr) (operand, *Error) {
	switch d := e.Data.(type) {
	case hir.LiteralData:
		return operand{tv: d.Value.Type.Var()}, nil

	case hir.VarRefData:
		return operand{anchor: d.Var}, nil

	case hir.UnaryOpData:
		x, err := in.expr(d.Operand)
		if err != nil {
			return x, err
		}
		if d.Op == types.OpNot {
			return in.constrain(e, x, types.Bool.Var())
		}
		return in.constrain(e, x, types.Linear)

	case hir.BinaryOpData:
		return in.binary(e, d)

	case hir.CallData:
		fn := in.table.Fun(d.Fun)
		for i, a := range d.Args {
			arg, err := in.expr(a)
			if err != nil {
				return arg, err
			}
			param := in.sets.of(fn.Params[i])
			want := in.sets.typeOf(param)
			j, ok := types.Join(in.typeOf(arg), want)
			if !ok {
				return arg, mismatch(a, want, in.typeOf(arg))
			}
			in.sets.constrain(param, j)
			if _, err := in.constrain(a, arg, j); err != nil {
				return arg, err
			}
		}
		return operand{tv: fn.ResultVar()}, nil

	case hir.PackData:
		for _, el := range d.Elems {
			x, err := in.expr(el)
			if err != nil {
				return x, err
			}
			if _, err := in.constrain(el, x, types.Real.Var()); err != nil {
				return x, err
			}
		}
		return operand{tv: d.Type.Var()}, nil

	case hir.SwizzleData:
		x, err := in.expr(d.Value)
		if err != nil {
			return x, err
		}
		if _, err := in.constrain(d.Value, x, types.SwizzleClass(d.MaxLane())); err != nil {
			return x, err
		}
		return operand{tv: types.SwizzleResult(len(d.Lanes)).Var()}, nil
	}
	panic("sema: unexpected expression")
}

func (in *inferrer) binary(e *hir.Expr, d hir.BinaryOpData) (operand, *Error) {
	l, err := in.expr(d.Left)
	if err != nil {
		return l, err
	}
	r, err := in.expr(d.Right)
	if err != nil {
		return r, err
	}

	switch {
	case d.Op.IsLogic():
		if _, err := in.constrain(d.Left, l, types.Bool.Var()); err != nil {
			return l, err
		}
		if _, err := in.constrain(d.Right, r, types.Bool.Var()); err != nil {
			return r, err
		}
		return operand{tv: types.Bool.Var()}, nil

	case d.Op.IsRel():
		class := types.Linear
		if d.Op.IsOrdering() {
			class = types.Scalar
		}
		joined, err := in.unify(e, l, r)
		if err != nil {
			return joined, err
		}
		if _, err := in.constrain(e, joined, class); err != nil {
			return joined, err
		}
		// the operands and the bool result stay separate
		return operand{tv: types.Bool.Var()}, nil
	}

	if d.Op == types.OpMul || d.Op == types.OpDiv {
		return in.deferArith(e, d, l, r), nil
	}

	joined, err := in.unify(e, l, r)
	if err != nil {
		return joined, err
	}
	return in.constrain(e, joined, types.Linear)
}
