package sema

import (
	"vecl/internal/symbols"
	"vecl/internal/thir"
	"vecl/internal/value"
)

// evalConst folds a constant initializer. It fails on operations that would
// trap at run time.
func evalConst(e *thir.Expr, env map[symbols.VarID]thir.Const) (value.Value, bool) {
	switch d := e.Data.(type) {
	case thir.LiteralData:
		return d.Value, true
	case thir.VarRefData:
		c, ok := env[d.Var]
		return c.Value, ok
	case thir.UnaryOpData:
		x, ok := evalConst(d.Operand, env)
		if !ok {
			return value.Value{}, false
		}
		return value.Unary(d.Op, x)
	case thir.BinaryOpData:
		l, ok := evalConst(d.Left, env)
		if !ok {
			return value.Value{}, false
		}
		r, ok := evalConst(d.Right, env)
		if !ok {
			return value.Value{}, false
		}
		return value.Binary(d.Op, l, r)
	case thir.PackData:
		comps := make([]value.Value, len(d.Elems))
		for i, el := range d.Elems {
			v, ok := evalConst(el, env)
			if !ok {
				return value.Value{}, false
			}
			comps[i] = v
		}
		return value.Pack(e.Type, comps), true
	case thir.SwizzleData:
		v, ok := evalConst(d.Value, env)
		if !ok {
			return value.Value{}, false
		}
		return value.Swizzle(v, d.Lanes), true
	}
	return value.Value{}, false
}
