package value

import (
	"math"

	"vecl/internal/types"
)

// Binary evaluates l op r. It reports false when the operation must be left
// to run time: integer division by zero and MinInt64 / -1 trap on the
// target, and ill-typed operands are never folded.
//
// Float results are rounded to float32 after every operation, in the same
// order as the generated SSE code, so folded and emitted results agree.
func Binary(op types.BinaryOp, l, r Value) (Value, bool) {
	res, ok := types.BinaryResult(op, l.Type, r.Type)
	if !ok {
		return Value{}, false
	}
	if types.IsScaling(op, l.Type, r.Type) {
		return scale(op, l, r), true
	}
	switch {
	case op.IsLogic():
		if op == types.OpAnd {
			return Bool(l.AsBool() && r.AsBool()), true
		}
		return Bool(l.AsBool() || r.AsBool()), true
	case op.IsRel():
		return compare(op, l, r), true
	}

	switch res {
	case types.Int:
		return intArith(op, l.I, r.I)
	case types.Complex:
		return complexArith(op, l, r), true
	default:
		out := Value{Type: res}
		for i := range res.Lanes() {
			out.F[i] = laneArith(op, l.F[i], r.F[i])
		}
		return out, true
	}
}

func intArith(op types.BinaryOp, a, b int64) (Value, bool) {
	switch op {
	case types.OpAdd:
		return Int(a + b), true
	case types.OpSub:
		return Int(a - b), true
	case types.OpMul:
		return Int(a * b), true
	case types.OpDiv:
		if b == 0 || (a == math.MinInt64 && b == -1) {
			return Value{}, false
		}
		return Int(a / b), true
	}
	return Value{}, false
}

func laneArith(op types.BinaryOp, a, b float32) float32 {
	switch op {
	case types.OpAdd:
		return a + b
	case types.OpSub:
		return a - b
	case types.OpMul:
		return a * b
	default:
		return a / b
	}
}

func scale(op types.BinaryOp, l, r Value) Value {
	vec, s := l, r.F[0]
	if !l.Type.IsVector() {
		vec, s = r, l.F[0]
	}
	out := Value{Type: vec.Type}
	for i := range vec.Type.Lanes() {
		if op == types.OpMul {
			out.F[i] = vec.F[i] * s
		} else {
			out.F[i] = vec.F[i] / s
		}
	}
	return out
}

// complexArith mirrors the emitted instruction sequence; the explicit
// float32 conversions keep the compiler from fusing multiply-adds.
func complexArith(op types.BinaryOp, l, r Value) Value {
	a, b := l.F[0], l.F[1]
	c, d := r.F[0], r.F[1]
	switch op {
	case types.OpAdd:
		return Complex(a+c, b+d)
	case types.OpSub:
		return Complex(a-c, b-d)
	case types.OpMul:
		ac, bd := float32(a*c), float32(b*d)
		ad, bc := float32(a*d), float32(b*c)
		return Complex(ac-bd, ad+bc)
	default:
		cc, dd := float32(c*c), float32(d*d)
		den := cc + dd
		ac, bd := float32(a*c), float32(b*d)
		bc, ad := float32(b*c), float32(a*d)
		return Complex((ac+bd)/den, (bc-ad)/den)
	}
}

// compare implements comparisons; float-lane equality holds when every lane
// is equal, matching the masked packed compare.
func compare(op types.BinaryOp, l, r Value) Value {
	if l.Type == types.Int {
		a, b := l.I, r.I
		switch op {
		case types.OpLt:
			return Bool(a < b)
		case types.OpLe:
			return Bool(a <= b)
		case types.OpGt:
			return Bool(a > b)
		case types.OpGe:
			return Bool(a >= b)
		case types.OpEq:
			return Bool(a == b)
		default:
			return Bool(a != b)
		}
	}
	all := true
	for i := range l.Type.Lanes() {
		a, b := l.F[i], r.F[i]
		var lane bool
		switch op {
		case types.OpLt:
			lane = a < b
		case types.OpLe:
			lane = a <= b
		case types.OpGt:
			lane = a > b
		case types.OpGe:
			lane = a >= b
		default:
			lane = a == b
		}
		all = all && lane
	}
	if op == types.OpNe {
		return Bool(!all)
	}
	return Bool(all)
}

// Unary evaluates op v.
func Unary(op types.UnaryOp, v Value) (Value, bool) {
	if _, ok := types.UnaryResult(op, v.Type); !ok {
		return Value{}, false
	}
	switch {
	case op == types.OpNot:
		return Bool(!v.AsBool()), true
	case v.Type == types.Int:
		return Int(-v.I), true
	default:
		out := v
		for i := range v.Type.Lanes() {
			// sign flip, same as xorps with the sign mask
			out.F[i] = math.Float32frombits(math.Float32bits(v.F[i]) ^ 0x80000000)
		}
		return out, true
	}
}

// Swizzle selects lanes of a vector.
func Swizzle(v Value, lanes []uint8) Value {
	out := Value{Type: types.SwizzleResult(len(lanes))}
	for i, l := range lanes {
		out.F[i] = v.F[l]
	}
	return out
}

// Zero is the zero value of t.
func Zero(t types.Type) Value { return Value{Type: t} }
