// Package value holds compile-time constants and the evaluator shared by
// constant initialisers and translation-time folding.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"vecl/internal/types"
)

// Value is a literal of a concrete type. Int and Bool use I (bool as 0/1);
// float-backed types use the first Type.Lanes() entries of F.
type Value struct {
	Type types.Type
	I    int64
	F    [4]float32
}

func Int(v int64) Value { return Value{Type: types.Int, I: v} }

func Real(v float32) Value { return Value{Type: types.Real, F: [4]float32{v}} }

func Bool(v bool) Value {
	if v {
		return Value{Type: types.Bool, I: 1}
	}
	return Value{Type: types.Bool}
}

func Complex(re, im float32) Value {
	return Value{Type: types.Complex, F: [4]float32{re, im}}
}

// Vector builds a vec2..vec4 from its lanes.
func Vector(lanes ...float32) Value {
	v := Value{Type: types.VecOf(len(lanes))}
	copy(v.F[:], lanes)
	return v
}

// Pack builds a float-lane value of type t from component values.
func Pack(t types.Type, comps []Value) Value {
	v := Value{Type: t}
	for i, c := range comps {
		v.F[i] = c.F[0]
	}
	return v
}

// AsBool reports the truth of a bool value.
func (v Value) AsBool() bool { return v.I != 0 }

// Bits is the raw little-endian storage of v as two quadwords. Values with
// identical bits share one literal-pool entry.
func (v Value) Bits() [2]uint64 {
	if !v.Type.IsFloat() {
		return [2]uint64{uint64(v.I), 0} //nolint:gosec // two's complement reinterpretation
	}
	var lanes [4]uint64
	for i := range v.Type.Lanes() {
		lanes[i] = uint64(math.Float32bits(v.F[i]))
	}
	return [2]uint64{lanes[0] | lanes[1]<<32, lanes[2] | lanes[3]<<32}
}

func (v Value) String() string {
	switch v.Type {
	case types.Int:
		return strconv.FormatInt(v.I, 10)
	case types.Bool:
		return strconv.FormatBool(v.AsBool())
	case types.Real:
		return formatReal(v.F[0])
	case types.Complex:
		return fmt.Sprintf("complex(%s, %s)", formatReal(v.F[0]), formatReal(v.F[1]))
	}
	if v.Type.IsVector() {
		parts := make([]string, v.Type.Lanes())
		for i := range parts {
			parts[i] = formatReal(v.F[i])
		}
		return fmt.Sprintf("%s(%s)", v.Type, strings.Join(parts, ", "))
	}
	return "<invalid>"
}

func formatReal(f float32) string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
