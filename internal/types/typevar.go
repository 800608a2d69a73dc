package types

import "fmt"

// TypeVar is a point in the inference lattice: either a concrete type, one
// of the ambiguity classes, Unknown (no information) or None (absence of a
// value).
//
// Concrete variants share numeric values with Type.
type TypeVar uint8

const (
	Scalar  TypeVar = iota + 8 // int | real
	Number                     // int | real | complex
	Vec34                      // vec3 | vec4
	Vec                        // vec2 | vec3 | vec4
	Linear                     // Number | Vec
	Unknown                    // anything, including None
	None                       // no value
)

// member bits: one per concrete type plus one for None.
const noneBit uint16 = 1 << 15

func bit(t Type) uint16 { return 1 << t }

var members = map[TypeVar]uint16{
	Scalar:  bit(Int) | bit(Real),
	Number:  bit(Int) | bit(Real) | bit(Complex),
	Vec34:   bit(Vec3) | bit(Vec4),
	Vec:     bit(Vec2) | bit(Vec3) | bit(Vec4),
	Linear:  bit(Int) | bit(Real) | bit(Complex) | bit(Vec2) | bit(Vec3) | bit(Vec4),
	Unknown: bit(Int) | bit(Real) | bit(Bool) | bit(Complex) | bit(Vec2) | bit(Vec3) | bit(Vec4) | noneBit,
	None:    noneBit,
}

func (v TypeVar) memberSet() uint16 {
	if t, ok := v.Concrete(); ok {
		return bit(t)
	}
	return members[v]
}

// Concrete returns the concrete type when v is fully resolved.
func (v TypeVar) Concrete() (Type, bool) {
	if v >= TypeVar(Int) && v <= TypeVar(Vec4) {
		return Type(v), true
	}
	return Invalid, false
}

// Join is the lattice meet: the most specific TypeVar compatible with both
// sides. It fails when the two have no concrete type in common.
//
//	Join(Scalar, Real)   = Real
//	Join(Number, Vec)    = fail
//	Join(Unknown, x)     = x
//	Join(Linear, Vec34)  = Vec34
func Join(a, b TypeVar) (TypeVar, bool) {
	switch {
	case a == b:
		return a, true
	case a == Unknown:
		return b, true
	case b == Unknown:
		return a, true
	case a == None || b == None:
		return 0, false
	}
	return fromMembers(a.memberSet() & b.memberSet())
}

// fromMembers relies on the named classes forming a laminar family, so any
// intersection of two of them is again a named variant or empty.
func fromMembers(m uint16) (TypeVar, bool) {
	if m == 0 {
		return 0, false
	}
	for t := Int; t <= Vec4; t++ {
		if m == bit(t) {
			return t.Var(), true
		}
	}
	for _, v := range []TypeVar{Scalar, Number, Vec34, Vec, Linear, Unknown} {
		if members[v] == m {
			return v, true
		}
	}
	panic(fmt.Sprintf("types: member set %#x is not a lattice point", m))
}

// Within reports whether every type admitted by v is admitted by class.
func (v TypeVar) Within(class TypeVar) bool {
	return v.memberSet()&^class.memberSet() == 0
}

func (v TypeVar) String() string {
	if t, ok := v.Concrete(); ok {
		return t.String()
	}
	switch v {
	case Scalar:
		return "{scalar}"
	case Number:
		return "{number}"
	case Vec34:
		return "{vec3|vec4}"
	case Vec:
		return "{vector}"
	case Linear:
		return "{linear}"
	case Unknown:
		return "{unknown}"
	case None:
		return "nothing"
	default:
		return fmt.Sprintf("TypeVar(%d)", v)
	}
}
