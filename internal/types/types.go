package types

import "fmt"

// Type is a fully resolved value type.
type Type uint8

const (
	Invalid Type = iota
	Int
	Real
	Bool
	Complex
	Vec2
	Vec3
	Vec4
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Real:
		return "real"
	case Bool:
		return "bool"
	case Complex:
		return "complex"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("Type(%d)", t)
	}
}

// Parse maps a type keyword to its Type.
func Parse(name string) (Type, bool) {
	switch name {
	case "int":
		return Int, true
	case "real":
		return Real, true
	case "bool":
		return Bool, true
	case "complex":
		return Complex, true
	case "vec2":
		return Vec2, true
	case "vec3":
		return Vec3, true
	case "vec4":
		return Vec4, true
	}
	return Invalid, false
}

// Lanes is the number of single-precision lanes backing t, or 0 for
// integer-represented types.
func (t Type) Lanes() int {
	switch t {
	case Real:
		return 1
	case Complex, Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4:
		return 4
	default:
		return 0
	}
}

// IsVector reports vec2, vec3 and vec4.
func (t Type) IsVector() bool { return t == Vec2 || t == Vec3 || t == Vec4 }

// IsFloat reports types whose storage is float lanes.
func (t Type) IsFloat() bool { return t.Lanes() > 0 }

// VecOf returns the vector type with n lanes; n must be 2..4.
func VecOf(n int) Type {
	switch n {
	case 2:
		return Vec2
	case 3:
		return Vec3
	case 4:
		return Vec4
	}
	panic(fmt.Sprintf("types: no vector with %d lanes", n))
}

// Var lifts a concrete type into the lattice.
func (t Type) Var() TypeVar { return TypeVar(t) }
