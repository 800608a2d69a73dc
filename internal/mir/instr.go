package mir

import (
	"vecl/internal/symbols"
	"vecl/internal/types"
)

// InstrKind enumerates straight-line instructions.
type InstrKind uint8

const (
	InstrAssign InstrKind = iota + 1
	InstrBinary
	InstrUnary
	InstrCall
	InstrPack
	InstrSwizzle
)

// Instr is a straight-line instruction; only the payload matching Kind is
// set. Only calls have side effects.
type Instr struct {
	Kind InstrKind

	Assign  AssignInstr
	Binary  BinaryInstr
	Unary   UnaryInstr
	Call    CallInstr
	Pack    PackInstr
	Swizzle SwizzleInstr
}

type AssignInstr struct {
	Dst ValueID
	Src Atom
}

// BinaryInstr applies Op to values of type Operand. With Scaling one side
// is a real and Operand is the vector type.
type BinaryInstr struct {
	Dst     ValueID
	Op      types.BinaryOp
	Operand types.Type
	Scaling bool
	L, R    Atom
}

type UnaryInstr struct {
	Dst ValueID
	Op  types.UnaryOp
	X   Atom
}

// CallInstr has no destination when the callee returns nothing.
type CallInstr struct {
	Dst  ValueID
	Fun  symbols.FunID
	Name string
	Args []Atom
}

type PackInstr struct {
	Dst   ValueID
	Elems []Atom
}

type SwizzleInstr struct {
	Dst   ValueID
	X     Atom
	Lanes []uint8
}

// Dst is the value the instruction defines, if any.
func (in *Instr) Dst() ValueID {
	switch in.Kind {
	case InstrAssign:
		return in.Assign.Dst
	case InstrBinary:
		return in.Binary.Dst
	case InstrUnary:
		return in.Unary.Dst
	case InstrCall:
		return in.Call.Dst
	case InstrPack:
		return in.Pack.Dst
	case InstrSwizzle:
		return in.Swizzle.Dst
	}
	return NoValueID
}

// Uses returns the operands the instruction reads.
func (in *Instr) Uses() []Atom {
	switch in.Kind {
	case InstrAssign:
		return []Atom{in.Assign.Src}
	case InstrBinary:
		return []Atom{in.Binary.L, in.Binary.R}
	case InstrUnary:
		return []Atom{in.Unary.X}
	case InstrCall:
		return in.Call.Args
	case InstrPack:
		return in.Pack.Elems
	case InstrSwizzle:
		return []Atom{in.Swizzle.X}
	}
	return nil
}
