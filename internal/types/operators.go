package types

// BinaryOp enumerates infix operators.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota + 1
	OpSub
	OpMul
	OpDiv
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
)

var binaryNames = [...]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
	OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=", OpEq: "==", OpNe: "!=",
	OpAnd: "and", OpOr: "or",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryNames) && binaryNames[op] != "" {
		return binaryNames[op]
	}
	return "?"
}

// IsArith reports + - * /.
func (op BinaryOp) IsArith() bool { return op >= OpAdd && op <= OpDiv }

// IsRel reports comparisons.
func (op BinaryOp) IsRel() bool { return op >= OpLt && op <= OpNe }

// IsOrdering reports < <= > >=.
func (op BinaryOp) IsOrdering() bool { return op >= OpLt && op <= OpGe }

// IsLogic reports and/or.
func (op BinaryOp) IsLogic() bool { return op == OpAnd || op == OpOr }

// Negate returns the comparison with the opposite outcome.
func (op BinaryOp) Negate() BinaryOp {
	switch op {
	case OpLt:
		return OpGe
	case OpLe:
		return OpGt
	case OpGt:
		return OpLe
	case OpGe:
		return OpLt
	case OpEq:
		return OpNe
	case OpNe:
		return OpEq
	}
	return op
}

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	OpNeg UnaryOp = iota + 1
	OpNot
)

func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpNot:
		return "not"
	}
	return "?"
}

// IsScaling reports a vector combined with a real scalar through * or /.
// Scalar-by-vector is only accepted for multiplication.
func IsScaling(op BinaryOp, l, r Type) bool {
	switch op {
	case OpMul:
		return (l.IsVector() && r == Real) || (l == Real && r.IsVector())
	case OpDiv:
		return l.IsVector() && r == Real
	}
	return false
}

// BinaryResult computes the result type of a fully typed binary operation.
func BinaryResult(op BinaryOp, l, r Type) (Type, bool) {
	if IsScaling(op, l, r) {
		if l.IsVector() {
			return l, true
		}
		return r, true
	}
	if l != r {
		return Invalid, false
	}
	lv := l.Var()
	switch {
	case op == OpAdd || op == OpSub:
		return l, lv.Within(Linear)
	case op == OpMul || op == OpDiv:
		return l, lv.Within(Number)
	case op.IsOrdering():
		return Bool, lv.Within(Scalar)
	case op == OpEq || op == OpNe:
		return Bool, lv.Within(Linear)
	case op.IsLogic():
		return Bool, l == Bool
	}
	return Invalid, false
}

// UnaryResult computes the result type of a unary operation.
func UnaryResult(op UnaryOp, t Type) (Type, bool) {
	switch op {
	case OpNeg:
		return t, t.Var().Within(Linear)
	case OpNot:
		return t, t == Bool
	}
	return Invalid, false
}

// SwizzleClass is the class an operand must belong to for a swizzle whose
// highest component index is maxLane.
func SwizzleClass(maxLane int) TypeVar {
	switch maxLane {
	case 3:
		return Vec4.Var()
	case 2:
		return Vec34
	default:
		return Vec
	}
}

// SwizzleResult is real for one component and vecN otherwise.
func SwizzleResult(n int) Type {
	if n == 1 {
		return Real
	}
	return VecOf(n)
}
