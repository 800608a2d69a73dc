package value

import (
	"math"
	"testing"

	"vecl/internal/types"
)

func TestBinaryFolding(t *testing.T) {
	cases := []struct {
		name string
		op   types.BinaryOp
		l, r Value
		want Value
	}{
		{"int add", types.OpAdd, Int(2), Int(3), Int(5)},
		{"int div truncates", types.OpDiv, Int(-7), Int(2), Int(-3)},
		{"real mul", types.OpMul, Real(1.5), Real(2), Real(3)},
		{"vec add", types.OpAdd, Vector(1, 2, 3), Vector(4, 5, 6), Vector(5, 7, 9)},
		{"vec scale", types.OpMul, Real(2), Vector(1, 2), Vector(2, 4)},
		{"vec div", types.OpDiv, Vector(2, 4, 6, 8), Real(2), Vector(1, 2, 3, 4)},
		{"complex mul", types.OpMul, Complex(1, 2), Complex(3, 4), Complex(-5, 10)},
		{"complex div", types.OpDiv, Complex(-5, 10), Complex(3, 4), Complex(1, 2)},
		{"int lt", types.OpLt, Int(1), Int(2), Bool(true)},
		{"vec eq", types.OpEq, Vector(1, 2, 3), Vector(1, 2, 3), Bool(true)},
		{"vec ne", types.OpNe, Vector(1, 2, 3), Vector(1, 2, 4), Bool(true)},
		{"and", types.OpAnd, Bool(true), Bool(false), Bool(false)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Binary(tc.op, tc.l, tc.r)
			if !ok {
				t.Fatal("not folded")
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBinaryRefusesTraps(t *testing.T) {
	if _, ok := Binary(types.OpDiv, Int(1), Int(0)); ok {
		t.Fatal("division by zero folded")
	}
	if _, ok := Binary(types.OpDiv, Int(math.MinInt64), Int(-1)); ok {
		t.Fatal("MinInt64 / -1 folded")
	}
	if _, ok := Binary(types.OpAdd, Int(1), Bool(true)); ok {
		t.Fatal("ill-typed operands folded")
	}
}

func TestNaNComparisons(t *testing.T) {
	nan := Real(float32(math.NaN()))
	if got, _ := Binary(types.OpEq, nan, nan); got.AsBool() {
		t.Fatal("NaN == NaN")
	}
	if got, _ := Binary(types.OpNe, nan, nan); !got.AsBool() {
		t.Fatal("NaN != NaN should hold")
	}
}

func TestUnaryAndSwizzle(t *testing.T) {
	neg, _ := Unary(types.OpNeg, Real(0))
	if math.Float32bits(neg.F[0]) != 0x80000000 {
		t.Fatalf("-0.0 bits = %#x", math.Float32bits(neg.F[0]))
	}
	if got, _ := Unary(types.OpNot, Bool(false)); !got.AsBool() {
		t.Fatal("not false")
	}
	if got := Swizzle(Vector(1, 2, 3, 4), []uint8{3, 0}); got != Vector(4, 1) {
		t.Fatalf("swizzle = %v", got)
	}
	if got := Swizzle(Vector(1, 2), []uint8{1}); got != Real(2) {
		t.Fatalf("swizzle = %v", got)
	}
}

func TestBitsDistinguishTypes(t *testing.T) {
	if Real(1).Bits() == Int(1).Bits() {
		t.Fatal("real 1.0 and int 1 share bits")
	}
	if Vector(1, 2).Bits() != Complex(1, 2).Bits() {
		t.Fatal("same lanes should share bits")
	}
	if Int(-1).Bits()[0] != math.MaxUint64 {
		t.Fatal("int bits")
	}
}

func TestString(t *testing.T) {
	cases := map[string]Value{
		"42":                  Int(42),
		"true":                Bool(true),
		"1.5":                 Real(1.5),
		"2.0":                 Real(2),
		"complex(1.0, -2.0)":  Complex(1, -2),
		"vec3(1.0, 0.5, 3.0)": Vector(1, 0.5, 3),
	}
	for want, v := range cases {
		if got := v.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
