package types

import "testing"

var allVars = []TypeVar{
	Int.Var(), Real.Var(), Bool.Var(), Complex.Var(), Vec2.Var(), Vec3.Var(), Vec4.Var(),
	Scalar, Number, Vec34, Vec, Linear, Unknown, None,
}

func TestJoinTable(t *testing.T) {
	cases := []struct {
		a, b TypeVar
		want TypeVar
		ok   bool
	}{
		{Scalar, Real.Var(), Real.Var(), true},
		{Scalar, Complex.Var(), 0, false},
		{Number, Complex.Var(), Complex.Var(), true},
		{Number, Scalar, Scalar, true},
		{Vec, Vec34, Vec34, true},
		{Vec34, Vec2.Var(), 0, false},
		{Linear, Vec, Vec, true},
		{Linear, Bool.Var(), 0, false},
		{Number, Vec, 0, false},
		{Unknown, Bool.Var(), Bool.Var(), true},
		{Unknown, None, None, true},
		{None, Int.Var(), 0, false},
		{Int.Var(), Real.Var(), 0, false},
		{Vec4.Var(), Vec34, Vec4.Var(), true},
	}
	for _, tc := range cases {
		got, ok := Join(tc.a, tc.b)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("Join(%v, %v) = %v, %v; want %v, %v", tc.a, tc.b, got, ok, tc.want, tc.ok)
		}
	}
}

func TestJoinLaws(t *testing.T) {
	for _, a := range allVars {
		if got, ok := Join(a, a); !ok || got != a {
			t.Errorf("Join(%v, %v) not idempotent: %v %v", a, a, got, ok)
		}
		if got, ok := Join(Unknown, a); !ok || got != a {
			t.Errorf("Unknown is not an identity for %v", a)
		}
		for _, b := range allVars {
			ab, okAB := Join(a, b)
			ba, okBA := Join(b, a)
			if okAB != okBA || ab != ba {
				t.Errorf("Join not commutative for %v, %v", a, b)
			}
			if !okAB {
				continue
			}
			for _, c := range allVars {
				l, okL := Join(ab, c)
				bc, okBC := Join(b, c)
				var r TypeVar
				okR := okBC
				if okBC {
					r, okR = Join(a, bc)
				}
				if okL != okR || (okL && l != r) {
					t.Errorf("Join not associative for %v, %v, %v", a, b, c)
				}
			}
		}
	}
}

func TestConcreteAbsorbsClass(t *testing.T) {
	for _, class := range []TypeVar{Scalar, Number, Vec34, Vec, Linear} {
		for ty := Int; ty <= Vec4; ty++ {
			got, ok := Join(class, ty.Var())
			want := ty.Var().Within(class)
			if ok != want {
				t.Errorf("Join(%v, %v) ok=%v, want %v", class, ty, ok, want)
			}
			if ok && got != ty.Var() {
				t.Errorf("Join(%v, %v) = %v", class, ty, got)
			}
		}
	}
}

func TestBinaryResult(t *testing.T) {
	cases := []struct {
		op   BinaryOp
		l, r Type
		want Type
		ok   bool
	}{
		{OpAdd, Int, Int, Int, true},
		{OpAdd, Vec3, Vec3, Vec3, true},
		{OpAdd, Vec3, Vec2, Invalid, false},
		{OpMul, Vec3, Real, Vec3, true},
		{OpMul, Real, Vec4, Vec4, true},
		{OpDiv, Real, Vec4, Invalid, false},
		{OpMul, Vec2, Vec2, Vec2, false},
		{OpMul, Complex, Complex, Complex, true},
		{OpLt, Real, Real, Bool, true},
		{OpLt, Complex, Complex, Bool, false},
		{OpEq, Vec4, Vec4, Bool, true},
		{OpAnd, Bool, Bool, Bool, true},
		{OpAdd, Bool, Bool, Bool, false},
	}
	for _, tc := range cases {
		got, ok := BinaryResult(tc.op, tc.l, tc.r)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("%v %v %v = %v, %v", tc.l, tc.op, tc.r, got, ok)
		}
	}
}
