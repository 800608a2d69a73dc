package symbols

import (
	"testing"

	"vecl/internal/types"
)

func TestBuiltinsPredeclared(t *testing.T) {
	tab := NewTable()
	cases := []struct {
		name  string
		param types.Type
		b     Builtin
	}{
		{"printi", types.Int, BuiltinPrintInt},
		{"printr", types.Real, BuiltinPrintReal},
		{"printb", types.Bool, BuiltinPrintBool},
	}
	for _, tc := range cases {
		id, ok := tab.LookupFun(tc.name)
		if !ok {
			t.Fatalf("%s missing", tc.name)
		}
		f := tab.Fun(id)
		if f.Builtin != tc.b || f.ResultVar() != types.None {
			t.Fatalf("%s: %+v", tc.name, f)
		}
		if pt := tab.ParamTypes(id); len(pt) != 1 || pt[0] != tc.param.Var() {
			t.Fatalf("%s params = %v", tc.name, pt)
		}
	}
}

func TestIdsAreNeverReused(t *testing.T) {
	tab := NewTable()
	a := tab.NewVar(Var{Name: "x", Kind: VarLocal})
	b := tab.NewVar(Var{Name: "x", Kind: VarLocal})
	if a == b || !a.IsValid() {
		t.Fatalf("ids %d %d", a, b)
	}
	if tab.Var(a).DeclaredVar() != types.Unknown {
		t.Fatal("undeclared var should seed Unknown")
	}
	f1 := tab.NewFun(Fun{Name: "f"})
	f2 := tab.NewFun(Fun{Name: "f"})
	if got, _ := tab.LookupFun("f"); got != f1 || f1 == f2 {
		t.Fatal("first declaration must win the name index")
	}
}

func TestScopeShadowing(t *testing.T) {
	outer := NewScope(ScopeFunction, nil)
	inner := NewScope(ScopeBlock, outer)
	outer.Declare("x", 1)
	inner.Declare("x", 2)
	if id, _ := inner.Lookup("x"); id != 2 {
		t.Fatalf("inner x = %d", id)
	}
	if id, _ := outer.Lookup("x"); id != 1 {
		t.Fatalf("outer x = %d", id)
	}
	if _, dup := outer.Declare("x", 3); !dup {
		t.Fatal("redeclaration not detected")
	}
	if _, ok := inner.Lookup("y"); ok {
		t.Fatal("unexpected y")
	}
}
