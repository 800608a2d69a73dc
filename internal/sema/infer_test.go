package sema_test

import (
	"testing"

	"vecl/internal/diag"
	"vecl/internal/sema"
	"vecl/internal/testkit"
	"vecl/internal/thir"
	"vecl/internal/types"
)

func TestCouldNotInferUnconstrainedParam(t *testing.T) {
	res, u := testkit.Infer(t, `fn f(x) { return x; } fn main() {}`)
	if res.Ok() {
		t.Fatal("inference succeeded")
	}
	if len(res.Errors) != 1 {
		t.Fatalf("got %d errors: %v", len(res.Errors), res.Errors)
	}
	e := res.Errors[0]
	if e.Kind != sema.CouldNotInfer || e.Name != "x" {
		t.Fatalf("error = %+v", e)
	}
	if items := u.Bag.Items(); len(items) != 1 || items[0].Code != diag.SemaCouldNotInfer {
		t.Fatalf("reported %v", items)
	}
}

func TestMismatchIsFailFast(t *testing.T) {
	res, _ := testkit.Infer(t, `fn main() {
	let a: real = 1 + true;
	let b: int = 2.0;
}`)
	if len(res.Errors) != 1 || res.Errors[0].Kind != sema.MismatchedTypes {
		t.Fatalf("errors = %v", res.Errors)
	}
	if e := res.Errors[0]; e.Required != types.Int.Var() || e.Got != types.Bool.Var() {
		t.Errorf("mismatch sides = %s / %s", e.Required, e.Got)
	}
	if res.Module != nil {
		t.Error("module produced despite mismatch")
	}
}

func TestUnresolvedAreBatched(t *testing.T) {
	res, _ := testkit.Infer(t, `
fn f(a, b) { let c = a + b; }
fn g(v) { let w = -v; }
fn main() {}`)
	var names []string
	for _, e := range res.Errors {
		if e.Kind != sema.CouldNotInfer {
			t.Fatalf("unexpected %v", e)
		}
		names = append(names, e.Name)
	}
	want := []string{"a", "b", "v", "c", "w"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestParamsInferredFromCallSites(t *testing.T) {
	mod, table := testkit.Typed(t, `
fn scale(v: vec3, k) -> vec3 { return v * k; }
fn keep(x) { let y = x; }
fn main() -> int {
	let p = scale(vec3(1.0, 2.0, 3.0), 0.5);
	keep(2.5);
	printr(p.x);
	return 0;
}`)
	f := mod.Funcs[0]
	if got := mod.VarType(f.Params[0]); got != types.Vec3 {
		t.Errorf("v: %s", got)
	}
	if got := mod.VarType(f.Params[1]); got != types.Real {
		t.Errorf("k: %s", got)
	}
	if got := mod.VarType(mod.Funcs[1].Params[0]); got != types.Real {
		t.Errorf("keep(x) inferred from its call site as %s", got)
	}
	ret := f.Body.Stmts[0].Data.(thir.ReturnData).Value
	bin := ret.Data.(thir.BinaryOpData)
	if !bin.Scaling || bin.Operand != types.Vec3 || ret.Type != types.Vec3 {
		t.Errorf("v * k annotated as %+v, type %s", bin, ret.Type)
	}
	if table.Fun(mod.Main).Name != "main" {
		t.Errorf("main = %d", mod.Main)
	}
}

func TestScalingIsOrderIndependent(t *testing.T) {
	grow := "fn grow(v, s: real) -> vec2 { return v * s; }\n"
	main := "fn main() { let g = grow(vec2(1.0, 2.0), 3.0); printr(g.x); }\n"
	for name, src := range map[string]string{"callee first": grow + main, "caller first": main + grow} {
		t.Run(name, func(t *testing.T) {
			mod, table := testkit.Typed(t, src)
			id, _ := table.LookupFun("grow")
			var f *thir.Func
			for _, fn := range mod.Funcs {
				if fn.ID == id {
					f = fn
				}
			}
			if got := mod.VarType(f.Params[0]); got != types.Vec2 {
				t.Errorf("v: %s", got)
			}
			ret := f.Body.Stmts[0].Data.(thir.ReturnData).Value
			if bin := ret.Data.(thir.BinaryOpData); !bin.Scaling || ret.Type != types.Vec2 {
				t.Errorf("v * s annotated as %+v, type %s", bin, ret.Type)
			}
		})
	}
}

func TestScalingDecidedByResult(t *testing.T) {
	mod, _ := testkit.Typed(t, `
fn f(a, b, c) -> vec2 { return a * b * c; }
fn main() { let k = 2.0; let x = k * 3.0; printr(x); }`)
	f := mod.Funcs[0]
	want := []types.Type{types.Real, types.Real, types.Vec2}
	for i, p := range f.Params {
		if got := mod.VarType(p); got != want[i] {
			t.Errorf("param %d: %s, want %s", i, got, want[i])
		}
	}
	outer := f.Body.Stmts[0].Data.(thir.ReturnData).Value.Data.(thir.BinaryOpData)
	if !outer.Scaling || outer.Left.Data.(thir.BinaryOpData).Scaling {
		t.Errorf("scaling flags: outer %v inner %v", outer.Scaling, outer.Left.Data.(thir.BinaryOpData).Scaling)
	}
}

func TestReturnOfVoidCall(t *testing.T) {
	mod, _ := testkit.Typed(t, `fn g() { printi(1); } fn f() { return g(); } fn main() { f(); }`)
	ret := mod.Funcs[1].Body.Stmts[0].Data.(thir.ReturnData)
	if ret.Value == nil || ret.Value.Kind != thir.ExprCall || ret.Value.Type != types.Invalid {
		t.Fatalf("return value = %+v", ret.Value)
	}
}

func TestAmbiguousClassesNarrowToConcrete(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want types.Type
	}{
		{"ordering", `fn main() { let a = 1; let b = a; if b < 3 {} }`, types.Int},
		{"swizzle w", `fn main() { let v = vec4(1.0, 2.0, 3.0, 4.0); let u = v; printr(u.w); }`, types.Vec4},
		{"complex", `fn main() { let c = complex(1.0, 0.0); let d = c * 2.0i; }`, types.Complex},
		{"negate", `fn main() { let r = 1.5; let n = -r; }`, types.Real},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mod, _ := testkit.Typed(t, tc.src)
			var last thir.LetData
			mod.Funcs[0].Body.Walk(func(s *thir.Stmt) {
				if d, ok := s.Data.(thir.LetData); ok {
					last = d
				}
			})
			if got := mod.VarType(last.Var); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRelationalResultDoesNotLeakIntoOperands(t *testing.T) {
	mod, _ := testkit.Typed(t, `fn main() { let a = 1.0; let b = a; let c = a == b; }`)
	st := mod.Funcs[0].Body.Stmts
	c := st[2].Data.(thir.LetData)
	if mod.VarType(c.Var) != types.Bool || mod.VarType(st[0].Data.(thir.LetData).Var) != types.Real {
		t.Fatalf("types: c=%s", mod.VarType(c.Var))
	}
	if op := c.Value.Data.(thir.BinaryOpData).Operand; op != types.Real {
		t.Errorf("== operand type %s", op)
	}
}

func TestMismatchCases(t *testing.T) {
	cases := map[string]string{
		"vec arity":     `fn main() { let a = vec2(1.0, 2.0) + vec3(1.0, 2.0, 3.0); }`,
		"bool arith":    `fn main() { let a = true + false; }`,
		"ordering vec":  `fn main() { let a = vec2(1.0, 2.0) < vec2(0.0, 0.0); }`,
		"scalar div":    `fn main() { let a = 2.0 / vec2(1.0, 2.0); }`,
		"swizzle vec2":  `fn main() { let v = vec2(1.0, 2.0); printr(v.z); }`,
		"return void":   `fn f() { return 1; } fn main() {}`,
		"bare return":   `fn f() -> int { return; } fn main() {}`,
		"bad argument":  `fn main() { printi(1.0); }`,
		"cond not bool": `fn main() { if 1 {} }`,
		"vec mul vec":   `fn main() { let a = vec2(1.0, 2.0) * vec2(1.0, 2.0); }`,
		"int pack":      `fn main() { let a = vec2(1, 2); }`,
		"param clash":   `fn f(x) {} fn main() { f(1); f(1.0); }`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			res, _ := testkit.Infer(t, src)
			if len(res.Errors) != 1 || res.Errors[0].Kind != sema.MismatchedTypes {
				t.Fatalf("errors = %v", res.Errors)
			}
		})
	}
}

func TestConstantsAreEvaluated(t *testing.T) {
	mod, _ := testkit.Typed(t, `
const A = 6;
const B: int = A * 7;
const V = vec2(1.5, 2.0) * 2.0;
fn main() -> int { return B; }`)
	if len(mod.Consts) != 3 {
		t.Fatalf("consts = %d", len(mod.Consts))
	}
	if v := mod.Consts[1].Value; v.Type != types.Int || v.I != 42 {
		t.Errorf("B = %v", v)
	}
	if v := mod.Consts[2].Value; v.Type != types.Vec2 || v.F[0] != 3 || v.F[1] != 4 {
		t.Errorf("V = %v", v)
	}
}

func TestConstDivisionByZero(t *testing.T) {
	res, _ := testkit.Infer(t, `const Z = 1 / 0; fn main() {}`)
	if len(res.Errors) != 1 || res.Errors[0].Kind != sema.ConstEvalFailed || res.Errors[0].Name != "Z" {
		t.Fatalf("errors = %v", res.Errors)
	}
}
