package mir_test

import (
	"context"
	"strings"
	"testing"

	"vecl/internal/mir"
	"vecl/internal/testkit"
	"vecl/internal/types"
	"vecl/internal/value"
)

func lower(t *testing.T, src string) *mir.Module {
	t.Helper()
	typed, table := testkit.Typed(t, src)
	m := mir.LowerModule(context.Background(), typed, table)
	if err := mir.Validate(m); err != nil {
		var sb strings.Builder
		_ = mir.DumpModule(&sb, m, mir.DumpOptions{})
		t.Fatalf("invalid MIR: %v\n%s", err, sb.String())
	}
	return m
}

func fn(t *testing.T, m *mir.Module, name string) *mir.Func {
	t.Helper()
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("no function %q", name)
	return nil
}

func allInstrs(f *mir.Func) []mir.Instr {
	var out []mir.Instr
	for i := range f.Blocks {
		out = append(out, f.Blocks[i].Instrs...)
	}
	return out
}

func TestStraightLineFolds(t *testing.T) {
	m := lower(t, `fn f() -> int { return 1 + 2; } fn main() {}`)
	f := fn(t, m, "f")
	if len(f.Blocks) != 1 || len(f.Blocks[0].Instrs) != 0 {
		t.Fatalf("blocks=%d instrs=%d", len(f.Blocks), len(allInstrs(f)))
	}
	ret := f.Blocks[0].Term
	if ret.Kind != mir.TermReturn || !ret.Return.Value.IsLit() || ret.Return.Value.Lit != value.Int(3) {
		t.Fatalf("terminator = %+v", ret)
	}
}

func TestFoldingMatchesEvaluation(t *testing.T) {
	cases := []struct {
		src  string
		want value.Value
	}{
		{`fn f() -> int { return (2 + 3) * 4 - 6 / 2; } fn main() {}`, value.Int(17)},
		{`fn f() -> real { return 1.5 * 2.0 - 0.25; } fn main() {}`, value.Real(2.75)},
		{`fn f() -> vec3 { return vec3(1.0, 2.0, 3.0) * 2.0 + vec3(0.5, 0.5, 0.5); } fn main() {}`,
			value.Vector(2.5, 4.5, 6.5)},
		{`fn f() -> complex { return complex(1.0, 2.0) * complex(3.0, -1.0); } fn main() {}`,
			value.Complex(5, 5)},
		{`fn f() -> bool { return not (1 < 2) or 3.0 == 3.0; } fn main() {}`, value.Bool(true)},
		{`fn f() -> vec2 { return vec4(1.0, 2.0, 3.0, 4.0).wy; } fn main() {}`, value.Vector(4, 2)},
		{`const K = 10; fn f() -> int { return K * K; } fn main() {}`, value.Int(100)},
	}
	for _, tc := range cases {
		m := lower(t, tc.src)
		f := fn(t, m, "f")
		if n := len(allInstrs(f)); n != 0 {
			t.Errorf("%s: %d instructions emitted", tc.src, n)
			continue
		}
		got := f.Blocks[len(f.Blocks)-1].Term.Return.Value
		if !got.IsLit() || got.Lit.Bits() != tc.want.Bits() || got.Lit.Type != tc.want.Type {
			t.Errorf("%s: returned %v, want %v", tc.src, got, tc.want)
		}
	}
}

func TestDivisionByZeroIsNotFolded(t *testing.T) {
	m := lower(t, `fn f() -> int { return 1 / 0; } fn main() {}`)
	ins := allInstrs(fn(t, m, "f"))
	if len(ins) != 1 || ins[0].Kind != mir.InstrBinary || ins[0].Binary.Op != types.OpDiv {
		t.Fatalf("instrs = %+v", ins)
	}
}

func TestIfMergeInsertsPhi(t *testing.T) {
	m := lower(t, `
fn f(cond: bool) -> int {
	let a: int = 0;
	if cond { a = 1; } else { a = 2; }
	return a;
}
fn main() {}`)
	f := fn(t, m, "f")
	if len(f.Phis) != 1 {
		t.Fatalf("phis = %+v", f.Phis)
	}
	phi := f.Phis[0]

	// the arms each end with the assignment bound to a
	var armDefs []mir.ValueID
	for i := range f.Blocks {
		b := &f.Blocks[i]
		name := m.LabelName(b.Label)
		if strings.HasSuffix(name, "_then") || strings.HasSuffix(name, "_else") {
			armDefs = append(armDefs, b.Instrs[len(b.Instrs)-1].Dst())
		}
	}
	if len(armDefs) != 2 || phi.Branches[0] != armDefs[0] || phi.Branches[1] != armDefs[1] {
		t.Fatalf("phi branches %v, arm values %v", phi.Branches, armDefs)
	}
	ret := f.Blocks[len(f.Blocks)-1].Term.Return.Value
	if ret.ID != phi.Dst {
		t.Fatalf("return reads %s, want phi %s", ret, phi.Dst)
	}
	if !strings.HasSuffix(m.LabelName(phi.Label), "_endif") {
		t.Errorf("phi placed at %s", m.LabelName(phi.Label))
	}
}

func TestIfWithoutElseMergesParentValue(t *testing.T) {
	m := lower(t, `
fn f(cond: bool) -> int {
	let a = 5;
	if cond { a = a * 2; }
	return a;
}
fn main() {}`)
	f := fn(t, m, "f")
	if len(f.Phis) != 1 {
		t.Fatalf("phis = %+v", f.Phis)
	}
	pre := f.Blocks[0].Instrs[0].Dst()
	if f.Phis[0].Branches[1] != pre {
		t.Errorf("else branch is %s, want pre-if value %s", f.Phis[0].Branches[1], pre)
	}
}

func TestDivergingArmNeedsNoPhi(t *testing.T) {
	m := lower(t, `
fn f(cond: bool) -> int {
	let a = 1;
	if cond { a = 2; return a; } else { a = 3; }
	return a;
}
fn main() {}`)
	f := fn(t, m, "f")
	if len(f.Phis) != 0 {
		t.Fatalf("phis = %+v", f.Phis)
	}
}

func TestWhileLoopCarriedPhi(t *testing.T) {
	m := lower(t, `
fn f(cond: bool) -> int {
	let a: int = 0;
	while cond { a = a + 1; }
	return a;
}
fn main() {}`)
	f := fn(t, m, "f")
	if len(f.Phis) != 1 {
		t.Fatalf("phis = %+v", f.Phis)
	}
	phi := f.Phis[0]
	pre := f.Blocks[0].Instrs[0].Dst()

	var add *mir.BinaryInstr
	var endOfBody mir.ValueID
	for i := range f.Blocks {
		b := &f.Blocks[i]
		if strings.HasSuffix(m.LabelName(b.Label), "_body") {
			add = &b.Instrs[0].Binary
			endOfBody = b.Instrs[len(b.Instrs)-1].Dst()
		}
	}
	if add == nil {
		t.Fatal("no loop body")
	}
	if len(phi.Branches) != 2 || phi.Branches[0] != pre || phi.Branches[1] != endOfBody {
		t.Fatalf("phi branches %v, want [%s %s]", phi.Branches, pre, endOfBody)
	}
	if add.L.ID != phi.Dst {
		t.Errorf("a + 1 reads %s, want phi %s", add.L, phi.Dst)
	}
	if ret := f.Blocks[len(f.Blocks)-1].Term.Return.Value; ret.ID != phi.Dst {
		t.Errorf("return reads %s", ret)
	}
}

func TestBreakAndContinueEdges(t *testing.T) {
	m := lower(t, `
fn main() -> int {
	let i = 0;
	let s = 0;
	while i < 10 {
		i = i + 1;
		if i == 5 { continue; }
		if i == 8 { break; }
		s = s + i;
	}
	return s;
}`)
	f := fn(t, m, "main")
	var header, exit int
	for _, p := range f.Phis {
		switch name := m.LabelName(p.Label); {
		case strings.HasSuffix(name, "_while"):
			header++
			if len(p.Branches) != 3 {
				t.Errorf("header phi %s has %d branches", p.Dst, len(p.Branches))
			}
		case strings.HasSuffix(name, "_endwhile"):
			exit++
			if len(p.Branches) != 2 {
				t.Errorf("exit phi %s has %d branches", p.Dst, len(p.Branches))
			}
		}
	}
	if header != 2 || exit != 2 {
		t.Fatalf("header phis %d, exit phis %d", header, exit)
	}
}

func TestShortCircuitConditions(t *testing.T) {
	m := lower(t, `
fn f(a: int, b: int) -> int {
	if a < b and not (b == 3 or a > 7) { return 1; }
	return 0;
}
fn main() {}`)
	f := fn(t, m, "f")
	ifs := 0
	for i := range f.Blocks {
		if f.Blocks[i].Term.Kind == mir.TermIf {
			ifs++
			if next := &f.Blocks[i+1]; next.Label.IsValid() || next.Term.Kind != mir.TermGoto {
				t.Errorf("branch in block %d is not followed by its false edge", i)
			}
		}
	}
	if ifs != 3 {
		t.Fatalf("got %d conditional branches, want 3", ifs)
	}
	if n := len(allInstrs(f)); n != 0 {
		t.Errorf("conditions materialised %d instructions", n)
	}
}

func TestSingleDefinitionAndGlobalLabels(t *testing.T) {
	m := lower(t, `
fn g(x: int) -> int {
	let y = x;
	while y > 0 { if y > 5 { y = y - 2; } else { y = y - 1; } }
	return y;
}
fn main() -> int {
	let z = 3;
	if z > 1 { z = g(z); }
	return z;
}`)
	defs := map[mir.ValueID]string{}
	owner := map[mir.LabelID]string{}
	var maxG, minMain mir.LabelID
	for _, f := range m.Funcs {
		check := func(id mir.ValueID) {
			if !id.IsValid() {
				return
			}
			if prev, dup := defs[id]; dup {
				t.Errorf("%s defined in %s and %s", id, prev, f.Name)
			}
			defs[id] = f.Name
		}
		for _, a := range f.Args {
			check(a)
		}
		for _, p := range f.Phis {
			check(p.Dst)
		}
		for _, in := range allInstrs(f) {
			check(in.Dst())
		}
		for i := range f.Blocks {
			l := f.Blocks[i].Label
			if !l.IsValid() {
				continue
			}
			if prev, dup := owner[l]; dup {
				t.Errorf("label %s used by %s and %s", m.LabelName(l), prev, f.Name)
			}
			owner[l] = f.Name
			switch f.Name {
			case "g":
				maxG = max(maxG, l)
			case "main":
				if minMain == 0 || l < minMain {
					minMain = l
				}
			}
		}
	}
	if minMain <= maxG {
		t.Errorf("label counter restarted: main starts at %d, g ends at %d", minMain, maxG)
	}
}

func TestReturnOfVoidCall(t *testing.T) {
	m := lower(t, `fn g() { printi(1); } fn f() { return g(); } fn main() { f(); }`)
	f := fn(t, m, "f")
	var calls int
	for _, in := range allInstrs(f) {
		if in.Kind == mir.InstrCall && in.Call.Name == "g" {
			calls++
			if in.Call.Dst.IsValid() {
				t.Errorf("void call defines %s", in.Call.Dst)
			}
		}
	}
	if calls != 1 {
		t.Fatalf("g called %d times", calls)
	}
	last := f.Blocks[len(f.Blocks)-1].Term
	if last.Kind != mir.TermReturn || last.Return.HasValue {
		t.Fatalf("terminator = %+v", last)
	}
}

func TestDumpModule(t *testing.T) {
	m := lower(t, `const C = 2.5; fn main() -> int { let a = 1; while a < 4 { a = a + 1; } printr(C); return a; }`)
	var sb strings.Builder
	if err := mir.DumpModule(&sb, m, mir.DumpOptions{Types: true}); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{"const %1: real = 2.5", "fn main() -> int {", "= phi [", "call printr(%1)", "goto L"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump lacks %q:\n%s", want, out)
		}
	}
}
