package hir

import (
	"slices"
	"testing"

	"vecl/internal/ast"
	"vecl/internal/diag"
	"vecl/internal/lexer"
	"vecl/internal/parser"
	"vecl/internal/source"
	"vecl/internal/symbols"
	"vecl/internal/types"
)

func lower(t *testing.T, src string) (*Module, *symbols.Table, []diag.Code) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.vl", []byte(src))
	bag := diag.NewBag(50)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: lexer.ReporterAdapter{Reporter: rep}})
	b := ast.NewBuilder()
	file := parser.ParseFile(lx, b, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	table := symbols.NewTable()
	m := Lower(file, b, table, rep)
	codes := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	return m, table, codes
}

func TestLowerResolvesScopes(t *testing.T) {
	m, table, codes := lower(t, `
const K = 2;
fn twice(x: int) -> int { return x * K; }
fn main() -> int {
	let x = 1;
	if x < 2 { let x = twice(x); printi(x); } else { x = 3; }
	return x;
}`)
	if len(codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", codes)
	}
	if len(m.Consts) != 1 || len(m.Funcs) != 2 {
		t.Fatalf("got %d consts, %d funcs", len(m.Consts), len(m.Funcs))
	}
	if table.Fun(m.Main).Name != "main" {
		t.Fatalf("main resolved to %q", table.Fun(m.Main).Name)
	}

	body := m.Funcs[1].Body.Stmts
	outer := body[0].Data.(LetData).Var
	ifs := body[1].Data.(IfData)
	inner := ifs.Then.Stmts[0].Data.(LetData)
	if inner.Var == outer {
		t.Fatalf("shadowing let reused the outer var")
	}
	call := inner.Value.Data.(CallData)
	if arg := call.Args[0].Data.(VarRefData).Var; arg != outer {
		t.Errorf("initializer should see outer x, got var %d", arg)
	}
	if assigned := ifs.Else.Stmts[0].Data.(AssignData).Var; assigned != outer {
		t.Errorf("else assigns var %d, want %d", assigned, outer)
	}
	if ret := body[2].Data.(ReturnData).Value.Data.(VarRefData).Var; ret != outer {
		t.Errorf("return reads var %d, want %d", ret, outer)
	}
	if k := m.Funcs[0].Body.Stmts[0].Data.(ReturnData).Value.Data.(BinaryOpData).Right; k.Kind != ExprVarRef ||
		table.Var(k.Data.(VarRefData).Var).Kind != symbols.VarConst {
		t.Errorf("K should resolve to the constant")
	}
}

func TestLowerConstructorsAndLiterals(t *testing.T) {
	m, _, codes := lower(t, `fn main() {
	let v = vec3(1.0, 2.0, 3.0);
	let c = complex(1.0, 2.0) + 2.5i;
	let s = v.zx;
	let n = 1_000;
}`)
	if len(codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", codes)
	}
	st := m.Funcs[0].Body.Stmts
	pack := st[0].Data.(LetData).Value.Data.(PackData)
	if pack.Type != types.Vec3 || len(pack.Elems) != 3 {
		t.Errorf("vec3 pack = %+v", pack)
	}
	imag := st[1].Data.(LetData).Value.Data.(BinaryOpData).Right.Data.(LiteralData).Value
	if imag.Type != types.Complex || imag.F[0] != 0 || imag.F[1] != 2.5 {
		t.Errorf("imaginary literal = %v", imag)
	}
	sw := st[2].Data.(LetData).Value.Data.(SwizzleData)
	if !slices.Equal(sw.Lanes, []uint8{2, 0}) || sw.MaxLane() != 2 {
		t.Errorf("swizzle lanes = %v", sw.Lanes)
	}
	if n := st[3].Data.(LetData).Value.Data.(LiteralData).Value; n.I != 1000 {
		t.Errorf("int literal = %v", n)
	}
}

func TestLowerDiagnostics(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want diag.Code
	}{
		{"missing main", `fn f() {}`, diag.SemaMissingMain},
		{"unknown name", `fn main() { printi(y); }`, diag.SemaUnresolvedSymbol},
		{"unknown type", `fn main() { let x: mat4 = 1; }`, diag.SemaUnresolvedSymbol},
		{"duplicate fn", `fn f() {} fn f() {} fn main() {}`, diag.SemaDuplicateSymbol},
		{"builtin redeclared", `fn printi(x: int) {} fn main() {}`, diag.SemaDuplicateSymbol},
		{"duplicate let", `fn main() { let a = 1; let a = 2; }`, diag.SemaDuplicateSymbol},
		{"arity", `fn f(a: int) {} fn main() { f(1, 2); }`, diag.SemaArityMismatch},
		{"ctor arity", `fn main() { let v = vec4(1.0, 2.0); }`, diag.SemaArityMismatch},
		{"main params", `fn main(x: int) {}`, diag.SemaArityMismatch},
		{"call variable", `fn main() { let a = 1; a(2); }`, diag.SemaNotCallable},
		{"assign const", `const C = 1; fn main() { C = 2; }`, diag.SemaNotAssignable},
		{"break outside", `fn main() { break; }`, diag.SemaLoopControlOutside},
		{"call in const", `fn f() -> int { return 1; } const C = f(); fn main() {}`, diag.SemaConstNotConstant},
		{"fn as value", `fn f() {} fn main() { let g = f; }`, diag.SemaFunctionAsValue},
		{"const forward ref", `const A = B; const B = 1; fn main() {}`, diag.SemaUnresolvedSymbol},
		{"int overflow", `fn main() { let a = 99999999999999999999; }`, diag.LexBadNumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, codes := lower(t, tc.src)
			if !slices.Contains(codes, tc.want) {
				t.Fatalf("codes = %v, want %v", codes, tc.want)
			}
		})
	}
}

func TestLowerLoopControlInsideWhile(t *testing.T) {
	m, _, codes := lower(t, `fn main() { while true { if false { continue; } break; } }`)
	if len(codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", codes)
	}
	w := m.Funcs[0].Body.Stmts[0].Data.(WhileData)
	if got := w.Body.Stmts[1].Kind; got != StmtBreak {
		t.Errorf("second body stmt = %v, want Break", got)
	}
}
