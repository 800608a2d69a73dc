package parser

import (
	"fmt"
	"strings"
	"testing"

	"vecl/internal/ast"
	"vecl/internal/diag"
	"vecl/internal/lexer"
	"vecl/internal/source"
)

func parse(t *testing.T, src string) (*ast.File, *ast.Builder, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.vl", []byte(src))
	bag := diag.NewBag(20)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: lexer.ReporterAdapter{Reporter: rep}})
	b := ast.NewBuilder()
	return ParseFile(lx, b, Options{Reporter: rep}), b, bag
}

// sexpr renders an expression with explicit grouping.
func sexpr(b *ast.Builder, id ast.ExprID) string {
	e := b.Expr(id)
	switch e.Kind {
	case ast.ExprIdent:
		return e.Name
	case ast.ExprLit:
		return e.Lit.Text
	case ast.ExprGroup:
		return sexpr(b, e.X)
	case ast.ExprUnary:
		return fmt.Sprintf("(%s %s)", e.Unary, sexpr(b, e.X))
	case ast.ExprBinary:
		return fmt.Sprintf("(%s %s %s)", e.Binary, sexpr(b, e.X), sexpr(b, e.Y))
	case ast.ExprSwizzle:
		return fmt.Sprintf("%s.%s", sexpr(b, e.X), e.Name)
	case ast.ExprCall:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = sexpr(b, a)
		}
		return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, " "))
	}
	return "?"
}

func TestExpressionPrecedence(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3":               "(+ 1 (* 2 3))",
		"(1 + 2) * 3":             "(* (+ 1 2) 3)",
		"a - b - c":               "(- (- a b) c)",
		"-a * b":                  "(* (- a) b)",
		"a < b and not c or d":    "(or (and (< a b) (not c)) d)",
		"a == b != c":             "(!= (== a b) c)",
		"v.xy * 2.0":              "(* v.xy 2.0)",
		"f(1, g(x)).z + 2i":       "(+ f(1 g(x)).z 2i)",
		"vec3(1.0, 2.0, 3.0).zyx": "vec3(1.0 2.0 3.0).zyx",
	}
	for src, want := range cases {
		file, b, bag := parse(t, "const C = "+src+";")
		if bag.Len() != 0 {
			t.Fatalf("%q: %v", src, bag.Items())
		}
		if got := sexpr(b, file.Items[0].Value); got != want {
			t.Errorf("%q: got %s, want %s", src, got, want)
		}
	}
}

func TestParseFunction(t *testing.T) {
	src := `
fn add(a: int, b) -> int {
	let c = a + b;
	if c > 10 { c = 10; } else if c < 0 { c = 0; } else { printi(c); }
	while c > 0 { c = c - 1; if c == 5 { break; } continue; }
	return c;
}
fn main() { add(1, 2); return; }
`
	file, b, bag := parse(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(file.Items) != 2 {
		t.Fatalf("items = %d", len(file.Items))
	}
	fn := file.Items[0]
	if fn.Name != "add" || len(fn.Params) != 2 || fn.Params[0].Type.Name != "int" || fn.Params[1].Type.Present() {
		t.Fatalf("bad signature: %+v", fn)
	}
	if fn.Result.Name != "int" || len(fn.Body) != 4 {
		t.Fatalf("bad body: %d stmts", len(fn.Body))
	}
	ifStmt := b.Stmt(fn.Body[1])
	if ifStmt.Kind != ast.StmtIf || len(ifStmt.Else) != 1 || b.Stmt(ifStmt.Else[0]).Kind != ast.StmtIf {
		t.Fatal("else-if chain not nested")
	}
	ret := b.Stmt(file.Items[1].Body[1])
	if ret.Kind != ast.StmtReturn || ret.Value.IsValid() {
		t.Fatal("bare return expected")
	}
}

func TestRecoveryReportsAndContinues(t *testing.T) {
	src := `
fn main() {
	let = 3;
	x + 1;
	let y = 2
	printi(y);
}
fn other() {}
`
	file, _, bag := parse(t, src)
	codes := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	want := []diag.Code{diag.SynExpectIdentifier, diag.SynExpressionStmt, diag.SynExpectSemicolon}
	if len(codes) != len(want) {
		t.Fatalf("codes = %v", codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes = %v", codes)
		}
	}
	if len(file.Items) != 2 {
		t.Fatalf("items = %d", len(file.Items))
	}
}

func TestBadSwizzle(t *testing.T) {
	_, _, bag := parse(t, "const C = v.xq;")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SynBadSwizzle {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
}
