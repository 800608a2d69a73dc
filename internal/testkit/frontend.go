// Package testkit builds compiler fixtures from source strings.
package testkit

import (
	"testing"

	"vecl/internal/ast"
	"vecl/internal/diag"
	"vecl/internal/hir"
	"vecl/internal/lexer"
	"vecl/internal/parser"
	"vecl/internal/sema"
	"vecl/internal/source"
	"vecl/internal/symbols"
	"vecl/internal/thir"
)

// Unit is a source string after name resolution.
type Unit struct {
	Files   *source.FileSet
	File    *source.File
	Builder *ast.Builder
	AST     *ast.File
	Table   *symbols.Table
	HIR     *hir.Module
	Bag     *diag.Bag
}

// Resolve lexes, parses and resolves src. Any diagnostic fails the test.
func Resolve(t testing.TB, src string) *Unit {
	t.Helper()
	u := resolve(src)
	if u.Bag.Len() > 0 {
		t.Fatalf("unexpected diagnostics: %v", u.Bag.Items())
	}
	return u
}

func resolve(src string) *Unit {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.vl", []byte(src))
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	u := &Unit{Files: fs, File: fs.Get(id), Builder: ast.NewBuilder(), Table: symbols.NewTable(), Bag: bag}

	lx := lexer.New(u.File, lexer.Options{Reporter: lexer.ReporterAdapter{Reporter: rep}})
	u.AST = parser.ParseFile(lx, u.Builder, parser.Options{Reporter: rep})
	if !bag.HasErrors() {
		u.HIR = hir.Lower(u.AST, u.Builder, u.Table, rep)
	}
	return u
}

// Infer resolves src and runs inference, returning the result as is.
func Infer(t testing.TB, src string) (sema.Result, *Unit) {
	t.Helper()
	u := Resolve(t, src)
	return sema.Infer(u.HIR, u.Table, sema.Options{Reporter: diag.BagReporter{Bag: u.Bag}}), u
}

// Typed resolves and infers src; inference errors fail the test.
func Typed(t testing.TB, src string) (*thir.Module, *symbols.Table) {
	t.Helper()
	res, u := Infer(t, src)
	if !res.Ok() {
		t.Fatalf("inference failed: %v", res.Errors)
	}
	return res.Module, u.Table
}
