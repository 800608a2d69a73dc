// Package driver runs the front half of the compiler over source files:
// lexing, parsing, name resolution and type inference.
package driver

import (
	"context"
	"fmt"
	"time"

	"vecl/internal/ast"
	"vecl/internal/diag"
	"vecl/internal/hir"
	"vecl/internal/lexer"
	"vecl/internal/observ"
	"vecl/internal/parser"
	"vecl/internal/sema"
	"vecl/internal/source"
	"vecl/internal/symbols"
	"vecl/internal/thir"
	"vecl/internal/trace"
)

// Stage определяет, до какого этапа идёт анализ
type Stage string

const (
	StageSyntax  Stage = "syntax"
	StageResolve Stage = "resolve"
	StageSema    Stage = "sema"
)

// Options содержит опции анализа
type Options struct {
	Stage          Stage
	MaxDiagnostics int
	EnableTimings  bool
	Observer       PhaseObserver
}

// Result holds every artifact the analysis produced. Later artifacts are
// nil when an earlier stage reported errors or the requested stage was
// reached.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Builder *ast.Builder
	AST     *ast.File
	Table   *symbols.Table
	HIR     *hir.Module
	Typed   *thir.Module
	Timer   *observ.Timer
}

// Ok reports whether analysis ran to completion without errors.
func (r *Result) Ok() bool { return r.Typed != nil && !r.Bag.HasErrors() }

// Analyze loads path and analyzes it.
func Analyze(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return analyze(ctx, fs, id, opts), nil
}

// AnalyzeSource analyzes in-memory source registered under name.
func AnalyzeSource(ctx context.Context, name string, src []byte, opts Options) *Result {
	fs := source.NewFileSet()
	return analyze(ctx, fs, fs.AddVirtual(name, src), opts)
}

type phaseRunner struct {
	ctx   context.Context
	tr    trace.Tracer
	timer *observ.Timer
	obs   PhaseObserver
}

func (p *phaseRunner) run(name string, fn func() string) {
	span := trace.Begin(p.tr, trace.ScopePass, name, trace.CurrentSpan(p.ctx))
	idx := -1
	if p.timer != nil {
		idx = p.timer.Begin(name)
	}
	if p.obs != nil {
		p.obs(PhaseEvent{Name: name, Status: PhaseStart})
	}
	start := time.Now()
	note := fn()
	if p.timer != nil {
		p.timer.End(idx, note)
	}
	if p.obs != nil {
		p.obs(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start)})
	}
	span.End(note)
}

func analyze(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *Result {
	if opts.Stage == "" {
		opts.Stage = StageSema
	}
	res := &Result{
		FileSet: fs,
		File:    fs.Get(id),
		Bag:     diag.NewBag(maxDiagnostics(opts.MaxDiagnostics)),
		Builder: ast.NewBuilder(),
		Table:   symbols.NewTable(),
	}
	if opts.EnableTimings {
		res.Timer = observ.NewTimer()
	}
	rep := diag.BagReporter{Bag: res.Bag}
	p := &phaseRunner{ctx: ctx, tr: trace.FromContext(ctx), timer: res.Timer, obs: opts.Observer}

	p.run("parse", func() string {
		lx := lexer.New(res.File, lexer.Options{Reporter: lexer.ReporterAdapter{Reporter: rep}})
		res.AST = parser.ParseFile(lx, res.Builder, parser.Options{Reporter: rep})
		return fmt.Sprintf("items=%d", len(res.AST.Items))
	})
	if opts.Stage == StageSyntax || res.Bag.HasErrors() {
		return finish(res)
	}

	p.run("resolve", func() string {
		res.HIR = hir.Lower(res.AST, res.Builder, res.Table, rep)
		return fmt.Sprintf("funcs=%d", len(res.HIR.Funcs))
	})
	if opts.Stage == StageResolve || res.Bag.HasErrors() {
		return finish(res)
	}

	p.run("infer", func() string {
		inf := sema.Infer(res.HIR, res.Table, sema.Options{Reporter: rep})
		if inf.Ok() {
			res.Typed = inf.Module
		}
		return fmt.Sprintf("errors=%d", len(inf.Errors))
	})
	return finish(res)
}

func finish(res *Result) *Result {
	res.Bag.Sort()
	return res
}

func maxDiagnostics(n int) int {
	if n <= 0 {
		return 100
	}
	return n
}
