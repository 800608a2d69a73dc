// Package buildpipeline orchestrates the compilation process.
package buildpipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"vecl/internal/backend/amd64"
	"vecl/internal/driver"
	"vecl/internal/mir"
	"vecl/internal/trace"
)

// ErrDiagnostics is returned when the source has errors. The diagnostics
// themselves are in CompileResult.Analysis.Bag.
var ErrDiagnostics = errors.New("diagnostics reported errors")

// CompileRequest configures the shared compilation pipeline.
type CompileRequest struct {
	TargetPath     string
	MaxDiagnostics int
	Jobs           int               // parallel function emission
	Cache          *driver.DiskCache // optional
	Version        string            // part of the cache key
	Progress       ProgressSink
}

// CompileResult captures compilation artefacts and stage timings.
type CompileResult struct {
	Analysis *driver.Result
	MIR      *mir.Module // nil on a cache hit
	Asm      []byte
	CacheHit bool
	CacheErr error // a failed cache write does not fail the compilation
	Timings  Timings
}

// Compile analyzes, lowers and emits assembly for one source file.
func Compile(ctx context.Context, req *CompileRequest) (CompileResult, error) {
	var result CompileResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, errors.New("missing compile request")
	}
	if req.TargetPath == "" {
		return result, errors.New("missing target path")
	}
	file := req.TargetPath
	emitQueued(req.Progress, file)

	phases := &phaseObserver{sink: req.Progress, file: file}
	res, err := driver.Analyze(ctx, req.TargetPath, driver.Options{
		MaxDiagnostics: req.MaxDiagnostics,
		EnableTimings:  true,
		Observer:       phases.OnPhase,
	})
	if err != nil {
		emitStage(req.Progress, file, StageParse, StatusError, err, 0)
		return result, err
	}
	result.Analysis = res
	recordAnalysisTimings(&result, res)
	if !res.Ok() {
		emitStage(req.Progress, file, StageDiagnose, StatusError, ErrDiagnostics, 0)
		return result, ErrDiagnostics
	}
	emitStage(req.Progress, file, StageDiagnose, StatusDone, nil, result.Timings.Duration(StageDiagnose))

	key := driver.CacheKey(res.File.Hash, req.Version)
	if req.Cache != nil {
		var unit driver.CachedUnit
		if ok, cacheErr := req.Cache.Get(key, &unit); cacheErr == nil && ok {
			result.Asm = unit.Asm
			result.CacheHit = true
			emitStage(req.Progress, file, StageLower, StatusDone, nil, 0)
			emitStage(req.Progress, file, StageEmit, StatusDone, nil, 0)
			return result, nil
		}
	}

	emitStage(req.Progress, file, StageLower, StatusWorking, nil, 0)
	lowerStart := time.Now()
	mod, err := Lower(ctx, res)
	if err != nil {
		emitStage(req.Progress, file, StageLower, StatusError, err, 0)
		return result, err
	}
	result.MIR = mod
	result.Timings.Set(StageLower, time.Since(lowerStart))
	emitStage(req.Progress, file, StageLower, StatusDone, nil, result.Timings.Duration(StageLower))

	emitStage(req.Progress, file, StageEmit, StatusWorking, nil, 0)
	emitStart := time.Now()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "emit", trace.CurrentSpan(ctx))
	var buf bytes.Buffer
	err = amd64.EmitModule(&buf, mod, amd64.Options{Jobs: req.Jobs})
	span.End(fmt.Sprintf("bytes=%d", buf.Len()))
	if err != nil {
		err = fmt.Errorf("assembly emission failed: %w", err)
		emitStage(req.Progress, file, StageEmit, StatusError, err, 0)
		return result, err
	}
	result.Asm = buf.Bytes()
	result.Timings.Set(StageEmit, time.Since(emitStart))
	emitStage(req.Progress, file, StageEmit, StatusDone, nil, result.Timings.Duration(StageEmit))

	if req.Cache != nil {
		result.CacheErr = req.Cache.Put(key, &driver.CachedUnit{
			Version: req.Version,
			Path:    res.File.Path,
			Asm:     result.Asm,
		})
	}
	return result, nil
}

// Lower builds and validates SSA for an analyzed file.
func Lower(ctx context.Context, res *driver.Result) (*mir.Module, error) {
	if res == nil || !res.Ok() {
		return nil, errors.New("typed module not available")
	}
	mod := mir.LowerModule(ctx, res.Typed, res.Table)
	if err := mir.Validate(mod); err != nil {
		return nil, fmt.Errorf("MIR validation failed: %w", err)
	}
	return mod, nil
}

type phaseObserver struct {
	sink            ProgressSink
	file            string
	diagnoseStarted bool
}

// OnPhase updates the progress UI based on compiler phase events.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	if p == nil || p.sink == nil {
		return
	}
	switch {
	case ev.Name == "parse" && ev.Status == driver.PhaseStart:
		emitStage(p.sink, p.file, StageParse, StatusWorking, nil, 0)
	case ev.Name == "parse":
		emitStage(p.sink, p.file, StageParse, StatusDone, nil, ev.Elapsed)
	case ev.Status == driver.PhaseStart && !p.diagnoseStarted:
		p.diagnoseStarted = true
		emitStage(p.sink, p.file, StageDiagnose, StatusWorking, nil, 0)
	}
}

func recordAnalysisTimings(result *CompileResult, res *driver.Result) {
	if res.Timer == nil {
		return
	}
	report := res.Timer.Report()
	var parse, rest time.Duration
	for _, phase := range report.Phases {
		d := durationFromMillis(phase.DurationMS)
		if phase.Name == "parse" {
			parse += d
		} else {
			rest += d
		}
	}
	result.Timings.Set(StageParse, parse)
	result.Timings.Set(StageDiagnose, rest)
}

func durationFromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
