package fuzztests

import (
	"context"
	"errors"
	"io"
	"testing"

	"vecl/internal/backend/amd64"
	"vecl/internal/buildpipeline"
	"vecl/internal/driver"
	"vecl/internal/vm"
)

// FuzzPipeline checks that every program accepted by the type checker
// lowers to valid SSA, emits assembly and runs in the VM without a Go panic.
func FuzzPipeline(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)
		ctx := context.Background()

		res := driver.AnalyzeSource(ctx, "fuzz.vl", input, driver.Options{MaxDiagnostics: 64})
		if !res.Ok() {
			return
		}
		mod, err := buildpipeline.Lower(ctx, res)
		if err != nil {
			t.Fatalf("lower: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		if _, err := amd64.EmitString(mod, amd64.Options{Jobs: 1}); err != nil {
			t.Fatalf("emit: %v\ninput: %q", err, truncateForLog(input, 200))
		}

		machine := vm.New(mod, vm.Options{Stdout: io.Discard, MaxSteps: 100_000, MaxDepth: 256})
		if _, err := machine.Run(ctx); err != nil {
			var vmErr *vm.VMError
			if !errors.As(err, &vmErr) {
				t.Fatalf("run: %v", err)
			}
			if vmErr.Code == vm.PanicUnimplemented {
				t.Fatalf("vm hit unimplemented path: %v\ninput: %q", vmErr, truncateForLog(input, 200))
			}
		}
	})
}
