package fuzztests

import (
	"context"
	"testing"
	"time"

	"vecl/internal/ast"
	"vecl/internal/diag"
	"vecl/internal/lexer"
	"vecl/internal/parser"
	"vecl/internal/source"
)

// parseTimeout bounds a single parse; exceeding it means recovery looped.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("fn f() { let x = 1\nlet y = 2; }"))
	f.Add([]byte("fn f() { { { { } } } }"))
	f.Add([]byte("fn f() { if { } else if { } }"))
	f.Add([]byte("fn f( -> { return v.xyzwx; }"))
	f.Add([]byte("const = ;;; fn"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.vl", input))
			rep := diag.BagReporter{Bag: diag.NewBag(128)}
			lx := lexer.New(file, lexer.Options{Reporter: lexer.ReporterAdapter{Reporter: rep}})
			_ = parser.ParseFile(lx, ast.NewBuilder(), parser.Options{Reporter: rep, MaxErrors: 128})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang: %d bytes, input %q", len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
