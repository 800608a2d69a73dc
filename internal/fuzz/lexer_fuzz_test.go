package fuzztests

import (
	"testing"

	"vecl/internal/diag"
	"vecl/internal/lexer"
	"vecl/internal/source"
	"vecl/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.vl", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: lexer.ReporterAdapter{Reporter: diag.BagReporter{Bag: bag}}})
		// каждый токен продвигает курсор, иначе лексер зациклился
		for n := 0; ; n++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if n > len(input)+1 {
				t.Fatalf("lexer did not reach EOF after %d tokens", n)
			}
			if tok.Span.End > uint32(len(file.Content)) || tok.Span.Start > tok.Span.End {
				t.Fatalf("token %v has bad span %v", tok.Kind, tok.Span)
			}
		}
	})
}
