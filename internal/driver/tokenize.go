package driver

import (
	"fmt"

	"vecl/internal/diag"
	"vecl/internal/lexer"
	"vecl/internal/source"
	"vecl/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes path up to and including EOF.
func Tokenize(path string, maxDiags int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics(maxDiags))
	lx := lexer.New(file, lexer.Options{Reporter: lexer.ReporterAdapter{Reporter: diag.BagReporter{Bag: bag}}})
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.All(),
		Bag:     bag,
	}, nil
}
