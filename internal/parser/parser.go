package parser

import (
	"slices"

	"vecl/internal/ast"
	"vecl/internal/diag"
	"vecl/internal/lexer"
	"vecl/internal/source"
	"vecl/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is exhausted.
func (o *Options) Enough() bool {
	return o.MaxErrors != 0 && o.CurrentErrors >= o.MaxErrors
}

// Parser — состояние парсера на один файл.
type Parser struct {
	lx       *lexer.Lexer
	b        *ast.Builder
	opts     Options
	lastSpan source.Span
}

// ParseFile parses a whole compilation unit. The returned file is always
// usable; items that failed to parse are dropped.
func ParseFile(lx *lexer.Lexer, b *ast.Builder, opts Options) *ast.File {
	p := Parser{lx: lx, b: b, opts: opts}
	return p.parseItems()
}

// Errors reports how many syntax errors were emitted.
func (p *Parser) Errors() uint { return p.opts.CurrentErrors }

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) parseItems() *ast.File {
	file := &ast.File{}
	start := p.lx.Peek().Span
	for !p.at(token.EOF) && !p.opts.Enough() {
		switch p.lx.Peek().Kind {
		case token.KwFn:
			if item, ok := p.parseFn(); ok {
				file.Items = append(file.Items, item)
			} else {
				p.resyncTop()
			}
		case token.KwConst:
			if item, ok := p.parseConst(); ok {
				file.Items = append(file.Items, item)
			} else {
				p.resyncTop()
			}
		default:
			p.err(diag.SynUnexpectedTopLevel, "expected 'fn' or 'const', got "+p.lx.Peek().Kind.String())
			p.advance()
			p.resyncTop()
		}
	}
	file.Span = start.Cover(p.lastSpan)
	return file
}
