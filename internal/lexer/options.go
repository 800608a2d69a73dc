package lexer

import "vecl/internal/source"

// Reporter is the thin error sink of the lexer; formatting is done outside.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // nil: ошибки игнорируются, лексинг продолжается
	MaxToken uint32   // 0 means no limit
}

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
