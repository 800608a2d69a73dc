package lexer

import (
	"vecl/internal/diag"
	"vecl/internal/source"
)

// ReporterAdapter maps lexer error kinds onto diag codes.
type ReporterAdapter struct {
	Reporter diag.Reporter
}

func (r ReporterAdapter) Report(kind string, span source.Span, msg string) {
	code := diag.LexInfo
	switch kind {
	case "UnknownChar":
		code = diag.LexUnknownChar
	case "UnterminatedBlockComment":
		code = diag.LexUnterminatedBlockComment
	case "BadNumber":
		code = diag.LexBadNumber
	case "TokenTooLong":
		code = diag.LexTokenTooLong
	}
	diag.ReportError(r.Reporter, code, span, msg).Emit()
}
