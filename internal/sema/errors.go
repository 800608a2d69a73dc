package sema

import (
	"fmt"

	"vecl/internal/diag"
	"vecl/internal/source"
	"vecl/internal/types"
)

// ErrorKind classifies inference failures.
type ErrorKind uint8

const (
	// MismatchedTypes: two constraints could not be joined.
	MismatchedTypes ErrorKind = iota + 1
	// CouldNotInfer: a variable never reached a concrete type.
	CouldNotInfer
	// ConstEvalFailed: a constant initializer traps when evaluated.
	ConstEvalFailed
)

func (k ErrorKind) String() string {
	switch k {
	case MismatchedTypes:
		return "MismatchedTypes"
	case CouldNotInfer:
		return "CouldNotInfer"
	case ConstEvalFailed:
		return "ConstEvalFailed"
	default:
		return "Unknown"
	}
}

// Error is one inference diagnostic. For MismatchedTypes Required and Got
// are the two sides of the failed join; for CouldNotInfer Name is the
// variable and Got its residual type.
type Error struct {
	Kind     ErrorKind
	Span     source.Span
	Name     string
	Required types.TypeVar
	Got      types.TypeVar
}

func (e *Error) Error() string {
	switch e.Kind {
	case MismatchedTypes:
		return fmt.Sprintf("mismatched types: expected %s, found %s", e.Required, e.Got)
	case CouldNotInfer:
		return fmt.Sprintf("could not infer the type of '%s' (only know it is %s)", e.Name, e.Got)
	case ConstEvalFailed:
		return fmt.Sprintf("constant '%s' cannot be evaluated", e.Name)
	}
	return "inference error"
}

func (e *Error) code() diag.Code {
	switch e.Kind {
	case MismatchedTypes:
		return diag.SemaMismatchedTypes
	case CouldNotInfer:
		return diag.SemaCouldNotInfer
	default:
		return diag.SemaConstEvalFailed
	}
}

func (e *Error) report(rep diag.Reporter) {
	if rep == nil {
		return
	}
	diag.ReportError(rep, e.code(), e.Span, e.Error()).Emit()
}
