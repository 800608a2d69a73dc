package vm

import (
	"fmt"
	"strings"

	"vecl/internal/source"
)

// PanicCode identifies the type of VM panic.
type PanicCode int

// Stable panic codes - do not change values.
const (
	PanicUseBeforeDef  PanicCode = 1001 // VM1001: value read before its definition
	PanicDivideByZero  PanicCode = 1002 // VM1002: integer division trap
	PanicUnknownFunc   PanicCode = 1003 // VM1003: call to a function not in the module
	PanicBadBlock      PanicCode = 1004 // VM1004: jump to a missing label or off the function
	PanicStackOverflow PanicCode = 1005 // VM1005: call depth limit
	PanicStepLimit     PanicCode = 1006 // VM1006: step budget exhausted
	PanicUnimplemented PanicCode = 1999 // VM1999: unknown instruction or terminator
)

// String returns the code as "VM1001" format.
func (c PanicCode) String() string {
	return fmt.Sprintf("VM%d", c)
}

// BacktraceFrame represents one frame in the panic backtrace.
type BacktraceFrame struct {
	FuncName string
	Span     source.Span
}

// VMError represents a runtime panic in the VM.
type VMError struct {
	Code      PanicCode
	Message   string
	Backtrace []BacktraceFrame // innermost first
}

// Error implements the error interface.
func (p *VMError) Error() string {
	return fmt.Sprintf("panic %s: %s", p.Code, p.Message)
}

// FormatWithFiles formats the panic with resolved file:line:col information.
func (p *VMError) FormatWithFiles(files *source.FileSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "panic %s: %s\n", p.Code, p.Message)
	if len(p.Backtrace) > 0 {
		sb.WriteString("backtrace:\n")
		for i, frame := range p.Backtrace {
			fmt.Fprintf(&sb, "  %d: %s at %s\n", i, frame.FuncName, formatSpan(frame.Span, files))
		}
	}
	return sb.String()
}

// formatSpan formats a span as "file:line:col" or "<no-span>" if empty.
func formatSpan(span source.Span, files *source.FileSet) string {
	if files == nil || (span.Start == 0 && span.End == 0) {
		return "<no-span>"
	}
	file := files.Get(span.File)
	if file == nil {
		return "<no-span>"
	}
	start, _ := files.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}

func (vm *VM) panicf(code PanicCode, format string, args ...any) *VMError {
	err := &VMError{Code: code, Message: fmt.Sprintf(format, args...)}
	for i := len(vm.Stack) - 1; i >= 0; i-- {
		fn := vm.Stack[i].Func
		err.Backtrace = append(err.Backtrace, BacktraceFrame{FuncName: fn.Name, Span: fn.Span})
	}
	return err
}
