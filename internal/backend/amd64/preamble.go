package amd64

import (
	"io"
	"strings"

	"vecl/internal/mir"
	"vecl/internal/types"
)

// builtinHelpers are the print functions provided by the preamble. They
// take their argument at [rbp+16] like every compiled function.
var builtinHelpers = map[string]bool{"printi": true, "printr": true, "printb": true}

const header = `default rel
extern printf
extern fflush
global main

`

const helpers = `section .text
printi:
    push rbp
    mov rbp, rsp
    lea rdi, [rel fmt_int]
    mov rsi, qword [rbp+16]
    xor eax, eax
    call printf wrt ..plt
    pop rbp
    ret

printr:
    push rbp
    mov rbp, rsp
    lea rdi, [rel fmt_real]
    movss xmm0, dword [rbp+16]
    cvtss2sd xmm0, xmm0
    mov eax, 1
    call printf wrt ..plt
    pop rbp
    ret

printb:
    push rbp
    mov rbp, rsp
    lea rdi, [rel fmt_str]
    lea rsi, [rel str_false]
    lea rax, [rel str_true]
    cmp qword [rbp+16], 0
    cmovne rsi, rax
    xor eax, eax
    call printf wrt ..plt
    pop rbp
    ret

`

const rodata = `section .rodata
fmt_int: db "%ld", 10, 0
fmt_real: db "%f", 10, 0
fmt_str: db "%s", 10, 0
str_true: db "true", 0
str_false: db "false", 0

section .note.GNU-stack noalloc noexec nowrite progbits
`

// entry writes the process entry point. The exit status is main's result
// when it returns an int and 0 otherwise; stdio is flushed first since
// the program leaves through the raw exit syscall.
func entry(w io.Writer, m *mir.Module) error {
	var sb strings.Builder
	sb.WriteString("main:\n")
	sb.WriteString("    push rbp\n    mov rbp, rsp\n    sub rsp, 16\n")
	sb.WriteString("    call " + funcLabel(m.MainFunc().Name) + "\n")
	exitInt := m.MainFunc().Result == types.Int
	if exitInt {
		sb.WriteString("    mov qword [rbp-8], rax\n")
	}
	sb.WriteString("    xor edi, edi\n    call fflush wrt ..plt\n")
	if exitInt {
		sb.WriteString("    mov rdi, qword [rbp-8]\n")
	} else {
		sb.WriteString("    xor edi, edi\n")
	}
	sb.WriteString("    mov eax, 60\n    syscall\n\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
