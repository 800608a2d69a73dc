package format

import "strings"

// Writer accumulates formatted output and tracks indentation.
type Writer struct {
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
}

func newWriter(opt Options, sizeHint int) *Writer {
	return &Writer{opt: opt, buf: make([]byte, 0, sizeHint), atLineStart: true}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		w.buf = append(w.buf, strings.Repeat("\t", w.indentLevel)...)
	} else {
		w.buf = append(w.buf, strings.Repeat(" ", w.indentLevel*w.opt.IndentWidth)...)
	}
	w.atLineStart = false
}

// WriteString writes s, indenting first when at the start of a line.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Raw appends s without touching indentation.
func (w *Writer) Raw(s string) {
	if s == "" {
		return
	}
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Newline ends the current line unless it is already ended.
func (w *Writer) Newline() {
	if len(w.buf) > 0 && w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

func (w *Writer) IndentPush() { w.indentLevel++ }

func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}
