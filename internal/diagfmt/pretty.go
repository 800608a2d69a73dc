package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vecl/internal/diag"
	"vecl/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgGreen),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	var sb strings.Builder
	for i := range items {
		d := &items[i]
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s\n",
			formatPath(f, opts.PathMode), start.Line, start.Col,
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()), d.Message)
		writeSnippet(&sb, fs, d.Primary, opts, p)

		if opts.ShowNotes {
			for _, n := range d.Notes {
				nf := fs.Get(n.Span.File)
				ns, _ := fs.Resolve(n.Span)
				fmt.Fprintf(&sb, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
					formatPath(nf, opts.PathMode), ns.Line, ns.Col, n.Msg)
			}
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSnippet(sb *strings.Builder, fs *source.FileSet, sp source.Span, opts PrettyOpts, p palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	first := start.Line
	if ctx := uint32(max(opts.Context, 0)); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	width := len(fmt.Sprint(start.Line))
	for line := first; line <= start.Line; line++ {
		text := clip(expandTabs(f.GetLine(line)), opts.Width)
		fmt.Fprintf(sb, "%s %s\n", p.gutter.Sprintf("%*d |", width, line), text)
	}

	line := f.GetLine(start.Line)
	endCol := end.Col
	if end.Line != start.Line || endCol <= start.Col {
		endCol = uint32(len(line)) + 1
	}
	lead := displayWidth(line, start.Col)
	span := max(displayWidth(line, endCol)-lead, 1)
	marks := "^" + strings.Repeat("~", span-1)
	fmt.Fprintf(sb, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""),
		strings.Repeat(" ", lead), p.caret.Sprint(marks))
}

// displayWidth is the column width of line up to the 1-based byte column col.
func displayWidth(line string, col uint32) int {
	n := min(int(col)-1, len(line))
	if n <= 0 {
		return 0
	}
	return runewidth.StringWidth(expandTabs(line[:n]))
}

func expandTabs(s string) string { return strings.ReplaceAll(s, "\t", "    ") }

func clip(s string, width uint8) string {
	if width == 0 {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}

// Short prints one line per diagnostic:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) error {
	var sb strings.Builder
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s\n", formatPath(fs.Get(d.Primary.File), mode),
			start.Line, start.Col, d.Severity, d.Code.ID(), d.Message)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
