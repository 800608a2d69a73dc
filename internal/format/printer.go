package format

import (
	"bytes"
	"errors"
	"strings"

	"vecl/internal/ast"
	"vecl/internal/diag"
	"vecl/internal/lexer"
	"vecl/internal/parser"
	"vecl/internal/source"
)

// ErrSyntax is returned when the input does not parse; such files are left
// untouched.
var ErrSyntax = errors.New("format: source has syntax errors")

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	b   *ast.Builder
	sf  *source.File
	w   *Writer
	opt Options
}

// Source parses src and returns its canonical form.
func Source(name string, src []byte, opt Options) ([]byte, error) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual(name, src))
	b, file, bag := parseOnce(sf)
	if bag.HasErrors() {
		return nil, ErrSyntax
	}
	return FormatFile(sf, b, file, opt)
}

// FormatFile prints an already parsed file. Gaps between items are kept
// when they hold comments and normalized to one blank line otherwise.
func FormatFile(sf *source.File, b *ast.Builder, file *ast.File, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if b == nil || file == nil {
		return nil, errors.New("format: missing ast")
	}
	opt = opt.withDefaults()
	p := printer{b: b, sf: sf, w: newWriter(opt, len(sf.Content)), opt: opt}
	p.printFile(file)
	return p.w.Bytes(), nil
}

func (p *printer) printFile(file *ast.File) {
	content := p.sf.Content
	prev := 0
	for i, item := range file.Items {
		start := clampToContent(int(item.Span.Start), len(content))
		end := max(clampToContent(int(item.Span.End), len(content)), start)
		p.printGap(string(content[prev:start]), i == 0, true)
		if hasComment(content[start:end]) {
			// внутри объявления есть комментарий: копируем как есть
			p.w.Raw(string(content[start:end]))
		} else {
			p.printItem(&item)
		}
		prev = end
	}
	p.printGap(string(content[prev:]), len(file.Items) == 0, false)
	p.w.Newline()
}

// printGap writes the text between two items (or around the first and
// last one). Runs of blank lines collapse to one.
func (p *printer) printGap(gap string, first, beforeItem bool) {
	if !hasComment([]byte(gap)) {
		if !first && beforeItem {
			p.w.Raw("\n\n")
		}
		return
	}
	body := strings.TrimLeft(gap, " \t\n")
	lead := strings.Count(gap[:len(gap)-len(body)], "\n")
	body = strings.TrimRight(body, " \t\n")
	trail := strings.Count(gap[len(strings.TrimRight(gap, " \t\n")):], "\n")

	switch {
	case first:
	case lead == 0:
		p.w.Raw(" ")
	case lead == 1:
		p.w.Raw("\n")
	default:
		p.w.Raw("\n\n")
	}
	p.w.Raw(body)
	if !beforeItem {
		return
	}
	if trail >= 2 {
		p.w.Raw("\n\n")
	} else {
		p.w.Raw("\n")
	}
}

func (p *printer) printItem(item *ast.Item) {
	switch item.Kind {
	case ast.ItemFn:
		p.w.WriteString("fn " + item.Name + "(")
		for i, param := range item.Params {
			if i > 0 {
				p.w.WriteString(", ")
			}
			p.w.WriteString(param.Name)
			p.printTypeRef(param.Type)
		}
		p.w.WriteString(")")
		if item.Result.Present() {
			p.w.WriteString(" -> " + item.Result.Name)
		}
		p.w.WriteString(" ")
		p.printBlock(item.Body)
	case ast.ItemConst:
		p.w.WriteString("const " + item.Name)
		p.printTypeRef(item.Type)
		p.w.WriteString(" = ")
		p.printExpr(item.Value)
		p.w.WriteString(";")
	}
}

func (p *printer) printTypeRef(t ast.TypeRef) {
	if t.Present() {
		p.w.WriteString(": " + t.Name)
	}
}

// CheckRoundTrip formats sf, re-parses the result and verifies that the
// top-level declarations are unchanged.
func CheckRoundTrip(sf *source.File, opt Options) (ok bool, msg string) {
	b, file, bag := parseOnce(sf)
	if bag.HasErrors() {
		return false, "fmt-check: initial parse has errors"
	}
	formatted, err := FormatFile(sf, b, file, opt)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}
	fs := source.NewFileSet()
	_, file2, bag2 := parseOnce(fs.Get(fs.AddVirtual(sf.Path, formatted)))
	if bag2.HasErrors() {
		return false, "fmt-check: reparse failed"
	}
	if !sameItems(file, file2) {
		return false, "fmt-check: top-level items differ after round-trip"
	}
	return true, "fmt-check: OK"
}

func parseOnce(sf *source.File) (*ast.Builder, *ast.File, *diag.Bag) {
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder()
	lx := lexer.New(sf, lexer.Options{Reporter: lexer.ReporterAdapter{Reporter: rep}})
	file := parser.ParseFile(lx, b, parser.Options{Reporter: rep, MaxErrors: uint(bag.Cap())})
	return b, file, bag
}

func sameItems(a, b *ast.File) bool {
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		x, y := &a.Items[i], &b.Items[i]
		if x.Kind != y.Kind || x.Name != y.Name || len(x.Params) != len(y.Params) || len(x.Body) != len(y.Body) {
			return false
		}
	}
	return true
}

func hasComment(b []byte) bool {
	return bytes.Contains(b, []byte("//")) || bytes.Contains(b, []byte("/*"))
}

func clampToContent(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
