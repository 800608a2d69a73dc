package source

import "testing"

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.vl", []byte("fn main() {\n  let x = 1;\n}\n"))

	start, end := fs.Resolve(Span{File: id, Start: 14, End: 17})
	if start != (LineCol{Line: 2, Col: 3}) {
		t.Fatalf("start = %+v", start)
	}
	if end != (LineCol{Line: 2, Col: 6}) {
		t.Fatalf("end = %+v", end)
	}
	if got := fs.Get(id).GetLine(2); got != "  let x = 1;" {
		t.Fatalf("GetLine(2) = %q", got)
	}
	if got := fs.Get(id).GetLine(9); got != "" {
		t.Fatalf("GetLine(9) = %q", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	got := string(normalizeCRLF([]byte("a\r\nb\rc\r\n")))
	if got != "a\nb\rc\n" {
		t.Fatalf("normalizeCRLF = %q", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 20}); got != a {
		t.Fatalf("cross-file Cover = %v", got)
	}
}
