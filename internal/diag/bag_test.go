package diag

import (
	"testing"

	"vecl/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(3)
	r := BagReporter{Bag: b}
	ReportError(r, SemaCouldNotInfer, source.Span{Start: 10, End: 11}, "x").Emit()
	ReportWarning(r, SynInfo, source.Span{Start: 2, End: 3}, "w").Emit()
	ReportError(r, SemaMismatchedTypes, source.Span{Start: 2, End: 3}, "m").Emit()
	ReportError(r, LexBadNumber, source.Span{Start: 0, End: 1}, "dropped").Emit()

	if b.Len() != 3 {
		t.Fatalf("Len = %d, want 3", b.Len())
	}
	b.Sort()
	items := b.Items()
	if items[0].Code != SemaMismatchedTypes || items[1].Code != SynInfo || items[2].Code != SemaCouldNotInfer {
		t.Fatalf("unexpected order: %v %v %v", items[0].Code, items[1].Code, items[2].Code)
	}
	if !b.HasErrors() {
		t.Fatal("expected errors")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(10)
	rb := ReportError(BagReporter{Bag: b}, SemaDuplicateSymbol, source.Span{}, "dup").
		WithNote(source.Span{Start: 1, End: 2}, "previous declaration")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
	if len(b.Items()[0].Notes) != 1 {
		t.Fatal("note lost")
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:      "LEX1001",
		SynExpectSemicolon:  "SYN2002",
		SemaMismatchedTypes: "SEM3008",
		IOLoadFileError:     "IO4001",
		UnknownCode:         "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}
