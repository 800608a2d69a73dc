package lexer

import (
	"testing"

	"vecl/internal/source"
	"vecl/internal/token"
)

type collectReporter struct{ kinds []string }

func (c *collectReporter) Report(kind string, _ source.Span, _ string) {
	c.kinds = append(c.kinds, kind)
}

func lex(t *testing.T, src string) ([]token.Token, *collectReporter) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.vl", []byte(src))
	rep := &collectReporter{}
	return New(fs.Get(id), Options{Reporter: rep}).All(), rep
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexStatement(t *testing.T) {
	toks, rep := lex(t, "let v: vec3 = vec3(1.0, .5, 2) * 2i; // tail\n/* block */ v.xy != x")
	want := []token.Kind{
		token.KwLet, token.Ident, token.Colon, token.Ident, token.Assign, token.Ident, token.LParen,
		token.FloatLit, token.Comma, token.FloatLit, token.Comma, token.IntLit, token.RParen,
		token.Star, token.ImagLit, token.Semicolon,
		token.Ident, token.Dot, token.Ident, token.BangEq, token.Ident, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v (all %v)", i, got[i], want[i], got)
		}
	}
	if len(rep.kinds) != 0 {
		t.Fatalf("unexpected errors: %v", rep.kinds)
	}
}

func TestLexNumbers(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"42", token.IntLit},
		{"1_000", token.IntLit},
		{"1.5", token.FloatLit},
		{"1e3", token.FloatLit},
		{"2.5E-2", token.FloatLit},
		{"3.", token.FloatLit},
		{"0.5i", token.ImagLit},
		{"7i", token.ImagLit},
	}
	for _, tc := range cases {
		toks, rep := lex(t, tc.src)
		if toks[0].Kind != tc.kind || toks[0].Text != tc.src || len(rep.kinds) != 0 {
			t.Errorf("%q: got %v %q errs=%v", tc.src, toks[0].Kind, toks[0].Text, rep.kinds)
		}
	}
}

func TestLexErrors(t *testing.T) {
	_, rep := lex(t, "let a = 1e; $ /* open")
	want := []string{"BadNumber", "UnknownChar", "UnterminatedBlockComment"}
	if len(rep.kinds) != len(want) {
		t.Fatalf("errors = %v", rep.kinds)
	}
	for i := range want {
		if rep.kinds[i] != want[i] {
			t.Fatalf("errors = %v", rep.kinds)
		}
	}
}

func TestIdentifiersAreNFC(t *testing.T) {
	// "é" as e + combining acute vs precomposed
	toks, _ := lex(t, "cafe\u0301 caf\u00e9")
	if toks[0].Text != toks[1].Text {
		t.Fatalf("%q != %q", toks[0].Text, toks[1].Text)
	}
}
