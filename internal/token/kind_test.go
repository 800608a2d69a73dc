package token

import "testing"

func TestKeywordsRoundTrip(t *testing.T) {
	for text, kind := range keywords {
		if kind.String() != text {
			t.Errorf("%v.String() = %q, want %q", kind, kind.String(), text)
		}
		if !(Token{Kind: kind}).IsKeyword() {
			t.Errorf("%q not reported as keyword", text)
		}
	}
	if _, ok := LookupKeyword("vec3"); ok {
		t.Fatal("type names are identifiers")
	}
}
