package token

import "vecl/internal/source"

// Token is a single lexeme with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports number and boolean literals.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, ImagLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports reserved words.
func (t Token) IsKeyword() bool { return t.Kind >= KwFn && t.Kind <= KwNot }

func (t Token) IsIdent() bool { return t.Kind == Ident }
