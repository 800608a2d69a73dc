package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"vecl/internal/token"
)

const utf8RuneSelf = 0x80

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// scanIdentOrKeyword reads an identifier (ASCII or Unicode letters) and
// normalises it to NFC so that visually equal names resolve to one symbol.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.Is(unicode.Mn, r) {
			break
		}
		lx.cursor.Off += uint32(size) //nolint:gosec // size is at most 4
	}
	sp := lx.cursor.SpanFrom(start)
	if sp.Empty() {
		// одиночный не-буквенный unicode-символ
		_, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		lx.cursor.Off += uint32(size) //nolint:gosec // size is at most 4
		sp = lx.cursor.SpanFrom(start)
		lx.report("UnknownChar", sp, "unexpected character "+lx.text(sp))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	text := norm.NFC.String(lx.text(sp))
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
