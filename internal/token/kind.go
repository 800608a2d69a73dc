package token

// Kind is the category of a token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	IntLit   // 42
	FloatLit // 1.5, 2e3
	ImagLit  // 2i, 0.5i

	KwFn       // fn
	KwLet      // let
	KwConst    // const
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwReturn   // return
	KwBreak    // break
	KwContinue // continue
	KwTrue     // true
	KwFalse    // false
	KwAnd      // and
	KwOr       // or
	KwNot      // not

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Assign    // =
	EqEq      // ==
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Semicolon // ;
	Colon     // :
	Dot       // .
	Arrow     // ->
)

var kindNames = [...]string{
	Invalid: "invalid", EOF: "EOF",
	Ident: "identifier", IntLit: "int literal", FloatLit: "real literal", ImagLit: "imaginary literal",
	KwFn: "fn", KwLet: "let", KwConst: "const", KwIf: "if", KwElse: "else", KwWhile: "while",
	KwReturn: "return", KwBreak: "break", KwContinue: "continue", KwTrue: "true", KwFalse: "false",
	KwAnd: "and", KwOr: "or", KwNot: "not",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Assign: "=", EqEq: "==", BangEq: "!=",
	Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=", LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	Comma: ",", Semicolon: ";", Colon: ":", Dot: ".", Arrow: "->",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
