package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003
	LexTokenTooLong             Code = 1004

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectExpression   Code = 2005
	SynUnclosedParen      Code = 2006
	SynUnclosedBrace      Code = 2007
	SynUnexpectedTopLevel Code = 2008
	SynBadSwizzle         Code = 2009
	SynExpressionStmt     Code = 2010

	// Семантические
	SemaInfo               Code = 3000
	SemaDuplicateSymbol    Code = 3001
	SemaUnresolvedSymbol   Code = 3002
	SemaArityMismatch      Code = 3003
	SemaNotCallable        Code = 3004
	SemaNotAssignable      Code = 3005
	SemaLoopControlOutside Code = 3006
	SemaConstNotConstant   Code = 3007
	SemaMismatchedTypes    Code = 3008
	SemaCouldNotInfer      Code = 3009
	SemaMissingMain        Code = 3010
	SemaFunctionAsValue    Code = 3011
	SemaConstEvalFailed    Code = 3012

	IOLoadFileError Code = 4001

	ProjInfo            Code = 5000
	ProjBadManifest     Code = 5001
	ProjMissingMainFile Code = 5002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexTokenTooLong:             "Token too long",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expected ';'",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectType:               "Expected type",
	SynExpectExpression:         "Expected expression",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnexpectedTopLevel:       "Unexpected top-level item",
	SynBadSwizzle:               "Invalid swizzle",
	SynExpressionStmt:           "Expression statement must be a call",
	SemaInfo:                    "Semantic information",
	SemaDuplicateSymbol:         "Duplicate symbol",
	SemaUnresolvedSymbol:        "Unresolved symbol",
	SemaArityMismatch:           "Wrong number of arguments",
	SemaNotCallable:             "Not a function",
	SemaNotAssignable:           "Cannot assign",
	SemaLoopControlOutside:      "break/continue outside of a loop",
	SemaConstNotConstant:        "Constant initializer is not constant",
	SemaMismatchedTypes:         "Mismatched types",
	SemaCouldNotInfer:           "Could not infer type",
	SemaMissingMain:             "Missing main function",
	SemaFunctionAsValue:         "Function used as a value",
	SemaConstEvalFailed:         "Constant evaluation failed",
	IOLoadFileError:             "I/O load file error",
	ProjInfo:                    "Project information",
	ProjBadManifest:             "Invalid project manifest",
	ProjMissingMainFile:         "Main file not found",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
