package hir

import (
	"vecl/internal/source"
	"vecl/internal/symbols"
)

type StmtKind uint8

const (
	StmtLet StmtKind = iota + 1
	StmtAssign
	StmtExpr
	StmtReturn
	StmtBreak
	StmtContinue
	StmtIf
	StmtWhile
)

func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtAssign:
		return "Assign"
	case StmtExpr:
		return "Expr"
	case StmtReturn:
		return "Return"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	default:
		return "Unknown"
	}
}

type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData
}

type StmtData interface{ stmtData() }

// LetData declares Var and binds its first value.
type LetData struct {
	Var   symbols.VarID
	Value *Expr
}

type AssignData struct {
	Var   symbols.VarID
	Value *Expr
}

type ExprStmtData struct{ Expr *Expr }

// ReturnData.Value is nil for a bare return.
type ReturnData struct{ Value *Expr }

type IfData struct {
	Cond *Expr
	Then *Block
	Else *Block // nil without else
}

type WhileData struct {
	Cond *Expr
	Body *Block
}

func (LetData) stmtData()      {}
func (AssignData) stmtData()   {}
func (ExprStmtData) stmtData() {}
func (ReturnData) stmtData()   {}
func (IfData) stmtData()       {}
func (WhileData) stmtData()    {}

// Block is a statement list with its own lexical scope.
type Block struct {
	Stmts []Stmt
	Span  source.Span
}
