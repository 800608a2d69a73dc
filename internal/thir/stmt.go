package thir

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

type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData
}

type StmtData interface{ stmtData() }

type LetData struct {
	Var   symbols.VarID
	Value *Expr
}

type AssignData struct {
	Var   symbols.VarID
	Value *Expr
}

type ExprStmtData struct{ Expr *Expr }

type ReturnData struct{ Value *Expr }

type IfData struct {
	Cond *Expr
	Then *Block
	Else *Block
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

type Block struct {
	Stmts []Stmt
	Span  source.Span
}

// Walk calls fn for every statement of b in source order, descending into
// nested blocks after their owner.
func (b *Block) Walk(fn func(*Stmt)) {
	if b == nil {
		return
	}
	for i := range b.Stmts {
		st := &b.Stmts[i]
		fn(st)
		switch d := st.Data.(type) {
		case IfData:
			d.Then.Walk(fn)
			d.Else.Walk(fn)
		case WhileData:
			d.Body.Walk(fn)
		}
	}
}
