package ast

import "vecl/internal/source"

type StmtKind uint8

const (
	StmtLet StmtKind = iota + 1
	StmtAssign
	StmtIf
	StmtWhile
	StmtReturn
	StmtBreak
	StmtContinue
	StmtExpr
)

// TypeRef is an optional type annotation; an empty Name means absent.
type TypeRef struct {
	Name string
	Span source.Span
}

func (t TypeRef) Present() bool { return t.Name != "" }

type Stmt struct {
	Kind StmtKind
	Span source.Span

	Name     string // StmtLet, StmtAssign
	NameSpan source.Span
	Type     TypeRef // StmtLet
	Value    ExprID  // StmtLet, StmtAssign, StmtReturn (optional), StmtExpr
	Cond     ExprID  // StmtIf, StmtWhile
	Then     []StmtID
	Else     []StmtID // StmtIf; a chained "else if" is a single nested StmtIf
}

func (b *Builder) NewStmt(s Stmt) StmtID { return StmtID(b.stmts.Allocate(s)) }

func (b *Builder) Stmt(id StmtID) *Stmt { return b.stmts.Get(uint32(id)) }
