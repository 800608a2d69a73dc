package ast

// Builder owns the node arenas of one file.
type Builder struct {
	exprs *Arena[Expr]
	stmts *Arena[Stmt]
}

func NewBuilder() *Builder {
	return &Builder{
		exprs: NewArena[Expr](256),
		stmts: NewArena[Stmt](128),
	}
}

// Counts reports the number of allocated expressions and statements.
func (b *Builder) Counts() (exprs, stmts int) {
	return b.exprs.Len(), b.stmts.Len()
}
