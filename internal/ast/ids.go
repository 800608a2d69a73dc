package ast

type (
	ExprID uint32
	StmtID uint32
)

const (
	NoExprID ExprID = 0
	NoStmtID StmtID = 0
)

func (id ExprID) IsValid() bool { return id != NoExprID }
func (id StmtID) IsValid() bool { return id != NoStmtID }
