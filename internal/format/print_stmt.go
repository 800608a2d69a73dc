package format

import "vecl/internal/ast"

func (p *printer) printBlock(body []ast.StmtID) {
	if len(body) == 0 {
		p.w.WriteString("{}")
		return
	}
	p.w.WriteString("{")
	p.w.Newline()
	p.w.IndentPush()
	for _, id := range body {
		p.printStmt(id)
		p.w.Newline()
	}
	p.w.IndentPop()
	p.w.WriteString("}")
}

func (p *printer) printStmt(id ast.StmtID) {
	s := p.b.Stmt(id)
	if s == nil {
		return
	}
	switch s.Kind {
	case ast.StmtLet:
		p.w.WriteString("let " + s.Name)
		p.printTypeRef(s.Type)
		p.w.WriteString(" = ")
		p.printExpr(s.Value)
		p.w.WriteString(";")
	case ast.StmtAssign:
		p.w.WriteString(s.Name + " = ")
		p.printExpr(s.Value)
		p.w.WriteString(";")
	case ast.StmtIf:
		p.printIf(s)
	case ast.StmtWhile:
		p.w.WriteString("while ")
		p.printExpr(s.Cond)
		p.w.WriteString(" ")
		p.printBlock(s.Then)
	case ast.StmtReturn:
		if !s.Value.IsValid() {
			p.w.WriteString("return;")
			return
		}
		p.w.WriteString("return ")
		p.printExpr(s.Value)
		p.w.WriteString(";")
	case ast.StmtBreak:
		p.w.WriteString("break;")
	case ast.StmtContinue:
		p.w.WriteString("continue;")
	case ast.StmtExpr:
		p.printExpr(s.Value)
		p.w.WriteString(";")
	}
}

func (p *printer) printIf(s *ast.Stmt) {
	p.w.WriteString("if ")
	p.printExpr(s.Cond)
	p.w.WriteString(" ")
	p.printBlock(s.Then)
	if len(s.Else) == 0 {
		return
	}
	p.w.WriteString(" else ")
	if len(s.Else) == 1 {
		if nested := p.b.Stmt(s.Else[0]); nested != nil && nested.Kind == ast.StmtIf {
			p.printIf(nested)
			return
		}
	}
	p.printBlock(s.Else)
}
