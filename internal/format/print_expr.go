package format

import (
	"vecl/internal/ast"
	"vecl/internal/types"
)

func (p *printer) printExpr(id ast.ExprID) {
	e := p.b.Expr(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprIdent:
		p.w.WriteString(e.Name)
	case ast.ExprLit:
		p.w.WriteString(e.Lit.Text)
	case ast.ExprCall:
		p.w.WriteString(e.Name + "(")
		for i, arg := range e.Args {
			if i > 0 {
				p.w.WriteString(", ")
			}
			p.printExpr(arg)
		}
		p.w.WriteString(")")
	case ast.ExprBinary:
		p.printExpr(e.X)
		p.w.WriteString(" " + e.Binary.String() + " ")
		p.printExpr(e.Y)
	case ast.ExprUnary:
		p.w.WriteString(e.Unary.String())
		if e.Unary == types.OpNot {
			p.w.WriteString(" ")
		}
		p.printExpr(e.X)
	case ast.ExprGroup:
		p.w.WriteString("(")
		p.printExpr(e.X)
		p.w.WriteString(")")
	case ast.ExprSwizzle:
		p.printExpr(e.X)
		p.w.WriteString("." + e.Name)
	}
}
