package hir

import (
	"vecl/internal/ast"
	"vecl/internal/diag"
	"vecl/internal/source"
	"vecl/internal/symbols"
	"vecl/internal/types"
)

func (l *lowerer) lowerBlock(ids []ast.StmtID, sp source.Span) *Block {
	outer := l.scope
	l.scope = symbols.NewScope(symbols.ScopeBlock, outer)
	defer func() { l.scope = outer }()

	block := &Block{Span: sp}
	for _, id := range ids {
		if st, ok := l.lowerStmt(id); ok {
			block.Stmts = append(block.Stmts, st)
		}
	}
	return block
}

func (l *lowerer) lowerStmt(id ast.StmtID) (Stmt, bool) {
	s := l.b.Stmt(id)
	switch s.Kind {
	case ast.StmtLet:
		value := l.lowerExpr(s.Value)
		declared := types.Invalid
		if s.Type.Present() {
			declared = l.resolveType(s.Type)
		}
		v := l.table.NewVar(symbols.Var{
			Name: s.Name, Kind: symbols.VarLocal, Declared: declared, Span: s.NameSpan, Owner: l.fn,
		})
		if prev, dup := l.scope.Declare(s.Name, v); dup {
			l.errorf(diag.SemaDuplicateSymbol, s.NameSpan, "'"+s.Name+"' is already declared in this block").
				WithNote(l.table.Var(prev).Span, "previous declaration").Emit()
			return Stmt{}, false
		}
		if value == nil {
			return Stmt{}, false
		}
		return Stmt{Kind: StmtLet, Span: s.Span, Data: LetData{Var: v, Value: value}}, true

	case ast.StmtAssign:
		value := l.lowerExpr(s.Value)
		v, ok := l.scope.Lookup(s.Name)
		if !ok {
			l.errorf(diag.SemaUnresolvedSymbol, s.NameSpan, "unknown variable '"+s.Name+"'").Emit()
			return Stmt{}, false
		}
		if l.table.Var(v).Kind == symbols.VarConst {
			l.errorf(diag.SemaNotAssignable, s.NameSpan, "cannot assign to constant '"+s.Name+"'").Emit()
			return Stmt{}, false
		}
		if value == nil {
			return Stmt{}, false
		}
		return Stmt{Kind: StmtAssign, Span: s.Span, Data: AssignData{Var: v, Value: value}}, true

	case ast.StmtExpr:
		x := l.lowerExpr(s.Value)
		if x == nil {
			return Stmt{}, false
		}
		return Stmt{Kind: StmtExpr, Span: s.Span, Data: ExprStmtData{Expr: x}}, true

	case ast.StmtReturn:
		var x *Expr
		if s.Value.IsValid() {
			if x = l.lowerExpr(s.Value); x == nil {
				return Stmt{}, false
			}
		}
		return Stmt{Kind: StmtReturn, Span: s.Span, Data: ReturnData{Value: x}}, true

	case ast.StmtBreak, ast.StmtContinue:
		if l.loopDepth == 0 {
			l.errorf(diag.SemaLoopControlOutside, s.Span, "'break' and 'continue' are only allowed inside 'while'").Emit()
			return Stmt{}, false
		}
		if s.Kind == ast.StmtBreak {
			return Stmt{Kind: StmtBreak, Span: s.Span}, true
		}
		return Stmt{Kind: StmtContinue, Span: s.Span}, true

	case ast.StmtIf:
		cond := l.lowerExpr(s.Cond)
		data := IfData{Cond: cond, Then: l.lowerBlock(s.Then, s.Span)}
		if len(s.Else) > 0 {
			data.Else = l.lowerBlock(s.Else, s.Span)
		}
		if cond == nil {
			return Stmt{}, false
		}
		return Stmt{Kind: StmtIf, Span: s.Span, Data: data}, true

	case ast.StmtWhile:
		cond := l.lowerExpr(s.Cond)
		l.loopDepth++
		body := l.lowerBlock(s.Then, s.Span)
		l.loopDepth--
		if cond == nil {
			return Stmt{}, false
		}
		return Stmt{Kind: StmtWhile, Span: s.Span, Data: WhileData{Cond: cond, Body: body}}, true
	}
	return Stmt{}, false
}
