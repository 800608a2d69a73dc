package parser

import (
	"vecl/internal/ast"
	"vecl/internal/diag"
	"vecl/internal/token"
)

// parseBlock parses "{ stmt* }". Broken statements are skipped, so the block
// itself only fails when its braces are missing.
func (p *Parser) parseBlock() ([]ast.StmtID, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'"); !ok {
		return nil, false
	}
	var stmts []ast.StmtID
	for !p.atOr(token.RBrace, token.EOF) && !p.opts.Enough() {
		if id, ok := p.parseStmt(); ok {
			stmts = append(stmts, id)
		} else {
			p.resyncStmt()
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"); !ok {
		return stmts, false
	}
	return stmts, true
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		kw := p.advance()
		cond, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		body, ok := p.parseBlock()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.b.NewStmt(ast.Stmt{Kind: ast.StmtWhile, Span: kw.Span.Cover(p.lastSpan), Cond: cond, Then: body}), true
	case token.KwReturn:
		kw := p.advance()
		value := ast.NoExprID
		if !p.at(token.Semicolon) {
			var ok bool
			if value, ok = p.parseExpr(); !ok {
				return ast.NoStmtID, false
			}
		}
		return p.finishSimple(ast.Stmt{Kind: ast.StmtReturn, Span: kw.Span, Value: value})
	case token.KwBreak:
		return p.finishSimple(ast.Stmt{Kind: ast.StmtBreak, Span: p.advance().Span})
	case token.KwContinue:
		return p.finishSimple(ast.Stmt{Kind: ast.StmtContinue, Span: p.advance().Span})
	}

	// присваивание или вызов
	x, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	e := p.b.Expr(x)
	if p.at(token.Assign) && e.Kind == ast.ExprIdent {
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.finishSimple(ast.Stmt{Kind: ast.StmtAssign, Span: e.Span, Name: e.Name, NameSpan: e.Span, Value: value})
	}
	if e.Kind != ast.ExprCall {
		p.report(diag.SynExpressionStmt, e.Span, "only calls can be used as statements")
		return ast.NoStmtID, false
	}
	return p.finishSimple(ast.Stmt{Kind: ast.StmtExpr, Span: e.Span, Value: x})
}

// finishSimple consumes the trailing ';' and allocates s.
func (p *Parser) finishSimple(s ast.Stmt) (ast.StmtID, bool) {
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'"); !ok {
		return ast.NoStmtID, false
	}
	s.Span = s.Span.Cover(p.lastSpan)
	return p.b.NewStmt(s), true
}

// let name [: type] = expr;
func (p *Parser) parseLet() (ast.StmtID, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name after 'let'")
	if !ok {
		return ast.NoStmtID, false
	}
	s := ast.Stmt{Kind: ast.StmtLet, Span: kw.Span, Name: name.Text, NameSpan: name.Span}
	if p.at(token.Colon) {
		p.advance()
		if s.Type, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok = p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let binding"); !ok {
		return ast.NoStmtID, false
	}
	if s.Value, ok = p.parseExpr(); !ok {
		return ast.NoStmtID, false
	}
	return p.finishSimple(s)
}

// if cond { ... } [else { ... } | else if ...]
func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	s := ast.Stmt{Kind: ast.StmtIf, Cond: cond, Then: then}
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			nested, ok := p.parseIf()
			if !ok {
				return ast.NoStmtID, false
			}
			s.Else = []ast.StmtID{nested}
		} else if s.Else, ok = p.parseBlock(); !ok {
			return ast.NoStmtID, false
		}
	}
	s.Span = kw.Span.Cover(p.lastSpan)
	return p.b.NewStmt(s), true
}
