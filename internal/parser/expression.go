package parser

import (
	"strings"

	"vecl/internal/ast"
	"vecl/internal/diag"
	"vecl/internal/token"
)

func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr is a Pratt loop over the precedence table.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		prec, op := binaryOp(p.lx.Peek().Kind)
		if prec < 0 || prec < minPrec {
			return left, true
		}
		p.advance()
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		sp := p.b.Expr(left).Span.Cover(p.b.Expr(right).Span)
		left = p.b.NewBinary(sp, op, left, right)
	}
}

func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	if op, ok := unaryOp(p.lx.Peek().Kind); ok {
		opTok := p.advance()
		x, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.NewUnary(opTok.Span.Cover(p.b.Expr(x).Span), op, x), true
	}
	return p.parsePostfixExpr()
}

// parsePostfixExpr handles swizzles: v.xy, f(x).z
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	x, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.Dot) {
		p.advance()
		comps, ok := p.expect(token.Ident, diag.SynBadSwizzle, "expected swizzle components after '.'")
		if !ok {
			return ast.NoExprID, false
		}
		if !validSwizzle(comps.Text) {
			p.report(diag.SynBadSwizzle, comps.Span, "swizzle must be 1 to 4 of x, y, z, w")
			return ast.NoExprID, false
		}
		x = p.b.NewSwizzle(p.b.Expr(x).Span.Cover(comps.Span), x, comps.Text, comps.Span)
	}
	return x, true
}

func validSwizzle(s string) bool {
	if len(s) == 0 || len(s) > 4 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("xyzw", r) {
			return false
		}
	}
	return true
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch {
	case tok.IsLiteral():
		return p.b.NewLit(p.advance()), true
	case tok.Kind == token.Ident:
		p.advance()
		if !p.at(token.LParen) {
			return p.b.NewIdent(tok.Span, tok.Text), true
		}
		p.advance()
		var args []ast.ExprID
		for !p.at(token.RParen) {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after arguments"); !ok {
			return ast.NoExprID, false
		}
		return p.b.NewCall(tok.Span.Cover(p.lastSpan), tok.Text, tok.Span, args), true
	case tok.Kind == token.LParen:
		p.advance()
		x, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
			return ast.NoExprID, false
		}
		return p.b.NewGroup(tok.Span.Cover(p.lastSpan), x), true
	}
	p.err(diag.SynExpectExpression, "expected expression, got "+tok.Kind.String())
	return ast.NoExprID, false
}
