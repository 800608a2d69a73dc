package parser

import (
	"vecl/internal/ast"
	"vecl/internal/diag"
	"vecl/internal/token"
)

// fn name(a: int, b) -> real { ... }
func (p *Parser) parseFn() (ast.Item, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if !ok {
		return ast.Item{}, false
	}
	if _, ok = p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.Item{}, false
	}
	item := ast.Item{Kind: ast.ItemFn, Name: name.Text, NameSpan: name.Span}
	for !p.at(token.RParen) {
		pname, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return ast.Item{}, false
		}
		param := ast.Param{Name: pname.Text, Span: pname.Span}
		if p.at(token.Colon) {
			p.advance()
			if param.Type, ok = p.parseType(); !ok {
				return ast.Item{}, false
			}
		}
		item.Params = append(item.Params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters"); !ok {
		return ast.Item{}, false
	}
	if p.at(token.Arrow) {
		p.advance()
		if item.Result, ok = p.parseType(); !ok {
			return ast.Item{}, false
		}
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.Item{}, false
	}
	item.Body = body
	item.Span = kw.Span.Cover(p.lastSpan)
	return item, true
}

// const NAME [: type] = expr;
func (p *Parser) parseConst() (ast.Item, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected constant name")
	if !ok {
		return ast.Item{}, false
	}
	item := ast.Item{Kind: ast.ItemConst, Name: name.Text, NameSpan: name.Span}
	if p.at(token.Colon) {
		p.advance()
		if item.Type, ok = p.parseType(); !ok {
			return ast.Item{}, false
		}
	}
	if _, ok = p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in constant declaration"); !ok {
		return ast.Item{}, false
	}
	if item.Value, ok = p.parseExpr(); !ok {
		return ast.Item{}, false
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after constant"); !ok {
		return ast.Item{}, false
	}
	item.Span = kw.Span.Cover(p.lastSpan)
	return item, true
}

// parseType accepts any identifier; unknown type names are a resolver error.
func (p *Parser) parseType() (ast.TypeRef, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectType, "expected type name")
	if !ok {
		return ast.TypeRef{}, false
	}
	return ast.TypeRef{Name: tok.Text, Span: tok.Span}, true
}
