package ast

import (
	"vecl/internal/source"
	"vecl/internal/token"
	"vecl/internal/types"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota + 1
	ExprLit
	ExprCall
	ExprBinary
	ExprUnary
	ExprGroup
	ExprSwizzle
)

// Expr is a syntax node; only the fields relevant to Kind are set.
type Expr struct {
	Kind ExprKind
	Span source.Span

	Name     string      // ExprIdent, ExprCall (callee), ExprSwizzle (components)
	NameSpan source.Span // callee or components span
	Lit      token.Token // ExprLit
	Binary   types.BinaryOp
	Unary    types.UnaryOp
	X, Y     ExprID   // operands; ExprGroup and ExprSwizzle use X
	Args     []ExprID // ExprCall
}

func (b *Builder) NewIdent(sp source.Span, name string) ExprID {
	return ExprID(b.exprs.Allocate(Expr{Kind: ExprIdent, Span: sp, Name: name, NameSpan: sp}))
}

func (b *Builder) NewLit(tok token.Token) ExprID {
	return ExprID(b.exprs.Allocate(Expr{Kind: ExprLit, Span: tok.Span, Lit: tok}))
}

func (b *Builder) NewCall(sp source.Span, callee string, calleeSpan source.Span, args []ExprID) ExprID {
	return ExprID(b.exprs.Allocate(Expr{Kind: ExprCall, Span: sp, Name: callee, NameSpan: calleeSpan, Args: args}))
}

func (b *Builder) NewBinary(sp source.Span, op types.BinaryOp, x, y ExprID) ExprID {
	return ExprID(b.exprs.Allocate(Expr{Kind: ExprBinary, Span: sp, Binary: op, X: x, Y: y}))
}

func (b *Builder) NewUnary(sp source.Span, op types.UnaryOp, x ExprID) ExprID {
	return ExprID(b.exprs.Allocate(Expr{Kind: ExprUnary, Span: sp, Unary: op, X: x}))
}

func (b *Builder) NewGroup(sp source.Span, x ExprID) ExprID {
	return ExprID(b.exprs.Allocate(Expr{Kind: ExprGroup, Span: sp, X: x}))
}

func (b *Builder) NewSwizzle(sp source.Span, x ExprID, comps string, compSpan source.Span) ExprID {
	return ExprID(b.exprs.Allocate(Expr{Kind: ExprSwizzle, Span: sp, X: x, Name: comps, NameSpan: compSpan}))
}

func (b *Builder) Expr(id ExprID) *Expr { return b.exprs.Get(uint32(id)) }
