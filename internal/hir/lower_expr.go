package hir

import (
	"strconv"
	"strings"

	"vecl/internal/ast"
	"vecl/internal/diag"
	"vecl/internal/token"
	"vecl/internal/value"
)

// lowerExpr returns nil when the expression could not be resolved; the
// problem has already been reported.
func (l *lowerer) lowerExpr(id ast.ExprID) *Expr {
	e := l.b.Expr(id)
	if e == nil {
		return nil
	}
	switch e.Kind {
	case ast.ExprGroup:
		return l.lowerExpr(e.X)

	case ast.ExprLit:
		v, ok := l.literal(e.Lit)
		if !ok {
			return nil
		}
		return &Expr{Kind: ExprLiteral, Span: e.Span, Data: LiteralData{Value: v}}

	case ast.ExprIdent:
		v, ok := l.scope.Lookup(e.Name)
		if !ok {
			if _, isFn := l.table.LookupFun(e.Name); isFn {
				l.errorf(diag.SemaFunctionAsValue, e.Span, "function '"+e.Name+"' used as a value").Emit()
			} else {
				l.errorf(diag.SemaUnresolvedSymbol, e.Span, "unknown name '"+e.Name+"'").Emit()
			}
			return nil
		}
		return &Expr{Kind: ExprVarRef, Span: e.Span, Data: VarRefData{Var: v}}

	case ast.ExprUnary:
		x := l.lowerExpr(e.X)
		if x == nil {
			return nil
		}
		return &Expr{Kind: ExprUnaryOp, Span: e.Span, Data: UnaryOpData{Op: e.Unary, Operand: x}}

	case ast.ExprBinary:
		x, y := l.lowerExpr(e.X), l.lowerExpr(e.Y)
		if x == nil || y == nil {
			return nil
		}
		return &Expr{Kind: ExprBinaryOp, Span: e.Span, Data: BinaryOpData{Op: e.Binary, Left: x, Right: y}}

	case ast.ExprSwizzle:
		x := l.lowerExpr(e.X)
		if x == nil {
			return nil
		}
		lanes := make([]uint8, len(e.Name))
		for i := range len(e.Name) {
			lanes[i] = uint8(strings.IndexByte("xyzw", e.Name[i]))
		}
		return &Expr{Kind: ExprSwizzle, Span: e.Span, Data: SwizzleData{Value: x, Lanes: lanes}}

	case ast.ExprCall:
		return l.lowerCall(e)
	}
	return nil
}

func (l *lowerer) lowerCall(e *ast.Expr) *Expr {
	args := make([]*Expr, 0, len(e.Args))
	failed := false
	for _, a := range e.Args {
		x := l.lowerExpr(a)
		failed = failed || x == nil
		args = append(args, x)
	}

	if t, ok := constructors[e.Name]; ok {
		want := t.Lanes()
		if len(args) != want {
			l.errorf(diag.SemaArityMismatch, e.NameSpan,
				e.Name+" takes "+strconv.Itoa(want)+" components, got "+strconv.Itoa(len(args))).Emit()
			return nil
		}
		if failed {
			return nil
		}
		return &Expr{Kind: ExprPack, Span: e.Span, Data: PackData{Type: t, Elems: args}}
	}

	if _, isVar := l.scope.Lookup(e.Name); isVar {
		l.errorf(diag.SemaNotCallable, e.NameSpan, "'"+e.Name+"' is a variable, not a function").Emit()
		return nil
	}
	fid, ok := l.table.LookupFun(e.Name)
	if !ok {
		l.errorf(diag.SemaUnresolvedSymbol, e.NameSpan, "unknown function '"+e.Name+"'").Emit()
		return nil
	}
	if l.inConst {
		l.errorf(diag.SemaConstNotConstant, e.Span, "constant initializer cannot call '"+e.Name+"'").Emit()
		return nil
	}
	fn := l.table.Fun(fid)
	if len(fn.Params) != len(args) {
		l.errorf(diag.SemaArityMismatch, e.NameSpan,
			"'"+e.Name+"' takes "+strconv.Itoa(len(fn.Params))+" arguments, got "+strconv.Itoa(len(args))).Emit()
		return nil
	}
	if failed {
		return nil
	}
	return &Expr{Kind: ExprCall, Span: e.Span, Data: CallData{Fun: fid, Args: args}}
}

func (l *lowerer) literal(tok token.Token) (value.Value, bool) {
	text := strings.ReplaceAll(tok.Text, "_", "")
	switch tok.Kind {
	case token.KwTrue:
		return value.Bool(true), true
	case token.KwFalse:
		return value.Bool(false), true
	case token.IntLit:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			l.errorf(diag.LexBadNumber, tok.Span, "integer literal out of range").Emit()
			return value.Value{}, false
		}
		return value.Int(n), true
	case token.FloatLit, token.ImagLit:
		f, err := strconv.ParseFloat(strings.TrimSuffix(text, "i"), 32)
		if err != nil {
			l.errorf(diag.LexBadNumber, tok.Span, "real literal out of range").Emit()
			return value.Value{}, false
		}
		if tok.Kind == token.ImagLit {
			return value.Complex(0, float32(f)), true
		}
		return value.Real(float32(f)), true
	}
	l.errorf(diag.SynExpectExpression, tok.Span, "invalid literal").Emit()
	return value.Value{}, false
}
