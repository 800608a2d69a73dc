package lsp

import (
	"vecl/internal/driver"
	"vecl/internal/source"
	"vecl/internal/symbols"
	"vecl/internal/thir"
)

// target is the symbol or expression under the cursor.
type target struct {
	span source.Span
	v    symbols.VarID
	fn   symbols.FunID
	expr *thir.Expr
}

func covers(sp source.Span, off uint32) bool {
	return !sp.Empty() && sp.Start <= off && off <= sp.End
}

// locate finds the innermost declaration, reference or expression at off.
// It needs a fully typed result.
func locate(res *driver.Result, off uint32) (target, bool) {
	if res == nil || !res.Ok() {
		return target{}, false
	}
	table := res.Table
	for id := 1; id < table.NumVars(); id++ {
		vid := symbols.VarID(id) //nolint:gosec // bounded by NumVars
		if sp := table.Var(vid).Span; covers(sp, off) {
			return target{span: sp, v: vid, fn: symbols.NoFunID}, true
		}
	}
	for id := 0; id < table.NumFuns(); id++ {
		fid := symbols.FunID(id) //nolint:gosec // bounded by NumFuns
		f := table.Fun(fid)
		if f.Builtin == symbols.NotBuiltin && covers(f.Span, off) {
			return target{span: f.Span, fn: fid}, true
		}
	}

	best := target{fn: symbols.NoFunID}
	found := false
	consider := func(t target) {
		if covers(t.span, off) && (!found || t.span.Len() < best.span.Len()) {
			best, found = t, true
		}
	}
	var visit func(e *thir.Expr)
	visit = func(e *thir.Expr) {
		if e == nil || !covers(e.Span, off) {
			return
		}
		switch d := e.Data.(type) {
		case thir.VarRefData:
			consider(target{span: e.Span, v: d.Var, fn: symbols.NoFunID, expr: e})
		case thir.CallData:
			consider(target{span: e.Span, fn: d.Fun, expr: e})
			for _, a := range d.Args {
				visit(a)
			}
		case thir.UnaryOpData:
			consider(target{span: e.Span, fn: symbols.NoFunID, expr: e})
			visit(d.Operand)
		case thir.BinaryOpData:
			consider(target{span: e.Span, fn: symbols.NoFunID, expr: e})
			visit(d.Left)
			visit(d.Right)
		case thir.PackData:
			consider(target{span: e.Span, fn: symbols.NoFunID, expr: e})
			for _, el := range d.Elems {
				visit(el)
			}
		case thir.SwizzleData:
			consider(target{span: e.Span, fn: symbols.NoFunID, expr: e})
			visit(d.Value)
		default:
			consider(target{span: e.Span, fn: symbols.NoFunID, expr: e})
		}
	}

	for _, fn := range res.Typed.Funcs {
		fn.Body.Walk(func(st *thir.Stmt) {
			switch d := st.Data.(type) {
			case thir.LetData:
				visit(d.Value)
			case thir.AssignData:
				// имя слева от '='
				name := table.Var(d.Var).Name
				lhs := source.Span{File: st.Span.File, Start: st.Span.Start, End: st.Span.Start + uint32(len(name))} //nolint:gosec // identifier length
				consider(target{span: lhs, v: d.Var, fn: symbols.NoFunID})
				visit(d.Value)
			case thir.ExprStmtData:
				visit(d.Expr)
			case thir.ReturnData:
				visit(d.Value)
			case thir.IfData:
				visit(d.Cond)
			case thir.WhileData:
				visit(d.Cond)
			}
		})
	}
	return best, found
}
