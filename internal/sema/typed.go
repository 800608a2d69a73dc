package sema

import (
	"fmt"

	"vecl/internal/hir"
	"vecl/internal/symbols"
	"vecl/internal/thir"
	"vecl/internal/types"
)

// build produces the typed tree once every set is concrete. It does not
// infer anything; it only reads back the resolved sets.
func (in *inferrer) build(mod *hir.Module) (*thir.Module, []*Error) {
	out := &thir.Module{
		Main:     mod.Main,
		VarTypes: make([]types.Type, in.table.NumVars()),
	}
	for v, id := range in.sets.byVar {
		if in.isTemp(v) {
			continue
		}
		t, _ := in.sets.typeOf(id).Concrete()
		out.VarTypes[v] = t
	}

	env := make(map[symbols.VarID]thir.Const, len(mod.Consts))
	for _, c := range mod.Consts {
		x := in.typedExpr(c.Value)
		val, ok := evalConst(x, env)
		if !ok {
			return nil, []*Error{{Kind: ConstEvalFailed, Span: c.Span, Name: in.table.Var(c.Var).Name}}
		}
		tc := thir.Const{Var: c.Var, Value: val}
		env[c.Var] = tc
		out.Consts = append(out.Consts, tc)
	}

	for _, f := range mod.Funcs {
		sym := in.table.Fun(f.ID)
		out.Funcs = append(out.Funcs, &thir.Func{
			ID:     f.ID,
			Name:   f.Name,
			Params: sym.Params,
			Result: sym.Result,
			Body:   in.typedBlock(f.Body),
			Span:   f.Span,
		})
	}
	return out, nil
}

func (in *inferrer) concrete(e *hir.Expr) types.Type {
	o, ok := in.exprs[e]
	if !ok {
		panic(fmt.Sprintf("sema: expression at %s was never inferred", e.Span))
	}
	tv := in.typeOf(o)
	if tv == types.None {
		return types.Invalid
	}
	t, ok := tv.Concrete()
	if !ok {
		panic(fmt.Sprintf("sema: expression at %s resolved to %s", e.Span, tv))
	}
	return t
}

func (in *inferrer) typedExpr(e *hir.Expr) *thir.Expr {
	out := &thir.Expr{Type: in.concrete(e), Span: e.Span}
	switch d := e.Data.(type) {
	case hir.LiteralData:
		out.Kind, out.Data = thir.ExprLiteral, thir.LiteralData{Value: d.Value}
	case hir.VarRefData:
		out.Kind, out.Data = thir.ExprVarRef, thir.VarRefData{Var: d.Var}
	case hir.UnaryOpData:
		out.Kind, out.Data = thir.ExprUnaryOp, thir.UnaryOpData{Op: d.Op, Operand: in.typedExpr(d.Operand)}
	case hir.BinaryOpData:
		l, r := in.typedExpr(d.Left), in.typedExpr(d.Right)
		scaling := in.exprs[e].scaling
		operand := l.Type
		if scaling {
			operand = out.Type
		}
		if res, ok := types.BinaryResult(d.Op, l.Type, r.Type); !ok || res != out.Type {
			panic(fmt.Sprintf("sema: %s %s %s resolved to %s", l.Type, d.Op, r.Type, out.Type))
		}
		out.Kind = thir.ExprBinaryOp
		out.Data = thir.BinaryOpData{Op: d.Op, Operand: operand, Scaling: scaling, Left: l, Right: r}
	case hir.CallData:
		args := make([]*thir.Expr, len(d.Args))
		for i, a := range d.Args {
			args[i] = in.typedExpr(a)
		}
		out.Kind, out.Data = thir.ExprCall, thir.CallData{Fun: d.Fun, Args: args}
	case hir.PackData:
		elems := make([]*thir.Expr, len(d.Elems))
		for i, el := range d.Elems {
			elems[i] = in.typedExpr(el)
		}
		out.Kind, out.Data = thir.ExprPack, thir.PackData{Elems: elems}
	case hir.SwizzleData:
		out.Kind = thir.ExprSwizzle
		out.Data = thir.SwizzleData{Value: in.typedExpr(d.Value), Lanes: d.Lanes}
	}
	return out
}

func (in *inferrer) typedBlock(b *hir.Block) *thir.Block {
	if b == nil {
		return nil
	}
	out := &thir.Block{Span: b.Span, Stmts: make([]thir.Stmt, 0, len(b.Stmts))}
	for _, s := range b.Stmts {
		ts := thir.Stmt{Span: s.Span}
		switch d := s.Data.(type) {
		case hir.LetData:
			ts.Kind, ts.Data = thir.StmtLet, thir.LetData{Var: d.Var, Value: in.typedExpr(d.Value)}
		case hir.AssignData:
			ts.Kind, ts.Data = thir.StmtAssign, thir.AssignData{Var: d.Var, Value: in.typedExpr(d.Value)}
		case hir.ExprStmtData:
			ts.Kind, ts.Data = thir.StmtExpr, thir.ExprStmtData{Expr: in.typedExpr(d.Expr)}
		case hir.ReturnData:
			rd := thir.ReturnData{}
			if d.Value != nil {
				rd.Value = in.typedExpr(d.Value)
			}
			ts.Kind, ts.Data = thir.StmtReturn, rd
		case hir.IfData:
			ts.Kind = thir.StmtIf
			ts.Data = thir.IfData{Cond: in.typedExpr(d.Cond), Then: in.typedBlock(d.Then), Else: in.typedBlock(d.Else)}
		case hir.WhileData:
			ts.Kind, ts.Data = thir.StmtWhile, thir.WhileData{Cond: in.typedExpr(d.Cond), Body: in.typedBlock(d.Body)}
		default:
			switch s.Kind {
			case hir.StmtBreak:
				ts.Kind = thir.StmtBreak
			case hir.StmtContinue:
				ts.Kind = thir.StmtContinue
			}
		}
		out.Stmts = append(out.Stmts, ts)
	}
	return out
}
