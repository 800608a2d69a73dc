// Package sema infers the type of every variable and expression of a
// resolved module and produces the typed tree.
package sema

import (
	"maps"
	"slices"

	"vecl/internal/diag"
	"vecl/internal/hir"
	"vecl/internal/symbols"
	"vecl/internal/thir"
	"vecl/internal/types"
)

// Options configure an inference run.
type Options struct {
	Reporter diag.Reporter
}

// Result holds either the typed module or the errors that prevented it.
type Result struct {
	Module *thir.Module
	Errors []*Error
}

// Ok reports whether inference produced a module.
func (r Result) Ok() bool { return r.Module != nil && len(r.Errors) == 0 }

// Infer runs constraint generation over every constant initializer and
// function body, checks that every constraint set resolved to a concrete
// type and builds the typed tree.
//
// The first mismatch stops generation. Unresolved variables are reported
// together, one error per variable, in declaration order.
func Infer(mod *hir.Module, table *symbols.Table, opts Options) Result {
	in := &inferrer{
		table:    table,
		sets:     newConstraintSets(),
		exprs:    make(map[*hir.Expr]operand),
		nextTemp: symbols.VarID(table.NumVars()), //nolint:gosec // table ids fit in uint32
	}
	fail := func(errs ...*Error) Result {
		for _, e := range errs {
			e.report(opts.Reporter)
		}
		return Result{Errors: errs}
	}

	// parameters of every function are shared by all call sites in the unit
	for f := range table.NumFuns() {
		fn := table.Fun(symbols.FunID(f)) //nolint:gosec // bounded by NumFuns
		for _, p := range fn.Params {
			in.sets.add(p, table.Var(p).DeclaredVar())
		}
	}
	for _, c := range mod.Consts {
		if err := in.constDecl(c); err != nil {
			return fail(err)
		}
	}
	for _, f := range mod.Funcs {
		if err := in.function(f); err != nil {
			return fail(err)
		}
	}
	if err := in.resolveArith(); err != nil {
		return fail(err)
	}

	if errs := in.unresolved(); len(errs) > 0 {
		return fail(errs...)
	}

	out, errs := in.build(mod)
	if len(errs) > 0 {
		return fail(errs...)
	}
	return Result{Module: out}
}

// operand is the inference result of one expression. An anchored operand
// has the current type of its anchor variable's set; an unanchored operand
// always has a concrete type or None.
type operand struct {
	tv      types.TypeVar
	anchor  symbols.VarID
	scaling bool
}

type inferrer struct {
	table *symbols.Table
	sets  *constraintSets
	exprs map[*hir.Expr]operand

	// * and / whose operands are not settled yet, see arith.go
	pending  []pendingArith
	nextTemp symbols.VarID

	result types.TypeVar // of the function being generated
}

func (in *inferrer) typeOf(o operand) types.TypeVar {
	if o.anchor.IsValid() {
		return in.sets.typeOf(in.sets.of(o.anchor))
	}
	return o.tv
}

func mismatch(e *hir.Expr, required, got types.TypeVar) *Error {
	return &Error{Kind: MismatchedTypes, Span: e.Span, Required: required, Got: got}
}

// constrain narrows o to class.
func (in *inferrer) constrain(e *hir.Expr, o operand, class types.TypeVar) (operand, *Error) {
	if o.anchor.IsValid() {
		if _, ok := in.sets.constrain(in.sets.of(o.anchor), class); !ok {
			return o, mismatch(e, class, in.typeOf(o))
		}
		return o, nil
	}
	j, ok := types.Join(o.tv, class)
	if !ok {
		return o, mismatch(e, class, o.tv)
	}
	o.tv = j
	return o, nil
}

// unify requires two operands to have the same type. The result is
// anchored when either side was.
func (in *inferrer) unify(e *hir.Expr, l, r operand) (operand, *Error) {
	switch {
	case l.anchor.IsValid() && r.anchor.IsValid():
		if _, _, ok := in.sets.unite(in.sets.of(l.anchor), in.sets.of(r.anchor)); !ok {
			return l, mismatch(e, in.typeOf(l), in.typeOf(r))
		}
		return operand{anchor: l.anchor}, nil
	case l.anchor.IsValid():
		if _, ok := in.sets.constrain(in.sets.of(l.anchor), r.tv); !ok {
			return l, mismatch(e, in.typeOf(l), r.tv)
		}
		return operand{anchor: l.anchor}, nil
	case r.anchor.IsValid():
		if _, ok := in.sets.constrain(in.sets.of(r.anchor), l.tv); !ok {
			return r, mismatch(e, l.tv, in.typeOf(r))
		}
		return operand{anchor: r.anchor}, nil
	}
	j, ok := types.Join(l.tv, r.tv)
	if !ok {
		return l, mismatch(e, l.tv, r.tv)
	}
	return operand{tv: j}, nil
}

// bind makes variable v agree with the value assigned to it.
func (in *inferrer) bind(v symbols.VarID, e *hir.Expr, val operand) *Error {
	_, err := in.unify(e, operand{anchor: v}, val)
	if err != nil {
		err.Required, err.Got = in.typeOf(operand{anchor: v}), in.typeOf(val)
	}
	return err
}

func (in *inferrer) constDecl(c *hir.Const) *Error {
	in.sets.add(c.Var, in.table.Var(c.Var).DeclaredVar())
	val, err := in.expr(c.Value)
	if err != nil {
		return err
	}
	return in.bind(c.Var, c.Value, val)
}

func (in *inferrer) function(f *hir.Func) *Error {
	in.result = in.table.Fun(f.ID).ResultVar()
	return in.block(f.Body)
}

func (in *inferrer) block(b *hir.Block) *Error {
	if b == nil {
		return nil
	}
	for i := range b.Stmts {
		if err := in.stmt(&b.Stmts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (in *inferrer) stmt(s *hir.Stmt) *Error {
	switch d := s.Data.(type) {
	case hir.LetData:
		in.sets.add(d.Var, in.table.Var(d.Var).DeclaredVar())
		val, err := in.expr(d.Value)
		if err != nil {
			return err
		}
		return in.bind(d.Var, d.Value, val)

	case hir.AssignData:
		val, err := in.expr(d.Value)
		if err != nil {
			return err
		}
		return in.bind(d.Var, d.Value, val)

	case hir.ExprStmtData:
		_, err := in.expr(d.Expr)
		return err

	case hir.ReturnData:
		if d.Value == nil {
			if in.result != types.None {
				return &Error{Kind: MismatchedTypes, Span: s.Span, Required: in.result, Got: types.None}
			}
			return nil
		}
		val, err := in.expr(d.Value)
		if err != nil {
			return err
		}
		if _, err := in.constrain(d.Value, val, in.result); err != nil {
			err.Required, err.Got = in.result, in.typeOf(val)
			return err
		}
		return nil

	case hir.IfData:
		if err := in.condition(d.Cond); err != nil {
			return err
		}
		if err := in.block(d.Then); err != nil {
			return err
		}
		return in.block(d.Else)

	case hir.WhileData:
		if err := in.condition(d.Cond); err != nil {
			return err
		}
		return in.block(d.Body)
	}
	return nil
}

func (in *inferrer) condition(e *hir.Expr) *Error {
	c, err := in.expr(e)
	if err != nil {
		return err
	}
	_, err = in.constrain(e, c, types.Bool.Var())
	return err
}

// unresolved reports every variable whose set is not concrete.
func (in *inferrer) unresolved() []*Error {
	var errs []*Error
	for _, v := range slices.Sorted(maps.Keys(in.sets.byVar)) {
		if in.isTemp(v) {
			continue
		}
		tv := in.sets.typeOf(in.sets.of(v))
		if _, ok := tv.Concrete(); ok {
			continue
		}
		sym := in.table.Var(v)
		errs = append(errs, &Error{Kind: CouldNotInfer, Span: sym.Span, Name: sym.Name, Got: tv})
	}
	return errs
}
