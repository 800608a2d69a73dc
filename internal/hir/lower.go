package hir

import (
	"vecl/internal/ast"
	"vecl/internal/diag"
	"vecl/internal/source"
	"vecl/internal/symbols"
	"vecl/internal/types"
)

// constructors are the builtin pack expressions and their result types.
var constructors = map[string]types.Type{
	"vec2":    types.Vec2,
	"vec3":    types.Vec3,
	"vec4":    types.Vec4,
	"complex": types.Complex,
}

// Lower resolves names in a parsed file and produces the HIR module.
// Function and constant symbols are recorded in table. Problems are
// reported through rep; the module is returned even when some of them were
// found, with the offending nodes dropped.
func Lower(file *ast.File, b *ast.Builder, table *symbols.Table, rep diag.Reporter) *Module {
	l := &lowerer{
		b:      b,
		table:  table,
		rep:    rep,
		module: &Module{Main: symbols.NoFunID},
		global: symbols.NewScope(symbols.ScopeModule, nil),
	}
	l.lowerFile(file)
	return l.module
}

type lowerer struct {
	b      *ast.Builder
	table  *symbols.Table
	rep    diag.Reporter
	module *Module
	global *symbols.Scope

	fn        symbols.FunID
	scope     *symbols.Scope
	loopDepth int
	inConst   bool
}

func (l *lowerer) errorf(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportError(l.rep, code, sp, msg)
}

// lowerFile declares every function first so that calls may refer forward,
// then lowers constants in order and finally the function bodies.
func (l *lowerer) lowerFile(file *ast.File) {
	type pendingFn struct {
		id   symbols.FunID
		item *ast.Item
	}
	var fns []pendingFn
	for i := range file.Items {
		item := &file.Items[i]
		if item.Kind != ast.ItemFn {
			continue
		}
		if id, ok := l.declareFn(item); ok {
			fns = append(fns, pendingFn{id: id, item: item})
		}
	}
	for i := range file.Items {
		if item := &file.Items[i]; item.Kind == ast.ItemConst {
			l.lowerConstItem(item)
		}
	}
	for _, p := range fns {
		l.module.Funcs = append(l.module.Funcs, l.lowerFnBody(p.id, p.item))
	}

	mainID, ok := l.table.LookupFun("main")
	if !ok || l.table.Fun(mainID).Builtin != symbols.NotBuiltin {
		l.errorf(diag.SemaMissingMain, file.Span, "program has no 'main' function").Emit()
		return
	}
	if n := len(l.table.Fun(mainID).Params); n != 0 {
		l.errorf(diag.SemaArityMismatch, l.table.Fun(mainID).Span, "'main' must not take parameters").Emit()
	}
	l.module.Main = mainID
}

func (l *lowerer) declareFn(item *ast.Item) (symbols.FunID, bool) {
	if _, isCtor := constructors[item.Name]; isCtor {
		l.errorf(diag.SemaDuplicateSymbol, item.NameSpan, "'"+item.Name+"' is a builtin constructor").Emit()
		return symbols.NoFunID, false
	}
	if prev, dup := l.table.LookupFun(item.Name); dup {
		rb := l.errorf(diag.SemaDuplicateSymbol, item.NameSpan, "function '"+item.Name+"' is already declared")
		if prevFn := l.table.Fun(prev); prevFn.Builtin == symbols.NotBuiltin {
			rb.WithNote(prevFn.Span, "previous declaration")
		}
		rb.Emit()
		return symbols.NoFunID, false
	}
	result := types.Invalid
	if item.Result.Present() {
		result = l.resolveType(item.Result)
	}
	id := l.table.NewFun(symbols.Fun{Name: item.Name, Result: result, Span: item.NameSpan})
	seen := make(map[string]struct{}, len(item.Params))
	params := make([]symbols.VarID, 0, len(item.Params))
	for _, p := range item.Params {
		if _, dup := seen[p.Name]; dup {
			l.errorf(diag.SemaDuplicateSymbol, p.Span, "duplicate parameter '"+p.Name+"'").Emit()
		}
		seen[p.Name] = struct{}{}
		declared := types.Invalid
		if p.Type.Present() {
			declared = l.resolveType(p.Type)
		}
		params = append(params, l.table.NewVar(symbols.Var{
			Name: p.Name, Kind: symbols.VarParam, Declared: declared, Span: p.Span, Owner: id,
		}))
	}
	l.table.Fun(id).Params = params
	return id, true
}

// lowerConstItem resolves the initializer against the constants declared
// so far, then makes the constant itself visible.
func (l *lowerer) lowerConstItem(item *ast.Item) {
	l.scope, l.fn, l.inConst = l.global, symbols.NoFunID, true
	defer func() { l.inConst = false }()

	value := l.lowerExpr(item.Value)
	declared := types.Invalid
	if item.Type.Present() {
		declared = l.resolveType(item.Type)
	}
	id := l.table.NewVar(symbols.Var{
		Name: item.Name, Kind: symbols.VarConst, Declared: declared, Span: item.NameSpan, Owner: symbols.NoFunID,
	})
	if _, dup := l.global.Declare(item.Name, id); dup {
		l.errorf(diag.SemaDuplicateSymbol, item.NameSpan, "constant '"+item.Name+"' is already declared").Emit()
		return
	}
	if value != nil {
		l.module.Consts = append(l.module.Consts, &Const{Var: id, Value: value, Span: item.Span})
	}
}

func (l *lowerer) lowerFnBody(id symbols.FunID, item *ast.Item) *Func {
	l.fn = id
	l.scope = symbols.NewScope(symbols.ScopeFunction, l.global)
	for _, p := range l.table.Fun(id).Params {
		l.scope.Declare(l.table.Var(p).Name, p)
	}
	body := l.lowerBlock(item.Body, item.Span)
	return &Func{ID: id, Name: item.Name, Body: body, Span: item.Span}
}

func (l *lowerer) resolveType(ref ast.TypeRef) types.Type {
	t, ok := types.Parse(ref.Name)
	if !ok {
		l.errorf(diag.SemaUnresolvedSymbol, ref.Span, "unknown type '"+ref.Name+"'").Emit()
		return types.Invalid
	}
	return t
}
