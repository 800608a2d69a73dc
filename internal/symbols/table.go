package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"vecl/internal/source"
	"vecl/internal/types"
)

// Table holds every symbol of one compilation unit. Ids come from per-table
// counters and are never reused.
type Table struct {
	vars      []Var // index 0 is unused
	funs      []Fun
	funByName map[string]FunID
}

// NewTable creates a table with the print builtins pre-declared.
func NewTable() *Table {
	t := &Table{vars: make([]Var, 1, 64), funByName: make(map[string]FunID)}
	t.declareBuiltin("printi", types.Int, BuiltinPrintInt)
	t.declareBuiltin("printr", types.Real, BuiltinPrintReal)
	t.declareBuiltin("printb", types.Bool, BuiltinPrintBool)
	return t
}

func (t *Table) declareBuiltin(name string, param types.Type, b Builtin) {
	id := t.NewFun(Fun{Name: name, Builtin: b})
	arg := t.NewVar(Var{Name: "value", Kind: VarParam, Declared: param, Owner: id})
	t.Fun(id).Params = []VarID{arg}
}

func (t *Table) NewVar(v Var) VarID {
	n, err := safecast.Conv[uint32](len(t.vars))
	if err != nil {
		panic(fmt.Errorf("var id overflow: %w", err))
	}
	t.vars = append(t.vars, v)
	return VarID(n)
}

func (t *Table) Var(id VarID) *Var {
	if !id.IsValid() || int(id) >= len(t.vars) {
		panic(fmt.Sprintf("symbols: unknown var %d", id))
	}
	return &t.vars[id]
}

// NumVars is one past the highest VarID.
func (t *Table) NumVars() int { return len(t.vars) }

// NewFun declares a function; the name index keeps the first declaration.
func (t *Table) NewFun(f Fun) FunID {
	n, err := safecast.Conv[uint32](len(t.funs))
	if err != nil {
		panic(fmt.Errorf("fun id overflow: %w", err))
	}
	id := FunID(n)
	t.funs = append(t.funs, f)
	if _, dup := t.funByName[f.Name]; !dup {
		t.funByName[f.Name] = id
	}
	return id
}

func (t *Table) Fun(id FunID) *Fun {
	if int(id) >= len(t.funs) {
		panic(fmt.Sprintf("symbols: unknown fun %d", id))
	}
	return &t.funs[id]
}

// LookupFun finds a function by name.
func (t *Table) LookupFun(name string) (FunID, bool) {
	id, ok := t.funByName[name]
	return id, ok
}

// NumFuns is one past the highest FunID.
func (t *Table) NumFuns() int { return len(t.funs) }

// ParamTypes returns the declared parameter seeds of f.
func (t *Table) ParamTypes(id FunID) []types.TypeVar {
	f := t.Fun(id)
	out := make([]types.TypeVar, len(f.Params))
	for i, p := range f.Params {
		out[i] = t.Var(p).DeclaredVar()
	}
	return out
}

// FunSpan is a convenience for diagnostics.
func (t *Table) FunSpan(id FunID) source.Span { return t.Fun(id).Span }
