package symbols

import (
	"vecl/internal/source"
	"vecl/internal/types"
)

// VarKind distinguishes where a variable was declared.
type VarKind uint8

const (
	VarLocal VarKind = iota + 1
	VarParam
	VarConst
)

func (k VarKind) String() string {
	switch k {
	case VarLocal:
		return "local"
	case VarParam:
		return "param"
	case VarConst:
		return "const"
	default:
		return "invalid"
	}
}

// Var is a variable symbol. Declared is types.Invalid when the source gave
// no annotation and the type has to be inferred.
type Var struct {
	Name     string
	Kind     VarKind
	Declared types.Type
	Span     source.Span
	Owner    FunID // NoFunID for global constants
}

// DeclaredVar is the inference seed of v: its annotation or Unknown.
func (v *Var) DeclaredVar() types.TypeVar {
	if v.Declared == types.Invalid {
		return types.Unknown
	}
	return v.Declared.Var()
}

// Builtin tags functions implemented by the runtime preamble.
type Builtin uint8

const (
	NotBuiltin Builtin = iota
	BuiltinPrintInt
	BuiltinPrintReal
	BuiltinPrintBool
)

// Fun is a function symbol. Result is types.Invalid for functions that
// return nothing.
type Fun struct {
	Name    string
	Params  []VarID
	Result  types.Type
	Span    source.Span
	Builtin Builtin
}

// ResultVar is the declared result as a lattice point; None when absent.
func (f *Fun) ResultVar() types.TypeVar {
	if f.Result == types.Invalid {
		return types.None
	}
	return f.Result.Var()
}
