package symbols

type (
	// VarID identifies a variable, parameter or global constant.
	VarID uint32
	// FunID identifies a function, builtins included.
	FunID uint32
)

const (
	NoVarID VarID = 0
	NoFunID FunID = ^FunID(0)
)

func (id VarID) IsValid() bool { return id != NoVarID }
func (id FunID) IsValid() bool { return id != NoFunID }
