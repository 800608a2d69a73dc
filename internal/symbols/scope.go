package symbols

// ScopeKind enumerates lexical scope categories.
type ScopeKind uint8

const (
	ScopeModule ScopeKind = iota + 1
	ScopeFunction
	ScopeBlock
)

// Scope maps names to variables; lookups walk to the parent.
type Scope struct {
	Kind   ScopeKind
	Parent *Scope
	names  map[string]VarID
}

func NewScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{Kind: kind, Parent: parent, names: make(map[string]VarID)}
}

// Declare binds name in this scope and returns the previous binding in the
// same scope, if any.
func (s *Scope) Declare(name string, id VarID) (VarID, bool) {
	prev, dup := s.names[name]
	if !dup {
		s.names[name] = id
	}
	return prev, dup
}

// Lookup finds name in this scope or any ancestor.
func (s *Scope) Lookup(name string) (VarID, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if id, ok := sc.names[name]; ok {
			return id, true
		}
	}
	return NoVarID, false
}
