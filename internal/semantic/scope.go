package semantic

// Scope is one local-symbol-table frame: declared-variable name to
// canonical type, chained to its enclosing scope (spec §4.6's "local-symbol
// lookup in the current scope's symbol table").
type Scope struct {
	vars   map[string]string
	parent *Scope
}

// NewScope creates a child scope of parent (nil for a function's top scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{vars: make(map[string]string), parent: parent}
}

// Define records a local variable's canonical type in this scope.
func (s *Scope) Define(name, typ string) {
	s.vars[name] = typ
}

// Lookup searches this scope and its enclosing chain for name.
func (s *Scope) Lookup(name string) (string, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.vars[name]; ok {
			return t, true
		}
	}
	return "", false
}
