package analyzer

import "minilang/internal/ast"

// binding is a Scope entry: declared type, mutable flag, moved flag.
type binding struct {
	Type    ast.Type
	Mutable bool
	Moved   bool
}

// Scope is a lexical name-to-binding mapping with a parent link; nested
// scopes shadow outer bindings only within their own map.
type Scope struct {
	parent *Scope
	vars   map[string]*binding
}

func newScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: make(map[string]*binding)}
}

func (s *Scope) define(name string, b *binding) {
	s.vars[name] = b
}

// lookup walks the parent chain and returns the nearest enclosing binding
// for name.
func (s *Scope) lookup(name string) (*binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// has reports whether name is bound in s or any ancestor — used to
// distinguish a call to a local value (e.g. a captured lambda) from a call
// to an undefined function; such calls are not type-checked strictly since
// the type grammar has no function-type form.
func (s *Scope) has(name string) bool {
	_, ok := s.lookup(name)
	return ok
}
