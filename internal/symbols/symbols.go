// Package symbols is the checker-level "name -> declaration" table
// spec.md §1 names as external input the type algebra is handed, not
// something it computes itself: a module or class body's bindings,
// each carrying a declared-or-inferred typesystem.Type. It sits above
// internal/typesystem (imports it, never the reverse) so the algebra
// itself stays free of any notion of "scope chain" or "global binding".
package symbols

import (
	"github.com/funvibe/typelab/internal/ast"
	"github.com/funvibe/typelab/internal/typesystem"
)

// Kind is what a Symbol's name was bound by.
type Kind int

const (
	KindVariable Kind = iota
	KindFunction
	KindClass
	KindModule
	KindTypeAlias
	KindTypeParameter
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindModule:
		return "module"
	case KindTypeAlias:
		return "type alias"
	case KindTypeParameter:
		return "type parameter"
	default:
		return "?"
	}
}

// Symbol is one binding: a name, what kind of thing bound it, its
// type (as the binder determined — this package never infers one),
// and the syntax node it came from for diagnostics.
type Symbol struct {
	Name           string
	Kind           Kind
	DeclaredType   typesystem.Type
	DefinitionNode ast.Node
	IsExported     bool
}

// Table is a single lexical scope's bindings, insertion-ordered so
// iteration (e.g. "dump every global") is deterministic.
type Table struct {
	Parent *Table

	order  []string
	byName map[string]*Symbol
}

// NewTable creates an empty scope, optionally chained to parent.
func NewTable(parent *Table) *Table {
	return &Table{Parent: parent, byName: make(map[string]*Symbol)}
}

// Define adds or replaces a binding in this scope (not a parent).
func (t *Table) Define(sym *Symbol) {
	if _, exists := t.byName[sym.Name]; !exists {
		t.order = append(t.order, sym.Name)
	}
	t.byName[sym.Name] = sym
}

// LookupLocal looks up name in this scope only.
func (t *Table) LookupLocal(name string) (*Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// Lookup walks from this scope outward through Parent chains.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for s := t; s != nil; s = s.Parent {
		if sym, ok := s.byName[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Names returns this scope's own bindings in declaration order.
func (t *Table) Names() []string { return t.order }
