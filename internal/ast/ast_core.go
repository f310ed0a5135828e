// Package ast is the minimal surface the type algebra needs from the
// (external, out-of-scope) parser/binder layer: just enough identity to
// point a diagnostic at a location. The real AST lives in the checker
// that embeds this module; it satisfies this interface.
package ast

// Node is the base interface for whatever the parser's AST nodes are.
// The type algebra never inspects a Node; it only carries one through
// for error reporting (see symbols.Symbol.DefinitionNode).
type Node interface {
	TokenLiteral() string
}
