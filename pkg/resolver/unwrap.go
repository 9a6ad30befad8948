package resolver

import "github.com/goliatone/go-fieldmeta/pkg/schema"

// Unwrap collapses a chain of wrapper nodes to the first non-wrapper node.
// Wrapper chains are finite because the tree is acyclic by construction. A
// wrapper with a missing child yields nil.
func Unwrap(node *schema.Node) *schema.Node {
	for node.IsWrapper() {
		node = node.Child
	}
	return node
}

// IsOptional reports whether the chain from node to its effective node
// passes through an Optional, Nullable or Default wrapper. Effect and Pipe
// wrappers are transparent: they only change transform semantics, but the
// walk still traverses them to reach the checks underneath. A union is
// optional when any variant denotes a null marker; an empty union counts as
// non-optional.
func IsOptional(node *schema.Node) bool {
	for node.IsWrapper() {
		switch node.Modifier {
		case schema.ModifierOptional, schema.ModifierNullable, schema.ModifierDefault:
			return true
		}
		node = node.Child
	}
	if node == nil {
		return false
	}
	if node.Kind == schema.KindUnion {
		for _, variant := range node.Variants {
			effective := Unwrap(variant)
			if effective != nil && effective.Kind == schema.KindNull {
				return true
			}
		}
	}
	return false
}
