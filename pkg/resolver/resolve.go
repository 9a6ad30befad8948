package resolver

import (
	"github.com/goliatone/go-fieldmeta/pkg/fieldpath"
	"github.com/goliatone/go-fieldmeta/pkg/schema"
)

// Resolve walks from root through object and array composites along path and
// returns the addressed node. The returned node keeps its own wrappers so
// callers can still judge optionality; only intermediate nodes are unwrapped
// so wrapped composites are transparently entered. The boolean is false when
// any segment fails to match the schema shape at that position: an index
// against a non-array, a name against a non-object, a missing field, or a
// node that cannot be descended into. All array indices resolve to the one
// declared element schema.
func Resolve(root *schema.Node, path fieldpath.Path) (*schema.Node, bool) {
	if root == nil {
		return nil, false
	}
	current := root
	for _, segment := range path {
		effective := Unwrap(current)
		if effective == nil {
			return nil, false
		}
		switch {
		case segment.IsIndex && effective.Kind == schema.KindArray:
			current = effective.Element
		case !segment.IsIndex && effective.Kind == schema.KindObject:
			current = effective.Fields[segment.Name]
		default:
			return nil, false
		}
		if current == nil {
			return nil, false
		}
	}
	return current, true
}
