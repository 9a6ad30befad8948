package schema

// Kind identifies the variant a Node represents.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindDate    Kind = "date"
	KindNull    Kind = "null"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindUnion   Kind = "union"
	KindWrapper Kind = "wrapper"
)

// Modifier identifies how a wrapper node changes its child's semantics.
// Optional, Nullable and Default affect requiredness; Effect and Pipe only
// affect transform semantics and are transparent to optionality.
type Modifier string

const (
	ModifierOptional Modifier = "optional"
	ModifierNullable Modifier = "nullable"
	ModifierDefault  Modifier = "default"
	ModifierEffect   Modifier = "effect"
	ModifierPipe     Modifier = "pipe"
)

// Canonical constraint kinds carried by schema nodes. Numeric bounds and
// length limits encode their threshold in Constraint.Value; pattern rules
// preserve the original expression. Exclusivity is a separate kind so the
// flat kind/value pair stays sufficient.
const (
	ConstraintMin          = "min"
	ConstraintMax          = "max"
	ConstraintMinLength    = "minLength"
	ConstraintMaxLength    = "maxLength"
	ConstraintPattern      = "pattern"
	ConstraintExclusiveMin = "exclusiveMin"
	ConstraintExclusiveMax = "exclusiveMax"
)

// Constraint is a single declared restriction on a node's value.
type Constraint struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Node is one node of the modeled validation-schema tree. Exactly one
// variant is populated, selected by Kind: wrappers carry Child, objects
// carry Fields, arrays carry Element, unions carry Variants. Primitive
// nodes carry none of those. Trees are built once by an adapter or by
// authoring code and treated as immutable afterwards.
type Node struct {
	Kind     Kind
	Modifier Modifier

	Child    *Node
	Fields   map[string]*Node
	Element  *Node
	Variants []*Node

	Constraints []Constraint
	Description string
	Default     any
	Enum        []any
}

// String constructs a string primitive node.
func String() *Node {
	return &Node{Kind: KindString}
}

// Number constructs a numeric primitive node. Integer-typed source schemas
// map onto the same kind; bound extraction does not distinguish them.
func Number() *Node {
	return &Node{Kind: KindNumber}
}

// Boolean constructs a boolean primitive node.
func Boolean() *Node {
	return &Node{Kind: KindBoolean}
}

// Date constructs a date primitive node.
func Date() *Node {
	return &Node{Kind: KindDate}
}

// Null constructs a null marker node. Unions use it to model nullable
// alternatives.
func Null() *Node {
	return &Node{Kind: KindNull}
}

// Object constructs an object node over the supplied fields. Field order is
// irrelevant.
func Object(fields map[string]*Node) *Node {
	return &Node{Kind: KindObject, Fields: fields}
}

// Array constructs an array node with one declared element schema shared by
// all positions.
func Array(element *Node) *Node {
	return &Node{Kind: KindArray, Element: element}
}

// Union constructs a union node over the supplied variants, in order.
func Union(variants ...*Node) *Node {
	return &Node{Kind: KindUnion, Variants: variants}
}

// Optional wraps child so it may be omitted.
func Optional(child *Node) *Node {
	return &Node{Kind: KindWrapper, Modifier: ModifierOptional, Child: child}
}

// Nullable wraps child so it accepts null.
func Nullable(child *Node) *Node {
	return &Node{Kind: KindWrapper, Modifier: ModifierNullable, Child: child}
}

// WithDefault wraps child with a fallback value applied when the field is
// absent. A defaulted field is never required.
func WithDefault(child *Node, value any) *Node {
	return &Node{Kind: KindWrapper, Modifier: ModifierDefault, Child: child, Default: value}
}

// Effect wraps child with a transform step. Transparent to optionality.
func Effect(child *Node) *Node {
	return &Node{Kind: KindWrapper, Modifier: ModifierEffect, Child: child}
}

// Pipe wraps child with a follow-on schema stage. Transparent to optionality.
func Pipe(child *Node) *Node {
	return &Node{Kind: KindWrapper, Modifier: ModifierPipe, Child: child}
}

// Constrain appends a constraint and returns the node so authoring code can
// chain successive tightening calls.
func (n *Node) Constrain(kind, value string) *Node {
	if n == nil {
		return nil
	}
	n.Constraints = append(n.Constraints, Constraint{Kind: kind, Value: value})
	return n
}

// Describe attaches a human-readable description and returns the node.
func (n *Node) Describe(text string) *Node {
	if n == nil {
		return nil
	}
	n.Description = text
	return n
}

// Choices attaches the declared enum values and returns the node.
func (n *Node) Choices(values ...any) *Node {
	if n == nil {
		return nil
	}
	n.Enum = append([]any(nil), values...)
	return n
}

// IsWrapper reports whether the node is a modifier wrapper.
func (n *Node) IsWrapper() bool {
	return n != nil && n.Kind == KindWrapper
}

// IsComposite reports whether the node can be descended into by a path
// segment.
func (n *Node) IsComposite() bool {
	if n == nil {
		return false
	}
	return n.Kind == KindObject || n.Kind == KindArray
}
