package schema

import "context"

// Adapter translates one external schema representation into the node model.
// Implementations own every representation-specific branch (including the
// incompatible layouts different major versions use for the same concept)
// so resolution stays version-agnostic. Translation runs once per form; the
// returned root is immutable afterwards.
type Adapter interface {
	Name() string
	// Detect reports whether the raw payload looks like this adapter's
	// representation.
	Detect(raw []byte) bool
	// Translate converts the raw document into a schema tree root.
	Translate(ctx context.Context, raw []byte) (*Node, error)
}
