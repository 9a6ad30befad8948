// Package schema defines the closed, tagged-variant node model that field
// metadata resolution runs over. Real third-party schema representations are
// translated into this model exactly once by an adapter (pkg/openapi for
// kin-openapi documents, pkg/jsonschema for raw JSON Schema payloads), so
// every representation- or version-specific quirk stays out of the resolver.
// Nodes are built through the constructors in this package and treated as
// immutable for the lifetime of the form that owns them.
package schema
