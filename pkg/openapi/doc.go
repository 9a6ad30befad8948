// Package openapi adapts kin-openapi documents into the schema node model.
// It absorbs the two incompatible layouts OpenAPI uses for nullability: the
// 3.0 `nullable: true` flag and the 3.1 `type: [T, "null"]` array both
// normalize to a Nullable wrapper before resolution ever runs, so the
// resolver stays version-agnostic.
package openapi
