// Package jsonschema adapts raw JSON Schema documents (JSON or YAML bytes)
// into the schema node model. Dialect differences are absorbed here: "$defs"
// and the older "definitions" container both back local $ref resolution, and
// the two exclusive-bound layouts (draft-04 boolean flag vs 2020-12 numeric
// threshold) normalize to the same constraint shape.
package jsonschema
