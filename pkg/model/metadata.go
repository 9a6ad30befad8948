// Package model defines the flat field metadata record the resolver derives
// for one field address. It is the entire contract the input widgets depend
// on: a required flag plus whichever declared constraints apply to the
// field's effective primitive kind. Fields are JSON-tagged so snapshots and
// CLI output serialize deterministically.
package model

// FieldMetadata is the UI-relevant summary for one resolved field. Required
// is always explicitly computed; the remaining fields are populated only when
// the effective node declares them. Numeric bounds apply to number fields,
// length bounds and pattern to string fields.
type FieldMetadata struct {
	Required     bool     `json:"required"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	ExclusiveMin bool     `json:"exclusiveMin,omitempty"`
	ExclusiveMax bool     `json:"exclusiveMax,omitempty"`
	MinLength    *int     `json:"minLength,omitempty"`
	MaxLength    *int     `json:"maxLength,omitempty"`
	Pattern      string   `json:"pattern,omitempty"`
	Enum         []any    `json:"enum,omitempty"`
	Default      any      `json:"default,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// Unresolved is the conservative default served when no schema is bound or a
// path fails to resolve: not required, no constraints.
func Unresolved() FieldMetadata {
	return FieldMetadata{}
}
