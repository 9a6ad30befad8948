package resolver

import (
	"strconv"

	"github.com/goliatone/go-fieldmeta/pkg/model"
	"github.com/goliatone/go-fieldmeta/pkg/schema"
)

// Extract derives the flat metadata record for a resolved node. Requiredness
// is judged on the original, still-wrapped node, since the wrapper itself is
// the signal; constraints are then read off the effective node. When the
// same constraint kind appears more than once the last entry wins, matching
// how constraint chains are authored as successive tightening calls.
// Extraction is total: missing constraints simply yield a smaller record.
func Extract(node *schema.Node) model.FieldMetadata {
	if node == nil {
		return model.Unresolved()
	}

	meta := model.FieldMetadata{Required: !IsOptional(node)}

	for cursor := node; cursor.IsWrapper(); cursor = cursor.Child {
		if cursor.Modifier == schema.ModifierDefault && cursor.Default != nil {
			meta.Default = cursor.Default
		}
	}

	effective := Unwrap(node)
	if effective == nil {
		return meta
	}

	meta.Description = effective.Description
	if meta.Description == "" {
		meta.Description = node.Description
	}
	if len(effective.Enum) > 0 {
		meta.Enum = append([]any(nil), effective.Enum...)
	}
	if meta.Default == nil && effective.Default != nil {
		meta.Default = effective.Default
	}

	switch effective.Kind {
	case schema.KindString:
		applyStringConstraints(&meta, effective.Constraints)
	case schema.KindNumber:
		applyNumberConstraints(&meta, effective.Constraints)
	}
	return meta
}

func applyStringConstraints(meta *model.FieldMetadata, constraints []schema.Constraint) {
	for _, c := range constraints {
		switch c.Kind {
		case schema.ConstraintMinLength:
			if value, err := strconv.Atoi(c.Value); err == nil {
				meta.MinLength = &value
			}
		case schema.ConstraintMaxLength:
			if value, err := strconv.Atoi(c.Value); err == nil {
				meta.MaxLength = &value
			}
		case schema.ConstraintPattern:
			if c.Value != "" {
				meta.Pattern = c.Value
			}
		}
	}
}

func applyNumberConstraints(meta *model.FieldMetadata, constraints []schema.Constraint) {
	for _, c := range constraints {
		switch c.Kind {
		case schema.ConstraintMin:
			if value, err := strconv.ParseFloat(c.Value, 64); err == nil {
				meta.Min = &value
			}
		case schema.ConstraintMax:
			if value, err := strconv.ParseFloat(c.Value, 64); err == nil {
				meta.Max = &value
			}
		case schema.ConstraintExclusiveMin:
			meta.ExclusiveMin = c.Value == "true"
		case schema.ConstraintExclusiveMax:
			meta.ExclusiveMax = c.Value == "true"
		}
	}
}
