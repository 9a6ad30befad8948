package jsonschema

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-fieldmeta/pkg/schema"
)

// definitions indexes reusable subschemas so local $ref pointers resolve.
// Draft 2020-12 keeps them under "$defs" while earlier drafts used
// "definitions"; both layouts normalize into the same lookup.
type definitions struct {
	byPointer map[string]map[string]any
	resolving map[string]bool
}

func newDefinitions(payload map[string]any) *definitions {
	defs := &definitions{
		byPointer: make(map[string]map[string]any),
		resolving: make(map[string]bool),
	}
	for _, container := range []string{"$defs", "definitions"} {
		entries, ok := payload[container].(map[string]any)
		if !ok {
			continue
		}
		for name, value := range entries {
			if sub, ok := value.(map[string]any); ok {
				defs.byPointer["#/"+container+"/"+name] = sub
			}
		}
	}
	return defs
}

func (d *definitions) resolve(ref string) (map[string]any, bool) {
	sub, ok := d.byPointer[ref]
	return sub, ok
}

func translateMap(src map[string]any, defs *definitions) *schema.Node {
	if ref, ok := src["$ref"].(string); ok && ref != "" {
		target, found := defs.resolve(ref)
		if !found || defs.resolving[ref] {
			// Unknown pointers and reference cycles are dropped rather than
			// chased; the affected branch resolves to nothing.
			return nil
		}
		defs.resolving[ref] = true
		node := translateMap(target, defs)
		defs.resolving[ref] = false
		return node
	}

	nullable, baseType := normalizeType(src)

	node := translateBase(src, baseType, defs)
	if node == nil {
		return nil
	}

	if description, ok := src["description"].(string); ok && description != "" {
		node.Describe(description)
	}
	if enum, ok := src["enum"].([]any); ok && len(enum) > 0 {
		node.Choices(enum...)
	}
	applyConstraints(node, src)

	if value, ok := src["default"]; ok && value != nil {
		node = schema.WithDefault(node, value)
	}
	if nullable {
		node = schema.Nullable(node)
	}
	return node
}

func translateBase(src map[string]any, baseType string, defs *definitions) *schema.Node {
	switch baseType {
	case "object":
		return translateObject(src, defs)
	case "array":
		items, ok := src["items"].(map[string]any)
		if !ok {
			return nil
		}
		element := translateMap(items, defs)
		if element == nil {
			return nil
		}
		return schema.Array(element)
	case "number", "integer":
		return schema.Number()
	case "boolean":
		return schema.Boolean()
	case "string":
		switch format, _ := src["format"].(string); format {
		case "date", "date-time":
			return schema.Date()
		}
		return schema.String()
	case "null":
		return schema.Null()
	case "":
		if variants := translateVariants(src, defs); variants != nil {
			return schema.Union(variants...)
		}
		if _, ok := src["properties"].(map[string]any); ok {
			return translateObject(src, defs)
		}
		return nil
	default:
		return nil
	}
}

func translateObject(src map[string]any, defs *definitions) *schema.Node {
	properties, _ := src["properties"].(map[string]any)

	required := make(map[string]struct{})
	if names, ok := src["required"].([]any); ok {
		for _, raw := range names {
			if name, ok := raw.(string); ok {
				required[name] = struct{}{}
			}
		}
	}

	fields := make(map[string]*schema.Node, len(properties))
	for name, raw := range properties {
		property, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		field := translateMap(property, defs)
		if field == nil {
			continue
		}
		if _, ok := required[name]; !ok {
			field = schema.Optional(field)
		}
		fields[name] = field
	}
	return schema.Object(fields)
}

func translateVariants(src map[string]any, defs *definitions) []*schema.Node {
	refs, _ := src["oneOf"].([]any)
	if len(refs) == 0 {
		refs, _ = src["anyOf"].([]any)
	}
	if len(refs) == 0 {
		return nil
	}
	variants := make([]*schema.Node, 0, len(refs))
	for _, raw := range refs {
		variant, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if node := translateMap(variant, defs); node != nil {
			variants = append(variants, node)
		}
	}
	if len(variants) == 0 {
		return nil
	}
	return variants
}

// normalizeType folds a scalar or array "type" into one non-null base type
// plus a nullability flag. A schema typed only as "null" stays a null
// marker so union variants keep their meaning.
func normalizeType(src map[string]any) (nullable bool, baseType string) {
	switch typed := src["type"].(type) {
	case string:
		baseType = typed
	case []any:
		hasNull := false
		for _, raw := range typed {
			value, ok := raw.(string)
			if !ok {
				continue
			}
			if value == "null" {
				hasNull = true
				continue
			}
			if baseType == "" {
				baseType = value
			}
		}
		if hasNull {
			if baseType == "" {
				return false, "null"
			}
			nullable = true
		}
	}
	return nullable, baseType
}

// applyConstraints records declared bounds in document order. Exclusive
// bounds arrive in two incompatible layouts: draft-04 uses a boolean that
// modifies minimum/maximum, draft 2020-12 carries the threshold itself.
// Both normalize to a bound constraint plus an exclusivity marker.
func applyConstraints(node *schema.Node, src map[string]any) {
	if value, ok := toFloat(src["minimum"]); ok {
		node.Constrain(schema.ConstraintMin, formatFloat(value))
		if boolean, ok := src["exclusiveMinimum"].(bool); ok && boolean {
			node.Constrain(schema.ConstraintExclusiveMin, "true")
		}
	} else if value, ok := toFloat(src["exclusiveMinimum"]); ok {
		node.Constrain(schema.ConstraintMin, formatFloat(value))
		node.Constrain(schema.ConstraintExclusiveMin, "true")
	}

	if value, ok := toFloat(src["maximum"]); ok {
		node.Constrain(schema.ConstraintMax, formatFloat(value))
		if boolean, ok := src["exclusiveMaximum"].(bool); ok && boolean {
			node.Constrain(schema.ConstraintExclusiveMax, "true")
		}
	} else if value, ok := toFloat(src["exclusiveMaximum"]); ok {
		node.Constrain(schema.ConstraintMax, formatFloat(value))
		node.Constrain(schema.ConstraintExclusiveMax, "true")
	}

	if value, ok := toFloat(src["minLength"]); ok {
		node.Constrain(schema.ConstraintMinLength, strconv.Itoa(int(value)))
	}
	if value, ok := toFloat(src["maxLength"]); ok {
		node.Constrain(schema.ConstraintMaxLength, strconv.Itoa(int(value)))
	}
	if pattern, ok := src["pattern"].(string); ok && strings.TrimSpace(pattern) != "" {
		node.Constrain(schema.ConstraintPattern, pattern)
	}
}

func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	default:
		return 0, false
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
