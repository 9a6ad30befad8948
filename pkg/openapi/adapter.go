package openapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"

	"github.com/goliatone/go-fieldmeta/pkg/schema"
)

const DefaultAdapterName = "openapi"

// Adapter loads an OpenAPI document and translates one component schema into
// a node tree.
type Adapter struct {
	opts adapterOptions
}

// Ensure the implementation satisfies the shared adapter contract.
var _ schema.Adapter = (*Adapter)(nil)

// AdapterOption configures an OpenAPI adapter.
type AdapterOption func(*adapterOptions)

type adapterOptions struct {
	schemaName        string
	allowExternalRefs bool
}

// WithSchemaName pins translation to a named component schema. Without it
// the adapter requires the document to declare exactly one.
func WithSchemaName(name string) AdapterOption {
	return func(opts *adapterOptions) {
		opts.schemaName = name
	}
}

// WithExternalRefs toggles resolution of external $ref targets.
func WithExternalRefs(enabled bool) AdapterOption {
	return func(opts *adapterOptions) {
		opts.allowExternalRefs = enabled
	}
}

// NewAdapter constructs an OpenAPI adapter with the supplied options.
func NewAdapter(options ...AdapterOption) *Adapter {
	opts := adapterOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}
	return &Adapter{opts: opts}
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether the raw payload appears to be OpenAPI.
func (a *Adapter) Detect(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if _, ok := payload["openapi"]; ok {
				return true
			}
			if _, ok := payload["swagger"]; ok {
				return true
			}
		}
		return false
	}
	lower := strings.ToLower(string(trimmed))
	return strings.Contains(lower, "openapi:") || strings.Contains(lower, "swagger:")
}

// Translate loads the document and converts the selected component schema.
func (a *Adapter) Translate(ctx context.Context, raw []byte) (*schema.Node, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi adapter: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: a.opts.allowExternalRefs,
	}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi adapter: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi adapter: validate: %w", err)
	}

	ref, err := a.selectSchema(doc)
	if err != nil {
		return nil, err
	}
	node := Translate(ref)
	if node == nil {
		return nil, errors.New("openapi adapter: selected schema is empty")
	}
	return node, nil
}

func (a *Adapter) selectSchema(doc *openapi3.T) (*openapi3.SchemaRef, error) {
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("openapi adapter: document declares no component schemas")
	}
	schemas := doc.Components.Schemas
	if name := a.opts.schemaName; name != "" {
		ref, ok := schemas[name]
		if !ok {
			return nil, fmt.Errorf("openapi adapter: component schema %q not found", name)
		}
		return ref, nil
	}
	if len(schemas) == 1 {
		for _, ref := range schemas {
			return ref, nil
		}
	}
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("openapi adapter: multiple component schemas, select one of [%s] with WithSchemaName", strings.Join(names, ", "))
}

// Translate converts a resolved schema reference into a node tree. Nil and
// unresolved references yield nil.
func Translate(ref *openapi3.SchemaRef) *schema.Node {
	if ref == nil || ref.Value == nil {
		return nil
	}
	return translateSchema(ref.Value)
}

func translateSchema(src *openapi3.Schema) *schema.Node {
	nullable, baseType := normalizeType(src)

	node := translateBase(src, baseType)
	if node == nil {
		return nil
	}

	if src.Description != "" {
		node.Describe(src.Description)
	}
	if len(src.Enum) > 0 {
		node.Choices(src.Enum...)
	}
	applyConstraints(node, src)

	if src.Default != nil {
		node = schema.WithDefault(node, src.Default)
	}
	if nullable {
		node = schema.Nullable(node)
	}
	return node
}

func translateBase(src *openapi3.Schema, baseType string) *schema.Node {
	switch baseType {
	case "object":
		return translateObject(src)
	case "array":
		element := Translate(src.Items)
		if element == nil {
			return nil
		}
		return schema.Array(element)
	case "number", "integer":
		return schema.Number()
	case "boolean":
		return schema.Boolean()
	case "string":
		switch src.Format {
		case "date", "date-time":
			return schema.Date()
		}
		return schema.String()
	case "null":
		return schema.Null()
	case "":
		if variants := translateVariants(src); variants != nil {
			return schema.Union(variants...)
		}
		if len(src.Properties) > 0 {
			return translateObject(src)
		}
		return nil
	default:
		return nil
	}
}

func translateObject(src *openapi3.Schema) *schema.Node {
	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}
	fields := make(map[string]*schema.Node, len(src.Properties))
	for name, property := range src.Properties {
		field := Translate(property)
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

func translateVariants(src *openapi3.Schema) []*schema.Node {
	refs := src.OneOf
	if len(refs) == 0 {
		refs = src.AnyOf
	}
	if len(refs) == 0 {
		return nil
	}
	variants := make([]*schema.Node, 0, len(refs))
	for _, ref := range refs {
		if variant := Translate(ref); variant != nil {
			variants = append(variants, variant)
		}
	}
	if len(variants) == 0 {
		return nil
	}
	return variants
}

// normalizeType folds both nullability layouts (the 3.0 nullable flag and a
// 3.1 "null" entry in the type array) into one flag and returns the
// effective non-null type. A schema typed only as "null" stays a null
// marker so union variants keep their meaning.
func normalizeType(src *openapi3.Schema) (nullable bool, baseType string) {
	nullable = src.Nullable
	if src.Type == nil {
		return nullable, ""
	}
	hasNull := false
	for _, value := range src.Type.Slice() {
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
			return nullable, "null"
		}
		nullable = true
	}
	return nullable, baseType
}

func applyConstraints(node *schema.Node, src *openapi3.Schema) {
	if src.Min != nil {
		node.Constrain(schema.ConstraintMin, formatFloat(*src.Min))
		if src.ExclusiveMin {
			node.Constrain(schema.ConstraintExclusiveMin, "true")
		}
	}
	if src.Max != nil {
		node.Constrain(schema.ConstraintMax, formatFloat(*src.Max))
		if src.ExclusiveMax {
			node.Constrain(schema.ConstraintExclusiveMax, "true")
		}
	}
	if src.MinLength != 0 {
		node.Constrain(schema.ConstraintMinLength, strconv.FormatUint(src.MinLength, 10))
	}
	if src.MaxLength != nil {
		node.Constrain(schema.ConstraintMaxLength, strconv.FormatUint(*src.MaxLength, 10))
	}
	if src.Pattern != "" {
		node.Constrain(schema.ConstraintPattern, src.Pattern)
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
