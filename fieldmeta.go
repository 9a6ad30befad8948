// Package fieldmeta resolves per-field UI metadata (required flag, numeric
// bounds, length limits, patterns) from a validation-schema tree. The root
// package is a thin facade over pkg/form, pkg/resolver, and the adapters;
// most callers only need NewContext plus one of the translate helpers.
package fieldmeta

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-fieldmeta/pkg/form"
	"github.com/goliatone/go-fieldmeta/pkg/jsonschema"
	"github.com/goliatone/go-fieldmeta/pkg/model"
	"github.com/goliatone/go-fieldmeta/pkg/openapi"
	"github.com/goliatone/go-fieldmeta/pkg/schema"
)

// FieldMetadata aliases the resolver output record for convenience.
type FieldMetadata = model.FieldMetadata

// Context aliases the per-form resolution context.
type Context = form.Context

// NewContext exposes the form context constructor from the top-level module.
func NewContext(options ...form.Option) *form.Context {
	return form.New(options...)
}

// NewBoundContext constructs a context already bound to root.
func NewBoundContext(root *schema.Node, options ...form.Option) *form.Context {
	return form.NewBound(root, options...)
}

// DefaultAdapters returns the built-in document adapters in detection order.
func DefaultAdapters() []schema.Adapter {
	return []schema.Adapter{
		openapi.NewAdapter(),
		jsonschema.NewAdapter(),
	}
}

// Translate runs the raw document through the first adapter that recognizes
// it and returns the schema tree root.
func Translate(ctx context.Context, raw []byte, adapters ...schema.Adapter) (*schema.Node, error) {
	if len(adapters) == 0 {
		adapters = DefaultAdapters()
	}
	for _, adapter := range adapters {
		if adapter == nil || !adapter.Detect(raw) {
			continue
		}
		node, err := adapter.Translate(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("fieldmeta: adapter %s: %w", adapter.Name(), err)
		}
		return node, nil
	}
	return nil, errors.New("fieldmeta: no adapter recognized the document")
}

// ContextFromDocument translates the document and binds the result to a new
// context, the common mount-with-schema flow.
func ContextFromDocument(ctx context.Context, doc schema.Document, options ...form.Option) (*form.Context, error) {
	root, err := Translate(ctx, doc.Raw())
	if err != nil {
		return nil, err
	}
	return form.NewBound(root, options...), nil
}
