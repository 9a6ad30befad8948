package jsonschema_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-fieldmeta/pkg/form"
	"github.com/goliatone/go-fieldmeta/pkg/jsonschema"
	"github.com/goliatone/go-fieldmeta/pkg/resolver"
	"github.com/goliatone/go-fieldmeta/pkg/schema"
)

const draft2020Document = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "age"],
  "properties": {
    "name": {"type": "string", "minLength": 3, "pattern": "^[A-Za-z ]+$"},
    "nickname": {"type": ["string", "null"]},
    "age": {"type": "number", "minimum": 18, "exclusiveMaximum": 100},
    "address": {"$ref": "#/$defs/Address"}
  },
  "$defs": {
    "Address": {
      "type": "object",
      "required": ["city"],
      "properties": {
        "city": {"type": "string"}
      }
    }
  }
}`

func TestAdapter_TranslateDraft2020(t *testing.T) {
	adapter := jsonschema.NewAdapter()
	root, err := adapter.Translate(context.Background(), []byte(draft2020Document))
	if err != nil {
		t.Fatalf("translate: %v", err)
	}

	ctx := form.NewBound(root)
	if !ctx.IsRequired("name") {
		t.Fatal("name is required")
	}
	if ctx.IsRequired("nickname") {
		t.Fatal("type-array null makes nickname optional")
	}

	name := ctx.FieldMetadata("name")
	if name.MinLength == nil || *name.MinLength != 3 || name.Pattern != "^[A-Za-z ]+$" {
		t.Fatalf("expected name constraints, got %+v", name)
	}

	// 2020-12 layout: exclusiveMaximum carries the threshold itself.
	age := ctx.FieldMetadata("age")
	if age.Min == nil || *age.Min != 18 {
		t.Fatalf("expected minimum 18, got %+v", age)
	}
	if age.Max == nil || *age.Max != 100 || !age.ExclusiveMax {
		t.Fatalf("expected exclusive maximum 100, got %+v", age)
	}

	// $defs-backed references resolve like inline schemas.
	if !ctx.IsRequired("address.city") {
		t.Fatal("referenced subschema resolves through the path")
	}
}

const draft04Document = `{
  "$schema": "http://json-schema.org/draft-04/schema#",
  "type": "object",
  "properties": {
    "score": {"type": "integer", "minimum": 0, "exclusiveMinimum": true},
    "kind": {"$ref": "#/definitions/Kind"}
  },
  "definitions": {
    "Kind": {"type": "string", "enum": ["basic", "pro"]}
  }
}`

func TestAdapter_TranslateDraft04Layouts(t *testing.T) {
	adapter := jsonschema.NewAdapter()
	root, err := adapter.Translate(context.Background(), []byte(draft04Document))
	if err != nil {
		t.Fatalf("translate: %v", err)
	}

	ctx := form.NewBound(root)

	// Draft-04 layout: exclusiveMinimum is a boolean modifying minimum.
	score := ctx.FieldMetadata("score")
	if score.Min == nil || *score.Min != 0 || !score.ExclusiveMin {
		t.Fatalf("expected exclusive minimum 0, got %+v", score)
	}

	// The older definitions container backs $ref the same way $defs does.
	kind := ctx.FieldMetadata("kind")
	if len(kind.Enum) != 2 {
		t.Fatalf("expected enum to survive the reference, got %+v", kind)
	}
}

const yamlDocument = `
type: object
required: [title]
properties:
  title:
    type: string
    maxLength: 120
  published:
    type: boolean
    default: false
`

func TestAdapter_TranslateYAML(t *testing.T) {
	adapter := jsonschema.NewAdapter()
	root, err := adapter.Translate(context.Background(), []byte(yamlDocument))
	if err != nil {
		t.Fatalf("translate: %v", err)
	}

	ctx := form.NewBound(root)
	title := ctx.FieldMetadata("title")
	if !title.Required || title.MaxLength == nil || *title.MaxLength != 120 {
		t.Fatalf("expected required title with maxLength 120, got %+v", title)
	}

	published := ctx.FieldMetadata("published")
	if published.Required {
		t.Fatal("defaulted field is not required")
	}
	if published.Default != false {
		t.Fatalf("expected default false, got %v", published.Default)
	}
}

func TestAdapter_ReferenceCyclesAreDropped(t *testing.T) {
	const cyclic = `{
	  "type": "object",
	  "properties": {
	    "node": {"$ref": "#/$defs/Node"}
	  },
	  "$defs": {
	    "Node": {
	      "type": "object",
	      "properties": {
	        "next": {"$ref": "#/$defs/Node"}
	      }
	    }
	  }
	}`

	adapter := jsonschema.NewAdapter()
	root, err := adapter.Translate(context.Background(), []byte(cyclic))
	if err != nil {
		t.Fatalf("translate: %v", err)
	}

	node, ok := resolver.Resolve(root, nil)
	if !ok || node.Kind != schema.KindObject {
		t.Fatalf("expected object root, got %+v", node)
	}
	// The cyclic branch resolves to nothing instead of recursing forever.
	ctx := form.NewBound(root)
	if ctx.IsRequired("node.next") {
		t.Fatal("cyclic reference branch must fold into the unresolved default")
	}
}

func TestAdapter_Detect(t *testing.T) {
	adapter := jsonschema.NewAdapter()
	if !adapter.Detect([]byte(draft2020Document)) {
		t.Fatal("expected JSON Schema payload to be detected")
	}
	if !adapter.Detect([]byte(yamlDocument)) {
		t.Fatal("expected YAML schema payload to be detected")
	}
	if adapter.Detect([]byte(`{"openapi": "3.0.3"}`)) {
		t.Fatal("OpenAPI payloads are not raw JSON Schema")
	}
	if adapter.Detect([]byte("   ")) {
		t.Fatal("blank payloads are not schemas")
	}
}

func TestAdapter_TranslateRejectsUnusableDocuments(t *testing.T) {
	adapter := jsonschema.NewAdapter()
	if _, err := adapter.Translate(context.Background(), []byte(`{"description": "nothing else"}`)); err == nil {
		t.Fatal("expected a document without shape to error")
	}
	if _, err := adapter.Translate(context.Background(), nil); err == nil {
		t.Fatal("expected empty payload to error")
	}
}
