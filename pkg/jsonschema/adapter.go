package jsonschema

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fieldmeta/pkg/schema"
)

const DefaultAdapterName = "jsonschema"

// Adapter translates raw JSON Schema payloads (JSON or YAML) into the schema
// node model.
type Adapter struct{}

// Ensure the implementation satisfies the shared adapter contract.
var _ schema.Adapter = (*Adapter)(nil)

// NewAdapter constructs a JSON Schema adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether the raw payload appears to be JSON Schema rather
// than an OpenAPI document.
func (a *Adapter) Detect(raw []byte) bool {
	payload, err := parsePayload(raw)
	if err != nil {
		return false
	}
	if _, ok := payload["openapi"]; ok {
		return false
	}
	if _, ok := payload["swagger"]; ok {
		return false
	}
	for _, marker := range []string{"$schema", "$id", "$defs", "definitions", "properties", "type"} {
		if _, ok := payload[marker]; ok {
			return true
		}
	}
	return false
}

// Translate parses the document and converts it into a node tree.
func (a *Adapter) Translate(_ context.Context, raw []byte) (*schema.Node, error) {
	payload, err := parsePayload(raw)
	if err != nil {
		return nil, err
	}

	node := translateMap(payload, newDefinitions(payload))
	if node == nil {
		return nil, errors.New("jsonschema adapter: document does not describe a usable schema")
	}
	return node, nil
}

func parsePayload(raw []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("jsonschema adapter: raw schema is empty")
	}

	var payload map[string]any
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return nil, fmt.Errorf("jsonschema adapter: parse schema: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &payload); err != nil {
			return nil, fmt.Errorf("jsonschema adapter: parse schema: %w", err)
		}
	}
	if payload == nil {
		return nil, errors.New("jsonschema adapter: schema is nil")
	}
	return payload, nil
}
