// Package testsupport holds fixture and golden-file helpers shared by the
// package tests. Helpers fail the owning test on error to keep contract
// tests concise; goldens regenerate when UPDATE_GOLDENS is set.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-fieldmeta/pkg/model"
	pkgschema "github.com/goliatone/go-fieldmeta/pkg/schema"
)

// MustLoadDocument reads a fixture file and wraps it in a schema document.
func MustLoadDocument(t *testing.T, path string) pkgschema.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (pkgschema.Document, error) {
	if path == "" {
		return pkgschema.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgschema.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgschema.NewDocument(pkgschema.SourceFromFile(path), data)
	if err != nil {
		return pkgschema.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadMetadata loads a JSON golden file into a path→metadata map.
func MustLoadMetadata(t *testing.T, path string) map[string]pkgmodel.FieldMetadata {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load golden: %v", err)
	}
	var out map[string]pkgmodel.FieldMetadata
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return out
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is
// set in the environment.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
