package schema_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-fieldmeta/pkg/schema"
)

func TestLoader_FromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"schemas/person.json": &fstest.MapFile{Data: []byte(`{"type": "object"}`)},
	}
	loader := schema.NewLoader(schema.WithFileSystem(fsys))

	doc, err := loader.Load(context.Background(), schema.SourceFromFS("schemas/person.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "schemas/person.json" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
	if len(doc.Raw()) == 0 {
		t.Fatal("expected payload bytes")
	}
}

func TestLoader_FSRequiresFileSystem(t *testing.T) {
	loader := schema.NewLoader()
	if _, err := loader.Load(context.Background(), schema.SourceFromFS("missing.json")); err == nil {
		t.Fatal("expected error when no file system is configured")
	}
}

func TestLoader_HTTPDisabledByDefault(t *testing.T) {
	loader := schema.NewLoader()
	if _, err := loader.Load(context.Background(), schema.SourceFromURL("https://example.com/schema.json")); err == nil {
		t.Fatal("expected http loads to be disabled without a client")
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type": "object"}`))
	}))
	defer server.Close()

	loader := schema.NewLoader(schema.WithHTTPClient(server.Client()))
	doc, err := loader.Load(context.Background(), schema.SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Raw()) == 0 {
		t.Fatal("expected payload bytes")
	}
}

func TestLoader_NilSource(t *testing.T) {
	loader := schema.NewLoader()
	if _, err := loader.Load(context.Background(), nil); err == nil {
		t.Fatal("expected nil source to error")
	}
}

func TestDocument_RawIsDefensiveCopy(t *testing.T) {
	raw := []byte(`{"type": "string"}`)
	doc := schema.MustNewDocument(schema.SourceFromFS("inline.json"), raw)

	first := doc.Raw()
	first[0] = 'X'
	if second := doc.Raw(); second[0] != '{' {
		t.Fatal("mutating a returned payload must not affect the document")
	}
}
