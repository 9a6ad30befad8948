package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/goccy/go-json"

	fieldmeta "github.com/goliatone/go-fieldmeta"
	"github.com/goliatone/go-fieldmeta/pkg/form"
	"github.com/goliatone/go-fieldmeta/pkg/jsonschema"
	"github.com/goliatone/go-fieldmeta/pkg/openapi"
	"github.com/goliatone/go-fieldmeta/pkg/schema"
)

func main() {
	source := flag.String("source", "", "schema document path or URL (OpenAPI or JSON Schema)")
	schemaName := flag.String("schema", "", "component schema name for OpenAPI documents")
	paths := flag.String("paths", "", "comma-separated field paths to resolve")
	sanitize := flag.Bool("sanitize", false, "strip markup from descriptions")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid source: %q", *source)
	}

	loader := schema.NewLoader(schema.WithHTTPClient(http.DefaultClient))
	doc, err := loader.Load(ctx, src)
	if err != nil {
		log.Fatalf("Failed to load schema document: %v", err)
	}

	adapters := []schema.Adapter{
		openapi.NewAdapter(openapi.WithSchemaName(*schemaName)),
		jsonschema.NewAdapter(),
	}
	root, err := fieldmeta.Translate(ctx, doc.Raw(), adapters...)
	if err != nil {
		log.Fatalf("Failed to translate schema: %v", err)
	}

	var options []form.Option
	if *sanitize {
		options = append(options, form.WithSanitizedDescriptions())
	}
	resolution := form.NewBound(root, options...)

	fieldPaths := splitPaths(*paths, flag.Args())
	if len(fieldPaths) == 0 {
		log.Fatal("no field paths supplied; use -paths or positional arguments")
	}

	results := make(map[string]fieldmeta.FieldMetadata, len(fieldPaths))
	for _, path := range fieldPaths {
		results[path] = resolution.FieldMetadata(path)
	}

	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode results: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Metadata written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}

func parseSource(raw string) schema.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schema.SourceFromURL(path)
	}
	return schema.SourceFromFile(path)
}

func splitPaths(joined string, args []string) []string {
	var paths []string
	for _, part := range strings.Split(joined, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	for _, arg := range args {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths
}
