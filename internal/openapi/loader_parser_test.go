package openapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	leadform "github.com/goliatone/go-leadform"
	pkgopenapi "github.com/goliatone/go-leadform/pkg/openapi"
)

func formsDocument(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "forms", "openapi.yaml"))
	if err != nil {
		t.Fatalf("read forms document: %v", err)
	}
	return data
}

func TestLoaderParserAcrossSources(t *testing.T) {
	ctx := context.Background()
	data := formsDocument(t)

	dir := t.TempDir()
	filePath := filepath.Join(dir, "openapi.yaml")
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		t.Fatalf("write temp document: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	urlSource, err := pkgopenapi.SourceFromURL(srv.URL + "/openapi.yaml")
	if err != nil {
		t.Fatalf("url source: %v", err)
	}

	loader := leadform.NewLoader(
		pkgopenapi.WithFileSystem(leadform.FormsFS()),
		pkgopenapi.WithHTTPClient(srv.Client()),
	)
	parser := leadform.NewParser()

	sources := map[string]pkgopenapi.Source{
		"file": pkgopenapi.SourceFromFile(filePath),
		"fs":   pkgopenapi.SourceFromFS("openapi.yaml"),
		"url":  urlSource,
	}

	var reference map[string]pkgopenapi.Operation
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			doc, err := loader.Load(ctx, src)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			ops, err := parser.Operations(ctx, doc)
			if err != nil {
				t.Fatalf("operations: %v", err)
			}

			inquiry, ok := ops[leadform.InquiryFormID]
			if !ok {
				t.Fatalf("missing %s, got %v", leadform.InquiryFormID, keys(ops))
			}
			if inquiry.Method != http.MethodPost || inquiry.Path != "/inquiry" {
				t.Fatalf("unexpected endpoint %s %s", inquiry.Method, inquiry.Path)
			}
			if !inquiry.RequestBody.IsRequired("code") {
				t.Fatalf("expected code to be required")
			}
			if _, ok := ops[leadform.NewsletterFormID]; !ok {
				t.Fatalf("missing %s", leadform.NewsletterFormID)
			}

			if reference == nil {
				reference = ops
				return
			}
			if diff := cmp.Diff(keys(reference), keys(ops)); diff != "" {
				t.Fatalf("operation set differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoaderRejectsURLWithoutHTTP(t *testing.T) {
	src, err := pkgopenapi.SourceFromURL("https://example.com/openapi.yaml")
	if err != nil {
		t.Fatalf("url source: %v", err)
	}
	if _, err := leadform.NewLoader().Load(context.Background(), src); err == nil {
		t.Fatalf("expected error when HTTP is disabled")
	}
}

func keys(ops map[string]pkgopenapi.Operation) []string {
	out := make([]string, 0, len(ops))
	for id := range ops {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
