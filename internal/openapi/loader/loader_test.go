package loader

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-leadform/pkg/openapi"
)

const minimalDocument = `openapi: 3.0.3
info:
  title: t
  version: "1"
paths: {}
`

func TestLoad_FSSource(t *testing.T) {
	files := fstest.MapFS{"forms/openapi.yaml": {Data: []byte(minimalDocument)}}
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("/forms/openapi.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "forms/openapi.yaml" {
		t.Fatalf("location = %q", doc.Location())
	}
	if string(doc.Raw()) != minimalDocument {
		t.Fatalf("unexpected raw document")
	}
}

func TestLoad_DisabledKinds(t *testing.T) {
	l := New(pkgopenapi.LoaderOptions{})

	_, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("openapi.yaml"))
	if err == nil || !strings.Contains(err.Error(), "fs sources are not enabled") {
		t.Fatalf("expected fs disabled error, got %v", err)
	}

	src, err := pkgopenapi.SourceFromURL("https://example.com/forms.yaml")
	if err != nil {
		t.Fatalf("url source: %v", err)
	}
	_, err = l.Load(context.Background(), src)
	if err == nil || !strings.Contains(err.Error(), "url sources are not enabled") {
		t.Fatalf("expected url disabled error, got %v", err)
	}
}

func TestLoad_NilSourceAndMissingFile(t *testing.T) {
	l := New(pkgopenapi.LoaderOptions{})
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromFile(t.TempDir()+"/missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	files := fstest.MapFS{"openapi.yaml": {Data: []byte(minimalDocument)}}
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx, pkgopenapi.SourceFromFS("openapi.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}
