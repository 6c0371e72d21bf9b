package components

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/render"
)

func noop(*bytes.Buffer, render.FieldView, ComponentData) error { return nil }

func TestRegistry_AssetsSplitAndDeduplicate(t *testing.T) {
	registry, err := New(map[string]Component{
		"a": {Render: noop, Assets: []string{"/a.css", "/shared.CSS", "/a.js"}},
		"b": {Render: noop, Assets: []string{"/shared.CSS", "/a.js", "/b.js"}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	styles, scripts := registry.Assets([]string{"a", "B", "a", "missing"})
	if diff := cmp.Diff([]string{"/a.css", "/shared.CSS"}, styles); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/a.js", "/b.js"}, scripts); diff != "" {
		t.Fatalf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_RejectsIncompleteComponents(t *testing.T) {
	if _, err := New(map[string]Component{"x": {}}); err == nil {
		t.Fatalf("expected error for missing renderer")
	}
	if _, err := NewDefaultRegistry().With("  ", Component{Render: noop}); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestRegistry_WithLeavesReceiverUntouched(t *testing.T) {
	base := NewDefaultRegistry()
	extended, err := base.With("Extra", Component{Render: noop})
	if err != nil {
		t.Fatalf("With: %v", err)
	}

	if _, ok := base.Lookup("extra"); ok {
		t.Fatalf("With mutated the receiver")
	}
	if _, ok := extended.Lookup(" EXTRA "); !ok {
		t.Fatalf("lookup should normalise names")
	}
	want := []string{NameBoolean, NameChallenge, NameInput, NameSelect, NameTextarea}
	if diff := cmp.Diff(want, base.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestNameFor(t *testing.T) {
	cases := map[string]render.FieldView{
		NameChallenge: {Kind: "text", IsChallenge: true},
		NameBoolean:   {Kind: "boolean"},
		NameSelect:    {Kind: "enum"},
		NameTextarea:  {Kind: "longtext"},
		NameInput:     {Kind: "text"},
	}
	for want, field := range cases {
		if got := NameFor(field); got != want {
			t.Fatalf("NameFor(%+v) = %q, want %q", field, got, want)
		}
	}
}
