// Package components maps field views onto the HTML controls that draw them.
package components

import (
	"bytes"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/goliatone/go-leadform/pkg/render"
	rendertemplate "github.com/goliatone/go-leadform/pkg/render/template"
)

// Renderer writes the control markup for one field into buf.
type Renderer func(buf *bytes.Buffer, field render.FieldView, data ComponentData) error

// ComponentData carries the template engine and the form being drawn.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	Form     render.FormView
}

// Component is a control renderer plus the static files it needs. Assets
// ending in .css are linked as stylesheets, everything else as scripts.
type Component struct {
	Render Renderer
	Assets []string
}

// Registry is an immutable name to Component table. With returns a modified
// copy, so a Registry can be shared between renderers without locking.
type Registry struct {
	components map[string]Component
}

// New builds a registry from entries.
func New(entries map[string]Component) (*Registry, error) {
	r := &Registry{components: make(map[string]Component, len(entries))}
	for name, component := range entries {
		if err := r.put(name, component); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// With returns a copy of r where name draws with component.
func (r *Registry) With(name string, component Component) (*Registry, error) {
	next := &Registry{components: make(map[string]Component, len(r.components)+1)}
	for key, existing := range r.components {
		next.components[key] = existing
	}
	if err := next.put(name, component); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *Registry) put(name string, component Component) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fmt.Errorf("components: component name is required")
	}
	if component.Render == nil {
		return fmt.Errorf("components: component %q has no renderer", key)
	}
	component.Assets = slices.Clone(component.Assets)
	r.components[key] = component
	return nil
}

// Lookup returns the component registered under name.
func (r *Registry) Lookup(name string) (Component, bool) {
	component, ok := r.components[strings.ToLower(strings.TrimSpace(name))]
	return component, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Assets splits the files of the named components into stylesheets and
// scripts, first use first, each listed once. Unknown names are skipped.
func (r *Registry) Assets(names []string) (stylesheets, scripts []string) {
	seen := make(map[string]bool)
	for _, name := range names {
		component, ok := r.Lookup(name)
		if !ok {
			continue
		}
		for _, asset := range component.Assets {
			if asset == "" || seen[asset] {
				continue
			}
			seen[asset] = true
			if strings.EqualFold(path.Ext(asset), ".css") {
				stylesheets = append(stylesheets, asset)
			} else {
				scripts = append(scripts, asset)
			}
		}
	}
	return stylesheets, scripts
}
