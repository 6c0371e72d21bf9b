package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrRendererNotFound is returned by Get for names that were not registered.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry is a fixed set of renderers keyed by Name(). It is built once and
// read concurrently afterwards.
type Registry struct {
	renderers map[string]Renderer
	fallback  string
}

// NewRegistry indexes renderers by name. The first one is the default.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		if renderer == nil {
			return nil, errors.New("render: renderer is required")
		}
		name := renderer.Name()
		if name == "" {
			return nil, errors.New("render: renderer name is required")
		}
		if _, exists := r.renderers[name]; exists {
			return nil, fmt.Errorf("render: renderer %q registered twice", name)
		}
		r.renderers[name] = renderer
		if r.fallback == "" {
			r.fallback = name
		}
	}
	return r, nil
}

// Get returns the named renderer, or the default for "".
func (r *Registry) Get(name string) (Renderer, error) {
	if name == "" {
		name = r.fallback
	}
	if renderer, ok := r.renderers[name]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrRendererNotFound, name, strings.Join(r.Names(), ", "))
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
