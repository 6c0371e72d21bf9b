// Package vanilla renders forms as server-side HTML fragments with no
// client-side framework. Controls come from the components registry so
// callers can swap individual widgets.
package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
	rendertemplate "github.com/goliatone/go-leadform/pkg/render/template"
	"github.com/goliatone/go-leadform/pkg/render/template/pongo"
	"github.com/goliatone/go-leadform/pkg/renderers/vanilla/components"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default control registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// Renderer produces HTML form fragments.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *components.Registry
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}
	return &Renderer{templates: templates, registry: cfg.registry}, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return "vanilla" }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

type renderedSection struct {
	ID          string     `json:"id"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Rows        [][]string `json:"rows"`
}

// Render draws form with the session state in options.
func (r *Renderer) Render(ctx context.Context, form pkgmodel.FormDefinition, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := render.BuildView(form, options)
	data := components.ComponentData{Template: r.templates, Form: view}

	var used []string
	sections := make([]renderedSection, 0, len(view.Sections))
	for _, section := range view.Sections {
		rs := renderedSection{ID: section.ID, Title: section.Title, Description: section.Description}
		for _, row := range section.Rows {
			cells := make([]string, 0, len(row))
			for _, field := range row {
				name := components.NameFor(field)
				used = append(used, name)
				html, err := r.renderField(field, name, data)
				if err != nil {
					return nil, err
				}
				cells = append(cells, html)
			}
			rs.Rows = append(rs.Rows, cells)
		}
		sections = append(sections, rs)
	}

	stylesheets, scripts := r.registry.Assets(used)
	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form":        view,
		"sections":    sections,
		"stylesheets": stylesheets,
		"scripts":     scripts,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderField(field render.FieldView, name string, data components.ComponentData) (string, error) {
	component, ok := r.registry.Lookup(name)
	if !ok {
		return "", fmt.Errorf("vanilla renderer: component %q not registered", name)
	}
	var control bytes.Buffer
	if err := component.Render(&control, field, data); err != nil {
		return "", fmt.Errorf("vanilla renderer: field %q: %w", field.Name, err)
	}
	wrapped, err := r.templates.RenderTemplate("templates/field.tmpl", map[string]any{
		"field":   field,
		"control": control.String(),
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: wrap field %q: %w", field.Name, err)
	}
	return wrapped, nil
}
