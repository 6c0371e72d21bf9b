package components

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-leadform/pkg/render"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry returns the built-in controls, one template each.
func NewDefaultRegistry() *Registry {
	entries := make(map[string]Component)
	for _, name := range []string{NameInput, NameTextarea, NameSelect, NameBoolean, NameChallenge} {
		entries[name] = Component{Render: TemplateRenderer(templatePrefix + name + ".tmpl")}
	}
	registry, err := New(entries)
	if err != nil {
		panic(err)
	}
	return registry
}

// TemplateRenderer renders field through a named template. The template
// receives "field" and "form".
func TemplateRenderer(templateName string) Renderer {
	return func(buf *bytes.Buffer, field render.FieldView, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: no template engine for %q", templateName)
		}
		rendered, err := data.Template.RenderTemplate(templateName, map[string]any{
			"field": field,
			"form":  data.Form,
		})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
