package template

import "io"

// TemplateRenderer executes templates by name or from inline content. The
// result is returned and also copied to any writers given.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
}
