// Package render turns a form definition plus per-session state into an
// output format. Renderers live in pkg/renderers; this package holds the
// shared contract, the view model and the registry.
package render

import (
	"context"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
)

// Renderer converts a FormDefinition into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form pkgmodel.FormDefinition, options RenderOptions) ([]byte, error)
}
