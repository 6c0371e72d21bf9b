package orchestrator

import (
	"io/fs"

	internalLoader "github.com/goliatone/go-leadform/internal/openapi/loader"
	internalParser "github.com/goliatone/go-leadform/internal/openapi/parser"
	"github.com/goliatone/go-leadform/pkg/model"
	pkgopenapi "github.com/goliatone/go-leadform/pkg/openapi"
	"github.com/goliatone/go-leadform/pkg/render"
)

// Option customises an Orchestrator.
type Option func(*config)

type config struct {
	formsFS  fs.FS
	source   pkgopenapi.Source
	loader   pkgopenapi.Loader
	parser   pkgopenapi.Parser
	builder  model.Builder
	registry *render.Registry

	uiSchemaFS  fs.FS
	uiSchemaSet bool
}

// WithFormsFS serves the forms document and its ui/ overlays from fsys.
func WithFormsFS(fsys fs.FS) Option {
	return func(c *config) { c.formsFS = fsys }
}

// WithSource overrides where the forms document is read from.
func WithSource(src pkgopenapi.Source) Option {
	return func(c *config) { c.source = src }
}

// WithLoader injects the document loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(c *config) { c.loader = loader }
}

// WithParser injects the document parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(c *config) { c.parser = parser }
}

// WithModelBuilder injects the form definition builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(c *config) { c.builder = builder }
}

// WithRegistry replaces the renderers. Requests without a renderer name use
// the registry's first renderer.
func WithRegistry(registry *render.Registry) Option {
	return func(c *config) { c.registry = registry }
}

// WithUISchemaFS overrides the layout overlays. A nil fs disables them.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(c *config) {
		c.uiSchemaFS = fsys
		c.uiSchemaSet = true
	}
}

func (c *config) withDefaults() {
	if c.source == nil {
		c.source = pkgopenapi.SourceFromFS(DefaultDocument)
	}
	if c.loader == nil {
		c.loader = internalLoader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(c.formsFS)))
	}
	if c.parser == nil {
		c.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if c.builder == nil {
		c.builder = model.NewBuilder()
	}
	if !c.uiSchemaSet && c.formsFS != nil {
		if sub, err := fs.Sub(c.formsFS, DefaultUISchemaDir); err == nil {
			c.uiSchemaFS = sub
		}
	}
}
