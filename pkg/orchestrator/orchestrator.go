package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/renderers/vanilla"
	"github.com/goliatone/go-leadform/pkg/uischema"
)

const (
	// DefaultDocument is the forms document name inside the forms FS.
	DefaultDocument = "openapi.yaml"
	// DefaultUISchemaDir holds layout overlays inside the forms FS.
	DefaultUISchemaDir = "ui"
)

// ErrFormNotFound is returned for operation ids the document does not declare.
var ErrFormNotFound = errors.New("orchestrator: form not found")

// Orchestrator compiles the forms document once and renders its forms on
// request. It is safe for concurrent use.
type Orchestrator struct {
	cfg config

	mu    sync.Mutex
	forms map[string]model.FormDefinition

	registryOnce sync.Once
	registry     *render.Registry
	registryErr  error
}

// New builds an Orchestrator. Missing collaborators default to the built-in
// loader, parser, builder and the vanilla renderer.
func New(options ...Option) *Orchestrator {
	var cfg config
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.withDefaults()
	return &Orchestrator{cfg: cfg}
}

// Request selects a form and renderer. An empty Renderer picks the default.
type Request struct {
	OperationID   string
	Renderer      string
	RenderOptions render.RenderOptions
}

// Forms returns every form of the document keyed by operation id. Only a
// successful compile is cached, so a failed remote fetch is retried.
func (o *Orchestrator) Forms(ctx context.Context) (map[string]model.FormDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.forms == nil {
		forms, err := compile(ctx, o.cfg)
		if err != nil {
			return nil, err
		}
		o.forms = forms
	}
	return o.forms, nil
}

// Form returns one form definition.
func (o *Orchestrator) Form(ctx context.Context, operationID string) (model.FormDefinition, error) {
	forms, err := o.Forms(ctx)
	if err != nil {
		return model.FormDefinition{}, err
	}
	form, ok := forms[operationID]
	if !ok {
		return model.FormDefinition{}, fmt.Errorf("%w: %q", ErrFormNotFound, operationID)
	}
	return form, nil
}

// Generate renders the requested form.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if req.OperationID == "" {
		return nil, errors.New("orchestrator: operation id is required")
	}
	form, err := o.Form(ctx, req.OperationID)
	if err != nil {
		return nil, err
	}
	registry, err := o.renderers()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(req.Renderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	out, err := renderer.Render(ctx, form, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render %s with %s: %w", req.OperationID, renderer.Name(), err)
	}
	return out, nil
}

func (o *Orchestrator) renderers() (*render.Registry, error) {
	o.registryOnce.Do(func() {
		if o.cfg.registry != nil {
			o.registry = o.cfg.registry
			return
		}
		html, err := vanilla.New()
		if err != nil {
			o.registryErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry, o.registryErr = render.NewRegistry(html)
	})
	return o.registry, o.registryErr
}

// compile runs load, parse, build and decorate, in operation id order so
// errors are reported deterministically.
func compile(ctx context.Context, cfg config) (map[string]model.FormDefinition, error) {
	doc, err := cfg.loader.Load(ctx, cfg.source)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load document: %w", err)
	}
	operations, err := cfg.parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse operations: %w", err)
	}
	store, err := uischema.LoadFS(cfg.uiSchemaFS)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load ui schema: %w", err)
	}
	decorator := uischema.NewDecorator(store)

	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	forms := make(map[string]model.FormDefinition, len(ids))
	for _, id := range ids {
		form, err := cfg.builder.Build(operations[id])
		if err != nil {
			return nil, fmt.Errorf("orchestrator: build form: %w", err)
		}
		if err := decorator.Decorate(&form); err != nil {
			return nil, fmt.Errorf("orchestrator: decorate form: %w", err)
		}
		forms[id] = form
	}
	return forms, nil
}
