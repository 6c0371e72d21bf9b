package leadform

import (
	"context"

	"github.com/goliatone/go-leadform/pkg/orchestrator"
	"github.com/goliatone/go-leadform/pkg/render"
)

// RenderOptions describes per-request state renderers draw: values, errors,
// challenge and session status.
type RenderOptions = render.RenderOptions

// Request selects a form and renderer.
type Request = orchestrator.Request

// NewOrchestrator returns an orchestrator reading the embedded forms unless
// options point it elsewhere.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	opts := append([]orchestrator.Option{orchestrator.WithFormsFS(FormsFS())}, options...)
	return orchestrator.New(opts...)
}

// GenerateHTML renders one embedded form with the vanilla renderer.
func GenerateHTML(ctx context.Context, operationID string, renderOptions RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return NewOrchestrator(options...).Generate(ctx, orchestrator.Request{
		OperationID:   operationID,
		RenderOptions: renderOptions,
	})
}
