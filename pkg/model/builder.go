package model

import (
	"github.com/goliatone/go-leadform/internal/model"
	pkgopenapi "github.com/goliatone/go-leadform/pkg/openapi"
)

// Builder converts OpenAPI operations into form definitions.
type Builder interface {
	Build(op pkgopenapi.Operation) (FormDefinition, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler     func(string) string
	submitLabel string
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithSubmitLabel sets the submit button text used when an operation does not
// declare one.
func WithSubmitLabel(label string) BuilderOption {
	return func(opts *builderOptions) {
		opts.submitLabel = label
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	return model.New(model.Options{
		Labeler:     cfg.labeler,
		SubmitLabel: cfg.submitLabel,
	})
}
