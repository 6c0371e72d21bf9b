package openapi

import "context"

// Parser normalises documents into operation wrappers keyed by operationId.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions exposes parser toggles.
type ParserOptions struct {
	// ValidateDocument runs the OpenAPI validator before extraction.
	ValidateDocument bool

	// Methods restricts which HTTP methods are collected. Form submissions
	// are POST operations by default.
	Methods []string
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithDocumentValidation toggles OpenAPI validation.
func WithDocumentValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ValidateDocument = enabled
	}
}

// WithMethods overrides the collected HTTP methods.
func WithMethods(methods ...string) ParserOption {
	return func(opts *ParserOptions) {
		if len(methods) > 0 {
			opts.Methods = append([]string(nil), methods...)
		}
	}
}

// NewParserOptions applies ParserOption functions.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ValidateDocument: true,
		Methods:          []string{"POST"},
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
