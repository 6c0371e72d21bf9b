package tui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
)

// OutputFormat controls how collected values are serialized by Render.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one name=value line per field.
	OutputFormatPrettyText OutputFormat = "pretty"
)

type outputFormat struct {
	contentType string
	encode      func(pkgmodel.Values) ([]byte, error)
}

var outputFormats = map[OutputFormat]outputFormat{
	OutputFormatJSON: {
		contentType: "application/json",
		encode: func(values pkgmodel.Values) ([]byte, error) {
			return json.Marshal(map[string]any(values))
		},
	},
	OutputFormatFormURLEncoded: {
		contentType: "application/x-www-form-urlencoded",
		encode: func(values pkgmodel.Values) ([]byte, error) {
			encoded := url.Values{}
			for key, value := range values {
				encoded.Set(key, fmt.Sprint(value))
			}
			return []byte(encoded.Encode()), nil
		},
	},
	OutputFormatPrettyText: {
		contentType: "text/plain; charset=utf-8",
		encode: func(values pkgmodel.Values) ([]byte, error) {
			keys := make([]string, 0, len(values))
			for key := range values {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			var b strings.Builder
			for _, key := range keys {
				fmt.Fprintf(&b, "%s=%v\n", key, values[key])
			}
			return []byte(b.String()), nil
		},
	},
}

// formatFor falls back to JSON for unknown formats.
func formatFor(format OutputFormat) outputFormat {
	if f, ok := outputFormats[format]; ok {
		return f
	}
	return outputFormats[OutputFormatJSON]
}

// Theme holds message prefixes applied by the renderer.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithMaxAttempts bounds re-prompts per field. Zero means unlimited.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
