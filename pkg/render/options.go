package render

import (
	"fmt"
	"sort"
	"strings"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
)

// RenderOptions carry the per-session data a renderer needs on top of the
// static form definition.
type RenderOptions struct {
	// Action overrides the form endpoint as the submission target.
	Action string
	// Method defaults to POST.
	Method string
	// Values pre-populates controls by field name.
	Values pkgmodel.Values
	// Errors holds the current per-field messages.
	Errors pkgmodel.ValidationResult
	// FormErrors are shown above the fields, e.g. a failed delivery.
	FormErrors []string
	// Options resolves dynamic option lists keyed by the field's options
	// source (for example "countries").
	Options map[string][]string
	// Challenge is the code displayed next to the challenge field.
	Challenge string
	// ChallengeAction is the URL that issues a fresh challenge.
	ChallengeAction string
	// CancelAction is the URL that closes the session.
	CancelAction string
	// Hidden fields are emitted verbatim, sorted by name.
	Hidden map[string]string
	// State and Status mirror the session controller.
	State  string
	Status string
}

// HiddenField is a hidden input emitted alongside the visible fields.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// MergeHiddenFields returns a copy of base with fields applied. Later fields
// win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		out[field.Name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises hidden fields for deterministic rendering.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: strings.TrimSpace(name), Value: fields[name]})
	}
	return result
}
