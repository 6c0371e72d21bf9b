package components

import "github.com/goliatone/go-leadform/pkg/render"

// Canonical component names used by the default registry.
const (
	NameInput     = "input"
	NameTextarea  = "textarea"
	NameSelect    = "select"
	NameBoolean   = "boolean"
	NameChallenge = "challenge"
)

// NameFor picks the component that draws field.
func NameFor(field render.FieldView) string {
	switch {
	case field.IsChallenge:
		return NameChallenge
	case field.Kind == "boolean":
		return NameBoolean
	case field.Kind == "enum":
		return NameSelect
	case field.Kind == "longtext":
		return NameTextarea
	default:
		return NameInput
	}
}
