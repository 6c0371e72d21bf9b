package model

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-leadform/pkg/openapi"
)

const (
	extKind         = "x-formgen-kind"
	extLabel        = "x-formgen-label"
	extPlaceholder  = "x-formgen-placeholder"
	extDigits       = "x-formgen-digits"
	extMessages     = "x-formgen-messages"
	extOrder        = "x-formgen-order"
	extSubmitLabel  = "x-formgen-submit-label"
	extTitle        = "x-formgen-title"
	extOptionSource = "x-formgen-options-source"
	extChallenge    = "x-formgen-challenge"

	// MetadataOptionSource names the collaborator that supplies options at
	// render time (for example "countries").
	MetadataOptionSource = "optionsSource"
	// MetadataChallenge marks the field compared against the session challenge.
	MetadataChallenge = "challenge"
)

var knownExtensions = []string{
	extChallenge, extDigits, extKind, extLabel, extMessages,
	extOptionSource, extOrder, extPlaceholder, extSubmitLabel, extTitle,
}

// KnownExtensions lists the x-formgen keys the builder reads, sorted.
func KnownExtensions() []string {
	return append([]string(nil), knownExtensions...)
}

// IsKnownExtension reports whether key is read by the builder.
func IsKnownExtension(key string) bool {
	for _, known := range knownExtensions {
		if known == key {
			return true
		}
	}
	return false
}

// Builder converts OpenAPI operations into form definitions.
type Builder struct {
	options Options
}

// New constructs a Builder, filling unset options with defaults.
func New(options Options) *Builder {
	defaults := defaultOptions()
	if options.Labeler == nil {
		options.Labeler = defaults.Labeler
	}
	if options.SubmitLabel == "" {
		options.SubmitLabel = defaults.SubmitLabel
	}
	return &Builder{options: options}
}

// Build converts the operation request body into a FormDefinition.
func (b *Builder) Build(op pkgopenapi.Operation) (FormDefinition, error) {
	body := op.RequestBody
	if err := body.Validate(); err != nil {
		return FormDefinition{}, fmt.Errorf("model builder: %s: %w", op.ID, err)
	}
	if body.Type != "object" {
		return FormDefinition{}, fmt.Errorf("model builder: %s: request body must be an object, got %q", op.ID, body.Type)
	}

	form := FormDefinition{
		ID:          op.ID,
		Endpoint:    op.Path,
		Title:       firstNonEmpty(stringExt(op.Extensions, extTitle), op.Summary),
		Description: op.Description,
		SubmitLabel: firstNonEmpty(stringExt(op.Extensions, extSubmitLabel), b.options.SubmitLabel),
	}

	for _, name := range propertyOrder(body) {
		field, err := b.buildField(name, body.Properties[name], body.IsRequired(name))
		if err != nil {
			return FormDefinition{}, fmt.Errorf("model builder: %s.%s: %w", op.ID, name, err)
		}
		form.Fields = append(form.Fields, field)
	}
	return form, nil
}

func (b *Builder) buildField(name string, schema pkgopenapi.Schema, required bool) (FieldDefinition, error) {
	kind, err := fieldKind(schema)
	if err != nil {
		return FieldDefinition{}, err
	}
	messages := messageExt(schema.Extensions)

	var rules []Rule
	if required {
		rules = append(rules, Required().WithMessage(messages[string(RuleRequired)]))
	}
	if schema.MinLength != nil && *schema.MinLength > 0 {
		rules = append(rules, MinLength(*schema.MinLength).WithMessage(messages[string(RuleMinLength)]))
	}
	if strings.EqualFold(schema.Format, "email") {
		rules = append(rules, Email().WithMessage(messages[string(RuleEmail)]))
	}
	if digits, ok := intExt(schema.Extensions, extDigits); ok {
		rules = append(rules, Digits(digits).WithMessage(messages[string(RuleDigits)]))
	}
	if schema.Pattern != "" {
		if _, err := regexp.Compile(schema.Pattern); err != nil {
			return FieldDefinition{}, fmt.Errorf("invalid pattern: %w", err)
		}
		rules = append(rules, Pattern(schema.Pattern).WithMessage(messages[string(RulePattern)]))
	}
	if values := enumStrings(schema.Enum); len(values) > 0 {
		rules = append(rules, OneOf(values...).WithMessage(messages[string(RuleOneOf)]))
	}

	field := NewField(name, kind, rules...)
	field.Label = firstNonEmpty(stringExt(schema.Extensions, extLabel), b.options.Labeler(name))
	field.Placeholder = stringExt(schema.Extensions, extPlaceholder)
	field.Description = schema.Description
	field.Default = schema.Default

	if source := stringExt(schema.Extensions, extOptionSource); source != "" {
		field.Metadata = setMetadata(field.Metadata, MetadataOptionSource, source)
	}
	if flag, ok := schema.Extensions[extChallenge].(bool); ok && flag {
		field.Metadata = setMetadata(field.Metadata, MetadataChallenge, "true")
	}
	return field, nil
}

func fieldKind(schema pkgopenapi.Schema) (FieldKind, error) {
	if raw := stringExt(schema.Extensions, extKind); raw != "" {
		kind := FieldKind(raw)
		if !kind.Valid() {
			return "", fmt.Errorf("unknown field kind %q", raw)
		}
		return kind, nil
	}
	switch {
	case schema.Type == "boolean":
		return FieldKindBoolean, nil
	case len(schema.Enum) > 0:
		return FieldKindEnum, nil
	case schema.Format == "textarea":
		return FieldKindLongText, nil
	case schema.Type == "string" || schema.Type == "":
		return FieldKindText, nil
	default:
		return "", fmt.Errorf("unsupported property type %q", schema.Type)
	}
}

// propertyOrder honours x-formgen-order and appends any remaining properties
// alphabetically.
func propertyOrder(body pkgopenapi.Schema) []string {
	seen := make(map[string]struct{}, len(body.Properties))
	var ordered []string
	if raw, ok := body.Extensions[extOrder].([]any); ok {
		for _, entry := range raw {
			name, ok := entry.(string)
			if !ok {
				continue
			}
			if _, exists := body.Properties[name]; !exists {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			ordered = append(ordered, name)
		}
	}

	var rest []string
	for name := range body.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

func enumStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		switch v := value.(type) {
		case string:
			out = append(out, v)
		case fmt.Stringer:
			out = append(out, v.String())
		case nil:
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

func stringExt(ext map[string]any, key string) string {
	value, ok := ext[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func intExt(ext map[string]any, key string) (int, bool) {
	switch value := ext[key].(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	case float64:
		return int(value), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		return n, err == nil
	default:
		return 0, false
	}
}

func messageExt(ext map[string]any) map[string]string {
	raw, ok := ext[extMessages].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		if text, ok := value.(string); ok {
			out[key] = text
		}
	}
	return out
}

func setMetadata(metadata map[string]string, key, value string) map[string]string {
	if metadata == nil {
		metadata = make(map[string]string, 1)
	}
	metadata[key] = value
	return metadata
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
