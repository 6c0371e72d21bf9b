package uischema

import (
	"encoding/json"
	"fmt"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
)

const (
	actionsMetadataKey = "actions"
	helpTextMetadata   = "helpText"
	cssClassMetadata   = "cssClass"
)

// Decorator applies UI schema overlays to a form definition.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate augments the form with sections, copy and actions. Fields named in
// the overlay but missing from the form are reported as errors so typos do
// not silently drop layout.
func (d *Decorator) Decorate(form *pkgmodel.FormDefinition) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}

	op, ok := d.store.Operation(form.ID)
	if !ok {
		return nil
	}

	if op.Form.Title != "" {
		form.Title = op.Form.Title
	}
	if op.Form.Subtitle != "" {
		form.Description = op.Form.Subtitle
	}
	form.Metadata = mergeStringMap(form.Metadata, op.Form.Metadata)
	if len(op.Form.Actions) > 0 {
		payload, err := json.Marshal(op.Form.Actions)
		if err != nil {
			return fmt.Errorf("uischema: marshal actions for operation %q: %w", op.ID, err)
		}
		form.Metadata = mergeStringMap(form.Metadata, map[string]string{actionsMetadataKey: string(payload)})
	}

	form.Sections = form.Sections[:0]
	for _, section := range op.Sections {
		for _, row := range section.Rows {
			for _, name := range row {
				if _, ok := form.Field(name); !ok {
					return fmt.Errorf("uischema: operation %q section %q references unknown field %q", op.ID, section.ID, name)
				}
			}
		}
		form.Sections = append(form.Sections, pkgmodel.Section{
			ID:          section.ID,
			Title:       section.Title,
			Description: section.Description,
			Rows:        cloneRows(section.Rows),
		})
	}

	for idx := range form.Fields {
		field := &form.Fields[idx]
		cfg, ok := op.Fields[field.Name]
		if !ok {
			continue
		}
		if cfg.Label != "" {
			field.Label = cfg.Label
		}
		if cfg.Placeholder != "" {
			field.Placeholder = cfg.Placeholder
		}
		if cfg.HelpText != "" {
			field.Metadata = mergeStringMap(field.Metadata, map[string]string{helpTextMetadata: cfg.HelpText})
		}
		if cfg.CSSClass != "" {
			field.Metadata = mergeStringMap(field.Metadata, map[string]string{cssClassMetadata: cfg.CSSClass})
		}
	}
	for name := range op.Fields {
		if _, ok := form.Field(name); !ok {
			return fmt.Errorf("uischema: operation %q configures unknown field %q", op.ID, name)
		}
	}
	return nil
}

// Actions decodes the action buttons stored on a decorated form.
func Actions(form pkgmodel.FormDefinition) []ActionConfig {
	raw := form.Metadata[actionsMetadataKey]
	if raw == "" {
		return nil
	}
	var actions []ActionConfig
	if err := json.Unmarshal([]byte(raw), &actions); err != nil {
		return nil
	}
	return actions
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, append([]string(nil), row...))
	}
	return out
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
