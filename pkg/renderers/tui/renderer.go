// Package tui collects form values interactively in a terminal. It walks the
// same view model as the HTML renderer, validates each answer as it is given
// and re-prompts until the field passes.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/validation"
)

const skipOption = "(skip)"

// Renderer implements render.Renderer for terminal sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	maxAttempts  int
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with the survey driver and JSON output.
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        Theme{InfoPrefix: "", ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the media type of Render's output.
func (r *Renderer) ContentType() string {
	return formatFor(r.outputFormat).contentType
}

// Render prompts for every field and serializes the answers.
func (r *Renderer) Render(ctx context.Context, form pkgmodel.FormDefinition, opts render.RenderOptions) ([]byte, error) {
	values, err := r.Collect(ctx, form, opts, nil)
	if err != nil {
		return nil, err
	}
	return formatFor(r.outputFormat).encode(values)
}

// Collect prompts for the named fields, or all fields when only is empty,
// in presentation order. opts.Values seed defaults and opts.Errors are shown
// before the matching prompt. The returned values include the seeds for
// fields that were not prompted.
func (r *Renderer) Collect(ctx context.Context, form pkgmodel.FormDefinition, opts render.RenderOptions, only []string) (pkgmodel.Values, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	values := opts.Values.Clone()
	if values == nil {
		values = pkgmodel.Values{}
	}

	view := render.BuildView(form, opts)
	if view.Title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+view.Title); err != nil {
			return nil, err
		}
	}
	for _, message := range view.FormErrors {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	for _, section := range view.Sections {
		for _, row := range section.Rows {
			for _, field := range row {
				if len(only) > 0 && !slices.Contains(only, field.Name) {
					continue
				}
				def, ok := form.Field(field.Name)
				if !ok {
					continue
				}
				value, err := r.promptField(ctx, def, field)
				if err != nil {
					return nil, err
				}
				values[field.Name] = value
			}
		}
	}
	return values, nil
}

func (r *Renderer) promptField(ctx context.Context, def pkgmodel.FieldDefinition, field render.FieldView) (any, error) {
	if field.Error != "" {
		if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, field.Label, field.Error)); err != nil {
			return nil, err
		}
	}
	if field.IsChallenge && field.Challenge != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+"Verification code: "+field.Challenge); err != nil {
			return nil, err
		}
	}

	for attempt := 1; ; attempt++ {
		value, err := r.ask(ctx, field)
		if err != nil {
			return nil, err
		}
		message := validation.ValidateField(def, pkgmodel.Values{def.Name: value})
		if message == "" {
			return value, nil
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return nil, fmt.Errorf("%w: %s", ErrTooManyAttempts, def.Name)
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, field.Label, message)); err != nil {
			return nil, err
		}
	}
}

type prompter func(r *Renderer, ctx context.Context, label string, field render.FieldView) (any, error)

var prompters = map[string]prompter{
	string(pkgmodel.FieldKindBoolean):  (*Renderer).askConfirm,
	string(pkgmodel.FieldKindLongText): (*Renderer).askTextArea,
	string(pkgmodel.FieldKindEnum):     (*Renderer).askSelect,
}

func (r *Renderer) ask(ctx context.Context, field render.FieldView) (any, error) {
	label := field.Label
	if field.Required {
		label += " *"
	}
	prompt, ok := prompters[field.Kind]
	if !ok {
		prompt = (*Renderer).askInput
	}
	return prompt(r, ctx, label, field)
}

func (r *Renderer) askConfirm(ctx context.Context, label string, field render.FieldView) (any, error) {
	return r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: field.Checked, Help: field.HelpText})
}

func (r *Renderer) askTextArea(ctx context.Context, label string, field render.FieldView) (any, error) {
	return r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: field.Value, Help: field.HelpText})
}

func (r *Renderer) askInput(ctx context.Context, label string, field render.FieldView) (any, error) {
	value, err := r.driver.Input(ctx, InputConfig{Message: label, Default: field.Value, Help: field.HelpText})
	if err != nil {
		return nil, err
	}
	return strings.TrimSpace(value), nil
}

// askSelect offers the enum values, led by a skip entry for optional fields.
// Picking skip yields "".
func (r *Renderer) askSelect(ctx context.Context, label string, field render.FieldView) (any, error) {
	choices := make([]string, 0, len(field.Options)+1)
	if !field.Required {
		choices = append(choices, skipOption)
	}
	selected := -1
	for _, option := range field.Options {
		if option.Selected {
			selected = len(choices)
		}
		choices = append(choices, option.Value)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      choices,
		DefaultIndex: selected,
		Help:         field.HelpText,
		PageSize:     12,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(choices) || choices[idx] == skipOption {
		return "", nil
	}
	return choices[idx], nil
}
