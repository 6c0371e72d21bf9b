package render

import (
	"net/http"
	"strings"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/uischema"
)

// FormView is the flattened, renderer-neutral view of one form session.
type FormView struct {
	ID              string        `json:"id"`
	Title           string        `json:"title,omitempty"`
	Description     string        `json:"description,omitempty"`
	Action          string        `json:"action"`
	Method          string        `json:"method"`
	State           string        `json:"state,omitempty"`
	Status          string        `json:"status,omitempty"`
	Busy            bool          `json:"busy"`
	Sections        []SectionView `json:"sections"`
	Hidden          []HiddenField `json:"hidden,omitempty"`
	FormErrors      []string      `json:"formErrors,omitempty"`
	Actions         []ActionView  `json:"actions"`
	ChallengeAction string        `json:"challengeAction,omitempty"`
	CancelAction    string        `json:"cancelAction,omitempty"`
}

// SectionView groups field views into rows.
type SectionView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Rows        [][]FieldView `json:"rows"`
}

// FieldView is what a control template needs to draw one field.
type FieldView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Kind        string       `json:"kind"`
	InputType   string       `json:"inputType"`
	Required    bool         `json:"required"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked"`
	Options     []OptionView `json:"options,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	HelpText    string       `json:"helpText,omitempty"`
	CSSClass    string       `json:"cssClass,omitempty"`
	Error       string       `json:"error,omitempty"`
	Challenge   string       `json:"challenge,omitempty"`
	IsChallenge bool         `json:"isChallenge"`
}

// OptionView is one entry of a select control.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ActionView is a footer button.
type ActionView struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Href  string `json:"href,omitempty"`
}

// BuildView combines the definition with session state. Fields not placed in
// any section are appended in definition order so nothing is dropped.
func BuildView(form pkgmodel.FormDefinition, options RenderOptions) FormView {
	view := FormView{
		ID:              form.ID,
		Title:           form.Title,
		Description:     form.Description,
		Action:          firstNonEmpty(options.Action, form.Endpoint),
		Method:          strings.ToUpper(firstNonEmpty(options.Method, http.MethodPost)),
		State:           options.State,
		Status:          options.Status,
		Busy:            options.State == "submitting",
		Hidden:          SortedHiddenFields(options.Hidden),
		FormErrors:      nonEmpty(options.FormErrors),
		ChallengeAction: options.ChallengeAction,
		CancelAction:    options.CancelAction,
	}

	placed := make(map[string]struct{}, len(form.Fields))
	for _, section := range form.Sections {
		sv := SectionView{ID: section.ID, Title: section.Title, Description: section.Description}
		for _, row := range section.Rows {
			var fields []FieldView
			for _, name := range row {
				field, ok := form.Field(name)
				if !ok {
					continue
				}
				placed[name] = struct{}{}
				fields = append(fields, buildField(field, options))
			}
			if len(fields) > 0 {
				sv.Rows = append(sv.Rows, fields)
			}
		}
		view.Sections = append(view.Sections, sv)
	}

	var rest SectionView
	for _, field := range form.Fields {
		if _, ok := placed[field.Name]; ok {
			continue
		}
		rest.Rows = append(rest.Rows, []FieldView{buildField(field, options)})
	}
	if len(rest.Rows) > 0 {
		rest.ID = form.ID + "-fields"
		view.Sections = append(view.Sections, rest)
	}

	for _, action := range uischema.Actions(form) {
		view.Actions = append(view.Actions, ActionView{
			Kind:  action.Kind,
			Label: action.Label,
			Type:  firstNonEmpty(action.Type, "button"),
			Href:  action.Href,
		})
	}
	if len(view.Actions) == 0 {
		view.Actions = []ActionView{{Kind: "primary", Label: firstNonEmpty(form.SubmitLabel, "Submit"), Type: "submit"}}
	}
	return view
}

func buildField(field pkgmodel.FieldDefinition, options RenderOptions) FieldView {
	fv := FieldView{
		ID:          "field-" + field.Name,
		Name:        field.Name,
		Label:       field.Label,
		Kind:        string(field.Kind),
		InputType:   inputType(field),
		Required:    field.Required,
		Placeholder: field.Placeholder,
		HelpText:    firstNonEmpty(field.Metadata["helpText"], field.Description),
		CSSClass:    field.Metadata["cssClass"],
		Error:       options.Errors[field.Name],
		IsChallenge: field.Metadata[pkgmodel.MetadataChallenge] == "true",
	}
	if fv.IsChallenge {
		fv.Challenge = options.Challenge
	}

	values := options.Values
	if values == nil {
		values = pkgmodel.Values{}
	}
	if field.Kind == pkgmodel.FieldKindBoolean {
		fv.Checked = values.Bool(field.Name)
		return fv
	}
	fv.Value = values.String(field.Name)

	choices := field.Options
	if source := field.Metadata[pkgmodel.MetadataOptionSource]; source != "" {
		if dynamic, ok := options.Options[source]; ok {
			choices = dynamic
		}
	}
	if len(choices) > 0 {
		fv.Kind = string(pkgmodel.FieldKindEnum)
		for _, choice := range choices {
			fv.Options = append(fv.Options, OptionView{Value: choice, Label: choice, Selected: choice == fv.Value})
		}
	}
	return fv
}

func inputType(field pkgmodel.FieldDefinition) string {
	if _, ok := field.Rule(pkgmodel.RuleEmail); ok {
		return "email"
	}
	if _, ok := field.Rule(pkgmodel.RuleDigits); ok {
		return "tel"
	}
	return "text"
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func nonEmpty(messages []string) []string {
	var out []string
	for _, message := range messages {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
