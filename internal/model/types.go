package model

import "strings"

// FieldKind is the closed set of input kinds a form can declare.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindLongText FieldKind = "longtext"
	FieldKindEnum     FieldKind = "enum"
	FieldKindBoolean  FieldKind = "boolean"
)

// Valid reports whether the kind is one of the declared constants.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldKindText, FieldKindLongText, FieldKindEnum, FieldKindBoolean:
		return true
	default:
		return false
	}
}

// RuleKind identifies a validation rule variant.
type RuleKind string

const (
	RuleRequired  RuleKind = "required"
	RuleMinLength RuleKind = "minLength"
	RulePattern   RuleKind = "pattern"
	RuleEmail     RuleKind = "email"
	RuleDigits    RuleKind = "digits"
	RuleOneOf     RuleKind = "oneOf"
)

// Rule is a single typed constraint. Only the parameters relevant to Kind are
// populated: Length for minLength and digits, Pattern for pattern, Values for
// oneOf. Message overrides the validator's default text when set.
type Rule struct {
	Kind    RuleKind `json:"kind"`
	Length  int      `json:"length,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Values  []string `json:"values,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Required marks the field as mandatory.
func Required() Rule { return Rule{Kind: RuleRequired} }

// MinLength requires at least n characters once the value is trimmed.
func MinLength(n int) Rule { return Rule{Kind: RuleMinLength, Length: n} }

// Pattern requires the value to match the regular expression.
func Pattern(expr string) Rule { return Rule{Kind: RulePattern, Pattern: expr} }

// Email requires an email-shaped value.
func Email() Rule { return Rule{Kind: RuleEmail} }

// Digits requires a digits-only value with at least min digits.
func Digits(min int) Rule { return Rule{Kind: RuleDigits, Length: min} }

// OneOf requires membership in the enumerated values.
func OneOf(values ...string) Rule {
	return Rule{Kind: RuleOneOf, Values: append([]string(nil), values...)}
}

// WithMessage returns a copy of the rule carrying a custom message.
func (r Rule) WithMessage(message string) Rule {
	r.Message = strings.TrimSpace(message)
	return r
}

// FieldDefinition describes one input. Definitions are immutable once the
// owning FormDefinition has been built.
type FieldDefinition struct {
	Name        string            `json:"name"`
	Label       string            `json:"label"`
	Kind        FieldKind         `json:"kind"`
	Required    bool              `json:"required"`
	Rules       []Rule            `json:"rules,omitempty"`
	Options     []string          `json:"options,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewField builds a definition and derives Required from the rule list.
func NewField(name string, kind FieldKind, rules ...Rule) FieldDefinition {
	field := FieldDefinition{
		Name:  name,
		Label: DefaultLabeler(name),
		Kind:  kind,
		Rules: append([]Rule(nil), rules...),
	}
	for _, rule := range rules {
		if rule.Kind == RuleRequired {
			field.Required = true
		}
		if rule.Kind == RuleOneOf && len(field.Options) == 0 {
			field.Options = append([]string(nil), rule.Values...)
		}
	}
	return field
}

// Rule returns the first rule of the given kind.
func (f FieldDefinition) Rule(kind RuleKind) (Rule, bool) {
	for _, rule := range f.Rules {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return Rule{}, false
}

// ZeroValue returns the value a fresh session starts with.
func (f FieldDefinition) ZeroValue() any {
	if f.Default != nil {
		return f.Default
	}
	if f.Kind == FieldKindBoolean {
		return false
	}
	return ""
}

// FormDefinition is the ordered set of fields making up a form.
type FormDefinition struct {
	ID          string            `json:"id"`
	Endpoint    string            `json:"endpoint,omitempty"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	SubmitLabel string            `json:"submitLabel,omitempty"`
	Fields      []FieldDefinition `json:"fields"`
	Sections    []Section         `json:"sections,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Section groups field names into rows for presentation. Rows never affect
// validation.
type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Rows        [][]string `json:"rows"`
}

// Field looks up a definition by name.
func (f FormDefinition) Field(name string) (FieldDefinition, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// Names returns the field names in declaration order.
func (f FormDefinition) Names() []string {
	names := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		names = append(names, field.Name)
	}
	return names
}

// InitialValues returns the starting values of a new form session.
func (f FormDefinition) InitialValues() Values {
	values := make(Values, len(f.Fields))
	for _, field := range f.Fields {
		values[field.Name] = field.ZeroValue()
	}
	return values
}

// Values maps field names to current values: string, bool, or an enum tag.
type Values map[string]any

// Clone returns a shallow copy; values are scalars so this is sufficient.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// String returns the value as trimmed text. Booleans render as "true" or
// "false" and nil as "".
func (v Values) String(name string) string {
	switch value := v[name].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case bool:
		if value {
			return "true"
		}
		return "false"
	case []string:
		if len(value) == 0 {
			return ""
		}
		return strings.TrimSpace(value[0])
	default:
		return ""
	}
}

// Bool reports the value as a boolean, accepting checkbox encodings.
func (v Values) Bool(name string) bool {
	switch value := v[name].(type) {
	case bool:
		return value
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}

// Without returns a copy excluding the named fields.
func (v Values) Without(names ...string) Values {
	out := v.Clone()
	if out == nil {
		out = Values{}
	}
	for _, name := range names {
		delete(out, name)
	}
	return out
}

// ValidationResult maps field names to an error message. An empty result
// means the form is submittable.
type ValidationResult map[string]string

// Valid reports whether no field carries an error.
func (r ValidationResult) Valid() bool {
	return len(r) == 0
}

// Clone returns a copy of the result.
func (r ValidationResult) Clone() ValidationResult {
	out := make(ValidationResult, len(r))
	for key, value := range r {
		out[key] = value
	}
	return out
}

// Errors converts the result into the renderer error payload shape.
func (r ValidationResult) Errors() map[string][]string {
	if len(r) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r))
	for key, value := range r {
		out[key] = []string{value}
	}
	return out
}
