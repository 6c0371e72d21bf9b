package uischema

// Store keeps the parsed operations from UI schema documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	operations map[string]Operation
}

// Operation describes the UI overrides for one form operation.
type Operation struct {
	ID       string
	Source   string
	Form     FormConfig
	Sections []SectionConfig
	Fields   map[string]FieldConfig
}

// FormConfig captures sheet-level copy plus action buttons.
type FormConfig struct {
	Title    string            `json:"title" yaml:"title"`
	Subtitle string            `json:"subtitle" yaml:"subtitle"`
	Actions  []ActionConfig    `json:"actions" yaml:"actions"`
	Metadata map[string]string `json:"metadata" yaml:"metadata"`
}

// ActionConfig serialises footer buttons rendered alongside the form.
type ActionConfig struct {
	Kind  string `json:"kind" yaml:"kind"`
	Label string `json:"label" yaml:"label"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Href  string `json:"href,omitempty" yaml:"href,omitempty"`
}

// SectionConfig groups related fields into rows.
type SectionConfig struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Rows        [][]string `json:"rows" yaml:"rows"`
}

// FieldConfig customises the copy of a single field.
type FieldConfig struct {
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	CSSClass    string `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
}
