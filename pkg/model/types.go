package model

import internalmodel "github.com/goliatone/go-leadform/internal/model"

// FieldKind re-exports the internal FieldKind enumeration.
type FieldKind = internalmodel.FieldKind

const (
	FieldKindText     = internalmodel.FieldKindText
	FieldKindLongText = internalmodel.FieldKindLongText
	FieldKindEnum     = internalmodel.FieldKindEnum
	FieldKindBoolean  = internalmodel.FieldKindBoolean
)

// RuleKind re-exports the rule variant identifiers.
type RuleKind = internalmodel.RuleKind

const (
	RuleRequired  = internalmodel.RuleRequired
	RuleMinLength = internalmodel.RuleMinLength
	RulePattern   = internalmodel.RulePattern
	RuleEmail     = internalmodel.RuleEmail
	RuleDigits    = internalmodel.RuleDigits
	RuleOneOf     = internalmodel.RuleOneOf
)

const (
	MetadataOptionSource = internalmodel.MetadataOptionSource
	MetadataChallenge    = internalmodel.MetadataChallenge
)

type (
	Rule             = internalmodel.Rule
	FieldDefinition  = internalmodel.FieldDefinition
	FormDefinition   = internalmodel.FormDefinition
	Section          = internalmodel.Section
	Values           = internalmodel.Values
	ValidationResult = internalmodel.ValidationResult
)

var (
	Required  = internalmodel.Required
	MinLength = internalmodel.MinLength
	Pattern   = internalmodel.Pattern
	Email     = internalmodel.Email
	Digits    = internalmodel.Digits
	OneOf     = internalmodel.OneOf
	NewField  = internalmodel.NewField

	// DefaultLabeler turns field names such as "firstName" into labels.
	DefaultLabeler = internalmodel.DefaultLabeler
)
