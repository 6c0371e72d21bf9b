// Package validation evaluates form definitions against submitted values.
// Every rule variant is handled by a single dispatch function; validation is
// synchronous and always covers all fields.
package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// compiled caches patterns declared by rules; definitions are immutable so the
// cache never needs invalidation.
var compiled sync.Map

// Validate runs every field of the form against values. Fields that are
// optional and empty are skipped; for the rest the first failing rule wins.
func Validate(form pkgmodel.FormDefinition, values pkgmodel.Values) pkgmodel.ValidationResult {
	result := pkgmodel.ValidationResult{}
	for _, field := range form.Fields {
		if message := ValidateField(field, values); message != "" {
			result[field.Name] = message
		}
	}
	return result
}

// ValidateField checks a single field, returning "" when it passes. Used for
// change/blur validation as well as by Validate.
func ValidateField(field pkgmodel.FieldDefinition, values pkgmodel.Values) string {
	if isEmpty(field, values) {
		if !field.Required {
			return ""
		}
		rule, _ := field.Rule(pkgmodel.RuleRequired)
		return messageFor(rule, defaultRequiredMessage)
	}

	value := values.String(field.Name)
	for _, rule := range field.Rules {
		if message := check(rule, value); message != "" {
			return message
		}
	}
	return ""
}

const defaultRequiredMessage = "This field is required."

func check(rule pkgmodel.Rule, value string) string {
	switch rule.Kind {
	case pkgmodel.RuleRequired:
		return ""
	case pkgmodel.RuleMinLength:
		if utf8.RuneCountInString(value) < rule.Length {
			return messageFor(rule, fmt.Sprintf("Must be at least %d characters.", rule.Length))
		}
	case pkgmodel.RuleEmail:
		if !emailPattern.MatchString(value) {
			return messageFor(rule, "Invalid email address.")
		}
	case pkgmodel.RuleDigits:
		if !onlyDigits(value) || len(value) < rule.Length {
			return messageFor(rule, fmt.Sprintf("Must contain only digits, at least %d.", rule.Length))
		}
	case pkgmodel.RulePattern:
		re, err := pattern(rule.Pattern)
		if err != nil || !re.MatchString(value) {
			return messageFor(rule, "Invalid format.")
		}
	case pkgmodel.RuleOneOf:
		if !slices.Contains(rule.Values, value) {
			return messageFor(rule, sentence("Must be one of: "+strings.Join(rule.Values, ", ")))
		}
	default:
		return fmt.Sprintf("Unsupported rule %q.", rule.Kind)
	}
	return ""
}

// sentence terminates text with a single period.
func sentence(text string) string {
	if strings.HasSuffix(text, ".") {
		return text
	}
	return text + "."
}

// isEmpty treats absent values, blank strings and unchecked booleans as empty.
func isEmpty(field pkgmodel.FieldDefinition, values pkgmodel.Values) bool {
	raw, ok := values[field.Name]
	if !ok || raw == nil {
		return true
	}
	if field.Kind == pkgmodel.FieldKindBoolean {
		return !values.Bool(field.Name)
	}
	return values.String(field.Name) == ""
}

func onlyDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func pattern(expr string) (*regexp.Regexp, error) {
	if cached, ok := compiled.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	compiled.Store(expr, re)
	return re, nil
}

func messageFor(rule pkgmodel.Rule, fallback string) string {
	if rule.Message != "" {
		return rule.Message
	}
	return fallback
}
