package submit

import (
	"context"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Sanitizing strips markup from free-text values before handing the payload
// to the wrapped submitter. Non-string values pass through untouched.
type Sanitizing struct {
	next Submitter
}

var _ Submitter = (*Sanitizing)(nil)

// NewSanitizing wraps next.
func NewSanitizing(next Submitter) *Sanitizing {
	return &Sanitizing{next: next}
}

// Submit sanitises a copy of the values and forwards it.
func (s *Sanitizing) Submit(ctx context.Context, payload Payload) error {
	cleaned := payload
	cleaned.Values = payload.Values.Clone()
	for key, value := range cleaned.Values {
		if text, ok := value.(string); ok {
			cleaned.Values[key] = SanitizeText(text)
		}
	}
	return s.next.Submit(ctx, cleaned)
}

// SanitizeText removes every HTML element and unescapes the remaining text so
// that "Tom & Jerry" survives while "<script>" does not.
func SanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strictPolicy().Sanitize(trimmed)))
}

func strictPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
