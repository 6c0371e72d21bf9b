package model

import (
	"strings"
	"unicode"
)

// minorWords stay lowercase unless they open the label.
var minorWords = map[string]bool{
	"and": true, "or": true, "of": true, "the": true, "to": true, "in": true,
}

// DefaultLabeler turns a field name into a label: "termsAndConditions" reads
// "Terms and Conditions", "inquiry_type" reads "Inquiry Type".
func DefaultLabeler(name string) string {
	words := labelWords(name)
	for i, word := range words {
		lower := strings.ToLower(word)
		if i > 0 && minorWords[lower] {
			words[i] = lower
			continue
		}
		runes := []rune(lower)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// labelWords splits on separators, lower-to-upper case changes and
// letter/digit changes.
func labelWords(name string) []string {
	var (
		words   []string
		current []rune
		prev    rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
			prev = 0
			continue
		case len(current) > 0 && wordBoundary(prev, r):
			flush()
		}
		current = append(current, r)
		prev = r
	}
	flush()
	return words
}

func wordBoundary(prev, r rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	}
	return false
}
