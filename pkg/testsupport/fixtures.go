// Package testsupport holds helpers shared by package tests: golden files,
// template output capture and form fixtures.
package testsupport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
)

// InquiryForm returns a hand-built inquiry definition matching the embedded
// OpenAPI document, for tests that should not depend on the loader.
func InquiryForm() pkgmodel.FormDefinition {
	country := pkgmodel.NewField("country", pkgmodel.FieldKindText, pkgmodel.Required())
	country.Metadata = map[string]string{pkgmodel.MetadataOptionSource: "countries"}
	code := pkgmodel.NewField("code", pkgmodel.FieldKindText, pkgmodel.Required())
	code.Metadata = map[string]string{pkgmodel.MetadataChallenge: "true"}

	return pkgmodel.FormDefinition{
		ID:          "sendInquiry",
		Endpoint:    "/inquiry",
		Title:       "Inquiry",
		SubmitLabel: "Submit",
		Fields: []pkgmodel.FieldDefinition{
			pkgmodel.NewField("subject", pkgmodel.FieldKindText, pkgmodel.Required()),
			pkgmodel.NewField("description", pkgmodel.FieldKindLongText, pkgmodel.Required()),
			pkgmodel.NewField("company", pkgmodel.FieldKindText),
			pkgmodel.NewField("firstName", pkgmodel.FieldKindText, pkgmodel.Required()),
			pkgmodel.NewField("lastName", pkgmodel.FieldKindText, pkgmodel.Required()),
			pkgmodel.NewField("email", pkgmodel.FieldKindText, pkgmodel.Required(), pkgmodel.Email()),
			pkgmodel.NewField("phone", pkgmodel.FieldKindText, pkgmodel.Required(), pkgmodel.Digits(10)),
			country,
			pkgmodel.NewField("communication", pkgmodel.FieldKindEnum, pkgmodel.Required(), pkgmodel.OneOf("email", "phone")),
			code,
			pkgmodel.NewField("newsletter", pkgmodel.FieldKindBoolean),
		},
	}
}

// InquiryValues returns a complete, valid submission carrying code.
func InquiryValues(code string) pkgmodel.Values {
	return pkgmodel.Values{
		"subject":       "Hi",
		"description":   "Need help",
		"firstName":     "A",
		"lastName":      "B",
		"email":         "a@b.com",
		"phone":         "1234567890",
		"country":       "Germany",
		"communication": "email",
		"code":          code,
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file as a string.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set and
// reports whether it did, in which case the test should stop.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
