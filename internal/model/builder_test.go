package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-leadform/pkg/openapi"
)

func intPtr(n int) *int { return &n }

func contactOperation() pkgopenapi.Operation {
	return pkgopenapi.Operation{
		ID:     "sendInquiry",
		Method: "POST",
		Path:   "/inquiry",
		Extensions: map[string]any{
			extTitle:       "Inquiry",
			extSubmitLabel: "Send",
		},
		RequestBody: pkgopenapi.Schema{
			Type:     "object",
			Required: []string{"subject", "phone", "code"},
			Extensions: map[string]any{
				extOrder: []any{"subject", "phone", "missing", "subject"},
			},
			Properties: map[string]pkgopenapi.Schema{
				"subject": {Type: "string", MinLength: intPtr(1)},
				"phone": {Type: "string", Extensions: map[string]any{
					extDigits:   float64(10),
					extMessages: map[string]any{"digits": "Phone must contain at least 10 digits."},
				}},
				"code":               {Type: "string", Extensions: map[string]any{extChallenge: true, extLabel: "Code"}},
				"country":            {Type: "string", Extensions: map[string]any{extOptionSource: "countries"}},
				"communication":      {Type: "string", Enum: []any{"email", "phone"}},
				"termsAndConditions": {Type: "boolean", Default: false},
			},
		},
	}
}

func TestBuild_OrderRulesAndMetadata(t *testing.T) {
	form, err := New(Options{}).Build(contactOperation())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if diff := cmp.Diff([]string{"subject", "phone", "code", "communication", "country", "termsAndConditions"}, form.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if form.Title != "Inquiry" || form.SubmitLabel != "Send" || form.Endpoint != "/inquiry" {
		t.Fatalf("unexpected form header %+v", form)
	}

	phone, _ := form.Field("phone")
	digits, ok := phone.Rule(RuleDigits)
	if !ok || digits.Length != 10 || digits.Message != "Phone must contain at least 10 digits." {
		t.Fatalf("unexpected digits rule %+v", digits)
	}
	if !phone.Required {
		t.Fatalf("phone should be required")
	}

	code, _ := form.Field("code")
	if code.Metadata[MetadataChallenge] != "true" || code.Label != "Code" {
		t.Fatalf("unexpected code field %+v", code)
	}
	country, _ := form.Field("country")
	if country.Metadata[MetadataOptionSource] != "countries" || country.Kind != FieldKindText {
		t.Fatalf("unexpected country field %+v", country)
	}
	communication, _ := form.Field("communication")
	if communication.Kind != FieldKindEnum || len(communication.Options) != 2 {
		t.Fatalf("unexpected communication field %+v", communication)
	}
	terms, _ := form.Field("termsAndConditions")
	if terms.Kind != FieldKindBoolean || terms.Label != "Terms and Conditions" {
		t.Fatalf("unexpected terms field %+v", terms)
	}
}

func TestBuild_RejectsUnknownKind(t *testing.T) {
	op := contactOperation()
	op.RequestBody.Properties["subject"] = pkgopenapi.Schema{Type: "string", Extensions: map[string]any{extKind: "richtext"}}

	_, err := New(Options{}).Build(op)
	if err == nil || !strings.Contains(err.Error(), "sendInquiry.subject") {
		t.Fatalf("expected field-scoped error, got %v", err)
	}
}

func TestKnownExtensions(t *testing.T) {
	if !IsKnownExtension("x-formgen-challenge") || IsKnownExtension("x-formgen-widget") {
		t.Fatalf("unexpected extension membership")
	}
	known := KnownExtensions()
	known[0] = "mutated"
	if KnownExtensions()[0] == "mutated" {
		t.Fatalf("KnownExtensions must return a copy")
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"firstName":          "First Name",
		"termsAndConditions": "Terms and Conditions",
		"inquiry_type":       "Inquiry Type",
		"address2":           "Address 2",
		"":                   "",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}
