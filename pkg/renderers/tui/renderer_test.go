package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/testsupport"
)

type stubDriver struct {
	inputs    []string
	selects   []int
	confirms  []bool
	textAreas []string
	info      []string
	prompts   []string

	inputPos, selectPos, confirmPos, textPos int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.confirmPos >= len(s.confirms) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirms[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.selectPos >= len(s.selects) {
		return -1, errors.New("no select scripted")
	}
	val := s.selects[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.info = append(s.info, msg)
	return nil
}

func TestRenderer_CollectsInquiry(t *testing.T) {
	driver := &stubDriver{
		// subject, company, firstName, lastName, email (bad, then good), phone, country, code
		inputs:    []string{"Hi", "", "A", "B", "nope", "a@b.com", "1234567890", "Germany", "XQ7F"},
		textAreas: []string{"Need help"},
		selects:   []int{0},
		confirms:  []bool{true},
	}
	renderer := New(WithPromptDriver(driver))

	values, err := renderer.Collect(context.Background(), testsupport.InquiryForm(), render.RenderOptions{Challenge: "XQ7F"}, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := pkgmodel.Values{
		"subject":       "Hi",
		"description":   "Need help",
		"company":       "",
		"firstName":     "A",
		"lastName":      "B",
		"email":         "a@b.com",
		"phone":         "1234567890",
		"country":       "Germany",
		"communication": "email",
		"code":          "XQ7F",
		"newsletter":    true,
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	joined := strings.Join(driver.info, "\n")
	if !strings.Contains(joined, "Verification code: XQ7F") {
		t.Fatalf("expected challenge to be shown, got %q", joined)
	}
	if !strings.Contains(joined, "Email: Invalid email address.") {
		t.Fatalf("expected email re-prompt message, got %q", joined)
	}
}

func TestRenderer_CollectOnlyNamedFields(t *testing.T) {
	driver := &stubDriver{inputs: []string{"AB12"}}
	renderer := New(WithPromptDriver(driver))

	seed := testsupport.InquiryValues("0000")
	values, err := renderer.Collect(context.Background(), testsupport.InquiryForm(), render.RenderOptions{
		Values: seed,
		Errors: pkgmodel.ValidationResult{"code": "The code does not match."},
	}, []string{"code"})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if values["code"] != "AB12" || values["subject"] != "Hi" {
		t.Fatalf("unexpected values %v", values)
	}
	if seed["code"] != "0000" {
		t.Fatalf("seed values must not be mutated")
	}
	if len(driver.info) == 0 || !strings.Contains(driver.info[len(driver.info)-1], "The code does not match.") {
		t.Fatalf("expected prior error to be shown, got %v", driver.info)
	}
}

func TestRenderer_MaxAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", ""}}
	renderer := New(WithPromptDriver(driver), WithMaxAttempts(2))

	_, err := renderer.Collect(context.Background(), testsupport.InquiryForm(), render.RenderOptions{}, []string{"subject"})
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestRenderer_SerializeJSON(t *testing.T) {
	renderer := New(WithPromptDriver(&stubDriver{}))
	out, err := formatFor(renderer.outputFormat).encode(pkgmodel.Values{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["email"] != "a@b.com" {
		t.Fatalf("unexpected payload %s", out)
	}
}

func TestRenderer_SerializePretty(t *testing.T) {
	renderer := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(OutputFormatPrettyText))
	out, err := formatFor(renderer.outputFormat).encode(pkgmodel.Values{"b": 2, "a": "x"})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if string(out) != "a=x\nb=2\n" {
		t.Fatalf("unexpected output %q", out)
	}
}
