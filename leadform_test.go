package leadform

import (
	"bytes"
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/challenge"
	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/session"
	"github.com/goliatone/go-leadform/pkg/submit"
)

func TestForms_Embedded(t *testing.T) {
	forms, err := Forms(context.Background())
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	if forms.Inquiry.ID != InquiryFormID || forms.Newsletter.ID != NewsletterFormID {
		t.Fatalf("unexpected ids %q / %q", forms.Inquiry.ID, forms.Newsletter.ID)
	}
	if forms.Inquiry.Description != "Send us a message and we'll get back to you as soon as possible." {
		t.Fatalf("unexpected description %q", forms.Inquiry.Description)
	}
}

// The worked example: a matching code is accepted and the forwarded payload
// omits it; "0000" fails on the code field only and leaves values untouched.
func TestInquiryExample(t *testing.T) {
	forms, err := Forms(context.Background())
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	values := pkgmodel.Values{
		"subject":       "Hi",
		"description":   "Need help",
		"firstName":     "A",
		"lastName":      "B",
		"email":         "a@b.com",
		"phone":         "1234567890",
		"country":       "Germany",
		"communication": "email",
	}

	var got []submit.Payload
	sub := submit.Func(func(_ context.Context, p submit.Payload) error {
		got = append(got, p)
		return nil
	})
	newController := func() *session.Controller {
		gen := challenge.NewGenerator(
			challenge.WithAlphabet("XQ7F"),
			challenge.WithLength(4),
			challenge.WithRandom(bytes.NewReader([]byte{0, 1, 2, 3})),
		)
		c, err := session.NewController("example", forms.Inquiry, session.WithGenerator(gen), session.WithSubmitter(sub))
		if err != nil {
			t.Fatalf("controller: %v", err)
		}
		if c.Snapshot().Challenge != "XQ7F" {
			t.Fatalf("unexpected challenge %q", c.Snapshot().Challenge)
		}
		return c
	}

	rejected := newController()
	withCode := values.Clone()
	withCode["code"] = "0000"
	if err := rejected.SetValues(withCode); err != nil {
		t.Fatalf("set values: %v", err)
	}
	before := rejected.Snapshot().Values
	outcome, err := rejected.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	snap := rejected.Snapshot()
	if outcome != session.OutcomeChallengeMismatch || snap.State != session.StateEditing {
		t.Fatalf("expected mismatch back in editing, got %s / %s", outcome, snap.State)
	}
	if diff := cmp.Diff([]string{"code"}, mapKeys(snap.Errors)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, snap.Values); diff != "" {
		t.Fatalf("values changed (-want +got):\n%s", diff)
	}

	accepted := newController()
	withCode["code"] = "XQ7F"
	if err := accepted.SetValues(withCode); err != nil {
		t.Fatalf("set values: %v", err)
	}
	outcome, err = accepted.Submit(context.Background())
	if err != nil || outcome != session.OutcomeSubmitting {
		t.Fatalf("expected submitting, got %s (%v)", outcome, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := accepted.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if accepted.State() != session.StateSubmitted {
		t.Fatalf("expected submitted, got %s", accepted.State())
	}
	if len(got) != 1 {
		t.Fatalf("expected one payload, got %d", len(got))
	}
	if _, ok := got[0].Values["code"]; ok {
		t.Fatalf("payload must not carry the code")
	}
	if got[0].Values["subject"] != "Hi" {
		t.Fatalf("unexpected payload %+v", got[0].Values)
	}
}

func TestGenerateHTML_Inquiry(t *testing.T) {
	out, err := GenerateHTML(context.Background(), InquiryFormID, RenderOptions{Challenge: "XQ7F"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "XQ7F") {
		t.Fatalf("expected challenge in markup")
	}
}

func TestStaticFS_ServesBothStylesheets(t *testing.T) {
	for _, name := range []string{"leadform.css", "site.css"} {
		if _, err := fs.ReadFile(StaticFS(), name); err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
	}
	if _, err := fs.ReadFile(StaticFS(), "missing.css"); err == nil {
		t.Fatalf("expected missing asset error")
	}
}

func mapKeys(m pkgmodel.ValidationResult) []string {
	out := make([]string, 0, len(m))
	for key := range m {
		out = append(out, key)
	}
	return out
}
