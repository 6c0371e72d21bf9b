// Package leadform exposes the lead forms: the embedded forms document, the
// pipeline that builds form definitions from it and the static assets the
// HTML shell serves.
package leadform

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/orchestrator"
)

//go:embed forms/openapi.yaml forms/ui/*.yaml
var embeddedForms embed.FS

const (
	// InquiryFormID is the operation id of the inquiry form.
	InquiryFormID = "sendInquiry"
	// NewsletterFormID is the operation id of the newsletter form.
	NewsletterFormID = "subscribeNewsletter"
)

// FormsFS exposes the forms document and its ui/ overlays.
func FormsFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		return embeddedForms
	}
	return sub
}

// FormSet holds the two forms the site serves.
type FormSet struct {
	Inquiry    pkgmodel.FormDefinition
	Newsletter pkgmodel.FormDefinition
}

// Forms builds the inquiry and newsletter definitions from the embedded
// document.
func Forms(ctx context.Context, options ...orchestrator.Option) (FormSet, error) {
	orch := NewOrchestrator(options...)
	inquiry, err := orch.Form(ctx, InquiryFormID)
	if err != nil {
		return FormSet{}, fmt.Errorf("leadform: %w", err)
	}
	newsletter, err := orch.Form(ctx, NewsletterFormID)
	if err != nil {
		return FormSet{}, fmt.Errorf("leadform: %w", err)
	}
	return FormSet{Inquiry: inquiry, Newsletter: newsletter}, nil
}
