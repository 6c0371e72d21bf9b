package server

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-leadform/pkg/consent"
	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/site"
	"github.com/goliatone/go-leadform/pkg/submit"
	"github.com/goliatone/go-leadform/pkg/validation"
)

const (
	newsletterFailedMessage = "Subscription failed. Please try again."
	subscribedQuery         = "subscribed"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	notice := ""
	if r.URL.Query().Get(subscribedQuery) == "1" {
		notice = s.site.Content().Newsletter.Thanks
	}
	s.renderHome(w, r, http.StatusOK, render.RenderOptions{}, notice)
}

// handleConsent stores the banner decision and sends the visitor back to the
// page they were on, which reloads it without the banner.
func (s *Server) handleConsent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	state := consent.ParseState(r.PostForm.Get("consent"))
	if !state.Decided() {
		http.Error(w, "consent must be accepted or rejected", http.StatusBadRequest)
		return
	}
	if err := s.consent.Write(w, r, state); err != nil {
		s.fail(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.ConsentDecision(string(state))
	}
	http.Redirect(w, r, site.SafeRedirect(r.PostForm.Get("redirect")), http.StatusSeeOther)
}

func (s *Server) handleNewsletter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	values := pkgmodel.Values{}
	for _, field := range s.newsletter.Fields {
		values[field.Name] = strings.TrimSpace(r.PostForm.Get(field.Name))
	}

	if errs := validation.Validate(s.newsletter, values); !errs.Valid() {
		s.countNewsletter("invalid")
		s.renderHome(w, r, http.StatusUnprocessableEntity, render.RenderOptions{Values: values, Errors: errs}, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.newsletterTimeout)
	defer cancel()
	ctx, span := s.tracer.Start(ctx, "newsletter.submit")
	err := s.newsletterSubmit.Submit(ctx, submit.Payload{FormID: s.newsletter.ID, Values: values})
	span.End()
	if err != nil {
		s.logger.Warn("newsletter submission failed", zap.Error(err))
		s.countNewsletter("failed")
		s.renderHome(w, r, http.StatusBadGateway, render.RenderOptions{
			Values:     values,
			FormErrors: []string{newsletterFailedMessage},
		}, "")
		return
	}

	s.countNewsletter("subscribed")
	http.Redirect(w, r, "/?"+subscribedQuery+"=1#newsletter", http.StatusSeeOther)
}

func (s *Server) renderHome(w http.ResponseWriter, r *http.Request, status int, opts render.RenderOptions, notice string) {
	opts.Action = "/newsletter"
	opts.Method = http.MethodPost
	newsletter, err := s.forms.Render(r.Context(), s.newsletter, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var page bytes.Buffer
	err = s.site.RenderHome(&page, site.Page{
		Path:             "/",
		Consent:          s.consent.Read(r),
		Newsletter:       string(newsletter),
		NewsletterNotice: notice,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeHTML(w, status, page.Bytes(), s.logger)
}

func (s *Server) countNewsletter(outcome string) {
	if s.metrics != nil {
		s.metrics.NewsletterAttempt(outcome)
	}
}
