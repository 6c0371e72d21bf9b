package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/session"
	"github.com/goliatone/go-leadform/pkg/site"
)

const deliveryFailedMessage = "We could not send your inquiry. Please try again."

// statusResponse is the JSON view of a session for clients polling status.
type statusResponse struct {
	ID        string                    `json:"id"`
	State     session.State             `json:"state"`
	Status    session.Status            `json:"status,omitempty"`
	Errors    pkgmodel.ValidationResult `json:"errors,omitempty"`
	Challenge string                    `json:"challenge"`
	LastError string                    `json:"lastError,omitempty"`
}

func (s *Server) handleInquiryOpen(w http.ResponseWriter, r *http.Request) {
	c, err := s.inquiries.Open(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, inquiryPath(c.ID()), http.StatusSeeOther)
}

func (s *Server) handleInquiryShow(w http.ResponseWriter, r *http.Request) {
	c, err := s.inquiries.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if wantsJSON(r) {
		snap := c.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(statusResponse{
			ID:        snap.ID,
			State:     snap.State,
			Status:    snap.Status,
			Errors:    snap.Errors,
			Challenge: snap.Challenge.String(),
			LastError: snap.LastError,
		})
		return
	}
	s.renderInquiry(w, r, c, http.StatusOK)
}

func (s *Server) handleInquirySubmit(w http.ResponseWriter, r *http.Request) {
	c, err := s.inquiries.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	if err := c.SetValues(valuesFromForm(c.Form(), r)); err != nil {
		s.fail(w, r, err)
		return
	}

	ctx, span := s.tracer.Start(r.Context(), "inquiry.submit")
	outcome, err := c.Submit(ctx)
	span.SetAttributes(attribute.String("leadform.outcome", string(outcome)))
	span.End()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if outcome != session.OutcomeSubmitting {
		s.renderInquiry(w, r, c, http.StatusUnprocessableEntity)
		return
	}
	http.Redirect(w, r, inquiryPath(c.ID()), http.StatusSeeOther)
}

// handleInquiryChallenge keeps what the visitor typed so far and issues a
// new code.
func (s *Server) handleInquiryChallenge(w http.ResponseWriter, r *http.Request) {
	c, err := s.inquiries.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	if len(r.PostForm) > 0 {
		if err := c.SetValues(valuesFromForm(c.Form(), r)); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	if _, err := c.RefreshChallenge(); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, inquiryPath(c.ID()), http.StatusSeeOther)
}

func (s *Server) handleInquiryCancel(w http.ResponseWriter, r *http.Request) {
	if err := s.inquiries.Close(chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderInquiry(w http.ResponseWriter, r *http.Request, c *session.Controller, status int) {
	snap := c.Snapshot()
	base := inquiryPath(c.ID())

	opts := render.RenderOptions{
		Action:          base,
		Method:          http.MethodPost,
		Values:          snap.Values,
		Errors:          snap.Errors,
		Options:         map[string][]string{"countries": s.countries.List(r.Context())},
		Challenge:       snap.Challenge.String(),
		ChallengeAction: base + "/challenge",
		CancelAction:    base + "/cancel",
		Hidden:          render.MergeHiddenFields(nil, render.Hidden("session", c.ID())),
		State:           string(snap.State),
		Status:          string(snap.Status),
	}
	if snap.Status == session.StatusFailed {
		opts.FormErrors = []string{deliveryFailedMessage}
	}

	form, err := s.forms.Render(r.Context(), c.Form(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var page bytes.Buffer
	err = s.site.RenderInquiry(&page, site.Page{
		Path:    r.URL.Path,
		Consent: s.consent.Read(r),
		Inquiry: string(form),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeHTML(w, status, page.Bytes(), s.logger)
}

// valuesFromForm reads every declared field from the request. Unchecked
// checkboxes are absent from the body and read as false.
func valuesFromForm(form pkgmodel.FormDefinition, r *http.Request) pkgmodel.Values {
	values := make(pkgmodel.Values, len(form.Fields))
	for _, field := range form.Fields {
		raw := r.PostForm.Get(field.Name)
		if field.Kind == pkgmodel.FieldKindBoolean {
			switch strings.ToLower(strings.TrimSpace(raw)) {
			case "on", "true", "1", "yes":
				values[field.Name] = true
			default:
				values[field.Name] = false
			}
			continue
		}
		values[field.Name] = raw
	}
	return values
}

func inquiryPath(id string) string {
	return "/inquiry/" + id
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeHTML(w http.ResponseWriter, status int, body []byte, logger *zap.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Debug("write response", zap.Error(err))
	}
}
