// Package server is the HTTP Presentation Shell: landing page, inquiry sheet
// sessions, newsletter subscription and cookie consent.
package server

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/goliatone/go-leadform/internal/metrics"
	"github.com/goliatone/go-leadform/pkg/consent"
	"github.com/goliatone/go-leadform/pkg/countries"
	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/renderers/vanilla"
	"github.com/goliatone/go-leadform/pkg/session"
	"github.com/goliatone/go-leadform/pkg/site"
	"github.com/goliatone/go-leadform/pkg/submit"
)

const tracerName = "github.com/goliatone/go-leadform/internal/server"

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics enables request metrics and the metrics endpoint at path.
func WithMetrics(m *metrics.Metrics, path string) Option {
	return func(s *Server) {
		s.metrics = m
		if path != "" {
			s.metricsPath = path
		}
	}
}

// WithCountries sets the country list collaborator.
func WithCountries(provider countries.Provider) Option {
	return func(s *Server) {
		if provider != nil {
			s.countrySource = provider
		}
	}
}

// WithConsentStore sets where consent decisions are kept.
func WithConsentStore(store consent.Store) Option {
	return func(s *Server) {
		if store != nil {
			s.consent = store
		}
	}
}

// WithNewsletterSubmitter sets the receiver of newsletter subscriptions.
func WithNewsletterSubmitter(sub submit.Submitter) Option {
	return func(s *Server) {
		if sub != nil {
			s.newsletterSubmit = sub
		}
	}
}

// WithSite sets the page renderer.
func WithSite(st *site.Site) Option {
	return func(s *Server) {
		if st != nil {
			s.site = st
		}
	}
}

// WithFormRenderer replaces the vanilla form renderer.
func WithFormRenderer(renderer render.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.forms = renderer
		}
	}
}

// WithStaticFS serves stylesheets under /static/.
func WithStaticFS(fsys fs.FS) Option {
	return func(s *Server) {
		s.static = fsys
	}
}

// WithNewsletterTimeout bounds a newsletter submitter call.
func WithNewsletterTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.newsletterTimeout = d
		}
	}
}

// Server routes requests to the inquiry session store and the site pages.
type Server struct {
	inquiries  *session.Store
	newsletter pkgmodel.FormDefinition

	logger            *zap.Logger
	tracer            trace.Tracer
	metrics           *metrics.Metrics
	metricsPath       string
	countrySource     countries.Provider
	countries         *countries.Tolerant
	consent           consent.Store
	newsletterSubmit  submit.Submitter
	newsletterTimeout time.Duration
	site              *site.Site
	forms             render.Renderer
	static            fs.FS

	router chi.Router
}

// New builds a Server for the inquiry store and the newsletter form.
func New(inquiries *session.Store, newsletter pkgmodel.FormDefinition, options ...Option) (*Server, error) {
	if inquiries == nil {
		return nil, errors.New("server: inquiry store is required")
	}
	s := &Server{
		inquiries:         inquiries,
		newsletter:        newsletter,
		logger:            zap.NewNop(),
		tracer:            otel.Tracer(tracerName),
		metricsPath:       "/metrics",
		countrySource:     countries.Static(nil),
		consent:           consent.NewCookieStore(),
		newsletterTimeout: 10 * time.Second,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.newsletterSubmit == nil {
		s.newsletterSubmit = submit.NewLogSubmitter(s.logger)
	}
	s.countries = countries.NewTolerant(s.countrySource, s.logger)
	if s.metrics != nil {
		if err := s.metrics.TrackActiveSessions(s.inquiries.Len); err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
	}

	if s.site == nil {
		st, err := site.New()
		if err != nil {
			return nil, fmt.Errorf("server: site: %w", err)
		}
		s.site = st
	}
	if s.forms == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("server: form renderer: %w", err)
		}
		s.forms = renderer
	}

	s.router = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverer)
	r.Use(s.requestLogger)
	r.Use(s.tracing)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.Get("/", s.handleHome)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/consent", s.handleConsent)
	r.Post("/newsletter", s.handleNewsletter)

	r.Route("/inquiry", func(r chi.Router) {
		r.Get("/", s.handleInquiryOpen)
		r.Get("/{id}", s.handleInquiryShow)
		r.Post("/{id}", s.handleInquirySubmit)
		r.Post("/{id}/challenge", s.handleInquiryChallenge)
		r.Post("/{id}/cancel", s.handleInquiryCancel)
	})

	if s.static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(s.static)))
	}
	if s.metrics != nil {
		r.Handle(s.metricsPath, s.metrics.Handler())
	}
	return r
}

// statusFor maps session errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case session.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, session.ErrUnknownField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
	}
	http.Error(w, http.StatusText(status), status)
}
