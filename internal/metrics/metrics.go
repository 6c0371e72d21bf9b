// Package metrics registers the leadform Prometheus collectors and adapts
// them to session lifecycle hooks and HTTP middleware.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-leadform/pkg/session"
)

const namespace = "leadform"

// Metrics holds the collectors. The zero value is not usable; call New.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	transitions     *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	submitDuration  *prometheus.HistogramVec
	refreshes       *prometheus.CounterVec
	newsletter      *prometheus.CounterVec
	consent         *prometheus.CounterVec
}

var _ session.Observer = (*Metrics)(nil)

// New registers every collector on reg.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "form",
			Name:      "transitions_total",
			Help:      "Form session state transitions.",
		}, []string{"form", "from", "to"}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "form",
			Name:      "submissions_total",
			Help:      "Settled form submissions by status.",
		}, []string{"form", "status"}),
		submitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "form",
			Name:      "submission_duration_seconds",
			Help:      "Time the submission collaborator took to settle.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"form"}),
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "form",
			Name:      "challenge_refreshes_total",
			Help:      "Challenges regenerated on request.",
		}, []string{"form"}),
		newsletter: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "newsletter",
			Name:      "subscriptions_total",
			Help:      "Newsletter subscription attempts by outcome.",
		}, []string{"outcome"}),
		consent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "consent",
			Name:      "decisions_total",
			Help:      "Cookie consent decisions.",
		}, []string{"decision"}),
	}
}

// Transition implements session.Observer.
func (m *Metrics) Transition(formID string, from, to session.State) {
	m.transitions.WithLabelValues(formID, string(from), string(to)).Inc()
}

// Settled implements session.Observer.
func (m *Metrics) Settled(formID string, status session.Status, elapsed time.Duration) {
	m.submissions.WithLabelValues(formID, string(status)).Inc()
	m.submitDuration.WithLabelValues(formID).Observe(elapsed.Seconds())
}

// ChallengeRefreshed implements session.Observer.
func (m *Metrics) ChallengeRefreshed(formID string) {
	m.refreshes.WithLabelValues(formID).Inc()
}

// NewsletterAttempt counts a newsletter submission outcome.
func (m *Metrics) NewsletterAttempt(outcome string) {
	m.newsletter.WithLabelValues(outcome).Inc()
}

// ConsentDecision counts a stored consent decision.
func (m *Metrics) ConsentDecision(decision string) {
	m.consent.WithLabelValues(decision).Inc()
}

// TrackActiveSessions exports count as the open sessions gauge. It is read
// at scrape time, so sessions that expire while idle drop out without an
// explicit update.
func (m *Metrics) TrackActiveSessions(count func() int) error {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "form",
		Name:      "active_sessions",
		Help:      "Open inquiry sessions.",
	}, func() float64 { return float64(count()) })
	if err := m.registry.Register(gauge); err != nil {
		return fmt.Errorf("metrics: register active sessions: %w", err)
	}
	return nil
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency keyed by the chi route
// pattern, so ids in paths do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
