package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/goliatone/go-leadform/pkg/submit"

// WebhookOption configures a WebhookSubmitter.
type WebhookOption func(*WebhookSubmitter)

// WithHTTPClient overrides the client used for deliveries.
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(w *WebhookSubmitter) {
		if client != nil {
			w.client = client
		}
	}
}

// WithHeader adds a static header to every delivery, e.g. an auth token.
func WithHeader(key, value string) WebhookOption {
	return func(w *WebhookSubmitter) {
		w.headers.Set(key, value)
	}
}

// WebhookSubmitter POSTs payloads as JSON. Any non-2xx response is reported as
// ErrRejected.
type WebhookSubmitter struct {
	url     string
	client  *http.Client
	headers http.Header
	tracer  trace.Tracer
}

var _ Submitter = (*WebhookSubmitter)(nil)

// NewWebhookSubmitter builds a submitter targeting url.
func NewWebhookSubmitter(url string, timeout time.Duration, options ...WebhookOption) (*WebhookSubmitter, error) {
	if url == "" {
		return nil, fmt.Errorf("submit: webhook url is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	w := &WebhookSubmitter{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		headers: make(http.Header),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Submit delivers the payload.
func (w *WebhookSubmitter) Submit(ctx context.Context, payload Payload) (err error) {
	ctx, span := w.tracer.Start(ctx, "submit.webhook",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("leadform.form_id", payload.FormID),
			attribute.String("http.url", w.url),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("submit: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range w.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit: deliver: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}
	return nil
}
