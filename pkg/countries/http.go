package countries

import (
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

// DefaultURL is the public REST Countries endpoint; each entry carries a
// "name" field.
const DefaultURL = "https://restcountries.com/v2/all?fields=name"

const maxResponseSize = 2 << 20

// HTTPProvider fetches names from a REST Countries compatible endpoint.
type HTTPProvider struct {
	url    string
	client *http.Client
	tracer trace.Tracer
}

var _ Provider = (*HTTPProvider)(nil)

// NewHTTPProvider targets url, defaulting to DefaultURL.
func NewHTTPProvider(url string, timeout time.Duration, client *http.Client) *HTTPProvider {
	if url == "" {
		url = DefaultURL
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPProvider{
		url:    url,
		client: client,
		tracer: otel.Tracer("github.com/goliatone/go-leadform/pkg/countries"),
	}
}

type countryEntry struct {
	Name json.RawMessage `json:"name"`
}

// Countries fetches and sorts the names.
func (p *HTTPProvider) Countries(ctx context.Context) (names []string, err error) {
	ctx, span := p.tracer.Start(ctx, "countries.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", p.url)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.Int("countries.count", len(names)))
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("countries: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("countries: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("countries: unexpected status %d", resp.StatusCode)
	}

	var entries []countryEntry
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&entries); err != nil {
		return nil, fmt.Errorf("countries: decode: %w", err)
	}

	raw := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name := entryName(entry.Name); name != "" {
			raw = append(raw, name)
		}
	}
	return normalise(raw), nil
}

// entryName accepts both the v2 shape ("name": "Germany") and the v3 shape
// ("name": {"common": "Germany"}).
func entryName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	var nested struct {
		Common string `json:"common"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		return nested.Common
	}
	return ""
}
