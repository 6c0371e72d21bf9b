// Package countries supplies the ordered country names offered by the
// inquiry form. Failures are never fatal: Tolerant turns them into an empty
// list so the form still renders.
package countries

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Provider returns country names in display order.
type Provider interface {
	Countries(ctx context.Context) ([]string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) ([]string, error)

// Countries calls f.
func (f ProviderFunc) Countries(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// Static serves a fixed list.
type Static []string

// Countries returns a sorted copy of the list.
func (s Static) Countries(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return normalise(s), nil
}

// Tolerant wraps a provider and swallows its errors.
type Tolerant struct {
	next   Provider
	logger *zap.Logger
}

// NewTolerant wraps next. A nil logger disables failure logging.
func NewTolerant(next Provider, logger *zap.Logger) *Tolerant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tolerant{next: next, logger: logger}
}

// List returns the countries or an empty list on any failure.
func (t *Tolerant) List(ctx context.Context) []string {
	if t == nil || t.next == nil {
		return []string{}
	}
	names, err := t.next.Countries(ctx)
	if err != nil {
		t.logger.Warn("country list unavailable", zap.Error(err))
		return []string{}
	}
	return names
}

// Countries implements Provider and never fails.
func (t *Tolerant) Countries(ctx context.Context) ([]string, error) {
	return t.List(ctx), nil
}

// normalise trims, de-duplicates and sorts names.
func normalise(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var (
	_ Provider = Static(nil)
	_ Provider = (*Tolerant)(nil)
)
