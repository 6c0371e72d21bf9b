package countries_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-leadform/pkg/countries"
)

func TestHTTPProvider_SortsNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"Germany"},{"name":"Austria"},{"name":{"common":"Bulgaria"}},{"name":""}]`))
	}))
	defer srv.Close()

	names, err := countries.NewHTTPProvider(srv.URL, time.Second, nil).Countries(context.Background())
	if err != nil {
		t.Fatalf("countries: %v", err)
	}
	if diff := cmp.Diff([]string{"Austria", "Bulgaria", "Germany"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPProvider_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := countries.NewHTTPProvider(srv.URL, time.Second, nil).Countries(context.Background()); err == nil {
		t.Fatalf("expected error for 502")
	}
}

type failing struct{}

func (failing) Countries(context.Context) ([]string, error) {
	return nil, errors.New("network down")
}

func TestTolerant_FailureYieldsEmptyList(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	names := countries.NewTolerant(failing{}, zap.New(core)).List(context.Background())
	if names == nil || len(names) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", names)
	}
	if logs.FilterMessage("country list unavailable").Len() != 1 {
		t.Fatalf("expected failure to be logged")
	}
}

func TestStatic_Normalises(t *testing.T) {
	names, err := countries.Static{" Germany", "Austria", "Germany", ""}.Countries(context.Background())
	if err != nil {
		t.Fatalf("static: %v", err)
	}
	if diff := cmp.Diff([]string{"Austria", "Germany"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

type counting struct {
	calls atomic.Int32
	err   atomic.Value
}

func (c *counting) fail(err error) { c.err.Store(err) }

func (c *counting) Countries(context.Context) ([]string, error) {
	c.calls.Add(1)
	if err, _ := c.err.Load().(error); err != nil {
		return nil, err
	}
	return []string{"Germany"}, nil
}

func TestCached_ReusesSuccess(t *testing.T) {
	src := &counting{}
	cached := countries.NewCached(src, time.Hour)
	for i := 0; i < 3; i++ {
		if _, err := cached.Countries(context.Background()); err != nil {
			t.Fatalf("countries: %v", err)
		}
	}
	if got := src.calls.Load(); got != 1 {
		t.Fatalf("expected one upstream call, got %d", got)
	}
}

func TestCached_DoesNotCacheFailure(t *testing.T) {
	src := &counting{}
	src.fail(errors.New("boom"))
	cached := countries.NewCached(src, time.Hour)
	_, _ = cached.Countries(context.Background())
	_, _ = cached.Countries(context.Background())
	if got := src.calls.Load(); got != 2 {
		t.Fatalf("expected retry after failure, got %d calls", got)
	}
}

func TestCached_ServesLastGoodListAfterExpiry(t *testing.T) {
	src := &counting{}
	cached := countries.NewCached(src, 20*time.Millisecond)
	if _, err := cached.Countries(context.Background()); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	src.fail(errors.New("upstream down"))
	time.Sleep(40 * time.Millisecond)

	names, err := cached.Countries(context.Background())
	if err != nil {
		t.Fatalf("expected stale list, got %v", err)
	}
	if diff := cmp.Diff([]string{"Germany"}, names); diff != "" {
		t.Fatalf("stale list mismatch (-want +got):\n%s", diff)
	}
	if got := src.calls.Load(); got != 2 {
		t.Fatalf("expected a refresh attempt after expiry, got %d calls", got)
	}
}
