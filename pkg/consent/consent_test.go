package consent_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goliatone/go-leadform/pkg/consent"
)

func TestCookieStore_WriteAccepted(t *testing.T) {
	now := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	store := consent.NewCookieStore(consent.WithClock(func() time.Time { return now }), consent.WithSecure(true))

	rec := httptest.NewRecorder()
	if err := store.Write(rec, httptest.NewRequest(http.MethodPost, "/consent", nil), consent.Accepted); err != nil {
		t.Fatalf("write: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != consent.CookieName || cookie.Value != "accepted" {
		t.Fatalf("unexpected cookie %s=%s", cookie.Name, cookie.Value)
	}
	if cookie.Path != "/" {
		t.Fatalf("expected path /, got %q", cookie.Path)
	}
	wantExpiry := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !cookie.Expires.Equal(wantExpiry) {
		t.Fatalf("expected expiry %v, got %v", wantExpiry, cookie.Expires)
	}
	if cookie.MaxAge != 30*24*60*60 {
		t.Fatalf("unexpected max-age %d", cookie.MaxAge)
	}
	if !cookie.Secure || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected flags secure=%v samesite=%v", cookie.Secure, cookie.SameSite)
	}
}

func TestCookieStore_Read(t *testing.T) {
	store := consent.NewCookieStore()
	cases := map[string]consent.State{
		"accepted": consent.Accepted,
		"rejected": consent.Rejected,
		"maybe":    consent.Unknown,
		"":         consent.Unknown,
	}
	for value, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if value != "" {
			req.AddCookie(&http.Cookie{Name: consent.CookieName, Value: value})
		}
		if got := store.Read(req); got != want {
			t.Fatalf("read(%q) = %q, want %q", value, got, want)
		}
	}
}

func TestCookieStore_WriteUnknownClears(t *testing.T) {
	store := consent.NewCookieStore()
	rec := httptest.NewRecorder()
	if err := store.Write(rec, nil, consent.Unknown); err != nil {
		t.Fatalf("write: %v", err)
	}
	cookie := rec.Result().Cookies()[0]
	if cookie.MaxAge >= 0 {
		t.Fatalf("expected deletion cookie, got max-age %d", cookie.MaxAge)
	}
}

func TestCookieStore_WriteInvalid(t *testing.T) {
	if err := consent.NewCookieStore().Write(httptest.NewRecorder(), nil, consent.State("bogus")); err == nil {
		t.Fatalf("expected error for invalid state")
	}
}

func TestState_Decided(t *testing.T) {
	if consent.Unknown.Decided() {
		t.Fatalf("unknown must not count as decided")
	}
	if !consent.ParseState(" Accepted ").Decided() {
		t.Fatalf("accepted should be decided")
	}
}
