// Package consent stores the visitor's cookie-consent decision. The banner
// depends on the Store interface rather than on the cookie jar directly.
package consent

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// State is the tri-state consent flag.
type State string

const (
	Unknown  State = ""
	Accepted State = "accepted"
	Rejected State = "rejected"
)

// ParseState maps a stored or submitted value onto a State. Anything that is
// not an explicit decision reads as Unknown.
func ParseState(raw string) State {
	switch State(strings.ToLower(strings.TrimSpace(raw))) {
	case Accepted:
		return Accepted
	case Rejected:
		return Rejected
	default:
		return Unknown
	}
}

// Decided reports whether the visitor answered the banner.
func (s State) Decided() bool {
	return s == Accepted || s == Rejected
}

const (
	// CookieName is the cookie holding the decision.
	CookieName = "cookies-consent"
	// DefaultExpiry is how long a decision is remembered.
	DefaultExpiry = 30 * 24 * time.Hour
)

// Store reads and writes the consent decision for one request.
type Store interface {
	Read(r *http.Request) State
	Write(w http.ResponseWriter, r *http.Request, state State) error
}

// CookieStore keeps the decision in a first-party cookie.
type CookieStore struct {
	expiry   time.Duration
	secure   bool
	sameSite http.SameSite
	domain   string
	now      func() time.Time
}

var _ Store = (*CookieStore)(nil)

// Option configures a CookieStore.
type Option func(*CookieStore)

// WithExpiry overrides the 30 day default.
func WithExpiry(d time.Duration) Option {
	return func(s *CookieStore) {
		if d > 0 {
			s.expiry = d
		}
	}
}

// WithSecure marks the cookie Secure.
func WithSecure(secure bool) Option {
	return func(s *CookieStore) {
		s.secure = secure
	}
}

// WithSameSite sets the SameSite mode.
func WithSameSite(mode http.SameSite) Option {
	return func(s *CookieStore) {
		s.sameSite = mode
	}
}

// WithDomain scopes the cookie to a domain.
func WithDomain(domain string) Option {
	return func(s *CookieStore) {
		s.domain = strings.TrimSpace(domain)
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *CookieStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewCookieStore builds a CookieStore with a 30 day expiry and SameSite=Lax.
func NewCookieStore(options ...Option) *CookieStore {
	s := &CookieStore{
		expiry:   DefaultExpiry,
		sameSite: http.SameSiteLaxMode,
		now:      time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Read returns the stored decision or Unknown.
func (s *CookieStore) Read(r *http.Request) State {
	if r == nil {
		return Unknown
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Unknown
	}
	return ParseState(cookie.Value)
}

// Write persists an explicit decision. Unknown clears the cookie.
func (s *CookieStore) Write(w http.ResponseWriter, r *http.Request, state State) error {
	if w == nil {
		return fmt.Errorf("consent: response writer is required")
	}
	cookie := &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		Domain:   s.domain,
		SameSite: s.sameSite,
		Secure:   s.secure,
		HttpOnly: false,
	}
	switch state {
	case Accepted, Rejected:
		cookie.Value = string(state)
		cookie.Expires = s.now().Add(s.expiry).UTC()
		cookie.MaxAge = int(s.expiry / time.Second)
	case Unknown:
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	default:
		return fmt.Errorf("consent: invalid state %q", state)
	}
	http.SetCookie(w, cookie)
	return nil
}
