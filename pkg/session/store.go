package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/united-manufacturing-hub/expiremap/v2/pkg/expiremap"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
)

const (
	// DefaultTTL is how long an untouched session stays open.
	DefaultTTL = 30 * time.Minute
	// DefaultCullInterval is how often expired sessions are dropped.
	DefaultCullInterval = time.Minute
)

type entry struct {
	controller *Controller
	closed     bool
}

// Store tracks the open sessions of one form. Sessions expire after the idle
// TTL; every Get refreshes it.
type Store struct {
	mu       sync.RWMutex
	form     pkgmodel.FormDefinition
	options  []Option
	sessions *expiremap.ExpireMap[string, *entry]
	newID    func() string
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	ttl   time.Duration
	cull  time.Duration
	newID func() string
}

// WithTTL sets the idle expiry.
func WithTTL(ttl time.Duration) StoreOption {
	return func(cfg *storeConfig) {
		if ttl > 0 {
			cfg.ttl = ttl
		}
	}
}

// WithCullInterval sets how often expired entries are removed.
func WithCullInterval(d time.Duration) StoreOption {
	return func(cfg *storeConfig) {
		if d > 0 {
			cfg.cull = d
		}
	}
}

// WithIDGenerator overrides the session id source.
func WithIDGenerator(fn func() string) StoreOption {
	return func(cfg *storeConfig) {
		if fn != nil {
			cfg.newID = fn
		}
	}
}

// NewStore creates a store for form. Controller options are applied to every
// session it opens.
func NewStore(form pkgmodel.FormDefinition, storeOptions []StoreOption, options ...Option) *Store {
	cfg := storeConfig{ttl: DefaultTTL, cull: DefaultCullInterval, newID: uuid.NewString}
	for _, opt := range storeOptions {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Store{
		form:     form,
		options:  append([]Option(nil), options...),
		sessions: expiremap.NewEx[string, *entry](cfg.cull, cfg.ttl),
		newID:    cfg.newID,
	}
}

// Form returns the form served by the store.
func (s *Store) Form() pkgmodel.FormDefinition { return s.form }

// Open starts a new session.
func (s *Store) Open(ctx context.Context) (*Controller, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := NewController(s.newID(), s.form, s.options...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Set(c.ID(), &entry{controller: c})
	return c, nil
}

// Get returns an open session and refreshes its expiry.
func (s *Store) Get(id string) (*Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, ok := s.sessions.Load(id)
	if !ok || (*found).closed {
		return nil, ErrNotFound
	}
	s.sessions.Set(id, *found)
	return (*found).controller, nil
}

// Close discards the session. Its values are cleared immediately and any
// late submission result is ignored.
func (s *Store) Close(id string) error {
	s.mu.Lock()
	found, ok := s.sessions.Load(id)
	if !ok || (*found).closed {
		s.mu.Unlock()
		return ErrNotFound
	}
	(*found).closed = true
	c := (*found).controller
	s.mu.Unlock()

	return c.Cancel()
}

// Len counts the sessions that are neither closed nor past their idle TTL.
// Expired entries the cull has not reached yet are not counted.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	s.sessions.Range(func(id string, _ *entry) bool {
		ids = append(ids, id)
		return true
	})
	count := 0
	for _, id := range ids {
		if found, ok := s.sessions.Load(id); ok && !(*found).closed {
			count++
		}
	}
	return count
}
