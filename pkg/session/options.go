package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-leadform/pkg/challenge"
	"github.com/goliatone/go-leadform/pkg/submit"
)

// Observer receives lifecycle notifications, typically for metrics.
type Observer interface {
	Transition(formID string, from, to State)
	Settled(formID string, status Status, elapsed time.Duration)
	ChallengeRefreshed(formID string)
}

type nopObserver struct{}

func (nopObserver) Transition(string, State, State)       {}
func (nopObserver) Settled(string, Status, time.Duration) {}
func (nopObserver) ChallengeRefreshed(string)             {}

// Option configures a Controller.
type Option func(*config)

type config struct {
	generator      *challenge.Generator
	submitter      submit.Submitter
	logger         *zap.Logger
	observer       Observer
	challengeField string
	mismatchText   string
	submitTimeout  time.Duration
	now            func() time.Time
}

func defaultConfig() config {
	return config{
		generator:      challenge.NewGenerator(),
		submitter:      submit.NewLogSubmitter(nil),
		logger:         zap.NewNop(),
		observer:       nopObserver{},
		challengeField: "code",
		mismatchText:   "The code does not match.",
		submitTimeout:  30 * time.Second,
		now:            time.Now,
	}
}

// WithGenerator sets the challenge generator.
func WithGenerator(gen *challenge.Generator) Option {
	return func(cfg *config) {
		if gen != nil {
			cfg.generator = gen
		}
	}
}

// WithSubmitter sets the submission collaborator.
func WithSubmitter(s submit.Submitter) Option {
	return func(cfg *config) {
		if s != nil {
			cfg.submitter = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithObserver registers lifecycle hooks.
func WithObserver(observer Observer) Option {
	return func(cfg *config) {
		if observer != nil {
			cfg.observer = observer
		}
	}
}

// WithChallengeField names the field compared against the challenge when the
// form does not mark one itself.
func WithChallengeField(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.challengeField = name
		}
	}
}

// WithMismatchMessage overrides the code-field error text.
func WithMismatchMessage(message string) Option {
	return func(cfg *config) {
		if message != "" {
			cfg.mismatchText = message
		}
	}
}

// WithSubmitTimeout bounds each submitter call.
func WithSubmitTimeout(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.submitTimeout = d
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.now = now
		}
	}
}
