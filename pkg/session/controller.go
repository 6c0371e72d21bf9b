// Package session implements the Form State Controller: one Controller per
// open form panel owning its values, errors and challenge, and a Store that
// tracks open sessions with idle expiry.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/goliatone/go-leadform/pkg/challenge"
	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/submit"
	"github.com/goliatone/go-leadform/pkg/validation"
)

// Snapshot is a read-only copy of a controller's state.
type Snapshot struct {
	ID        string
	FormID    string
	State     State
	Values    pkgmodel.Values
	Errors    pkgmodel.ValidationResult
	Challenge challenge.Challenge
	Status    Status
	LastError string
}

// Controller drives one form session through
// editing → validating → (invalid → editing | submitting → submitted).
// All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	id             string
	form           pkgmodel.FormDefinition
	challengeField string
	cfg            config
	logger         *zap.Logger
	machine        *fsm.FSM

	values    pkgmodel.Values
	errors    pkgmodel.ValidationResult
	challenge challenge.Challenge
	status    Status
	lastErr   error

	// epoch increases on every cancel so a late submission result can tell
	// that the state it was started against has been discarded.
	epoch    uint64
	inFlight chan struct{}
}

// NewController opens a session for form with a fresh challenge.
func NewController(id string, form pkgmodel.FormDefinition, options ...Option) (*Controller, error) {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	c := &Controller{
		id:             id,
		form:           form,
		challengeField: challengeFieldOf(form, cfg.challengeField),
		cfg:            cfg,
		logger:         cfg.logger.With(zap.String("session", id), zap.String("form", form.ID)),
		values:         form.InitialValues(),
		errors:         pkgmodel.ValidationResult{},
	}
	c.machine = fsm.NewFSM(
		string(StateEditing),
		fsm.Events(transitions()),
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				c.logger.Debug("session transition",
					zap.String("event", e.Event),
					zap.String("from", e.Src),
					zap.String("to", e.Dst))
				c.cfg.observer.Transition(c.form.ID, State(e.Src), State(e.Dst))
			},
		},
	)

	code, err := cfg.generator.Generate()
	if err != nil {
		return nil, fmt.Errorf("session: open %s: %w", id, err)
	}
	c.challenge = code
	return c, nil
}

// ID returns the session identifier.
func (c *Controller) ID() string { return c.id }

// Form returns the form definition the session was opened with.
func (c *Controller) Form() pkgmodel.FormDefinition { return c.form }

// ChallengeField returns the name of the field checked against the challenge.
func (c *Controller) ChallengeField() string { return c.challengeField }

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State(c.machine.Current())
}

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		ID:        c.id,
		FormID:    c.form.ID,
		State:     State(c.machine.Current()),
		Values:    c.values.Clone(),
		Errors:    c.errors.Clone(),
		Challenge: c.challenge,
		Status:    c.status,
	}
	if c.lastErr != nil {
		snap.LastError = c.lastErr.Error()
	}
	return snap
}

// Set updates one field while editing.
func (c *Controller) Set(name string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(); err != nil {
		return err
	}
	if _, ok := c.form.Field(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.values[name] = value
	return nil
}

// SetValues replaces every declared field from values. Fields missing from
// values fall back to their zero value; undeclared keys are ignored.
func (c *Controller) SetValues(values pkgmodel.Values) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(); err != nil {
		return err
	}
	next := c.form.InitialValues()
	for _, field := range c.form.Fields {
		if value, ok := values[field.Name]; ok {
			next[field.Name] = value
		}
	}
	c.values = next
	return nil
}

// Blur validates a single field and records or clears its error.
func (c *Controller) Blur(name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	field, ok := c.form.Field(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	message := validation.ValidateField(field, c.values)
	if message == "" {
		delete(c.errors, name)
	} else {
		c.errors[name] = message
	}
	return message, nil
}

// RefreshChallenge replaces the challenge. The previous code stops verifying
// immediately.
func (c *Controller) RefreshChallenge() (challenge.Challenge, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(); err != nil {
		return "", err
	}
	code, err := c.cfg.generator.Generate()
	if err != nil {
		return "", fmt.Errorf("session: refresh challenge: %w", err)
	}
	c.challenge = code
	c.cfg.observer.ChallengeRefreshed(c.form.ID)
	return code, nil
}

// Submit validates the values and, when they pass and the code matches,
// hands the payload to the submitter without waiting for it. A failed
// validation or code mismatch returns the session to editing with the
// errors recorded and every value left intact.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(); err != nil {
		return "", err
	}
	c.fire(eventSubmit)

	result := validation.Validate(c.form, c.values)
	outcome := OutcomeInvalid
	if _, failed := result[c.challengeField]; !failed && c.challengeField != "" {
		if !c.cfg.generator.Verify(c.values.String(c.challengeField), c.challenge) {
			result[c.challengeField] = c.cfg.mismatchText
			if len(result) == 1 {
				outcome = OutcomeChallengeMismatch
			}
		}
	}

	if !result.Valid() {
		c.errors = result
		c.fire(eventReject)
		c.fire(eventResume)
		return outcome, nil
	}

	c.errors = pkgmodel.ValidationResult{}
	c.status = StatusNone
	c.lastErr = nil
	c.fire(eventAccept)

	payload := submit.Payload{
		FormID:      c.form.ID,
		SessionID:   c.id,
		Values:      c.values.Without(c.challengeField),
		SubmittedAt: c.cfg.now(),
	}
	done := make(chan struct{})
	c.inFlight = done
	go c.deliver(context.WithoutCancel(ctx), c.epoch, payload, done)

	return OutcomeSubmitting, nil
}

// Wait blocks until the outstanding submission, if any, has settled.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.inFlight
	c.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel discards values and errors, issues a new challenge and returns to
// editing. An in-flight submission is not interrupted; its result is ignored
// once it arrives, and Wait still blocks until then.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	c.values = c.form.InitialValues()
	c.errors = pkgmodel.ValidationResult{}
	c.status = StatusNone
	c.lastErr = nil
	if State(c.machine.Current()) != StateEditing {
		c.fire(eventCancel)
	}

	code, err := c.cfg.generator.Generate()
	if err != nil {
		c.challenge = ""
		return fmt.Errorf("session: cancel: %w", err)
	}
	c.challenge = code
	return nil
}

func (c *Controller) deliver(ctx context.Context, epoch uint64, payload submit.Payload, done chan struct{}) {
	defer close(done)

	start := c.cfg.now()
	ctx, cancel := context.WithTimeout(ctx, c.cfg.submitTimeout)
	defer cancel()

	err := c.callSubmitter(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		c.logger.Debug("discarding late submission result", zap.Error(err))
		return
	}

	elapsed := c.cfg.now().Sub(start)
	if err != nil {
		c.status = StatusFailed
		c.lastErr = err
		c.fire(eventFail)
		c.logger.Warn("submission failed", zap.Error(err))
		c.cfg.observer.Settled(c.form.ID, StatusFailed, elapsed)
		return
	}
	c.status = StatusSucceeded
	c.fire(eventSucceed)
	c.logger.Info("submission accepted")
	c.cfg.observer.Settled(c.form.ID, StatusSucceeded, elapsed)
}

// callSubmitter converts submitter panics into errors so a misbehaving
// collaborator cannot leave the session stuck in submitting.
func (c *Controller) callSubmitter(ctx context.Context, payload submit.Payload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session: submitter panic: %v", r)
		}
	}()
	return c.cfg.submitter.Submit(ctx, payload)
}

func (c *Controller) editableLocked() error {
	switch State(c.machine.Current()) {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateSubmitted:
		return ErrSubmitted
	default:
		return nil
	}
}

// fire applies a transition. Transitions are fired with a background context
// so a cancelled request can never leave the machine mid-transition.
func (c *Controller) fire(event string) {
	if err := c.machine.Event(context.Background(), event); err != nil {
		c.logger.Error("invalid session transition", zap.String("event", event), zap.Error(err))
	}
}

func challengeFieldOf(form pkgmodel.FormDefinition, fallback string) string {
	for _, field := range form.Fields {
		if field.Metadata[pkgmodel.MetadataChallenge] == "true" {
			return field.Name
		}
	}
	if _, ok := form.Field(fallback); ok {
		return fallback
	}
	return ""
}
