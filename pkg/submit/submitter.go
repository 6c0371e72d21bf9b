// Package submit holds the submission collaborators that receive validated
// form payloads. The challenge field never reaches a Submitter.
package submit

import (
	"context"
	"errors"
	"time"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
)

// ErrRejected reports that the downstream receiver refused the payload.
var ErrRejected = errors.New("submit: payload rejected")

// Payload is a fully validated submission.
type Payload struct {
	FormID      string          `json:"formId"`
	SessionID   string          `json:"sessionId,omitempty"`
	Values      pkgmodel.Values `json:"values"`
	SubmittedAt time.Time       `json:"submittedAt"`
}

// Submitter forwards payloads to wherever leads are handled.
type Submitter interface {
	Submit(ctx context.Context, payload Payload) error
}

// Func adapts a function to the Submitter interface.
type Func func(ctx context.Context, payload Payload) error

// Submit calls f.
func (f Func) Submit(ctx context.Context, payload Payload) error {
	return f(ctx, payload)
}

// Chain fans a payload out to several submitters in order, stopping at the
// first failure.
type Chain []Submitter

// Submit forwards to each member.
func (c Chain) Submit(ctx context.Context, payload Payload) error {
	for _, s := range c {
		if s == nil {
			continue
		}
		if err := s.Submit(ctx, payload); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ Submitter = Func(nil)
	_ Submitter = Chain(nil)
)
