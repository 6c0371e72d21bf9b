package session

import "errors"

var (
	// ErrNotFound is returned for unknown, expired or closed sessions.
	ErrNotFound = errors.New("session: not found")
	// ErrSubmitInFlight is returned when submit is triggered while a previous
	// submission is still outstanding.
	ErrSubmitInFlight = errors.New("session: submission already in flight")
	// ErrSubmitted is returned for mutations after the session completed.
	ErrSubmitted = errors.New("session: already submitted")
	// ErrUnknownField is returned when setting a field the form does not declare.
	ErrUnknownField = errors.New("session: unknown field")
)

// IsConflict reports whether err stems from the session being busy or done,
// as opposed to a missing session or a bad request.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSubmitInFlight) || errors.Is(err, ErrSubmitted)
}
