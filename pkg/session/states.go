package session

import "github.com/looplab/fsm"

// State is a Form State Controller state.
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateInvalid    State = "invalid"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

const (
	eventSubmit  = "submit"
	eventReject  = "reject"
	eventResume  = "resume"
	eventAccept  = "accept"
	eventSucceed = "succeed"
	eventFail    = "fail"
	eventCancel  = "cancel"
)

// Outcome summarises what a submit attempt did.
type Outcome string

const (
	// OutcomeInvalid means one or more fields failed validation.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeChallengeMismatch means every field passed but the code did not
	// match the current challenge.
	OutcomeChallengeMismatch Outcome = "challenge_mismatch"
	// OutcomeSubmitting means the payload was handed to the submitter.
	OutcomeSubmitting Outcome = "submitting"
)

// Status reports how the latest submission settled.
type Status string

const (
	StatusNone      Status = ""
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

func transitions() []fsm.EventDesc {
	return []fsm.EventDesc{
		{Name: eventSubmit, Src: []string{string(StateEditing)}, Dst: string(StateValidating)},
		{Name: eventReject, Src: []string{string(StateValidating)}, Dst: string(StateInvalid)},
		{Name: eventResume, Src: []string{string(StateInvalid)}, Dst: string(StateEditing)},
		{Name: eventAccept, Src: []string{string(StateValidating)}, Dst: string(StateSubmitting)},
		{Name: eventSucceed, Src: []string{string(StateSubmitting)}, Dst: string(StateSubmitted)},
		{Name: eventFail, Src: []string{string(StateSubmitting)}, Dst: string(StateEditing)},
		{
			Name: eventCancel,
			Src: []string{
				string(StateValidating),
				string(StateInvalid),
				string(StateSubmitting),
				string(StateSubmitted),
			},
			Dst: string(StateEditing),
		},
	}
}
