package workflow

import (
	"errors"
	"fmt"
)

// Validation errors. These are rejected locally and never reach the network.
var (
	// ErrEmptyDraft is returned when analysis is requested for a draft
	// whose trimmed text is empty.
	ErrEmptyDraft = errors.New("draft text cannot be empty")

	// ErrMoodNotSet is returned when save is requested before the user has
	// picked a mood.
	ErrMoodNotSet = errors.New("mood must be set before saving")

	// ErrMissingOwner is returned when save is requested without a
	// resolved owner identity.
	ErrMissingOwner = errors.New("owner identity is required")
)

// Sequencing and transition errors.
var (
	// ErrCycleInFlight is returned when a new analyze or save request
	// arrives while a previous cycle has not settled.
	ErrCycleInFlight = errors.New("a previous request is still in flight")

	// ErrStaleCycle is returned when a completion arrives carrying a
	// sequence number that is no longer the latest issued; its results
	// are discarded.
	ErrStaleCycle = errors.New("analysis superseded by a newer request")

	// ErrNotReframed is returned when save or reflection editing is
	// requested outside the Reframed state.
	ErrNotReframed = errors.New("entry has no reframes to act on")

	// ErrUnknownDistortion is returned when a reflection targets a label
	// that is not in the current summary.
	ErrUnknownDistortion = errors.New("no such distortion in the current summary")
)

// Phase names used in PhaseError.
const (
	PhaseClassify = "classify"
	PhaseReframe  = "generate_reframes"
	PhaseSave     = "save"
)

// PhaseError wraps a failure from one of the workflow's outbound calls with
// the phase it occurred in. The workflow guarantees that no partial results
// from the failed phase were committed.
type PhaseError struct {
	Phase string
	Err   error
}

// Error implements the error interface for PhaseError.
func (e *PhaseError) Error() string {
	return fmt.Sprintf("workflow %s phase failed: %v", e.Phase, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PhaseError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether the error is one of the locally-rejected
// validation errors, as opposed to an upstream or persistence failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyDraft) ||
		errors.Is(err, ErrMoodNotSet) ||
		errors.Is(err, ErrMissingOwner)
}
