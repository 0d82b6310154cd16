package session

import (
	"errors"
	"fmt"

	"github.com/jbonatakis/hakim/internal/court"
)

var (
	ErrIllegalTransition = errors.New("illegal transition")
	ErrBusy              = errors.New("waiting for the court")
	ErrEmptyQuestion     = errors.New("question is empty")
	ErrNoTarget          = errors.New("no one selected to answer")
	ErrUnknownEvidence   = errors.New("no such evidence in the case file")
	ErrNoCase            = errors.New("no active case")
	ErrNotSaveable       = errors.New("session cannot be saved in this phase")
	ErrOpeningDone       = errors.New("opening statements already heard")
	ErrNoSnapshot        = errors.New("no saved session")
	ErrStaleResult       = errors.New("result no longer applies")
	ErrNoOracle          = errors.New("no oracle configured")
	ErrInvalidVerdict    = errors.New("verdict must be Guilty or Not Guilty")
)

// TransitionError reports a command that is not allowed in the current
// phase. It matches ErrIllegalTransition.
type TransitionError struct {
	Action string
	From   court.Phase
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from %s", ErrIllegalTransition, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}
