package engine

import (
	"errors"
	"fmt"
)

// ValidationError reports rejected user input. Values compare equal, so
// errors.Is works against the exported sentinels below.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var (
	ErrEmptySideQuest = ValidationError{Field: "side quest", Reason: "description is required"}
	ErrUnknownMood    = ValidationError{Field: "mood", Reason: "unknown mood"}

	ErrChallengeAlreadyDone = errors.New("daily challenge already completed today")
	ErrNoChallenge          = errors.New("no daily challenge issued yet")
	ErrTaskInFlight         = errors.New("a timed task is already running")
	ErrNoTimedTask          = errors.New("no timed task is running")
	ErrTaskMismatch         = errors.New("task handle does not match the running task")
)
