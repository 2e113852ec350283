package resolve

import (
	"fmt"
	"strings"
)

// AttemptFailure records why a single resolution attempt was rejected.
type AttemptFailure struct {
	Attempt int
	Cause   error
}

// ResolutionError indicates the generative capability never produced a
// schema-conforming CandidateRecord within the retry bound. It carries every
// attempt's failure so callers and tests can see the full history.
type ResolutionError struct {
	Attempts []AttemptFailure
}

func (e *ResolutionError) Error() string {
	if len(e.Attempts) == 0 {
		return "resolution failed"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "resolution failed after %d attempt(s):", len(e.Attempts))
	for _, a := range e.Attempts {
		fmt.Fprintf(&sb, " [attempt %d] %v;", a.Attempt, a.Cause)
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// Unwrap exposes the last attempt's cause.
func (e *ResolutionError) Unwrap() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Cause
}
