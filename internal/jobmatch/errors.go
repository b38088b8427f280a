// Package jobmatch rates how a candidate's skills bear on a target job
// position.
package jobmatch

import "fmt"

// MatchError represents a failure producing the job relevance report
type MatchError struct {
	Message string
	Cause   error
}

func (e *MatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job match error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job match error: %s", e.Message)
}

func (e *MatchError) Unwrap() error {
	return e.Cause
}
