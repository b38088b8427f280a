// Package insights orchestrates resume analysis end to end: work
// history extraction, skill enrichment, candidate assembly, and job
// matching.
package insights

import "fmt"

// ExtractionError represents a failed end to end operation
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
