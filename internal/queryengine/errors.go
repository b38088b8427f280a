// Package queryengine retrieves the resume passages most relevant to a
// prompt and asks the language model to answer from those passages alone.
package queryengine

import "fmt"

// IndexError represents a failure building the document index
type IndexError struct {
	Message string
	Cause   error
}

func (e *IndexError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("index error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("index error: %s", e.Message)
}

func (e *IndexError) Unwrap() error {
	return e.Cause
}

// QueryError represents a failure answering a prompt against the index
type QueryError struct {
	Message string
	Cause   error
}

func (e *QueryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("query error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("query error: %s", e.Message)
}

func (e *QueryError) Unwrap() error {
	return e.Cause
}
