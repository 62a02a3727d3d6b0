package strategy

import "fmt"

// RemoteError represents a failed call to the LLM API
type RemoteError struct {
	Op    string
	Cause error
}

func (e *RemoteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: LLM call failed: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: LLM call failed", e.Op)
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// DecodeError represents an LLM reply that is not valid JSON or does not
// match the expected schema
type DecodeError struct {
	Op      string
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
