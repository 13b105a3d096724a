package pipeline

import "fmt"

// FailedError is the single opaque failure returned for unexpected
// pipeline errors. The cause is preserved for logs and monitoring.
type FailedError struct {
	Err error
}

func (e *FailedError) Error() string { return fmt.Sprintf("prediction failed: %v", e.Err) }

func (e *FailedError) Unwrap() error { return e.Err }

// ValidationError rejects a malformed request before pipeline entry.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid request: %v", e.Err) }

func (e *ValidationError) Unwrap() error { return e.Err }
