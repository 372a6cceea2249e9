package questiongen

import "fmt"

// Validator checks one generated question. Implementations must be
// stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages and logs.
	Name() string

	// Validate returns nil if the question passes, a ValidationError
	// describing the failure otherwise.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a candidate question was rejected.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
