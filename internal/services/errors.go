package services

import "fmt"

// NotFoundError means a job or CV id did not resolve. Fatal to the analysis,
// nothing is cached.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ExternalServiceError wraps a failed or malformed LLM/embedding call. Fatal:
// the analysis aborts, nothing is cached.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means the model's final output survived neither the
// strict JSON parse nor the fenced-block fallback. The excerpt is kept for
// diagnostics.
type MalformedResponseError struct {
	Excerpt string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("model output is not valid analysis JSON: %v (excerpt: %q)", e.Err, e.Excerpt)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ValidationError rejects a request before any mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
