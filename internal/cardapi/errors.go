package cardapi

import (
	"errors"
	"fmt"
)

// ErrUnauthorized marks a rejected credential. Fatal when it occurs
// before any item is processed; otherwise it accumulates as per-item
// failures, since the pipeline does not re-authenticate mid-run.
var ErrUnauthorized = errors.New("card api rejected credentials")

// ValidationError is a 4xx rejection of a create/update payload. The
// rejected payload is preserved verbatim for diagnosis.
type ValidationError struct {
	StatusCode int
	Body       string
	Payload    string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("card api validation failure (status %d): %s", e.StatusCode, e.Body)
}

// StatusError is a non-validation HTTP failure (5xx and other
// unexpected statuses). Treated like a network failure by callers.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("card api status %d: %s", e.StatusCode, e.Body)
}
