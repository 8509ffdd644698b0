package fetcher

import "fmt"

// Kind classifies a fetch failure.
type Kind int

const (
	// KindNetwork is a connection-level failure (DNS, reset, refused).
	KindNetwork Kind = iota
	// KindTimeout is a request that exceeded its deadline.
	KindTimeout
	// KindHTTP is a terminal HTTP status (4xx/5xx).
	KindHTTP
)

// Error is a typed fetch failure. Network and timeout failures are
// retryable on a later run; HTTP status failures are terminal.
type Error struct {
	URL    string
	Kind   Kind
	Status int
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("fetch %s: timeout: %v", e.URL, e.Err)
	case KindHTTP:
		return fmt.Sprintf("fetch %s: http status %d", e.URL, e.Status)
	default:
		return fmt.Sprintf("fetch %s: network: %v", e.URL, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether a later attempt could succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindNetwork || e.Kind == KindTimeout
}
