package common

import "errors"

var (
	// ErrLoggerRequired indicates a missing logger dependency.
	ErrLoggerRequired = errors.New("logger is required")
	// ErrConfigRequired indicates a missing config dependency.
	ErrConfigRequired = errors.New("config is required")
)
