package domain

// OutcomeStatus is the terminal status of one item's trip through the pipeline.
type OutcomeStatus string

const (
	// StatusCreated means the downstream API stored the record.
	StatusCreated OutcomeStatus = "created"
	// StatusSkipped means the item never reached the uploader (e.g. no name).
	StatusSkipped OutcomeStatus = "skipped"
	// StatusFailed means the upload was attempted and rejected or lost.
	StatusFailed OutcomeStatus = "failed"
)

// Failure reasons recorded on ImportOutcome.
const (
	ReasonMissingName     = "ParseError(MissingName)"
	ReasonNetworkError    = "NetworkError"
	ReasonValidationError = "ValidationError"
	ReasonAuthError       = "AuthError"
)

// ImportOutcome records what happened to a single item. Outcomes are
// aggregated into run counters and never persisted.
type ImportOutcome struct {
	URL    string
	Name   string
	Status OutcomeStatus
	Reason string
}
