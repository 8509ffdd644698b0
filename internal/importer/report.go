package importer

import (
	"time"

	"github.com/spellforge/cardcrawl/internal/domain"
)

// Report aggregates per-item outcomes into run-level counters. It is a
// process-local record; nothing here is persisted.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []domain.ImportOutcome
	Created    int
	Skipped    int
	Failed     int
}

// NewReport creates an empty report for the given run.
func NewReport(runID string) *Report {
	return &Report{
		RunID:     runID,
		StartedAt: time.Now(),
	}
}

// Add records one outcome and bumps the matching counter.
func (r *Report) Add(outcome domain.ImportOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)

	switch outcome.Status {
	case domain.StatusCreated:
		r.Created++
	case domain.StatusSkipped:
		r.Skipped++
	case domain.StatusFailed:
		r.Failed++
	}
}

// Attempted returns the number of items that entered the pipeline.
func (r *Report) Attempted() int {
	return len(r.Outcomes)
}

// BackfillReport aggregates the weapon-type backfill pass.
type BackfillReport struct {
	RunID    string
	Updated  int
	Skipped  int
	Failed   int
	Outcomes []domain.ImportOutcome
}

// Add records one backfill outcome. Created is reused for "updated".
func (r *BackfillReport) Add(outcome domain.ImportOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)

	switch outcome.Status {
	case domain.StatusCreated:
		r.Updated++
	case domain.StatusSkipped:
		r.Skipped++
	case domain.StatusFailed:
		r.Failed++
	}
}
