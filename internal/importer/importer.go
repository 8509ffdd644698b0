// Package importer sequences the import pipeline: discover source
// links, then fetch, extract, classify and upload one item at a time.
// Execution is deliberately single-threaded - it keeps the request rate
// to the politeness-sensitive source and the downstream API predictable
// and removes any cross-item synchronization. Per-item failures are
// converted into outcomes and never abort the rest of the batch.
package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spellforge/cardcrawl/internal/cardapi"
	"github.com/spellforge/cardcrawl/internal/classify"
	"github.com/spellforge/cardcrawl/internal/domain"
	"github.com/spellforge/cardcrawl/internal/extract"
	"github.com/spellforge/cardcrawl/internal/logger"
)

// State is the orchestrator's coarse run state.
type State string

const (
	StateIdle        State = "idle"
	StateDiscovering State = "discovering"
	StateExtracting  State = "extracting"
	StateClassifying State = "classifying"
	StateUploading   State = "uploading"
	StateCompleted   State = "completed"
	StateAborted     State = "aborted"
)

// LinkDiscoverer yields candidate item links.
type LinkDiscoverer interface {
	Discover(ctx context.Context) ([]domain.SourceLink, error)
}

// DocumentFetcher retrieves one source document.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (*domain.RawDocument, error)
}

// FieldExtractor pulls raw fields out of a fetched document.
type FieldExtractor interface {
	Extract(doc *domain.RawDocument) (*extract.Fields, error)
}

// CardCreator authenticates and creates cards in the downstream API.
type CardCreator interface {
	Authenticate(ctx context.Context) error
	CreateCard(ctx context.Context, req cardapi.CreateCardRequest) (*cardapi.Card, error)
}

// Config configures an import run.
type Config struct {
	// UploadDelay paces create calls against the API's rate limiting.
	UploadDelay time.Duration
	// Source is the provenance string stamped on every record.
	Source string
}

// Importer drives the full pipeline.
type Importer struct {
	discoverer LinkDiscoverer
	fetcher    DocumentFetcher
	extractor  FieldExtractor
	cards      CardCreator
	cfg        Config
	log        logger.Interface
	state      State
}

// New creates an Importer.
func New(
	discoverer LinkDiscoverer,
	fetcher DocumentFetcher,
	extractor FieldExtractor,
	cards CardCreator,
	cfg Config,
	log logger.Interface,
) *Importer {
	return &Importer{
		discoverer: discoverer,
		fetcher:    fetcher,
		extractor:  extractor,
		cards:      cards,
		cfg:        cfg,
		log:        log.WithComponent("importer"),
		state:      StateIdle,
	}
}

// State returns the current run state.
func (i *Importer) State() State {
	return i.state
}

// Run executes one import batch. It aborts only on precondition
// failures (credentials rejected before any item, discovery of the
// first index page failing); every per-item error becomes an outcome
// in the returned report.
func (i *Importer) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	log := i.log.WithRunID(runID)
	report := NewReport(runID)

	if authErr := i.cards.Authenticate(ctx); authErr != nil {
		i.state = StateAborted
		return nil, fmt.Errorf("authenticate before run: %w", authErr)
	}

	i.state = StateDiscovering
	log.Info("discovering source links")

	links, discoverErr := i.discoverer.Discover(ctx)
	if discoverErr != nil {
		i.state = StateAborted
		return nil, fmt.Errorf("discover links: %w", discoverErr)
	}

	log.Info("discovery finished", "links", len(links))

	for _, link := range links {
		if ctx.Err() != nil {
			i.state = StateAborted
			report.FinishedAt = time.Now()
			return report, ctx.Err()
		}

		outcome := i.processItem(ctx, log, link)
		report.Add(outcome)
	}

	i.state = StateCompleted
	report.FinishedAt = time.Now()

	log.Info("import run finished",
		"attempted", report.Attempted(),
		"created", report.Created,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)

	return report, nil
}

// processItem takes one link through fetch, extraction, classification
// and upload. Every failure path returns an outcome; nothing escapes.
func (i *Importer) processItem(ctx context.Context, log logger.Interface, link domain.SourceLink) domain.ImportOutcome {
	itemLog := log.WithURL(link.URL)

	i.state = StateExtracting

	doc, fetchErr := i.fetcher.Fetch(ctx, link.URL)
	if fetchErr != nil {
		itemLog.Warn("fetch failed", "error", fetchErr.Error())
		return domain.ImportOutcome{
			URL:    link.URL,
			Status: domain.StatusFailed,
			Reason: domain.ReasonNetworkError,
		}
	}

	fields, extractErr := i.extractor.Extract(doc)
	if extractErr != nil {
		if errors.Is(extractErr, extract.ErrMissingName) {
			itemLog.Info("no item name found, skipping")
		} else {
			itemLog.Warn("extraction failed, skipping", "error", extractErr.Error())
		}
		return domain.ImportOutcome{
			URL:    link.URL,
			Status: domain.StatusSkipped,
			Reason: domain.ReasonMissingName,
		}
	}

	i.state = StateClassifying
	item := i.classifyItem(fields)

	i.state = StateUploading
	outcome := i.upload(ctx, itemLog, link, item)

	// Pace uploads regardless of outcome.
	i.sleep(ctx, i.cfg.UploadDelay)

	return outcome
}

// classifyItem runs each heuristic classifier over the extracted fields.
// The record accumulates classifier outputs; order of stages is fixed.
func (i *Importer) classifyItem(fields *extract.Fields) *domain.Item {
	return &domain.Item{
		Name:        fields.Name,
		Description: fields.Description,
		Rarity:      classify.Rarity(fields.Text),
		Price:       classify.Price(fields.Text),
		Weight:      classify.Weight(fields.Text),
		ItemType:    classify.ItemType(fields.Name),
		Slot:        classify.Slot(fields.Name),
		Properties:  classify.Properties(fields.Text),
		Attunement:  classify.Attunement(fields.Text),
		Source:      i.cfg.Source,
	}
}

// upload submits one record and maps the client's typed failures onto
// outcome reasons. A validation rejection logs the payload verbatim.
func (i *Importer) upload(ctx context.Context, log logger.Interface, link domain.SourceLink, item *domain.Item) domain.ImportOutcome {
	_, createErr := i.cards.CreateCard(ctx, cardapi.NewCreateCardRequest(item))

	var validationErr *cardapi.ValidationError

	switch {
	case createErr == nil:
		log.Info("card created", "name", item.Name)
		return domain.ImportOutcome{
			URL:    link.URL,
			Name:   item.Name,
			Status: domain.StatusCreated,
		}
	case errors.As(createErr, &validationErr):
		log.Error("card rejected by api",
			"name", item.Name,
			"status", validationErr.StatusCode,
			"payload", validationErr.Payload,
		)
		return domain.ImportOutcome{
			URL:    link.URL,
			Name:   item.Name,
			Status: domain.StatusFailed,
			Reason: domain.ReasonValidationError,
		}
	case errors.Is(createErr, cardapi.ErrUnauthorized):
		log.Error("credential rejected mid-run", "name", item.Name)
		return domain.ImportOutcome{
			URL:    link.URL,
			Name:   item.Name,
			Status: domain.StatusFailed,
			Reason: domain.ReasonAuthError,
		}
	default:
		log.Warn("upload failed", "name", item.Name, "error", createErr.Error())
		return domain.ImportOutcome{
			URL:    link.URL,
			Name:   item.Name,
			Status: domain.StatusFailed,
			Reason: domain.ReasonNetworkError,
		}
	}
}

// sleep pauses for the given duration unless the context ends first.
func (i *Importer) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
