package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spellforge/cardcrawl/internal/cardapi"
	"github.com/spellforge/cardcrawl/internal/domain"
	"github.com/spellforge/cardcrawl/internal/logger"
	"github.com/spellforge/cardcrawl/internal/taxonomy"
)

// CardUpdater lists stored cards and sets weapon types on them.
type CardUpdater interface {
	Authenticate(ctx context.Context) error
	ListCards(ctx context.Context, limit int) ([]cardapi.Card, error)
	UpdateWeaponType(ctx context.Context, cardID, weaponType string) error
}

// BackfillConfig configures a backfill pass.
type BackfillConfig struct {
	// ListLimit caps how many stored cards are examined.
	ListLimit int
	// UpdateDelay paces update calls.
	UpdateDelay time.Duration
}

// Backfiller walks stored cards and fills in the structured weapon
// type for cards whose name matches a reference weapon. Cards that
// already carry a weapon type are left untouched, so repeated passes
// are idempotent.
type Backfiller struct {
	cards CardUpdater
	table *taxonomy.Table
	cfg   BackfillConfig
	log   logger.Interface
}

// NewBackfiller creates a Backfiller.
func NewBackfiller(cards CardUpdater, table *taxonomy.Table, cfg BackfillConfig, log logger.Interface) *Backfiller {
	return &Backfiller{
		cards: cards,
		table: table,
		cfg:   cfg,
		log:   log.WithComponent("backfill"),
	}
}

// Run executes one backfill pass over stored cards.
func (b *Backfiller) Run(ctx context.Context) (*BackfillReport, error) {
	runID := uuid.NewString()
	log := b.log.WithRunID(runID)
	report := &BackfillReport{RunID: runID}

	if authErr := b.cards.Authenticate(ctx); authErr != nil {
		return nil, fmt.Errorf("authenticate before backfill: %w", authErr)
	}

	cards, listErr := b.cards.ListCards(ctx, b.cfg.ListLimit)
	if listErr != nil {
		return nil, fmt.Errorf("list cards: %w", listErr)
	}

	log.Info("backfill pass started", "cards", len(cards), "weapons", b.table.Entries())

	for _, card := range cards {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		report.Add(b.processCard(ctx, log, card))
	}

	log.Info("backfill pass finished",
		"updated", report.Updated,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)

	return report, nil
}

// processCard decides and applies the weapon type for one stored card.
func (b *Backfiller) processCard(ctx context.Context, log logger.Interface, card cardapi.Card) domain.ImportOutcome {
	if card.WeaponType != nil && *card.WeaponType != "" {
		return domain.ImportOutcome{Name: card.Name, Status: domain.StatusSkipped}
	}

	entry := b.table.Match(card.Name)
	if entry == nil {
		return domain.ImportOutcome{Name: card.Name, Status: domain.StatusSkipped}
	}

	if updateErr := b.cards.UpdateWeaponType(ctx, card.ID, entry.Name); updateErr != nil {
		log.Warn("weapon type update failed",
			"name", card.Name,
			"weapon_type", entry.Name,
			"error", updateErr.Error(),
		)
		b.sleep(ctx)
		return domain.ImportOutcome{
			Name:   card.Name,
			Status: domain.StatusFailed,
			Reason: domain.ReasonNetworkError,
		}
	}

	log.Info("weapon type set", "name", card.Name, "weapon_type", entry.Name)
	b.sleep(ctx)

	return domain.ImportOutcome{Name: card.Name, Status: domain.StatusCreated}
}

func (b *Backfiller) sleep(ctx context.Context) {
	if b.cfg.UpdateDelay <= 0 {
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(b.cfg.UpdateDelay):
	}
}
