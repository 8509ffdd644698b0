// Package scheduler implements the schedule command that runs imports
// on a recurring cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	importerpkg "github.com/spellforge/cardcrawl/internal/importer"
	"github.com/spellforge/cardcrawl/internal/logger"
)

// Service runs the import pipeline on a cron schedule. Each tick is an
// ordinary batch run; a tick that fires while the previous run is still
// going is skipped rather than queued.
type Service struct {
	importer *importerpkg.Importer
	spec     string
	cron     *cron.Cron
	logger   logger.Interface
	running  sync.Mutex
}

// NewService creates a scheduler Service.
func NewService(imp *importerpkg.Importer, spec string, log logger.Interface) *Service {
	// Standard 5-field cron parser (minute hour day month weekday).
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	return &Service{
		importer: imp,
		spec:     spec,
		cron:     cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		logger:   log.WithComponent("scheduler"),
	}
}

// Start registers the import job and starts the cron scheduler.
func (s *Service) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("register schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", "schedule", s.spec)
	return nil
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Service) Stop() {
	<-s.cron.Stop().Done()

	// Block until any in-flight run releases the lock.
	s.running.Lock()
	s.running.Unlock()

	s.logger.Info("Scheduler stopped")
}

// tick runs one scheduled import unless the previous run is still active.
func (s *Service) tick(ctx context.Context) {
	if !s.running.TryLock() {
		s.logger.Warn("Previous import run still active, skipping this tick")
		return
	}
	defer s.running.Unlock()

	report, err := s.importer.Run(ctx)
	if err != nil {
		s.logger.Error("Scheduled import run failed", "error", err.Error())
		return
	}

	s.logger.Info("Scheduled import run finished",
		"created", report.Created,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
}
