package common

import (
	"fmt"
	"strings"

	"github.com/spellforge/cardcrawl/internal/cardapi"
	"github.com/spellforge/cardcrawl/internal/config"
	"github.com/spellforge/cardcrawl/internal/discovery"
	"github.com/spellforge/cardcrawl/internal/extract"
	"github.com/spellforge/cardcrawl/internal/fetcher"
	"github.com/spellforge/cardcrawl/internal/importer"
	"github.com/spellforge/cardcrawl/internal/logger"
	"github.com/spellforge/cardcrawl/internal/taxonomy"
)

// NewCommandDeps creates CommandDeps by loading config and creating logger.
// This consolidates the common initialization code from Execute().
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	// Flag and env overrides land in Viper before Load, so the decoded
	// logger section already reflects them.
	logCfg := cfg.Logger
	logCfg.Level = logger.Level(strings.ToLower(string(logCfg.Level)))

	log, err := logger.New(&logCfg)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}

	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}

// NewDiscoverer builds the link discoverer from crawl config.
func NewDiscoverer(deps CommandDeps) *discovery.Discoverer {
	crawl := deps.Config.Crawl

	return discovery.New(discovery.Config{
		IndexURLTemplate: crawl.IndexURLTemplate,
		ItemPathPattern:  crawl.ItemPathPattern,
		StartPage:        crawl.StartPage,
		MaxPages:         crawl.MaxPages,
		MaxItems:         crawl.MaxItems,
		PageDelay:        crawl.PageDelay,
		RequestTimeout:   crawl.RequestTimeout,
		UserAgent:        crawl.UserAgent,
	}, deps.Logger)
}

// NewAPIClient builds the card catalog client from api config.
func NewAPIClient(deps CommandDeps) *cardapi.Client {
	api := deps.Config.API

	return cardapi.New(cardapi.Config{
		BaseURL:     api.BaseURL,
		Username:    api.Username,
		Password:    api.Password,
		Email:       api.Email,
		DisplayName: api.DisplayName,
		Timeout:     deps.Config.Crawl.RequestTimeout,
	}, deps.Logger)
}

// NewImporter assembles the full import pipeline.
func NewImporter(deps CommandDeps) *importer.Importer {
	crawl := deps.Config.Crawl

	itemFetcher := fetcher.New(fetcher.Config{
		Delay:          crawl.ItemDelay,
		RequestTimeout: crawl.RequestTimeout,
		UserAgent:      crawl.UserAgent,
	}, deps.Logger)

	return importer.New(
		NewDiscoverer(deps),
		itemFetcher,
		extract.NewExtractor(),
		NewAPIClient(deps),
		importer.Config{
			UploadDelay: deps.Config.API.UploadDelay,
			Source:      deps.Config.API.Source,
		},
		deps.Logger,
	)
}

// NewBackfiller assembles the weapon-type backfill pass, loading the
// taxonomy reference table from disk.
func NewBackfiller(deps CommandDeps) (*importer.Backfiller, error) {
	table, err := taxonomy.Load(deps.Config.Taxonomy.Path)
	if err != nil {
		return nil, fmt.Errorf("load weapon taxonomy: %w", err)
	}

	return importer.NewBackfiller(
		NewAPIClient(deps),
		table,
		importer.BackfillConfig{
			ListLimit:   deps.Config.API.ListLimit,
			UpdateDelay: deps.Config.API.UploadDelay,
		},
		deps.Logger,
	), nil
}
