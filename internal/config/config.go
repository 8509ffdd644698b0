// Package config defines the application configuration and its loading
// from Viper. All components receive explicit config values at
// construction; there is no process-wide mutable state.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/spellforge/cardcrawl/internal/logger"
)

// Validation errors.
var (
	ErrMissingIndexURL = errors.New("crawl.index_url_template is required")
	ErrMissingAPIURL   = errors.New("api.base_url is required")
	ErrInvalidCaps     = errors.New("crawl.max_pages and crawl.max_items must be positive")
)

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// CrawlConfig configures discovery and item fetching.
type CrawlConfig struct {
	// IndexURLTemplate is the paginated index URL; %d receives the page number.
	IndexURLTemplate string `mapstructure:"index_url_template"`
	// ItemPathPattern is the href prefix that marks an item link.
	ItemPathPattern string        `mapstructure:"item_path_pattern"`
	StartPage       int           `mapstructure:"start_page"`
	MaxPages        int           `mapstructure:"max_pages"`
	MaxItems        int           `mapstructure:"max_items"`
	ItemDelay       time.Duration `mapstructure:"item_delay"`
	PageDelay       time.Duration `mapstructure:"page_delay"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	UserAgent       string        `mapstructure:"user_agent"`
}

// APIConfig configures the downstream card catalog API.
type APIConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	Email       string `mapstructure:"email"`
	DisplayName string `mapstructure:"display_name"`
	// Source is the provenance string stamped on every uploaded record.
	Source string `mapstructure:"source"`
	// UploadDelay paces create/update calls against the API's rate limiting.
	UploadDelay time.Duration `mapstructure:"upload_delay"`
	// ListLimit bounds paged card listing during backfill.
	ListLimit int `mapstructure:"list_limit"`
}

// TaxonomyConfig locates the static weapon taxonomy reference file.
type TaxonomyConfig struct {
	Path string `mapstructure:"path"`
}

// ScheduleConfig configures recurring imports.
type ScheduleConfig struct {
	// Cron is a standard 5-field cron expression.
	Cron string `mapstructure:"cron"`
}

// Config is the complete application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logger   logger.Config  `mapstructure:"logger"`
	Crawl    CrawlConfig    `mapstructure:"crawl"`
	API      APIConfig      `mapstructure:"api"`
	Taxonomy TaxonomyConfig `mapstructure:"taxonomy"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

// Load unmarshals the current Viper state into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required fields and cap sanity.
func (c *Config) Validate() error {
	if c.Crawl.IndexURLTemplate == "" {
		return ErrMissingIndexURL
	}
	if c.API.BaseURL == "" {
		return ErrMissingAPIURL
	}
	if c.Crawl.MaxPages <= 0 || c.Crawl.MaxItems <= 0 {
		return ErrInvalidCaps
	}
	return nil
}
