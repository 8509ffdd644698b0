// Package discovery crawls the paginated catalog index and yields
// deduplicated candidate item links. Discovery is strictly sequential:
// one index page at a time, with an inter-page politeness delay that is
// deliberately longer than the per-item fetch delay.
package discovery

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	colly "github.com/gocolly/colly/v2"

	"github.com/spellforge/cardcrawl/internal/domain"
	"github.com/spellforge/cardcrawl/internal/logger"
)

// Config configures a Discoverer.
type Config struct {
	// IndexURLTemplate is the index page URL; %d receives the page number.
	IndexURLTemplate string
	// ItemPathPattern is the href prefix marking an item link (e.g. "/items/").
	ItemPathPattern string
	StartPage       int
	MaxPages        int
	MaxItems        int
	PageDelay       time.Duration
	RequestTimeout  time.Duration
	UserAgent       string
}

// Discoverer walks index pages and collects item links.
type Discoverer struct {
	cfg Config
	log logger.Interface
}

// New creates a Discoverer.
func New(cfg Config, log logger.Interface) *Discoverer {
	if cfg.StartPage <= 0 {
		cfg.StartPage = 1
	}

	return &Discoverer{
		cfg: cfg,
		log: log.WithComponent("discovery"),
	}
}

// Discover visits index pages from StartPage upward and returns the
// deduplicated item links in first-seen order. It stops when a page
// yields no new links (crawl exhausted), when MaxPages pages have been
// visited, or when MaxItems links have accumulated. A failure on the
// first page is an error; later failures end discovery with whatever
// has been collected.
func (d *Discoverer) Discover(ctx context.Context) ([]domain.SourceLink, error) {
	seen := make(map[string]struct{})
	links := make([]domain.SourceLink, 0, d.cfg.MaxItems)

	var (
		page      int
		newOnPage int
	)

	c := colly.NewCollector(
		colly.UserAgent(d.cfg.UserAgent),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(d.cfg.RequestTimeout)

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Attr("href")
		if !d.isItemLink(href) {
			return
		}

		normalized, normErr := normalizeURL(e.Request.AbsoluteURL(href))
		if normErr != nil {
			return
		}

		if _, dup := seen[normalized]; dup {
			return
		}
		seen[normalized] = struct{}{}

		if len(links) >= d.cfg.MaxItems {
			return
		}
		links = append(links, domain.SourceLink{URL: normalized, Page: page})
		newOnPage++
	})

	lastPage := d.cfg.StartPage + d.cfg.MaxPages - 1

	for page = d.cfg.StartPage; page <= lastPage; page++ {
		newOnPage = 0
		pageURL := fmt.Sprintf(d.cfg.IndexURLTemplate, page)

		if visitErr := c.Visit(pageURL); visitErr != nil {
			if page == d.cfg.StartPage {
				return nil, fmt.Errorf("fetch index page %d: %w", page, visitErr)
			}
			d.log.Warn("index page fetch failed, ending discovery",
				"page", page,
				"error", visitErr.Error(),
			)
			break
		}

		d.log.Info("index page crawled",
			"page", page,
			"new_links", newOnPage,
			"total_links", len(links),
		)

		// An index page with zero new links means the crawl is exhausted.
		if newOnPage == 0 {
			break
		}

		if len(links) >= d.cfg.MaxItems {
			break
		}

		if page < lastPage {
			if sleepErr := sleepCtx(ctx, d.cfg.PageDelay); sleepErr != nil {
				return links, sleepErr
			}
		}
	}

	return links, nil
}

// isItemLink reports whether the href points at a catalog item page.
func (d *Discoverer) isItemLink(href string) bool {
	return strings.HasPrefix(href, d.cfg.ItemPathPattern) &&
		strings.TrimSuffix(href, "/") != strings.TrimSuffix(d.cfg.ItemPathPattern, "/")
}

// normalizeURL canonicalizes a link for dedup: fragments are dropped
// and the remainder is re-encoded.
func normalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	u.Fragment = ""
	return u.String(), nil
}

// sleepCtx pauses for the given duration or returns early on cancellation.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
