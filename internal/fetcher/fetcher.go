// Package fetcher performs rate-limited HTTP GET requests against the
// source catalog. Each call issues exactly one network request; a
// politeness delay is enforced between consecutive requests regardless
// of outcome. The fetcher never retries internally - failed items are
// simply re-attempted by a later run.
package fetcher

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/spellforge/cardcrawl/internal/domain"
	"github.com/spellforge/cardcrawl/internal/logger"
)

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// Config configures a Fetcher.
type Config struct {
	// Delay is the minimum spacing between outbound requests.
	Delay time.Duration
	// RequestTimeout bounds a single GET including body read.
	RequestTimeout time.Duration
	// UserAgent is sent on every request.
	UserAgent string
}

// Fetcher is a polite, typed-failure HTTP GET wrapper. The underlying
// http.Client is shared across calls for keepalive; there is no other
// shared mutable state.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	log       logger.Interface
}

// New creates a Fetcher. The limiter admits one request per cfg.Delay,
// which is equivalent to a fixed pause after every request.
func New(cfg Config, log logger.Interface) *Fetcher {
	limit := rate.Inf
	if cfg.Delay > 0 {
		limit = rate.Every(cfg.Delay)
	}

	return &Fetcher{
		client:    &http.Client{Timeout: cfg.RequestTimeout},
		limiter:   rate.NewLimiter(limit, 1),
		userAgent: cfg.UserAgent,
		log:       log.WithComponent("fetcher"),
	}
}

// Fetch retrieves one document. It blocks on the politeness limiter,
// issues a single GET, and classifies any failure as timeout, network,
// or terminal HTTP error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*domain.RawDocument, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &Error{URL: url, Kind: KindNetwork, Err: err}
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if reqErr != nil {
		return nil, &Error{URL: url, Kind: KindNetwork, Err: reqErr}
	}
	req.Header.Set("User-Agent", f.userAgent)

	start := time.Now()

	resp, doErr := f.client.Do(req)
	if doErr != nil {
		return nil, classifyTransportError(url, doErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{URL: url, Kind: KindHTTP, Status: resp.StatusCode}
	}

	limited := io.LimitReader(resp.Body, maxResponseBodyBytes)

	body, readErr := io.ReadAll(limited)
	if readErr != nil {
		return nil, classifyTransportError(url, readErr)
	}

	f.log.Debug("fetched document",
		"url", url,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	return &domain.RawDocument{
		URL:       url,
		Body:      string(body),
		FetchedAt: time.Now(),
	}, nil
}

// classifyTransportError distinguishes timeouts from other network failures.
func classifyTransportError(url string, err error) *Error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{URL: url, Kind: KindTimeout, Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{URL: url, Kind: KindTimeout, Err: err}
	}

	return &Error{URL: url, Kind: KindNetwork, Err: err}
}
