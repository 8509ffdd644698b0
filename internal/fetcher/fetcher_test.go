package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spellforge/cardcrawl/internal/fetcher"
	"github.com/spellforge/cardcrawl/internal/logger"
)

func TestFetch_Success(t *testing.T) {
	t.Parallel()

	const body = "<html><body><h1>Кинжал</h1></body></html>"

	var gotUserAgent string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	f := fetcher.New(fetcher.Config{
		RequestTimeout: 5 * time.Second,
		UserAgent:      "cardcrawl-test/1.0",
	}, logger.NewNoOp())

	doc, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, srv.URL, doc.URL)
	assert.Equal(t, body, doc.Body)
	assert.False(t, doc.FetchedAt.IsZero())
	assert.Equal(t, "cardcrawl-test/1.0", gotUserAgent)
}

func TestFetch_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := fetcher.New(fetcher.Config{RequestTimeout: 5 * time.Second}, logger.NewNoOp())

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *fetcher.Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, fetcher.KindHTTP, fetchErr.Kind)
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
	assert.False(t, fetchErr.Retryable())
}

func TestFetch_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	f := fetcher.New(fetcher.Config{RequestTimeout: 50 * time.Millisecond}, logger.NewNoOp())

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *fetcher.Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, fetcher.KindTimeout, fetchErr.Kind)
	assert.True(t, fetchErr.Retryable())
}

func TestFetch_ConnectionRefused(t *testing.T) {
	t.Parallel()

	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := fetcher.New(fetcher.Config{RequestTimeout: time.Second}, logger.NewNoOp())

	_, err := f.Fetch(context.Background(), url)
	require.Error(t, err)

	var fetchErr *fetcher.Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, fetcher.KindNetwork, fetchErr.Kind)
}

// The politeness delay spaces consecutive requests regardless of outcome.
func TestFetch_DelayBetweenRequests(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	const delay = 100 * time.Millisecond

	f := fetcher.New(fetcher.Config{
		Delay:          delay,
		RequestTimeout: 5 * time.Second,
	}, logger.NewNoOp())

	start := time.Now()

	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), delay)
}
