package discovery_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spellforge/cardcrawl/internal/discovery"
	"github.com/spellforge/cardcrawl/internal/logger"
)

// newIndexServer serves paginated index pages. pages maps a page number
// to the item hrefs listed on it; unknown pages render no links.
func newIndexServer(t *testing.T, pages map[int][]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := 0
		_, _ = fmt.Sscanf(r.URL.Query().Get("page"), "%d", &page)

		fmt.Fprint(w, `<html><body><a href="/items/">Каталог</a><ul>`)
		for _, href := range pages[page] {
			fmt.Fprintf(w, `<li><a href="%s">item</a></li>`, href)
		}
		fmt.Fprint(w, `</ul></body></html>`)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newConfig(srv *httptest.Server) discovery.Config {
	return discovery.Config{
		IndexURLTemplate: srv.URL + "/items/?page=%d",
		ItemPathPattern:  "/items/",
		StartPage:        1,
		MaxPages:         10,
		MaxItems:         100,
		RequestTimeout:   5 * time.Second,
		UserAgent:        "cardcrawl-test/1.0",
	}
}

func TestDiscover_StopsWhenNoNewLinks(t *testing.T) {
	t.Parallel()

	srv := newIndexServer(t, map[int][]string{
		1: {"/items/101-dagger", "/items/102-club", "/items/101-dagger#desc"},
		2: {"/items/103-longsword", "/items/101-dagger"},
		3: {"/items/101-dagger"},
		4: {"/items/999-should-never-be-seen"},
	})

	d := discovery.New(newConfig(srv), logger.NewNoOp())

	links, err := d.Discover(context.Background())
	require.NoError(t, err)

	urls := make([]string, 0, len(links))
	for _, l := range links {
		urls = append(urls, l.URL)
	}

	// Dedup by normalized URL (fragments dropped), first-seen order,
	// ended at page 3 where nothing new appeared.
	assert.Equal(t, []string{
		srv.URL + "/items/101-dagger",
		srv.URL + "/items/102-club",
		srv.URL + "/items/103-longsword",
	}, urls)

	assert.Equal(t, 1, links[0].Page)
	assert.Equal(t, 2, links[2].Page)
}

func TestDiscover_MaxItemsCap(t *testing.T) {
	t.Parallel()

	srv := newIndexServer(t, map[int][]string{
		1: {"/items/1-a", "/items/2-b", "/items/3-c", "/items/4-d"},
	})

	cfg := newConfig(srv)
	cfg.MaxItems = 2

	d := discovery.New(cfg, logger.NewNoOp())

	links, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Len(t, links, 2)
}

func TestDiscover_MaxPagesCap(t *testing.T) {
	t.Parallel()

	// Every page yields a fresh link, so only the page cap can stop us.
	pages := make(map[int][]string)
	for i := 1; i <= 20; i++ {
		pages[i] = []string{fmt.Sprintf("/items/%d-item", i)}
	}

	srv := newIndexServer(t, pages)

	cfg := newConfig(srv)
	cfg.MaxPages = 3

	d := discovery.New(cfg, logger.NewNoOp())

	links, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Len(t, links, 3)
}

func TestDiscover_IgnoresBareCatalogLink(t *testing.T) {
	t.Parallel()

	srv := newIndexServer(t, map[int][]string{
		1: {"/items/1-a"},
	})

	d := discovery.New(newConfig(srv), logger.NewNoOp())

	links, err := d.Discover(context.Background())
	require.NoError(t, err)

	// The navigation link to /items/ itself is not an item.
	require.Len(t, links, 1)
	assert.Equal(t, srv.URL+"/items/1-a", links[0].URL)
}

func TestDiscover_FirstPageFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	cfg := discovery.Config{
		IndexURLTemplate: url + "/items/?page=%d",
		ItemPathPattern:  "/items/",
		StartPage:        1,
		MaxPages:         3,
		MaxItems:         10,
		RequestTimeout:   time.Second,
	}

	d := discovery.New(cfg, logger.NewNoOp())

	_, err := d.Discover(context.Background())
	require.Error(t, err)
}
