package importer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spellforge/cardcrawl/internal/cardapi"
	"github.com/spellforge/cardcrawl/internal/domain"
	"github.com/spellforge/cardcrawl/internal/extract"
	"github.com/spellforge/cardcrawl/internal/fetcher"
	"github.com/spellforge/cardcrawl/internal/importer"
	"github.com/spellforge/cardcrawl/internal/logger"
)

type fakeDiscoverer struct {
	links []domain.SourceLink
	err   error
}

func (f *fakeDiscoverer) Discover(ctx context.Context) ([]domain.SourceLink, error) {
	return f.links, f.err
}

// fakeFetcher serves canned documents per URL; URLs in failWith fail
// with the mapped error instead.
type fakeFetcher struct {
	docs     map[string]string
	failWith map[string]error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*domain.RawDocument, error) {
	if err, ok := f.failWith[url]; ok {
		return nil, err
	}
	return &domain.RawDocument{URL: url, Body: f.docs[url]}, nil
}

// fakeCards records created cards; URLs of rejected names fail with the
// mapped error.
type fakeCards struct {
	authErr error
	rejects map[string]error
	created []cardapi.CreateCardRequest
	nextID  int
}

func (f *fakeCards) Authenticate(ctx context.Context) error {
	return f.authErr
}

func (f *fakeCards) CreateCard(ctx context.Context, req cardapi.CreateCardRequest) (*cardapi.Card, error) {
	if err, ok := f.rejects[req.Name]; ok {
		return nil, err
	}

	f.created = append(f.created, req)
	f.nextID++

	return &cardapi.Card{ID: fmt.Sprintf("card-%d", f.nextID), Name: req.Name}, nil
}

func itemPage(name, rarity, price string) string {
	return fmt.Sprintf(`<html><body>
<h1>%s</h1>
<p>%s</p>
<p>Стоимость: %s зм. Требуется настройка.</p>
</body></html>`, name, rarity, price)
}

func newImporter(d *fakeDiscoverer, f *fakeFetcher, c *fakeCards) *importer.Importer {
	return importer.New(d, f, extract.NewExtractor(), c, importer.Config{
		Source: "D&D 5e Official",
	}, logger.NewNoOp())
}

func TestRun_FullPipeline(t *testing.T) {
	t.Parallel()

	const url = "https://example.com/items/1-adamantine-armor"

	d := &fakeDiscoverer{links: []domain.SourceLink{{URL: url, Page: 1}}}
	f := &fakeFetcher{docs: map[string]string{
		url: itemPage("Адамантиновый доспех [Adamantine Armor]", "Доспех (тяжёлый), необычный", "300"),
	}}
	c := &fakeCards{}

	imp := newImporter(d, f, c)

	report, err := imp.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, importer.StateCompleted, imp.State())

	require.Len(t, c.created, 1)
	card := c.created[0]

	assert.Equal(t, "Адамантиновый доспех", card.Name)
	assert.Equal(t, domain.RarityUncommon, card.Rarity)
	require.NotNil(t, card.Price)
	assert.Equal(t, 300, *card.Price)
	assert.Equal(t, "доспех", card.Type)
	require.NotNil(t, card.Slot)
	assert.Equal(t, domain.SlotBody, *card.Slot)
	require.NotNil(t, card.Attunement)
	assert.Equal(t, "D&D 5e Official", card.Source)
}

func TestRun_AuthFailureAborts(t *testing.T) {
	t.Parallel()

	d := &fakeDiscoverer{links: []domain.SourceLink{{URL: "https://example.com/items/1"}}}
	c := &fakeCards{authErr: cardapi.ErrUnauthorized}

	imp := newImporter(d, &fakeFetcher{}, c)

	_, err := imp.Run(context.Background())
	require.True(t, errors.Is(err, cardapi.ErrUnauthorized))
	assert.Equal(t, importer.StateAborted, imp.State())
}

func TestRun_DiscoveryFailureAborts(t *testing.T) {
	t.Parallel()

	d := &fakeDiscoverer{err: errors.New("index unreachable")}

	imp := newImporter(d, &fakeFetcher{}, &fakeCards{})

	_, err := imp.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, importer.StateAborted, imp.State())
}

// A fetch timeout on one item must not stop the rest of the batch.
func TestRun_FetchFailureIsIsolated(t *testing.T) {
	t.Parallel()

	links := make([]domain.SourceLink, 0, 10)
	docs := make(map[string]string, 10)
	for i := 1; i <= 10; i++ {
		url := fmt.Sprintf("https://example.com/items/%d-item", i)
		links = append(links, domain.SourceLink{URL: url, Page: 1})
		docs[url] = itemPage(fmt.Sprintf("Кинжал %d", i), "редкий", "10")
	}

	timeoutURL := links[2].URL

	d := &fakeDiscoverer{links: links}
	f := &fakeFetcher{
		docs: docs,
		failWith: map[string]error{
			timeoutURL: &fetcher.Error{URL: timeoutURL, Kind: fetcher.KindTimeout},
		},
	}
	c := &fakeCards{}

	report, err := newImporter(d, f, c).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, report.Attempted())
	assert.Equal(t, 9, report.Created)
	assert.Equal(t, 1, report.Failed)

	var failed *domain.ImportOutcome
	for i := range report.Outcomes {
		if report.Outcomes[i].Status == domain.StatusFailed {
			failed = &report.Outcomes[i]
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, timeoutURL, failed.URL)
	assert.Equal(t, domain.ReasonNetworkError, failed.Reason)
}

func TestRun_MissingNameSkips(t *testing.T) {
	t.Parallel()

	const url = "https://example.com/items/7-broken"

	d := &fakeDiscoverer{links: []domain.SourceLink{{URL: url}}}
	f := &fakeFetcher{docs: map[string]string{
		url: "<html><body><p>Страница без заголовка</p></body></html>",
	}}
	c := &fakeCards{}

	report, err := newImporter(d, f, c).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Created)
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, domain.ReasonMissingName, report.Outcomes[0].Reason)
	assert.Empty(t, c.created)
}

// A 400 rejection is a per-item failure, not a batch abort.
func TestRun_ValidationRejectionIsIsolated(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://example.com/items/1-good",
		"https://example.com/items/2-bad",
		"https://example.com/items/3-good",
	}

	d := &fakeDiscoverer{links: []domain.SourceLink{
		{URL: urls[0]}, {URL: urls[1]}, {URL: urls[2]},
	}}
	f := &fakeFetcher{docs: map[string]string{
		urls[0]: itemPage("Меч ярости", "редкий", "100"),
		urls[1]: itemPage("Сломанный предмет", "редкий", "1"),
		urls[2]: itemPage("Зелье лечения", "обычный", "50"),
	}}
	c := &fakeCards{rejects: map[string]error{
		"Сломанный предмет": &cardapi.ValidationError{StatusCode: 400, Body: `{"error":"bad"}`},
	}}

	report, err := newImporter(d, f, c).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, domain.ReasonValidationError, report.Outcomes[1].Reason)
}

func TestRun_MidRunAuthRejection(t *testing.T) {
	t.Parallel()

	const url = "https://example.com/items/1-item"

	d := &fakeDiscoverer{links: []domain.SourceLink{{URL: url}}}
	f := &fakeFetcher{docs: map[string]string{
		url: itemPage("Кинжал", "редкий", "10"),
	}}
	c := &fakeCards{rejects: map[string]error{
		"Кинжал": fmt.Errorf("create card status 401: %w", cardapi.ErrUnauthorized),
	}}

	report, err := newImporter(d, f, c).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, domain.ReasonAuthError, report.Outcomes[0].Reason)
}

func TestRun_EmptyDiscovery(t *testing.T) {
	t.Parallel()

	report, err := newImporter(&fakeDiscoverer{}, &fakeFetcher{}, &fakeCards{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Attempted())
}
