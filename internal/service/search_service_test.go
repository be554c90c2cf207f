package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-portal-api/internal/filter"
	"github.com/noah-isme/edu-portal-api/internal/models"
	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
)

func searchFixture() (SearchSources, *memStore[models.News]) {
	news := newNewsStore(
		models.News{ID: "n1", Title: "Scholarship fair", Summary: "Meet providers"},
		models.News{ID: "n2", Title: "Campus tour", Content: "Visit Germany"},
	)
	return SearchSources{
		Scholarships: newScholarshipStore(
			models.Scholarship{ID: "s1", Title: "Fulbright", Description: "Study in the USA"},
			models.Scholarship{ID: "s2", Title: "DAAD", Description: "Funding for Germany"},
		),
		Articles: newArticleStore(models.Article{ID: "a1", Title: "Visa tips", Summary: "Paperwork"}),
		Countries: newCountryStore(
			models.Country{ID: "c1", Name: "Germany", Description: "Central Europe"},
			models.Country{ID: "c2", Name: "Japan", Description: "East Asia"},
		),
		Universities: newUniversityStore(models.University{ID: "u1", Name: "Heidelberg", Description: "Oldest in GERMANY"}),
		News:         news,
	}, news
}

func TestSearchEmptyQueryReturnsEverything(t *testing.T) {
	sources, _ := searchFixture()
	svc := NewSearchService(sources, nil, nil, zap.NewNop(), 0)

	result, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, result.Scholarships, 2)
	assert.Len(t, result.Articles, 1)
	assert.Len(t, result.Countries, 2)
	assert.Len(t, result.Universities, 1)
	assert.Len(t, result.News, 2)
	assert.Equal(t, 8, result.Total())
}

func TestSearchSubstringAcrossCollections(t *testing.T) {
	sources, _ := searchFixture()
	svc := NewSearchService(sources, nil, nil, zap.NewNop(), 0)

	result, err := svc.Search(context.Background(), " germany ")
	require.NoError(t, err)
	require.Len(t, result.Scholarships, 1)
	assert.Equal(t, "s2", result.Scholarships[0].ID)
	require.Len(t, result.Countries, 1)
	assert.Equal(t, "c1", result.Countries[0].ID)
	require.Len(t, result.Universities, 1)
	require.Len(t, result.News, 1)
	assert.Equal(t, "n2", result.News[0].ID)
	assert.NotNil(t, result.Articles)
	assert.Empty(t, result.Articles)
}

func TestSearchNoMatches(t *testing.T) {
	sources, _ := searchFixture()
	svc := NewSearchService(sources, nil, nil, zap.NewNop(), 0)

	result, err := svc.Search(context.Background(), "antarctica")
	require.NoError(t, err)
	assert.Zero(t, result.Total())
	assert.NotNil(t, result.Scholarships)
	assert.NotNil(t, result.News)
}

func TestSearchStoreFailure(t *testing.T) {
	sources, news := searchFixture()
	news.err = errors.New("timeout")
	svc := NewSearchService(sources, nil, nil, zap.NewNop(), 0)

	_, err := svc.Search(context.Background(), "germany")
	assert.ErrorIs(t, err, appErrors.ErrStoreUnavailable)
}

func TestSearchUsesCache(t *testing.T) {
	sources, news := searchFixture()
	cache := NewCacheService(newFakeCache(), nil, 0, zap.NewNop(), true)
	svc := NewSearchService(sources, cache, nil, zap.NewNop(), 0)

	first, err := svc.Search(context.Background(), "Germany")
	require.NoError(t, err)

	calls := news.calls
	second, err := svc.Search(context.Background(), "germany")
	require.NoError(t, err)
	assert.Equal(t, calls, news.calls)
	assert.Equal(t, first.Total(), second.Total())
}

// gatedScholarships hands out a snapshot, then holds the caller until released.
type gatedScholarships struct {
	*memStore[models.Scholarship]
	reached chan struct{}
	release chan struct{}
}

func (g *gatedScholarships) ListAll(ctx context.Context) ([]models.Scholarship, error) {
	items, err := g.memStore.ListAll(ctx)
	if g.reached != nil {
		reached := g.reached
		g.reached = nil
		close(reached)
		<-g.release
	}
	return items, err
}

func TestSearchCacheFillAfterMutationIsNotServed(t *testing.T) {
	sources, _ := searchFixture()
	store := newScholarshipStore()
	reached := make(chan struct{})
	gated := &gatedScholarships{memStore: store, reached: reached, release: make(chan struct{})}
	sources.Scholarships = gated

	cache := NewCacheService(newFakeCache(), nil, 0, zap.NewNop(), true)
	search := NewSearchService(sources, cache, nil, zap.NewNop(), 0)
	scholarships := NewScholarshipService(store, testDeps(newStubAuthorizer(), cache, nil))

	done := make(chan error)
	go func() {
		_, err := search.Search(context.Background(), "fulbright")
		done <- err
	}()
	<-reached

	_, err := scholarships.Create(context.Background(), adminSession, ScholarshipRequest{
		Title:       "Fulbright",
		Description: "US graduate study",
		Amount:      "Full tuition",
		Deadline:    "2026-10-01",
		Country:     "United States",
	})
	require.NoError(t, err)

	close(gated.release)
	require.NoError(t, <-done)

	result, err := search.Search(context.Background(), "fulbright")
	require.NoError(t, err)
	require.Len(t, result.Scholarships, 1)
	assert.Equal(t, "Fulbright", result.Scholarships[0].Title)
}

func TestListCacheFillAfterMutationIsNotServed(t *testing.T) {
	store := newScholarshipStore()
	reached := make(chan struct{})
	gated := &gatedScholarships{memStore: store, reached: reached, release: make(chan struct{})}
	cache := NewCacheService(newFakeCache(), nil, 0, zap.NewNop(), true)
	reader := NewScholarshipService(gated, testDeps(nil, cache, nil))
	writer := NewScholarshipService(store, testDeps(newStubAuthorizer(), cache, nil))

	done := make(chan error)
	go func() {
		_, err := reader.List(context.Background(), filter.Criteria{})
		done <- err
	}()
	<-reached

	_, err := writer.Create(context.Background(), adminSession, ScholarshipRequest{
		Title: "Erasmus", Description: "EU exchange", Amount: "Monthly grant", Deadline: "2026-03-01", Country: "Germany",
	})
	require.NoError(t, err)
	close(gated.release)
	require.NoError(t, <-done)

	items, err := reader.List(context.Background(), filter.Criteria{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
