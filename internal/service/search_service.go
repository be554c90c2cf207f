package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-portal-api/internal/models"
	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
)

// SearchSources are the five collections the aggregated search reads.
type SearchSources struct {
	Scholarships scholarshipLister
	Articles     articleLister
	Countries    countryLister
	Universities universityLister
	News         newsLister
}

// SearchService runs one query across every content collection and
// partitions matches by collection.
type SearchService struct {
	sources SearchSources
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	ttl     time.Duration
}

// NewSearchService builds a search service; cache and metrics may be nil.
func NewSearchService(sources SearchSources, cache *CacheService, metrics *MetricsService, logger *zap.Logger, ttl time.Duration) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{sources: sources, cache: cache, metrics: metrics, logger: logger, ttl: ttl}
}

// Search keeps a record iff the trimmed, case-folded query is a substring of
// one of its searchable fields. An empty query keeps everything. Each array
// is in store order; any store failure fails the whole search.
func (s *SearchService) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	key, cacheable := s.cache.SearchKey(ctx, needle)

	var cached models.SearchResult
	if cacheable && s.cache.Get(ctx, key, &cached) {
		s.metrics.RecordSearch(true)
		return normalizeResult(&cached), nil
	}

	result, err := s.collect(ctx, needle)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordSearch(false)
	if cacheable {
		s.cache.Set(ctx, key, result, s.ttl)
	}
	return result, nil
}

func (s *SearchService) collect(ctx context.Context, needle string) (*models.SearchResult, error) {
	result := &models.SearchResult{}

	scholarships, err := s.sources.Scholarships.ListAll(ctx)
	if err != nil {
		return nil, s.fail(CollectionScholarships, err)
	}
	result.Scholarships = keep(scholarships, needle, func(v models.Scholarship) []string {
		return []string{v.Title, v.Description}
	})

	articles, err := s.sources.Articles.ListAll(ctx)
	if err != nil {
		return nil, s.fail(CollectionArticles, err)
	}
	result.Articles = keep(articles, needle, func(v models.Article) []string {
		return []string{v.Title, v.Summary, v.Content}
	})

	countries, err := s.sources.Countries.ListAll(ctx)
	if err != nil {
		return nil, s.fail(CollectionCountries, err)
	}
	result.Countries = keep(countries, needle, func(v models.Country) []string {
		return []string{v.Name, v.Description}
	})

	universities, err := s.sources.Universities.ListAll(ctx)
	if err != nil {
		return nil, s.fail(CollectionUniversities, err)
	}
	result.Universities = keep(universities, needle, func(v models.University) []string {
		return []string{v.Name, v.Description}
	})

	news, err := s.sources.News.ListAll(ctx)
	if err != nil {
		return nil, s.fail(CollectionNews, err)
	}
	result.News = keep(news, needle, func(v models.News) []string {
		return []string{v.Title, v.Summary, v.Content}
	})

	return result, nil
}

func (s *SearchService) fail(collection string, err error) error {
	s.metrics.ObserveStore(collection, "search", 0, err)
	s.logger.Error("search store failure", zap.String("collection", collection), zap.Error(err))
	return appErrors.Unavailable(err, "failed to search "+collection)
}

// keep filters items by a lower-cased needle; "" keeps all.
func keep[T any](items []T, needle string, fields func(T) []string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if needle == "" || matches(needle, fields(item)) {
			out = append(out, item)
		}
	}
	return out
}

func matches(needle string, fields []string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func normalizeResult(r *models.SearchResult) *models.SearchResult {
	if r.Scholarships == nil {
		r.Scholarships = []models.Scholarship{}
	}
	if r.Articles == nil {
		r.Articles = []models.Article{}
	}
	if r.Countries == nil {
		r.Countries = []models.Country{}
	}
	if r.Universities == nil {
		r.Universities = []models.University{}
	}
	if r.News == nil {
		r.News = []models.News{}
	}
	return r
}
