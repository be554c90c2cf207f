package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	Counter(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// Cached entries are keyed by the generation of what they were built from.
// A mutation bumps the generation after its write, so an entry filled from a
// snapshot taken before the write can never be read again.
const (
	searchKeyPattern = "search:*"
	searchGeneration = "gen:search"
)

func listGeneration(collection string) string { return "gen:" + collection }

func listKey(collection string, gen int64) string {
	return fmt.Sprintf("list:%s:%d", collection, gen)
}

func searchKey(query string, gen int64) string {
	return fmt.Sprintf("search:%d:%s", gen, query)
}

// CacheService wraps the cache repository with metrics and logging.
// Lookup and write failures are logged and reported as misses.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get decodes a cached entry into dest and reports whether it was found.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return true
}

// Set stores the value in cache; ttl <= 0 uses the default.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// ListKey returns the current listing key of collection. ok is false when
// the cache is off or the generation cannot be read.
func (s *CacheService) ListKey(ctx context.Context, collection string) (string, bool) {
	gen, ok := s.generation(ctx, listGeneration(collection))
	if !ok {
		return "", false
	}
	return listKey(collection, gen), true
}

// SearchKey returns the current key for a normalized search query.
func (s *CacheService) SearchKey(ctx context.Context, query string) (string, bool) {
	gen, ok := s.generation(ctx, searchGeneration)
	if !ok {
		return "", false
	}
	return searchKey(query, gen), true
}

func (s *CacheService) generation(ctx context.Context, key string) (int64, bool) {
	if !s.Enabled() {
		return 0, false
	}
	gen, err := s.repo.Counter(ctx, key)
	if err != nil {
		s.logger.Warn("cache generation unavailable", zap.String("key", key), zap.Error(err))
		return 0, false
	}
	return gen, true
}

// InvalidateCollection moves the collection listing and every search to a new
// generation, then drops the entries of older generations.
func (s *CacheService) InvalidateCollection(ctx context.Context, collection string) {
	if !s.Enabled() {
		return
	}
	for _, key := range []string{listGeneration(collection), searchGeneration} {
		if _, err := s.repo.Incr(ctx, key); err != nil {
			s.logger.Warn("cache generation bump failed", zap.String("key", key), zap.Error(err))
		}
	}
	listPattern := fmt.Sprintf("list:%s:*", collection)
	for _, pattern := range []string{listPattern, searchKeyPattern} {
		if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
			s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}
