package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-portal-api/internal/models"
	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
	"github.com/noah-isme/edu-portal-api/pkg/validation"
)

// Collection names used for cache keys, metrics labels, audit resources and exports.
const (
	CollectionScholarships = "scholarships"
	CollectionArticles     = "articles"
	CollectionCountries    = "countries"
	CollectionUniversities = "universities"
	CollectionNews         = "news"
	CollectionMenu         = "menu"
)

type authorizer interface {
	Authorize(ctx context.Context, session models.Session) (*models.JWTClaims, error)
}

type scholarshipLister interface {
	ListAll(ctx context.Context) ([]models.Scholarship, error)
}

type articleLister interface {
	ListAll(ctx context.Context) ([]models.Article, error)
}

type countryLister interface {
	ListAll(ctx context.Context) ([]models.Country, error)
}

type universityLister interface {
	ListAll(ctx context.Context) ([]models.University, error)
}

type newsLister interface {
	ListAll(ctx context.Context) ([]models.News, error)
}

type menuLister interface {
	ListAll(ctx context.Context) ([]models.Menu, error)
}

// ContentDeps bundles the collaborators every content service shares.
type ContentDeps struct {
	Auth      authorizer
	Validator *validator.Validate
	Cache     *CacheService
	Audit     auditRecorder
	Metrics   *MetricsService
	Logger    *zap.Logger
	ListTTL   time.Duration
}

// contentBase implements the mutation pipeline: authorize, validate,
// check slug, write, then invalidate caches and record an audit entry.
type contentBase struct {
	collection string
	entity     string
	auth       authorizer
	validator  *validator.Validate
	cache      *CacheService
	audit      auditRecorder
	metrics    *MetricsService
	logger     *zap.Logger
	ttl        time.Duration
}

func newContentBase(collection, entity string, deps ContentDeps) contentBase {
	if deps.Validator == nil {
		deps.Validator = validation.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return contentBase{
		collection: collection,
		entity:     entity,
		auth:       deps.Auth,
		validator:  deps.Validator,
		cache:      deps.Cache,
		audit:      deps.Audit,
		metrics:    deps.Metrics,
		logger:     deps.Logger.With(zap.String("collection", collection)),
		ttl:        deps.ListTTL,
	}
}

func (b *contentBase) authorize(ctx context.Context, session models.Session) (*models.JWTClaims, error) {
	if session.Anonymous() || b.auth == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing bearer token")
	}
	return b.auth.Authorize(ctx, session)
}

func (b *contentBase) validate(payload interface{}) error {
	return validation.Struct(b.validator, payload, fmt.Sprintf("invalid %s payload", b.entity))
}

// storeErr maps repository errors: absent rows become NOT_FOUND and
// everything else STORE_UNAVAILABLE.
func (b *contentBase) storeErr(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, b.entity+" not found")
	}
	b.logger.Error("content store failure", zap.String("op", op), zap.Error(err))
	return appErrors.Unavailable(err, fmt.Sprintf("failed to %s %s", op, b.entity))
}

func (b *contentBase) observe(op string, start time.Time, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	b.metrics.ObserveStore(b.collection, op, time.Since(start), err)
}

// ensureSlugFree rejects a slug already owned by another record.
func (b *contentBase) ensureSlugFree(ctx context.Context, exists func(context.Context, string, string) (bool, error), value, excludeID string) error {
	start := time.Now()
	taken, err := exists(ctx, value, excludeID)
	b.observe("slug", start, err)
	if err != nil {
		return b.storeErr(err, "check slug of")
	}
	if taken {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("%s slug %q already exists", b.entity, value))
	}
	return nil
}

// committed runs after a successful write.
func (b *contentBase) committed(ctx context.Context, claims *models.JWTClaims, session models.Session, action, id string, values interface{}) {
	b.cache.InvalidateCollection(ctx, b.collection)
	b.metrics.RecordMutation(b.collection, strings.ToLower(action))
	if b.audit != nil {
		b.audit.Record(ctx, auditEntry(claims, session, action, b.collection, id, values))
	}
	fields := []zap.Field{zap.String("action", action), zap.String("id", id)}
	if claims != nil {
		fields = append(fields, zap.String("user_id", claims.UserID))
	}
	b.logger.Info("content mutated", fields...)
}

// cachedList serves a whole collection from cache or the store.
func cachedList[T any](ctx context.Context, b *contentBase, load func(context.Context) ([]T, error)) ([]T, error) {
	key, cacheable := b.cache.ListKey(ctx, b.collection)
	var items []T
	if cacheable && b.cache.Get(ctx, key, &items) {
		if items == nil {
			items = []T{}
		}
		return items, nil
	}

	start := time.Now()
	items, err := load(ctx)
	b.observe("list", start, err)
	if err != nil {
		return nil, b.storeErr(err, "list")
	}
	if items == nil {
		items = []T{}
	}
	if cacheable {
		b.cache.Set(ctx, key, items, b.ttl)
	}
	return items, nil
}

// findOne wraps a single-record lookup with metrics and error mapping.
func findOne[T any](ctx context.Context, b *contentBase, op string, find func(context.Context, string) (*T, error), key string) (*T, error) {
	start := time.Now()
	item, err := find(ctx, key)
	b.observe(op, start, err)
	if err != nil {
		return nil, b.storeErr(err, "load")
	}
	return item, nil
}

// resolveSlug normalizes an explicit slug or derives one from fallback.
func resolveSlug(explicit, fallback string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return slug.Make(s)
	}
	return slug.Make(fallback)
}

func cleanStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func slugRequired(entity string) error {
	return appErrors.Validation(fmt.Sprintf("invalid %s payload", entity), "slug")
}
