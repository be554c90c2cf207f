package service

import (
	"context"
	"strings"
	"time"

	"github.com/noah-isme/edu-portal-api/internal/filter"
	"github.com/noah-isme/edu-portal-api/internal/models"
)

type newsRepository interface {
	newsLister
	FindBySlug(ctx context.Context, slug string) (*models.News, error)
	FindByID(ctx context.Context, id string) (*models.News, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, item *models.News) error
	Update(ctx context.Context, item *models.News) error
	Delete(ctx context.Context, id string) error
}

// NewsRequest is the full writable state of a news item.
type NewsRequest struct {
	Title       string    `json:"title" validate:"required"`
	Content     string    `json:"content" validate:"required"`
	Summary     string    `json:"summary" validate:"required"`
	Category    string    `json:"category"`
	IsFeatured  bool      `json:"isFeatured"`
	PublishDate time.Time `json:"publishDate"`
	Slug        string    `json:"slug"`
}

func (r *NewsRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	r.Summary = strings.TrimSpace(r.Summary)
	r.Category = strings.TrimSpace(r.Category)
	r.Slug = resolveSlug(r.Slug, r.Title)
	if r.PublishDate.IsZero() {
		r.PublishDate = time.Now().UTC()
	}
}

func (r NewsRequest) apply(item *models.News) {
	item.Title = r.Title
	item.Content = r.Content
	item.Summary = r.Summary
	item.Category = r.Category
	item.IsFeatured = r.IsFeatured
	item.PublishDate = r.PublishDate
	item.Slug = r.Slug
}

// NewsService serves and administers news items.
type NewsService struct {
	contentBase
	repo newsRepository
}

// NewNewsService creates a new news service.
func NewNewsService(repo newsRepository, deps ContentDeps) *NewsService {
	return &NewsService{contentBase: newContentBase(CollectionNews, "news", deps), repo: repo}
}

// List returns news matching criteria in store order.
func (s *NewsService) List(ctx context.Context, criteria filter.Criteria) ([]models.News, error) {
	items, err := cachedList(ctx, &s.contentBase, s.repo.ListAll)
	if err != nil {
		return nil, err
	}
	return filter.News(items, criteria), nil
}

// Featured returns every featured item in store order.
func (s *NewsService) Featured(ctx context.Context) ([]models.News, error) {
	featured := true
	return s.List(ctx, filter.Criteria{Featured: &featured})
}

func (s *NewsService) GetBySlug(ctx context.Context, slug string) (*models.News, error) {
	return findOne(ctx, &s.contentBase, "slug", s.repo.FindBySlug, slug)
}

func (s *NewsService) Get(ctx context.Context, id string) (*models.News, error) {
	return findOne(ctx, &s.contentBase, "get", s.repo.FindByID, id)
}

// Create adds a news item.
func (s *NewsService) Create(ctx context.Context, session models.Session, req NewsRequest) (*models.News, error) {
	claims, err := s.authorize(ctx, session)
	if err != nil {
		return nil, err
	}
	req.normalize()
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if req.Slug == "" {
		return nil, slugRequired(s.entity)
	}
	if err := s.ensureSlugFree(ctx, s.repo.ExistsBySlug, req.Slug, ""); err != nil {
		return nil, err
	}

	item := &models.News{}
	req.apply(item)
	start := time.Now()
	err = s.repo.Create(ctx, item)
	s.observe("create", start, err)
	if err != nil {
		return nil, s.storeErr(err, "create")
	}
	s.committed(ctx, claims, session, models.AuditActionCreate, item.ID, item)
	return item, nil
}

// Update replaces every writable field of a news item.
func (s *NewsService) Update(ctx context.Context, session models.Session, id string, req NewsRequest) (*models.News, error) {
	claims, err := s.authorize(ctx, session)
	if err != nil {
		return nil, err
	}
	req.normalize()
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if req.Slug == "" {
		return nil, slugRequired(s.entity)
	}
	item, err := findOne(ctx, &s.contentBase, "get", s.repo.FindByID, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, s.repo.ExistsBySlug, req.Slug, id); err != nil {
		return nil, err
	}

	req.apply(item)
	start := time.Now()
	err = s.repo.Update(ctx, item)
	s.observe("update", start, err)
	if err != nil {
		return nil, s.storeErr(err, "update")
	}
	s.committed(ctx, claims, session, models.AuditActionUpdate, item.ID, item)
	return item, nil
}

// Delete removes a news item permanently.
func (s *NewsService) Delete(ctx context.Context, session models.Session, id string) error {
	claims, err := s.authorize(ctx, session)
	if err != nil {
		return err
	}
	start := time.Now()
	err = s.repo.Delete(ctx, id)
	s.observe("delete", start, err)
	if err != nil {
		return s.storeErr(err, "delete")
	}
	s.committed(ctx, claims, session, models.AuditActionDelete, id, nil)
	return nil
}
