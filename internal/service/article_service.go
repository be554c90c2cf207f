package service

import (
	"context"
	"strings"
	"time"

	"github.com/noah-isme/edu-portal-api/internal/filter"
	"github.com/noah-isme/edu-portal-api/internal/models"
)

type articleRepository interface {
	articleLister
	FindBySlug(ctx context.Context, slug string) (*models.Article, error)
	FindByID(ctx context.Context, id string) (*models.Article, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, item *models.Article) error
	Update(ctx context.Context, item *models.Article) error
	Delete(ctx context.Context, id string) error
}

// ArticleRequest is the full writable state of an article.
// A zero PublishDate means "now".
type ArticleRequest struct {
	Title       string    `json:"title" validate:"required"`
	Content     string    `json:"content" validate:"required"`
	Summary     string    `json:"summary" validate:"required"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	PublishDate time.Time `json:"publishDate"`
	Slug        string    `json:"slug"`
}

func (r *ArticleRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	r.Summary = strings.TrimSpace(r.Summary)
	r.Author = strings.TrimSpace(r.Author)
	r.Category = strings.TrimSpace(r.Category)
	r.Slug = resolveSlug(r.Slug, r.Title)
	if r.PublishDate.IsZero() {
		r.PublishDate = time.Now().UTC()
	}
}

func (r ArticleRequest) apply(item *models.Article) {
	item.Title = r.Title
	item.Content = r.Content
	item.Summary = r.Summary
	item.Author = r.Author
	item.Category = r.Category
	item.PublishDate = r.PublishDate
	item.Slug = r.Slug
}

// ArticleService serves and administers articles.
type ArticleService struct {
	contentBase
	repo articleRepository
}

// NewArticleService creates a new article service.
func NewArticleService(repo articleRepository, deps ContentDeps) *ArticleService {
	return &ArticleService{contentBase: newContentBase(CollectionArticles, "article", deps), repo: repo}
}

// List returns articles matching criteria in store order.
func (s *ArticleService) List(ctx context.Context, criteria filter.Criteria) ([]models.Article, error) {
	items, err := cachedList(ctx, &s.contentBase, s.repo.ListAll)
	if err != nil {
		return nil, err
	}
	return filter.Articles(items, criteria), nil
}

func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return findOne(ctx, &s.contentBase, "slug", s.repo.FindBySlug, slug)
}

func (s *ArticleService) Get(ctx context.Context, id string) (*models.Article, error) {
	return findOne(ctx, &s.contentBase, "get", s.repo.FindByID, id)
}

// Create adds an article.
func (s *ArticleService) Create(ctx context.Context, session models.Session, req ArticleRequest) (*models.Article, error) {
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

	item := &models.Article{}
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

// Update replaces every writable field of an article.
func (s *ArticleService) Update(ctx context.Context, session models.Session, id string, req ArticleRequest) (*models.Article, error) {
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

// Delete removes an article permanently.
func (s *ArticleService) Delete(ctx context.Context, session models.Session, id string) error {
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
