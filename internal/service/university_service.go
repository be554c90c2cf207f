package service

import (
	"context"
	"strings"
	"time"

	"github.com/noah-isme/edu-portal-api/internal/filter"
	"github.com/noah-isme/edu-portal-api/internal/models"
)

type universityRepository interface {
	universityLister
	FindBySlug(ctx context.Context, slug string) (*models.University, error)
	FindByID(ctx context.Context, id string) (*models.University, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, item *models.University) error
	Update(ctx context.Context, item *models.University) error
	Delete(ctx context.Context, id string) error
}

// UniversityRequest is the full writable state of a university.
type UniversityRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Country     string   `json:"country" validate:"required"`
	Ranking     *int     `json:"ranking" validate:"omitempty,gte=1"`
	Features    []string `json:"features"`
	Slug        string   `json:"slug"`
}

func (r *UniversityRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Country = strings.TrimSpace(r.Country)
	r.Features = cleanStrings(r.Features)
	r.Slug = resolveSlug(r.Slug, r.Name)
}

func (r UniversityRequest) apply(item *models.University) {
	item.Name = r.Name
	item.Description = r.Description
	item.Country = r.Country
	item.Ranking = r.Ranking
	item.Features = r.Features
	item.Slug = r.Slug
}

// UniversityService serves and administers universities.
type UniversityService struct {
	contentBase
	repo universityRepository
}

// NewUniversityService creates a new university service.
func NewUniversityService(repo universityRepository, deps ContentDeps) *UniversityService {
	return &UniversityService{contentBase: newContentBase(CollectionUniversities, "university", deps), repo: repo}
}

// List returns universities matching criteria in store order.
func (s *UniversityService) List(ctx context.Context, criteria filter.Criteria) ([]models.University, error) {
	items, err := cachedList(ctx, &s.contentBase, s.repo.ListAll)
	if err != nil {
		return nil, err
	}
	return filter.Universities(items, criteria), nil
}

func (s *UniversityService) GetBySlug(ctx context.Context, slug string) (*models.University, error) {
	return findOne(ctx, &s.contentBase, "slug", s.repo.FindBySlug, slug)
}

func (s *UniversityService) Get(ctx context.Context, id string) (*models.University, error) {
	return findOne(ctx, &s.contentBase, "get", s.repo.FindByID, id)
}

// Create adds a university.
func (s *UniversityService) Create(ctx context.Context, session models.Session, req UniversityRequest) (*models.University, error) {
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

	item := &models.University{}
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

// Update replaces every writable field of a university.
func (s *UniversityService) Update(ctx context.Context, session models.Session, id string, req UniversityRequest) (*models.University, error) {
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

// Delete removes a university permanently.
func (s *UniversityService) Delete(ctx context.Context, session models.Session, id string) error {
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
