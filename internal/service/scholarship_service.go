package service

import (
	"context"
	"strings"
	"time"

	"github.com/noah-isme/edu-portal-api/internal/filter"
	"github.com/noah-isme/edu-portal-api/internal/models"
)

type scholarshipRepository interface {
	scholarshipLister
	FindBySlug(ctx context.Context, slug string) (*models.Scholarship, error)
	FindByID(ctx context.Context, id string) (*models.Scholarship, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, item *models.Scholarship) error
	Update(ctx context.Context, item *models.Scholarship) error
	Delete(ctx context.Context, id string) error
}

// ScholarshipRequest is the full writable state of a scholarship.
type ScholarshipRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Amount      string   `json:"amount" validate:"required"`
	Deadline    string   `json:"deadline" validate:"required"`
	Country     string   `json:"country" validate:"required"`
	Tags        []string `json:"tags"`
	Slug        string   `json:"slug"`
}

func (r *ScholarshipRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Amount = strings.TrimSpace(r.Amount)
	r.Deadline = strings.TrimSpace(r.Deadline)
	r.Country = strings.TrimSpace(r.Country)
	r.Tags = cleanStrings(r.Tags)
	r.Slug = resolveSlug(r.Slug, r.Title)
}

func (r ScholarshipRequest) apply(item *models.Scholarship) {
	item.Title = r.Title
	item.Description = r.Description
	item.Amount = r.Amount
	item.Deadline = r.Deadline
	item.Country = r.Country
	item.Tags = r.Tags
	item.Slug = r.Slug
}

// ScholarshipService serves and administers scholarships.
type ScholarshipService struct {
	contentBase
	repo scholarshipRepository
}

// NewScholarshipService creates a new scholarship service.
func NewScholarshipService(repo scholarshipRepository, deps ContentDeps) *ScholarshipService {
	return &ScholarshipService{contentBase: newContentBase(CollectionScholarships, "scholarship", deps), repo: repo}
}

// List returns scholarships matching criteria in store order.
func (s *ScholarshipService) List(ctx context.Context, criteria filter.Criteria) ([]models.Scholarship, error) {
	items, err := cachedList(ctx, &s.contentBase, s.repo.ListAll)
	if err != nil {
		return nil, err
	}
	return filter.Scholarships(items, criteria), nil
}

// GetBySlug returns a scholarship by its public slug.
func (s *ScholarshipService) GetBySlug(ctx context.Context, slug string) (*models.Scholarship, error) {
	return findOne(ctx, &s.contentBase, "slug", s.repo.FindBySlug, slug)
}

// Get returns a scholarship by id.
func (s *ScholarshipService) Get(ctx context.Context, id string) (*models.Scholarship, error) {
	return findOne(ctx, &s.contentBase, "get", s.repo.FindByID, id)
}

// Create adds a scholarship.
func (s *ScholarshipService) Create(ctx context.Context, session models.Session, req ScholarshipRequest) (*models.Scholarship, error) {
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

	item := &models.Scholarship{}
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

// Update replaces every writable field of a scholarship.
func (s *ScholarshipService) Update(ctx context.Context, session models.Session, id string, req ScholarshipRequest) (*models.Scholarship, error) {
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

// Delete removes a scholarship permanently.
func (s *ScholarshipService) Delete(ctx context.Context, session models.Session, id string) error {
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
