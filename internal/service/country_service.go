package service

import (
	"context"
	"strings"
	"time"

	"github.com/noah-isme/edu-portal-api/internal/filter"
	"github.com/noah-isme/edu-portal-api/internal/models"
)

type countryRepository interface {
	countryLister
	FindBySlug(ctx context.Context, slug string) (*models.Country, error)
	FindByID(ctx context.Context, id string) (*models.Country, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, item *models.Country) error
	Update(ctx context.Context, item *models.Country) error
	Delete(ctx context.Context, id string) error
}

// CountryRequest is the full writable state of a country.
type CountryRequest struct {
	Name           string  `json:"name" validate:"required"`
	Description    string  `json:"description" validate:"required"`
	Universities   int     `json:"universities" validate:"gte=0"`
	AcceptanceRate float64 `json:"acceptanceRate" validate:"gte=0,lte=100"`
	Slug           string  `json:"slug"`
}

func (r *CountryRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Slug = resolveSlug(r.Slug, r.Name)
}

func (r CountryRequest) apply(item *models.Country) {
	item.Name = r.Name
	item.Description = r.Description
	item.Universities = r.Universities
	item.AcceptanceRate = r.AcceptanceRate
	item.Slug = r.Slug
}

// CountryService serves and administers countries.
type CountryService struct {
	contentBase
	repo         countryRepository
	universities universityLister
	scholarships scholarshipLister
}

// NewCountryService creates a new country service. The listers back Detail.
func NewCountryService(repo countryRepository, universities universityLister, scholarships scholarshipLister, deps ContentDeps) *CountryService {
	return &CountryService{
		contentBase:  newContentBase(CollectionCountries, "country", deps),
		repo:         repo,
		universities: universities,
		scholarships: scholarships,
	}
}

// List returns countries matching criteria in store order.
func (s *CountryService) List(ctx context.Context, criteria filter.Criteria) ([]models.Country, error) {
	items, err := cachedList(ctx, &s.contentBase, s.repo.ListAll)
	if err != nil {
		return nil, err
	}
	return filter.Countries(items, criteria), nil
}

func (s *CountryService) GetBySlug(ctx context.Context, slug string) (*models.Country, error) {
	return findOne(ctx, &s.contentBase, "slug", s.repo.FindBySlug, slug)
}

func (s *CountryService) Get(ctx context.Context, id string) (*models.Country, error) {
	return findOne(ctx, &s.contentBase, "get", s.repo.FindByID, id)
}

// Detail returns the country with the universities and scholarships whose
// country field equals its name.
func (s *CountryService) Detail(ctx context.Context, slug string) (*models.CountryDetail, error) {
	country, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	universities, err := s.universities.ListAll(ctx)
	s.observe("detail", start, err)
	if err != nil {
		return nil, s.storeErr(err, "load universities of")
	}
	start = time.Now()
	scholarships, err := s.scholarships.ListAll(ctx)
	s.observe("detail", start, err)
	if err != nil {
		return nil, s.storeErr(err, "load scholarships of")
	}

	return &models.CountryDetail{
		Country:      *country,
		Universities: inCountry(universities, country.Name, func(u models.University) string { return u.Country }),
		Scholarships: inCountry(scholarships, country.Name, func(s models.Scholarship) string { return s.Country }),
	}, nil
}

// inCountry keeps records whose country equals name exactly.
func inCountry[T any](items []T, name string, country func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if country(item) == name {
			out = append(out, item)
		}
	}
	return out
}

// Create adds a country.
func (s *CountryService) Create(ctx context.Context, session models.Session, req CountryRequest) (*models.Country, error) {
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

	item := &models.Country{}
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

// Update replaces every writable field of a country.
func (s *CountryService) Update(ctx context.Context, session models.Session, id string, req CountryRequest) (*models.Country, error) {
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

// Delete removes a country permanently. Universities and scholarships
// referencing it by name are left untouched.
func (s *CountryService) Delete(ctx context.Context, session models.Session, id string) error {
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
