package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/edu-portal-api/internal/filter"
	"github.com/noah-isme/edu-portal-api/internal/models"
)

type menuRepository interface {
	menuLister
	FindByID(ctx context.Context, id string) (*models.Menu, error)
	Create(ctx context.Context, item *models.Menu) error
	Update(ctx context.Context, item *models.Menu) error
	Delete(ctx context.Context, id string) error
}

// MenuRequest is the full writable state of a navigation entry.
type MenuRequest struct {
	Title    string            `json:"title" validate:"required"`
	URL      string            `json:"url" validate:"required"`
	Position int               `json:"position" validate:"gte=0"`
	Children []models.MenuItem `json:"children" validate:"dive"`
}

func (r *MenuRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.URL = strings.TrimSpace(r.URL)
	for i := range r.Children {
		child := &r.Children[i]
		child.Title = strings.TrimSpace(child.Title)
		child.URL = strings.TrimSpace(child.URL)
		if child.ID == "" {
			child.ID = uuid.NewString()
		}
	}
}

func (r MenuRequest) apply(item *models.Menu) {
	item.Title = r.Title
	item.URL = r.URL
	item.Position = r.Position
	item.Children = models.MenuItems(r.Children)
	if item.Children == nil {
		item.Children = models.MenuItems{}
	}
}

// MenuService serves and administers the navigation tree. Entries have no slug.
type MenuService struct {
	contentBase
	repo menuRepository
}

// NewMenuService creates a new menu service.
func NewMenuService(repo menuRepository, deps ContentDeps) *MenuService {
	return &MenuService{contentBase: newContentBase(CollectionMenu, "menu entry", deps), repo: repo}
}

// List returns the whole menu ordered by position.
func (s *MenuService) List(ctx context.Context) ([]models.Menu, error) {
	items, err := cachedList(ctx, &s.contentBase, s.repo.ListAll)
	if err != nil {
		return nil, err
	}
	return filter.Menu(items, filter.Criteria{}), nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*models.Menu, error) {
	return findOne(ctx, &s.contentBase, "get", s.repo.FindByID, id)
}

// Create adds a menu entry.
func (s *MenuService) Create(ctx context.Context, session models.Session, req MenuRequest) (*models.Menu, error) {
	claims, err := s.authorize(ctx, session)
	if err != nil {
		return nil, err
	}
	req.normalize()
	if err := s.validate(req); err != nil {
		return nil, err
	}

	item := &models.Menu{}
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

// Update replaces a menu entry including its children.
func (s *MenuService) Update(ctx context.Context, session models.Session, id string, req MenuRequest) (*models.Menu, error) {
	claims, err := s.authorize(ctx, session)
	if err != nil {
		return nil, err
	}
	req.normalize()
	if err := s.validate(req); err != nil {
		return nil, err
	}
	item, err := findOne(ctx, &s.contentBase, "get", s.repo.FindByID, id)
	if err != nil {
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

// Delete removes a menu entry permanently.
func (s *MenuService) Delete(ctx context.Context, session models.Session, id string) error {
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
