package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-portal-api/internal/filter"
	"github.com/noah-isme/edu-portal-api/internal/middleware"
	"github.com/noah-isme/edu-portal-api/internal/models"
	"github.com/noah-isme/edu-portal-api/internal/service"
	"github.com/noah-isme/edu-portal-api/pkg/response"
)

// ContentService is the read and admin surface shared by the slugged collections.
type ContentService[T any, R any] interface {
	List(ctx context.Context, criteria filter.Criteria) ([]T, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, session models.Session, req R) (*T, error)
	Update(ctx context.Context, session models.Session, id string, req R) (*T, error)
	Delete(ctx context.Context, session models.Session, id string) error
}

// ContentHandler serves one content collection publicly and to administrators.
type ContentHandler[T any, R any] struct {
	service ContentService[T, R]
	entity  string
}

// NewContentHandler creates a handler for a collection whose records are named entity.
func NewContentHandler[T any, R any](svc ContentService[T, R], entity string) *ContentHandler[T, R] {
	return &ContentHandler[T, R]{service: svc, entity: entity}
}

// NewScholarshipHandler serves /scholarships.
func NewScholarshipHandler(svc ContentService[models.Scholarship, service.ScholarshipRequest]) *ContentHandler[models.Scholarship, service.ScholarshipRequest] {
	return NewContentHandler(svc, "scholarship")
}

// NewArticleHandler serves /articles.
func NewArticleHandler(svc ContentService[models.Article, service.ArticleRequest]) *ContentHandler[models.Article, service.ArticleRequest] {
	return NewContentHandler(svc, "article")
}

// NewUniversityHandler serves /universities.
func NewUniversityHandler(svc ContentService[models.University, service.UniversityRequest]) *ContentHandler[models.University, service.UniversityRequest] {
	return NewContentHandler(svc, "university")
}

// List returns the filtered collection; page and limit are optional.
func (h *ContentHandler[T, R]) List(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.List(c.Request.Context(), criteria)
	if err != nil {
		response.Error(c, err)
		return
	}
	writeList(c, items)
}

// GetBySlug returns one record by slug.
func (h *ContentHandler[T, R]) GetBySlug(c *gin.Context) {
	item, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Get returns one record by id.
func (h *ContentHandler[T, R]) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create adds a record.
func (h *ContentHandler[T, R]) Create(c *gin.Context) {
	var req R
	if !bindJSON(c, &req, "invalid "+h.entity+" payload") {
		return
	}
	item, err := h.service.Create(c.Request.Context(), middleware.Session(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update replaces a record.
func (h *ContentHandler[T, R]) Update(c *gin.Context) {
	var req R
	if !bindJSON(c, &req, "invalid "+h.entity+" payload") {
		return
	}
	item, err := h.service.Update(c.Request.Context(), middleware.Session(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete removes a record.
func (h *ContentHandler[T, R]) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.Session(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func writeList[T any](c *gin.Context, items []T) {
	page, pagination, err := paginate(c, items)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "total", len(items))
	response.JSON(c, http.StatusOK, page, pagination, middleware.ExtractMeta(c))
}
