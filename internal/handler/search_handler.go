package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-portal-api/internal/middleware"
	"github.com/noah-isme/edu-portal-api/internal/models"
	"github.com/noah-isme/edu-portal-api/pkg/response"
)

type searchService interface {
	Search(ctx context.Context, query string) (*models.SearchResult, error)
}

// SearchHandler exposes the cross-collection search.
type SearchHandler struct {
	service searchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(svc searchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

// Search godoc
// @Summary Search all content
// @Description Case-insensitive substring search partitioned by collection. An empty query returns everything.
// @Tags Search
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	result, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "query", query)
	middleware.SetMeta(c, "total", result.Total())
	response.JSON(c, http.StatusOK, result, nil, middleware.ExtractMeta(c))
}
