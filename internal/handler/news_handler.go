package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-portal-api/internal/models"
	"github.com/noah-isme/edu-portal-api/internal/service"
	"github.com/noah-isme/edu-portal-api/pkg/response"
)

type newsService interface {
	ContentService[models.News, service.NewsRequest]
	Featured(ctx context.Context) ([]models.News, error)
}

// NewsHandler serves /news.
type NewsHandler struct {
	*ContentHandler[models.News, service.NewsRequest]
	service newsService
}

// NewNewsHandler creates a new news handler.
func NewNewsHandler(svc newsService) *NewsHandler {
	return &NewsHandler{ContentHandler: NewContentHandler[models.News, service.NewsRequest](svc, "news"), service: svc}
}

// Featured godoc
// @Summary Featured news
// @Tags News
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /news/featured [get]
func (h *NewsHandler) Featured(c *gin.Context) {
	items, err := h.service.Featured(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	writeList(c, items)
}
