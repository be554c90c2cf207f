package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-portal-api/internal/middleware"
	"github.com/noah-isme/edu-portal-api/internal/models"
	"github.com/noah-isme/edu-portal-api/internal/service"
	"github.com/noah-isme/edu-portal-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, session models.Session, collection, format string) (*service.ExportResult, error)
}

// ExportHandler streams collection downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export godoc
// @Summary Export a collection
// @Description Download a whole collection as CSV or PDF
// @Tags Export
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param collection path string true "Collection name"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/export/{collection} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	result, err := h.service.Export(c.Request.Context(), middleware.Session(c), c.Param("collection"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.ContentType, result.Filename, result.Body)
}
