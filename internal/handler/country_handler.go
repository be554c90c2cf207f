package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-portal-api/internal/models"
	"github.com/noah-isme/edu-portal-api/internal/service"
	"github.com/noah-isme/edu-portal-api/pkg/response"
)

type countryService interface {
	ContentService[models.Country, service.CountryRequest]
	Detail(ctx context.Context, slug string) (*models.CountryDetail, error)
}

// CountryHandler serves /countries. The public slug route returns the
// country joined with its universities and scholarships.
type CountryHandler struct {
	*ContentHandler[models.Country, service.CountryRequest]
	service countryService
}

// NewCountryHandler creates a new country handler.
func NewCountryHandler(svc countryService) *CountryHandler {
	return &CountryHandler{ContentHandler: NewContentHandler[models.Country, service.CountryRequest](svc, "country"), service: svc}
}

// Detail godoc
// @Summary Country detail
// @Description Country with the universities and scholarships located in it
// @Tags Countries
// @Produce json
// @Param slug path string true "Country slug"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /countries/{slug} [get]
func (h *CountryHandler) Detail(c *gin.Context) {
	detail, err := h.service.Detail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}
