package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-portal-api/internal/middleware"
	"github.com/noah-isme/edu-portal-api/internal/models"
	"github.com/noah-isme/edu-portal-api/internal/service"
	"github.com/noah-isme/edu-portal-api/pkg/response"
)

type menuService interface {
	List(ctx context.Context) ([]models.Menu, error)
	Get(ctx context.Context, id string) (*models.Menu, error)
	Create(ctx context.Context, session models.Session, req service.MenuRequest) (*models.Menu, error)
	Update(ctx context.Context, session models.Session, id string, req service.MenuRequest) (*models.Menu, error)
	Delete(ctx context.Context, session models.Session, id string) error
}

// MenuHandler serves the navigation tree.
type MenuHandler struct {
	service menuService
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(svc menuService) *MenuHandler {
	return &MenuHandler{service: svc}
}

// List godoc
// @Summary Navigation menu
// @Tags Menu
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /menu [get]
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	writeList(c, items)
}

func (h *MenuHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req service.MenuRequest
	if !bindJSON(c, &req, "invalid menu payload") {
		return
	}
	item, err := h.service.Create(c.Request.Context(), middleware.Session(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

func (h *MenuHandler) Update(c *gin.Context) {
	var req service.MenuRequest
	if !bindJSON(c, &req, "invalid menu payload") {
		return
	}
	item, err := h.service.Update(c.Request.Context(), middleware.Session(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.Session(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
