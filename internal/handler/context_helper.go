package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-portal-api/internal/middleware"
	"github.com/noah-isme/edu-portal-api/internal/models"
	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
	"github.com/noah-isme/edu-portal-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// bindJSON decodes the request body into dst, writing a 400 on failure.
func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		appErr := appErrors.Clone(appErrors.ErrValidation, message)
		appErr.Err = err
		response.Error(c, appErr)
		return false
	}
	return true
}
