package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-portal-api/internal/models"
	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
	"github.com/noah-isme/edu-portal-api/pkg/response"
)

// Authorizer admits administrator sessions.
type Authorizer interface {
	Authorize(ctx context.Context, session models.Session) (*models.JWTClaims, error)
}

// AdminOnly rejects requests whose bearer token does not belong to an
// existing administrator. Anonymous requests fail without calling authz.
func AdminOnly(authz Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := Session(c)
		if session.Anonymous() {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing bearer token"))
			c.Abort()
			return
		}

		claims, err := authz.Authorize(c.Request.Context(), session)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}
