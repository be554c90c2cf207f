package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-portal-api/internal/models"
	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
	err    error
}

func (s stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	return s.claims, s.err
}

type stubAuthorizer struct {
	calls   int
	session models.Session
	err     error
}

func (s *stubAuthorizer) Authorize(ctx context.Context, session models.Session) (*models.JWTClaims, error) {
	s.calls++
	s.session = session
	if s.err != nil {
		return nil, s.err
	}
	return &models.JWTClaims{UserID: "admin-1", IsAdmin: true}, nil
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/protected", func(c *gin.Context) {
		value, _ := c.Get(ContextUserKey)
		claims, _ := value.(*models.JWTClaims)
		c.String(http.StatusOK, claims.UserID)
	})
	return r
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string]string{
		"":                 "",
		"Bearer abc":       "abc",
		"bearer  abc ":     "abc",
		"Basic dXNlcjpwdw": "",
		"Bearer":           "",
	}
	for header, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			c.Request.Header.Set("Authorization", header)
		}
		assert.Equal(t, want, BearerToken(c), header)
	}
}

func TestJWTMiddleware(t *testing.T) {
	r := newRouter(JWT(stubValidator{claims: &models.JWTClaims{UserID: "u1"}}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestJWTMiddlewareInvalidToken(t *testing.T) {
	r := newRouter(JWT(stubValidator{err: appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly(t *testing.T) {
	authz := &stubAuthorizer{}
	r := newRouter(AdminOnly(authz))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, authz.calls)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	req.Header.Set("User-Agent", "portal-test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-token", authz.session.Token)
	assert.Equal(t, "portal-test", authz.session.UserAgent)

	authz.err = appErrors.ErrForbidden
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

type recordingObserver struct {
	path   string
	status int
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.path = path
	r.status = status
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(observer))
	r.GET("/articles/:slug", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/articles/study-in-japan", nil))
	assert.Equal(t, "/articles/:slug", observer.path)
	assert.Equal(t, http.StatusNoContent, observer.status)
}

func TestResponseMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var meta map[string]interface{}
	r := gin.New()
	r.Use(WithResponseMeta())
	r.GET("/", func(c *gin.Context) {
		assert.Nil(t, ExtractMeta(c))
		SetMeta(c, "total", 3)
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, meta)
	assert.Equal(t, 3, meta["total"])
	assert.Contains(t, meta, "processingTimeMs")
}
