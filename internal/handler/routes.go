package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-portal-api/internal/middleware"
	"github.com/noah-isme/edu-portal-api/internal/models"
	"github.com/noah-isme/edu-portal-api/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Scholarships *ContentHandler[models.Scholarship, service.ScholarshipRequest]
	Articles     *ContentHandler[models.Article, service.ArticleRequest]
	Countries    *CountryHandler
	Universities *ContentHandler[models.University, service.UniversityRequest]
	News         *NewsHandler
	Menu         *MenuHandler
	Search       *SearchHandler
	Auth         *AuthHandler
	Users        *UserHandler
	Export       *ExportHandler
	System       *SystemHandler
}

// Guards are the authentication middlewares used by the router.
type Guards struct {
	Tokens middleware.TokenValidator
	Admin  middleware.Authorizer
}

// RegisterRoutes mounts ops endpoints at the root and the API under prefix.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, guards Guards) {
	r.GET("/health", h.System.Health)
	r.GET("/ready", h.System.Ready)
	r.GET("/metrics", h.System.Prometheus)

	api := r.Group(prefix)
	api.Use(middleware.WithResponseMeta())

	api.GET("/scholarships", h.Scholarships.List)
	api.GET("/scholarships/:slug", h.Scholarships.GetBySlug)
	api.GET("/articles", h.Articles.List)
	api.GET("/articles/:slug", h.Articles.GetBySlug)
	api.GET("/countries", h.Countries.List)
	api.GET("/countries/:slug", h.Countries.Detail)
	api.GET("/universities", h.Universities.List)
	api.GET("/universities/:slug", h.Universities.GetBySlug)
	api.GET("/news", h.News.List)
	api.GET("/news/featured", h.News.Featured)
	api.GET("/news/:slug", h.News.GetBySlug)
	api.GET("/menu", h.Menu.List)
	api.GET("/search", h.Search.Search)

	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	secured := auth.Group("")
	secured.Use(middleware.JWT(guards.Tokens))
	secured.POST("/logout", h.Auth.Logout)
	secured.POST("/change-password", h.Auth.ChangePassword)
	secured.GET("/me", h.Auth.Me)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminOnly(guards.Admin))
	mountAdmin(admin.Group("/scholarships"), h.Scholarships)
	mountAdmin(admin.Group("/articles"), h.Articles)
	mountAdmin(admin.Group("/countries"), h.Countries.ContentHandler)
	mountAdmin(admin.Group("/universities"), h.Universities)
	mountAdmin(admin.Group("/news"), h.News.ContentHandler)

	menu := admin.Group("/menu")
	menu.GET("", h.Menu.List)
	menu.GET("/:id", h.Menu.Get)
	menu.POST("", h.Menu.Create)
	menu.PUT("/:id", h.Menu.Update)
	menu.DELETE("/:id", h.Menu.Delete)

	admin.GET("/users", h.Users.List)
	admin.POST("/users", h.Users.Create)
	admin.DELETE("/users/:id", h.Users.Delete)
	admin.GET("/export/:collection", h.Export.Export)
}

func mountAdmin[T any, R any](g *gin.RouterGroup, h *ContentHandler[T, R]) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
