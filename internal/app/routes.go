package app

import (
	"github.com/gin-gonic/gin"
	"github.com/halcyonweb/core/internal/middleware"
	"github.com/halcyonweb/core/internal/modules/administrator"
	"github.com/halcyonweb/core/internal/modules/auth"
	"github.com/halcyonweb/core/internal/modules/blog"
	"github.com/halcyonweb/core/internal/modules/contact"
	"github.com/halcyonweb/core/internal/modules/health"
	"github.com/halcyonweb/core/internal/pkg/response"
)

// registerRoutes builds every handler and mounts the REST surface under /api.
func (a *App) registerRoutes() {
	authMW := middleware.Auth()

	adminSvc := administrator.NewService(a.db, a.logger)
	authSvc := auth.NewService(adminSvc)
	blogSvc := blog.NewService(a.db, a.logger)
	contactSvc := contact.NewService(a.sender, a.rdb, a.logger)

	health.NewHandler(a.db).RegisterRoutes(a.router)

	api := a.router.Group("/api")
	api.Use(middleware.RateLimit(a.rdb))

	auth.NewHandler(authSvc, a.logger).RegisterRoutes(api, authMW)
	administrator.NewHandler(adminSvc, a.logger).RegisterRoutes(api, authMW)
	blog.NewHandler(blogSvc, a.logger).RegisterRoutes(api, authMW)
	contact.NewHandler(contactSvc, a.logger).RegisterRoutes(api)

	a.router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})
	a.router.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})
}
