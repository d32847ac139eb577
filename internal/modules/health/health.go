// Package health serves the root liveness endpoint.
package health

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/halcyonweb/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	db      *gorm.DB
	started time.Time
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, started: time.Now()}
}

// RegisterRoutes mounts /health on the root router, outside the API prefix.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.check)
}

func (h *Handler) check(c *gin.Context) {
	dbStatus := "up"
	if sqlDB, err := h.db.DB(); err != nil {
		dbStatus = "down"
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		dbStatus = "down"
	}

	response.OK(c, "Service is healthy", gin.H{
		"status":    "ok",
		"database":  dbStatus,
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
