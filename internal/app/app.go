// Package app wires configuration, storage, and HTTP routes together.
package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/halcyonweb/core/internal/config"
	"github.com/halcyonweb/core/internal/database"
	"github.com/halcyonweb/core/internal/middleware"
	"github.com/halcyonweb/core/internal/pkg/mail"
	pkgredis "github.com/halcyonweb/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	rdb    *pkgredis.Client
	sender *mail.Sender
	logger *zap.Logger
}

// New initializes the application: config → DB → Redis → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	// Redis is optional; without it rate limiting and contact quotas are
	// simply not enforced.
	rdb, err := pkgredis.Connect(cfg.Redis.URLValue())
	if err != nil {
		logger.Warn("redis unavailable, continuing without it", zap.Error(err))
		rdb = nil
	}

	sender := mail.New(mail.Config{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		User:      cfg.SMTP.User,
		Pass:      cfg.SMTP.Pass,
		From:      cfg.SMTP.From,
		Recipient: cfg.SMTP.Recipient,
	})
	if !sender.IsConfigured() {
		logger.Warn("smtp is not fully configured, contact form sends will fail")
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.BodyLimit())
	router.Use(middleware.RequestTimeout())
	router.Use(cors.New(corsConfig(cfg)))

	app := &App{cfg: cfg, router: router, db: db, rdb: rdb, sender: sender, logger: logger}
	app.registerRoutes()

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }
