// Package contact exposes the public contact form and mailer health surface.
package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/halcyonweb/core/internal/pkg/mail"
	"github.com/halcyonweb/core/internal/pkg/redis"
	"github.com/halcyonweb/core/internal/pkg/response"
	"go.uber.org/zap"
)

// dailySubmitLimit caps contact submissions per IP per day.
const dailySubmitLimit = 10

var ErrRateLimited = errors.New("contact: daily submission limit reached")

type ContactDTO struct {
	Name    string `json:"name"    binding:"required,min=2,max=100"`
	Email   string `json:"email"   binding:"required,email"`
	Phone   string `json:"phone"   binding:"max=30"`
	Subject string `json:"subject" binding:"required,min=3,max=200"`
	Message string `json:"message" binding:"required,min=10,max=5000"`
}

type Service struct {
	sender *mail.Sender
	rdb    *redis.Client
	log    *zap.Logger
}

func NewService(sender *mail.Sender, rdb *redis.Client, log *zap.Logger) *Service {
	return &Service{sender: sender, rdb: rdb, log: log}
}

// Submit checks the per-IP daily quota, then hands the entry to the mailer.
func (s *Service) Submit(ctx context.Context, ip string, dto *ContactDTO) error {
	if err := s.checkQuota(ctx, ip); err != nil {
		return err
	}

	return s.sender.SendContact(ctx, mail.ContactData{
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		Subject: dto.Subject,
		Message: dto.Message,
	})
}

// checkQuota counts submissions per IP with a key that expires at the end of
// the day. Without redis the quota is not enforced.
func (s *Service) checkQuota(ctx context.Context, ip string) error {
	if s.rdb == nil || ip == "" {
		return nil
	}

	key := fmt.Sprintf("halcyon:contact:%s:%s", ip, time.Now().Format("2006-01-02"))
	count, err := s.rdb.Incr(ctx, key)
	if err != nil {
		s.log.Warn("contact quota check skipped", zap.Error(err))
		return nil
	}
	if count == 1 {
		s.rdb.Expire(ctx, key, 24*time.Hour)
	}
	if count > dailySubmitLimit {
		return ErrRateLimited
	}
	return nil
}

// Healthy reports whether the SMTP transport is reachable.
func (s *Service) Healthy(ctx context.Context) bool {
	return s.sender.Verify(ctx) == nil
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/contact")

	g.POST("", h.submit)
	g.GET("/health", h.health)
	g.GET("/debug-email", h.debugEmail)
}

func (h *Handler) submit(c *gin.Context) {
	var dto ContactDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.svc.Submit(c.Request.Context(), c.ClientIP(), &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrRateLimited):
			response.TooManyRequests(c, "Daily contact limit reached, please try again tomorrow")
		case errors.Is(err, mail.ErrNotConfigured):
			h.log.Error("contact form received while mailer unconfigured")
			response.InternalError(c)
		case errors.Is(err, mail.ErrAuth):
			response.BadRequest(c, "Email service authentication failed")
		case errors.Is(err, mail.ErrConnection):
			response.BadRequest(c, "Could not reach the email service, please try again later")
		case errors.Is(err, mail.ErrBadAddress):
			response.BadRequest(c, "The email address was rejected")
		default:
			h.log.Error("contact submission failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, "Message sent successfully", nil)
}

func (h *Handler) health(c *gin.Context) {
	healthy := h.svc.Healthy(c.Request.Context())
	response.OK(c, "Email service health", gin.H{"healthy": healthy})
}

// debugEmail reports which SMTP settings are present. Values never leave the
// server, only booleans.
func (h *Handler) debugEmail(c *gin.Context) {
	response.OK(c, "Email configuration status", gin.H{
		"configured": h.svc.sender.IsConfigured(),
		"settings":   h.svc.sender.ConfigStatus(),
	})
}
