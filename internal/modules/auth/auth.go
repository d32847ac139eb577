// Package auth issues and validates the JWT pair used by the admin dashboard.
package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/halcyonweb/core/internal/middleware"
	"github.com/halcyonweb/core/internal/models"
	"github.com/halcyonweb/core/internal/modules/administrator"
	jwtpkg "github.com/halcyonweb/core/internal/pkg/jwt"
	"github.com/halcyonweb/core/internal/pkg/response"
	"go.uber.org/zap"
)

type LoginDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type loginResponse struct {
	AccessToken   string                `json:"access_token"`
	RefreshToken  string                `json:"refresh_token"`
	Administrator *models.Administrator `json:"administrator"`
}

type Service struct {
	admins *administrator.Service
}

func NewService(admins *administrator.Service) *Service {
	return &Service{admins: admins}
}

// Login validates credentials and issues an access/refresh token pair.
func (s *Service) Login(email, password string) (*loginResponse, error) {
	admin, err := s.admins.ValidateLogin(email, password)
	if err != nil {
		return nil, err
	}

	access, err := jwtpkg.SignAccess(admin.ID, admin.Email, admin.FirstName, admin.LastName)
	if err != nil {
		return nil, err
	}
	refresh, err := jwtpkg.SignRefresh(admin.ID, admin.Email, admin.FirstName, admin.LastName)
	if err != nil {
		return nil, err
	}

	return &loginResponse{
		AccessToken:   access,
		RefreshToken:  refresh,
		Administrator: admin,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// administrator must still exist and be active; a token issued before a
// deactivation stops working here.
func (s *Service) Refresh(refreshToken string) (string, error) {
	claims, err := jwtpkg.ParseRefresh(refreshToken)
	if err != nil {
		return "", administrator.ErrInvalidCredentials
	}

	admin, err := s.admins.FindOne(claims.Subject)
	if err != nil {
		if errors.Is(err, administrator.ErrNotFound) {
			return "", administrator.ErrInvalidCredentials
		}
		return "", err
	}

	return jwtpkg.SignAccess(admin.ID, admin.Email, admin.FirstName, admin.LastName)
}

// Profile returns the active administrator behind a set of access claims.
func (s *Service) Profile(adminID string) (*models.Administrator, error) {
	return s.admins.FindOne(adminID)
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")

	g.POST("/login", h.login)
	g.POST("/refresh", h.refresh)

	a := g.Group("", authMW)
	a.GET("/profile", h.profile)
	a.GET("/verify", h.verify)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.Login(dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, administrator.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid credentials")
			return
		}
		h.log.Error("login failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, "Login successful", result)
}

func (h *Handler) refresh(c *gin.Context) {
	var dto RefreshDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	access, err := h.svc.Refresh(dto.RefreshToken)
	if err != nil {
		if errors.Is(err, administrator.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid or expired refresh token")
			return
		}
		h.log.Error("token refresh failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, "Token refreshed successfully", gin.H{"access_token": access})
}

func (h *Handler) profile(c *gin.Context) {
	admin, err := h.svc.Profile(middleware.CurrentAdminID(c))
	if err != nil {
		if errors.Is(err, administrator.ErrNotFound) {
			response.Unauthorized(c, "Administrator no longer active")
			return
		}
		h.log.Error("profile lookup failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, "Profile retrieved successfully", admin)
}

func (h *Handler) verify(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	response.OK(c, "Token is valid", gin.H{
		"id":         claims.Subject,
		"email":      claims.Email,
		"first_name": claims.FirstName,
		"last_name":  claims.LastName,
	})
}
