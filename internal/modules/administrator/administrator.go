// Package administrator manages the admin accounts that own blog content.
package administrator

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/halcyonweb/core/internal/models"
	"github.com/halcyonweb/core/internal/pkg/response"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("administrator not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type CreateAdministratorDTO struct {
	Email     string `json:"email"      binding:"required,email"`
	Password  string `json:"password"   binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"  binding:"required"`
}

type UpdateAdministratorDTO struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// Create inserts a new active administrator. The email must not be used by
// any existing record, soft-deleted ones included.
func (s *Service) Create(dto *CreateAdministratorDTO) (*models.Administrator, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	var count int64
	if err := s.db.Model(&models.Administrator{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := models.Administrator{
		Email:     email,
		Password:  string(hash),
		FirstName: strings.TrimSpace(dto.FirstName),
		LastName:  strings.TrimSpace(dto.LastName),
		IsActive:  true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// List returns all active administrators, newest first.
func (s *Service) List() ([]models.Administrator, error) {
	var admins []models.Administrator
	err := s.db.Where("is_active = ?", true).Order("created_at DESC").Find(&admins).Error
	return admins, err
}

// FindOne fetches an active administrator by id.
func (s *Service) FindOne(id string) (*models.Administrator, error) {
	var admin models.Administrator
	err := s.db.Where("id = ? AND is_active = ?", id, true).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// FindActiveByEmail fetches an active administrator by email, password
// included. Used by the login flow.
func (s *Service) FindActiveByEmail(email string) (*models.Administrator, error) {
	var admin models.Administrator
	err := s.db.Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true).
		First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// Update applies a partial patch to an active administrator.
func (s *Service) Update(id string, dto *UpdateAdministratorDTO) (*models.Administrator, error) {
	admin, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*dto.Email))
		if email != admin.Email {
			// The unique index spans soft-deleted rows too, so the check
			// must not filter on is_active.
			var count int64
			if err := s.db.Model(&models.Administrator{}).
				Where("email = ? AND id <> ?", email, id).
				Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrEmailTaken
			}
			updates["email"] = email
		}
	}
	if dto.Password != nil && *dto.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	if dto.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*dto.FirstName)
	}
	if dto.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*dto.LastName)
	}

	if len(updates) > 0 {
		if err := s.db.Model(admin).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.FindOne(id)
}

// Remove soft-deletes an administrator by flipping is_active. The record and
// its posts stay in place.
func (s *Service) Remove(id string) error {
	admin, err := s.FindOne(id)
	if err != nil {
		return err
	}
	return s.db.Model(admin).Update("is_active", false).Error
}

// ValidateLogin checks credentials against an active administrator. Failures
// are indistinguishable to the caller whether the email or the password was
// wrong.
func (s *Service) ValidateLogin(email, password string) (*models.Administrator, error) {
	admin, err := s.FindActiveByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts the administrator CRUD surface. Every route requires
// a bearer token.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/administrators", authMW)

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.findOne)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateAdministratorDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	admin, err := h.svc.Create(&dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, "Administrator created successfully", admin)
}

func (h *Handler) list(c *gin.Context) {
	admins, err := h.svc.List()
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OKCount(c, "Administrators retrieved successfully", admins, len(admins))
}

func (h *Handler) findOne(c *gin.Context) {
	admin, err := h.svc.FindOne(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Administrator retrieved successfully", admin)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateAdministratorDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	admin, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Administrator updated successfully", admin)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Remove(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Administrator deleted successfully", nil)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Administrator not found")
	case errors.Is(err, ErrEmailTaken):
		response.Conflict(c, "Email is already in use")
	default:
		h.log.Error("administrator request failed", zap.Error(err))
		response.InternalError(c)
	}
}
