package administrator

import (
	"testing"

	"github.com/halcyonweb/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Administrator{}, &models.Post{}))
	return NewService(db, zap.NewNop())
}

func seedAdmin(t *testing.T, s *Service, email string) *models.Administrator {
	t.Helper()
	admin, err := s.Create(&CreateAdministratorDTO{
		Email:     email,
		Password:  "supersecret",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	return admin
}

func TestCreateHashesPassword(t *testing.T) {
	s := newTestService(t)
	admin := seedAdmin(t, s, "ada@example.com")

	assert.NotEmpty(t, admin.ID)
	assert.True(t, admin.IsActive)
	assert.NotEqual(t, "supersecret", admin.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("supersecret")))
}

func TestCreateNormalizesEmail(t *testing.T) {
	s := newTestService(t)
	admin, err := s.Create(&CreateAdministratorDTO{
		Email:     "  Ada@Example.COM ",
		Password:  "supersecret",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", admin.Email)
}

func TestCreateRejectsDuplicateEmailEvenWhenInactive(t *testing.T) {
	s := newTestService(t)
	admin := seedAdmin(t, s, "ada@example.com")

	_, err := s.Create(&CreateAdministratorDTO{
		Email: "ada@example.com", Password: "supersecret", FirstName: "A", LastName: "B",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	require.NoError(t, s.Remove(admin.ID))

	_, err = s.Create(&CreateAdministratorDTO{
		Email: "ada@example.com", Password: "supersecret", FirstName: "A", LastName: "B",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestListReturnsOnlyActive(t *testing.T) {
	s := newTestService(t)
	kept := seedAdmin(t, s, "kept@example.com")
	removed := seedAdmin(t, s, "removed@example.com")
	require.NoError(t, s.Remove(removed.ID))

	admins, err := s.List()
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, kept.ID, admins[0].ID)
}

func TestFindOneExcludesInactive(t *testing.T) {
	s := newTestService(t)
	admin := seedAdmin(t, s, "ada@example.com")
	require.NoError(t, s.Remove(admin.ID))

	_, err := s.FindOne(admin.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePartialPatch(t *testing.T) {
	s := newTestService(t)
	admin := seedAdmin(t, s, "ada@example.com")

	first := "Grace"
	updated, err := s.Update(admin.ID, &UpdateAdministratorDTO{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)
	assert.Equal(t, "ada@example.com", updated.Email)
}

func TestUpdateEmailConflict(t *testing.T) {
	s := newTestService(t)
	admin := seedAdmin(t, s, "ada@example.com")
	seedAdmin(t, s, "grace@example.com")

	email := "grace@example.com"
	_, err := s.Update(admin.ID, &UpdateAdministratorDTO{Email: &email})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Re-submitting the current email is not a conflict.
	same := "ada@example.com"
	updated, err := s.Update(admin.ID, &UpdateAdministratorDTO{Email: &same})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", updated.Email)
}

func TestUpdateEmailConflictWithInactiveRecord(t *testing.T) {
	s := newTestService(t)
	removed := seedAdmin(t, s, "removed@example.com")
	require.NoError(t, s.Remove(removed.ID))
	admin := seedAdmin(t, s, "ada@example.com")

	// The unique index still holds the soft-deleted row's email.
	email := "removed@example.com"
	_, err := s.Update(admin.ID, &UpdateAdministratorDTO{Email: &email})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateRehashesPassword(t *testing.T) {
	s := newTestService(t)
	admin := seedAdmin(t, s, "ada@example.com")

	next := "anothersecret"
	_, err := s.Update(admin.ID, &UpdateAdministratorDTO{Password: &next})
	require.NoError(t, err)

	_, err = s.ValidateLogin("ada@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := s.ValidateLogin("ada@example.com", "anothersecret")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
}

func TestValidateLogin(t *testing.T) {
	s := newTestService(t)
	admin := seedAdmin(t, s, "ada@example.com")

	got, err := s.ValidateLogin("ada@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	_, err = s.ValidateLogin("ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.ValidateLogin("nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, s.Remove(admin.ID))
	_, err = s.ValidateLogin("ada@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
