package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
jwt:
  access_secret: access
  refresh_secret: refresh
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: Production
allowed_origins:
  - " https://example.com "
  - ""
database:
  host: db.internal
  user: app
  password: s3cret
  name: website
redis:
  host: cache.internal
  db: 2
jwt:
  access_secret: access
  refresh_secret: refresh
smtp:
  host: smtp.example.com
  user: mailer
  pass: mailpass
  recipient: inbox@example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
}

func TestLoadRequiresJWTSecrets(t *testing.T) {
	path := writeConfig(t, `
jwt:
  access_secret: access
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh_secret")

	path = writeConfig(t, `port: 8080`)
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_secret")
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	path := writeConfig(t, `
port: 99999
jwt:
  access_secret: a
  refresh_secret: r
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestDSNValue(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     3307,
		User:     "app",
		Password: "pw",
		Name:     "website",
	}
	dsn := cfg.DSNValue()
	assert.Contains(t, dsn, "app:pw@tcp(db.internal:3307)/website?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	explicit := DatabaseConfig{DSN: "user:pass@tcp(h:3306)/db"}
	assert.Equal(t, "user:pass@tcp(h:3306)/db", explicit.DSNValue())
}

func TestRedisURLValue(t *testing.T) {
	assert.Equal(t, "redis://localhost:6379/0", RedisConfig{}.URLValue())
	assert.Equal(t, "rediss://cache:6380/1", RedisConfig{Host: "cache", Port: 6380, DB: 1, TLS: true}.URLValue())
	assert.Equal(t, "redis://cache:6379", RedisConfig{URL: "cache:6379"}.URLValue())
	assert.Equal(t, "redis://cache:6379/0", RedisConfig{URL: "redis://cache:6379/0"}.URLValue())
}
