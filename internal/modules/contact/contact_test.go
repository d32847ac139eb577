package contact

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/halcyonweb/core/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, cfg mail.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(mail.New(cfg), nil, zap.NewNop())
	handler := NewHandler(svc, zap.NewNop())

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterRoutes(api)
	return router
}

func postContact(router *gin.Engine, body gin.H) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, "/api/contact", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validBody() gin.H {
	return gin.H{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"subject": "Partnership",
		"message": "I would like to discuss a partnership.",
	}
}

func TestSubmitValidation(t *testing.T) {
	router := newTestRouter(t, mail.Config{})

	tests := []struct {
		name   string
		mutate func(gin.H)
	}{
		{"missing name", func(b gin.H) { delete(b, "name") }},
		{"bad email", func(b gin.H) { b["email"] = "not-an-email" }},
		{"short message", func(b gin.H) { b["message"] = "hi" }},
		{"missing subject", func(b gin.H) { delete(b, "subject") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validBody()
			tt.mutate(body)
			w := postContact(router, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSubmitWithUnconfiguredMailerIsServerError(t *testing.T) {
	router := newTestRouter(t, mail.Config{})

	w := postContact(router, validBody())
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var env struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	// The client never learns transport details.
	assert.Equal(t, "Internal server error", env.Message)
}

func TestDebugEmailReportsOnlyBooleans(t *testing.T) {
	router := newTestRouter(t, mail.Config{
		Host: "smtp.example.com", User: "mailer", Pass: "secretvalue", Recipient: "inbox@example.com",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/contact/debug-email", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotContains(t, w.Body.String(), "secretvalue")
	assert.NotContains(t, w.Body.String(), "smtp.example.com")

	var env struct {
		Data struct {
			Configured bool            `json:"configured"`
			Settings   map[string]bool `json:"settings"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Data.Configured)
	assert.True(t, env.Data.Settings["host"])
	assert.False(t, env.Data.Settings["from"])
}
