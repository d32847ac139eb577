package blog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/halcyonweb/core/internal/middleware"
	"github.com/halcyonweb/core/internal/models"
	jwtpkg "github.com/halcyonweb/core/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service, *models.Administrator) {
	t.Helper()
	require.NoError(t, jwtpkg.Init("test-access-secret", "test-refresh-secret"))
	gin.SetMode(gin.TestMode)

	svc, author := newTestService(t)
	handler := NewHandler(svc, zap.NewNop())

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterRoutes(api, middleware.Auth())
	return router, svc, author
}

func bearerFor(t *testing.T, admin *models.Administrator) string {
	t.Helper()
	token, err := jwtpkg.SignAccess(admin.ID, admin.Email, admin.FirstName, admin.LastName)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(router *gin.Engine, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Count      *int            `json:"count"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, w.Code, env.StatusCode)
	return env
}

func TestCreateRequiresAuth(t *testing.T) {
	router, _, author := newTestRouter(t)

	body := gin.H{"title": "An Entry", "content": "<p>Long enough content.</p>", "author_id": author.ID}

	w := doJSON(router, http.MethodPost, "/api/blog", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/blog", "Bearer garbage", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/blog", bearerFor(t, author), body)
	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Post created successfully", env.Message)
}

func TestCreateValidationErrors(t *testing.T) {
	router, _, author := newTestRouter(t)
	auth := bearerFor(t, author)

	w := doJSON(router, http.MethodPost, "/api/blog", auth, gin.H{
		"title": "ab", "content": "<p>Long enough content.</p>", "author_id": author.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/blog", auth, gin.H{
		"title": "Valid Title", "content": "short", "author_id": author.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/blog", auth, gin.H{
		"title": "Valid Title", "content": "<p>Long enough content.</p>",
		"author_id": author.ID, "featured_image": "https://cdn.example.com/not-an-image.pdf",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicReadsAndViewCounter(t *testing.T) {
	router, svc, author := newTestRouter(t)
	post := createPost(t, svc, author.ID, func(d *CreatePostDTO) { d.IsPublished = true })

	w := doJSON(router, http.MethodGet, "/api/blog/slug/"+post.Slug, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, fmt.Sprintf("/api/blog/slug/%s/view", post.Slug), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var data struct {
		ViewCount int `json:"view_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.ViewCount)

	w = doJSON(router, http.MethodGet, "/api/blog/slug/missing-slug", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListEnvelopeCarriesCount(t *testing.T) {
	router, svc, author := newTestRouter(t)
	createPost(t, svc, author.ID, func(d *CreatePostDTO) { d.IsPublished = true })
	createPost(t, svc, author.ID, func(d *CreatePostDTO) {
		d.Title = "Second Entry"
		d.IsPublished = true
	})

	w := doJSON(router, http.MethodGet, "/api/blog/published", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
}

func TestCategoryRouteRejectsUnknownCategory(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/blog/category/nonsense", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/api/blog/category/newsroom", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteFlow(t *testing.T) {
	router, svc, author := newTestRouter(t)
	post := createPost(t, svc, author.ID, nil)
	auth := bearerFor(t, author)

	w := doJSON(router, http.MethodDelete, "/api/blog/"+post.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/blog/"+post.ID, auth, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/blog/"+post.ID, auth, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchRequiresTerm(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/blog/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/api/blog/search?q=anything", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
