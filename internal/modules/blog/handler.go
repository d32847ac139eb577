package blog

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/halcyonweb/core/internal/pkg/pagination"
	"github.com/halcyonweb/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts the blog surface. Reads are public; create, update,
// and delete require a bearer token.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/blog")

	g.GET("", h.findAll)
	g.GET("/published", h.published)
	g.GET("/featured", h.featured)
	g.GET("/recent", h.recent)
	g.GET("/search", h.search)
	g.GET("/statistics", h.statistics)
	g.GET("/category/:category", h.findByCategory)
	g.GET("/slug/:slug", h.findBySlug)
	g.POST("/slug/:slug/view", h.incrementView)
	g.GET("/:id", h.findOne)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PATCH("/:id", h.update)
	a.DELETE("/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := dto.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.svc.Create(&dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, "Post created successfully", post)
}

func (h *Handler) findAll(c *gin.Context) {
	q := pagination.FromContext(c)
	lq := ListQuery{
		AuthorID: c.Query("author_id"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if raw, ok := c.GetQuery("published"); ok {
		v := raw == "true"
		lq.Published = &v
	}
	if raw, ok := c.GetQuery("featured"); ok {
		v := raw == "true"
		lq.Featured = &v
	}

	posts, meta, err := h.svc.FindAll(q, lq)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OKCount(c, "Posts retrieved successfully", gin.H{
		"posts":      posts,
		"pagination": meta,
	}, len(posts))
}

func (h *Handler) published(c *gin.Context) {
	q := pagination.FromContext(c)
	posts, meta, err := h.svc.Published(q)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OKCount(c, "Published posts retrieved successfully", gin.H{
		"posts":      posts,
		"pagination": meta,
	}, len(posts))
}

func (h *Handler) featured(c *gin.Context) {
	posts, err := h.svc.Featured()
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OKCount(c, "Featured posts retrieved successfully", posts, len(posts))
}

func (h *Handler) recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	posts, err := h.svc.Recent(limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OKCount(c, "Recent posts retrieved successfully", posts, len(posts))
}

func (h *Handler) search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		term = c.Query("search")
	}
	if term == "" {
		response.BadRequest(c, "Search term is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	publishedOnly := c.DefaultQuery("published", "true") != "false"

	posts, err := h.svc.Search(term, publishedOnly, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OKCount(c, "Search completed successfully", posts, len(posts))
}

func (h *Handler) statistics(c *gin.Context) {
	stats, err := h.svc.GetStatistics()
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Statistics retrieved successfully", stats)
}

func (h *Handler) findByCategory(c *gin.Context) {
	publishedOnly := c.DefaultQuery("published", "true") != "false"
	posts, err := h.svc.FindByCategory(c.Param("category"), publishedOnly)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OKCount(c, "Posts retrieved successfully", posts, len(posts))
}

func (h *Handler) findBySlug(c *gin.Context) {
	post, err := h.svc.FindBySlug(c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Post retrieved successfully", post)
}

func (h *Handler) incrementView(c *gin.Context) {
	count, err := h.svc.IncrementViewBySlug(c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "View recorded", gin.H{"view_count": count})
}

func (h *Handler) findOne(c *gin.Context) {
	post, err := h.svc.FindOne(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Post retrieved successfully", post)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := dto.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Post updated successfully", post)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Remove(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Post deleted successfully", nil)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Post not found")
	case errors.Is(err, ErrInvalidAuthor), errors.Is(err, ErrInvalidCategory), errors.Is(err, ErrFeaturedDraft):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrSlugConflict):
		response.Conflict(c, "A post with this slug already exists")
	default:
		h.log.Error("blog request failed", zap.Error(err))
		response.InternalError(c)
	}
}
