// Package blog implements post CRUD, publication state, and read-side
// queries for the public site.
package blog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/halcyonweb/core/internal/models"
	"github.com/halcyonweb/core/internal/pkg/pagination"
	slugpkg "github.com/halcyonweb/core/internal/pkg/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	recentDefaultLimit = 5
	searchMaxLimit     = 50
	recentWindow       = 7 * 24 * time.Hour
)

var (
	ErrNotFound        = errors.New("post not found")
	ErrInvalidAuthor   = errors.New("author id is not a valid administrator")
	ErrInvalidCategory = errors.New("unknown category")
	ErrSlugConflict    = errors.New("slug already exists")
	ErrFeaturedDraft   = errors.New("cannot feature an unpublished post")
)

// ListQuery holds the optional filters for FindAll.
type ListQuery struct {
	Published *bool
	Featured  *bool
	AuthorID  string
	Category  string
	Search    string
}

// Statistics is the aggregate snapshot served by /blog/statistics.
type Statistics struct {
	TotalPosts        int64            `json:"total_posts"`
	PublishedPosts    int64            `json:"published_posts"`
	DraftPosts        int64            `json:"draft_posts"`
	FeaturedPosts     int64            `json:"featured_posts"`
	RecentlyPublished int64            `json:"recently_published"`
	TotalViews        int64            `json:"total_views"`
	PostsByCategory   map[string]int64 `json:"posts_by_category"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// Create inserts a new post. The slug is derived from the title; colliding
// titles get -1, -2, ... suffixes. A concurrent creation with the same title
// can still lose the race at the unique index, which surfaces as a conflict.
func (s *Service) Create(dto *CreatePostDTO) (*models.Post, error) {
	if uuid.Validate(dto.AuthorID) != nil {
		return nil, ErrInvalidAuthor
	}
	var authorCount int64
	if err := s.db.Model(&models.Administrator{}).
		Where("id = ? AND is_active = ?", dto.AuthorID, true).
		Count(&authorCount).Error; err != nil {
		return nil, err
	}
	if authorCount == 0 {
		return nil, ErrInvalidAuthor
	}
	if dto.IsFeatured && !dto.IsPublished {
		return nil, ErrFeaturedDraft
	}

	slug, err := s.uniqueSlug(dto.Title, "")
	if err != nil {
		return nil, err
	}

	content := renderContent(dto.Content, dto.ContentFormat)
	excerpt := strings.TrimSpace(dto.Excerpt)
	if excerpt == "" {
		excerpt = deriveExcerpt(content)
	}

	post := models.Post{
		Title:         strings.TrimSpace(dto.Title),
		Slug:          slug,
		Content:       content,
		Excerpt:       excerpt,
		FeaturedImage: strings.TrimSpace(dto.FeaturedImage),
		IsPublished:   dto.IsPublished,
		IsFeatured:    dto.IsFeatured,
		Categories:    models.NormalizeCategories(dto.Categories),
		AuthorID:      dto.AuthorID,
	}
	if dto.UploadedImage != nil {
		post.UploadedImage = dto.UploadedImage.Data
		post.UploadedImageFilename = dto.UploadedImage.Filename
		post.UploadedImageContentType = dto.UploadedImage.ContentType
	}
	if dto.IsPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.db.Create(&post).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrSlugConflict
		}
		return nil, err
	}
	return s.FindOne(post.ID)
}

// FindAll returns a filtered, paginated page of posts, newest first.
func (s *Service) FindAll(q pagination.Query, lq ListQuery) ([]models.Post, pagination.Meta, error) {
	tx := s.db.Model(&models.Post{}).Preload("Author").Order("created_at DESC")

	if lq.Published != nil {
		tx = tx.Where("is_published = ?", *lq.Published)
	}
	if lq.Featured != nil {
		tx = tx.Where("is_featured = ?", *lq.Featured)
	}
	if lq.AuthorID != "" {
		tx = tx.Where("author_id = ?", lq.AuthorID)
	}
	if lq.Category != "" {
		if !models.IsValidCategory(lq.Category) {
			return nil, pagination.Meta{}, ErrInvalidCategory
		}
		tx = tx.Where("categories LIKE ?", categoryPattern(lq.Category))
	}
	if term := strings.TrimSpace(lq.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(excerpt) LIKE ?", like, like, like)
	}

	var posts []models.Post
	meta, err := pagination.Paginate(tx, q, &posts)
	return posts, meta, err
}

// FindByCategory returns posts in a category, most recently published first.
// The LIKE prefilter narrows the scan; the in-Go membership check is what
// decides inclusion.
func (s *Service) FindByCategory(category string, publishedOnly bool) ([]models.Post, error) {
	if !models.IsValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	tx := s.db.Preload("Author").
		Where("categories LIKE ?", categoryPattern(category)).
		Order("published_at DESC")
	if publishedOnly {
		tx = tx.Where("is_published = ?", true)
	}

	var candidates []models.Post
	if err := tx.Find(&candidates).Error; err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(candidates))
	for _, p := range candidates {
		for _, c := range p.Categories {
			if c == category {
				posts = append(posts, p)
				break
			}
		}
	}
	return posts, nil
}

// FindOne fetches a post by id regardless of publication state.
func (s *Service) FindOne(id string) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Author").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// FindBySlug fetches a published post by slug.
func (s *Service) FindBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Author").
		Where("slug = ? AND is_published = ?", slug, true).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Published returns published posts, most recently published first.
func (s *Service) Published(q pagination.Query) ([]models.Post, pagination.Meta, error) {
	tx := s.db.Model(&models.Post{}).Preload("Author").
		Where("is_published = ?", true).
		Order("published_at DESC")

	var posts []models.Post
	meta, err := pagination.Paginate(tx, q, &posts)
	return posts, meta, err
}

// Featured returns published posts flagged as featured.
func (s *Service) Featured() ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Preload("Author").
		Where("is_published = ? AND is_featured = ?", true, true).
		Order("published_at DESC").
		Find(&posts).Error
	return posts, err
}

// Recent returns the most recently published posts.
func (s *Service) Recent(limit int) ([]models.Post, error) {
	if limit < 1 {
		limit = recentDefaultLimit
	}
	var posts []models.Post
	err := s.db.Preload("Author").
		Where("is_published = ?", true).
		Order("published_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// Search performs a case-insensitive substring match over title, content,
// and excerpt. Results are capped.
func (s *Service) Search(term string, publishedOnly bool, limit int) ([]models.Post, error) {
	if limit < 1 || limit > searchMaxLimit {
		limit = searchMaxLimit
	}
	like := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"

	tx := s.db.Preload("Author").
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(excerpt) LIKE ?", like, like, like).
		Order("created_at DESC").
		Limit(limit)
	if publishedOnly {
		tx = tx.Where("is_published = ?", true)
	}

	var posts []models.Post
	err := tx.Find(&posts).Error
	return posts, err
}

// IncrementViewBySlug bumps the view counter of a published post in a single
// statement and returns the new count.
func (s *Service) IncrementViewBySlug(slug string) (int, error) {
	result := s.db.Model(&models.Post{}).
		Where("slug = ? AND is_published = ?", slug, true).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	var count int
	err := s.db.Model(&models.Post{}).Select("view_count").Where("slug = ?", slug).
		Scan(&count).Error
	return count, err
}

// Update patches a post. Publication transitions follow fixed rules:
// publishing stamps published_at once and never overwrites it, unpublishing
// clears it and drops the featured flag.
func (s *Service) Update(id string, dto *UpdatePostDTO) (*models.Post, error) {
	post, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if dto.Title != nil && strings.TrimSpace(*dto.Title) != post.Title {
		title := strings.TrimSpace(*dto.Title)
		slug, err := s.uniqueSlug(title, post.ID)
		if err != nil {
			return nil, err
		}
		updates["title"] = title
		updates["slug"] = slug
	}
	if dto.Content != nil {
		updates["content"] = renderContent(*dto.Content, dto.ContentFormat)
	}
	if dto.Excerpt != nil {
		updates["excerpt"] = strings.TrimSpace(*dto.Excerpt)
	}
	if dto.FeaturedImage != nil {
		updates["featured_image"] = strings.TrimSpace(*dto.FeaturedImage)
	}
	if dto.UploadedImage != nil {
		updates["uploaded_image"] = dto.UploadedImage.Data
		updates["uploaded_image_filename"] = dto.UploadedImage.Filename
		updates["uploaded_image_content_type"] = dto.UploadedImage.ContentType
	}
	if dto.Categories != nil {
		updates["categories"] = models.NormalizeCategories(dto.Categories)
	}

	resultPublished := post.IsPublished
	if dto.IsPublished != nil {
		resultPublished = *dto.IsPublished
		updates["is_published"] = resultPublished
	}
	if dto.IsFeatured != nil {
		if *dto.IsFeatured && !resultPublished {
			return nil, ErrFeaturedDraft
		}
		updates["is_featured"] = *dto.IsFeatured
	}
	if resultPublished {
		if post.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	} else if dto.IsPublished != nil {
		updates["published_at"] = nil
		updates["is_featured"] = false
	}

	if len(updates) > 0 {
		if err := s.db.Model(post).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, ErrSlugConflict
			}
			return nil, err
		}
	}
	return s.FindOne(id)
}

// Remove hard-deletes a post.
func (s *Service) Remove(id string) error {
	result := s.db.Delete(&models.Post{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetStatistics builds the dashboard aggregate. Per-category counts cover
// published posts and are zero-filled for every known category.
func (s *Service) GetStatistics() (*Statistics, error) {
	stats := &Statistics{PostsByCategory: map[string]int64{}}
	for _, c := range models.AllCategories() {
		stats.PostsByCategory[c] = 0
	}

	if err := s.db.Model(&models.Post{}).Count(&stats.TotalPosts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Post{}).Where("is_published = ?", true).
		Count(&stats.PublishedPosts).Error; err != nil {
		return nil, err
	}
	stats.DraftPosts = stats.TotalPosts - stats.PublishedPosts

	if err := s.db.Model(&models.Post{}).
		Where("is_published = ? AND is_featured = ?", true, true).
		Count(&stats.FeaturedPosts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Post{}).
		Where("is_published = ? AND published_at >= ?", true, time.Now().Add(-recentWindow)).
		Count(&stats.RecentlyPublished).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Post{}).Where("is_published = ?", true).
		Select("COALESCE(SUM(view_count), 0)").Scan(&stats.TotalViews).Error; err != nil {
		return nil, err
	}

	var published []models.Post
	if err := s.db.Select("categories").Where("is_published = ?", true).
		Find(&published).Error; err != nil {
		return nil, err
	}
	for _, p := range published {
		for _, c := range p.Categories {
			if _, ok := stats.PostsByCategory[c]; ok {
				stats.PostsByCategory[c]++
			}
		}
	}

	return stats, nil
}

// uniqueSlug derives a slug from the title and suffixes it until no other
// post holds it.
func (s *Service) uniqueSlug(title, excludeID string) (string, error) {
	base := slugpkg.Make(title)
	if base == "" {
		base = "post"
	}

	candidate := base
	for i := 1; ; i++ {
		var count int64
		tx := s.db.Model(&models.Post{}).Where("slug = ?", candidate)
		if excludeID != "" {
			tx = tx.Where("id <> ?", excludeID)
		}
		if err := tx.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// categoryPattern matches the quoted JSON token inside the categories column.
func categoryPattern(category string) string {
	return fmt.Sprintf(`%%"%s"%%`, category)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint")
}
