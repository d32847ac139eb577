package blog

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	titleMinLen   = 3
	titleMaxLen   = 200
	contentMinLen = 10
	excerptMaxLen = 500
)

// ContentFormatMarkdown marks content that should be rendered to HTML
// before storage. Anything else is treated as HTML.
const ContentFormatMarkdown = "markdown"

type CreatePostDTO struct {
	Title         string            `json:"title"          binding:"required"`
	Content       string            `json:"content"        binding:"required"`
	ContentFormat string            `json:"content_format"`
	Excerpt       string            `json:"excerpt"`
	FeaturedImage string            `json:"featured_image"`
	UploadedImage *UploadedImageDTO `json:"uploaded_image"`
	IsPublished   bool              `json:"is_published"`
	IsFeatured    bool              `json:"is_featured"`
	Categories    []string          `json:"categories"`
	AuthorID      string            `json:"author_id"      binding:"required"`
}

type UpdatePostDTO struct {
	Title         *string           `json:"title"`
	Content       *string           `json:"content"`
	ContentFormat string            `json:"content_format"`
	Excerpt       *string           `json:"excerpt"`
	FeaturedImage *string           `json:"featured_image"`
	UploadedImage *UploadedImageDTO `json:"uploaded_image"`
	IsPublished   *bool             `json:"is_published"`
	IsFeatured    *bool             `json:"is_featured"`
	Categories    []string          `json:"categories"`
}

// UploadedImageDTO carries an inline base64 image payload.
type UploadedImageDTO struct {
	Data        string `json:"data"        binding:"required"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".avif"}

// Validate applies the field rules for creation.
func (d *CreatePostDTO) Validate() error {
	if err := validateTitle(d.Title); err != nil {
		return err
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.Content)) < contentMinLen {
		return fmt.Errorf("content must be at least %d characters", contentMinLen)
	}
	if err := validateExcerpt(d.Excerpt); err != nil {
		return err
	}
	if err := validateFeaturedImage(d.FeaturedImage); err != nil {
		return err
	}
	return nil
}

// Validate applies the field rules for update, checking only present fields.
func (d *UpdatePostDTO) Validate() error {
	if d.Title != nil {
		if err := validateTitle(*d.Title); err != nil {
			return err
		}
	}
	if d.Content != nil && utf8.RuneCountInString(strings.TrimSpace(*d.Content)) < contentMinLen {
		return fmt.Errorf("content must be at least %d characters", contentMinLen)
	}
	if d.Excerpt != nil {
		if err := validateExcerpt(*d.Excerpt); err != nil {
			return err
		}
	}
	if d.FeaturedImage != nil {
		if err := validateFeaturedImage(*d.FeaturedImage); err != nil {
			return err
		}
	}
	return nil
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n < titleMinLen || n > titleMaxLen {
		return fmt.Errorf("title must be between %d and %d characters", titleMinLen, titleMaxLen)
	}
	return nil
}

func validateExcerpt(excerpt string) error {
	if utf8.RuneCountInString(excerpt) > excerptMaxLen {
		return fmt.Errorf("excerpt must be at most %d characters", excerptMaxLen)
	}
	return nil
}

// validateFeaturedImage accepts an empty value or a URL/path pointing at an
// image file.
func validateFeaturedImage(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	path := trimmed
	if u, err := url.Parse(trimmed); err == nil && u.Path != "" {
		path = u.Path
	}
	lower := strings.ToLower(path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return fmt.Errorf("featured_image must point to an image file")
}
