package models

import "time"

// Post is a blog post.
type Post struct {
	Base
	Title                    string         `json:"title"                       gorm:"not null"`
	Slug                     string         `json:"slug"                        gorm:"uniqueIndex;not null"`
	Content                  string         `json:"content"                     gorm:"type:longtext"`
	Excerpt                  string         `json:"excerpt"`
	FeaturedImage            string         `json:"featured_image"`
	UploadedImage            string         `json:"uploaded_image,omitempty"    gorm:"type:longtext"`
	UploadedImageFilename    string         `json:"uploaded_image_filename,omitempty"`
	UploadedImageContentType string         `json:"uploaded_image_content_type,omitempty"`
	IsPublished              bool           `json:"is_published"                gorm:"default:false;index"`
	IsFeatured               bool           `json:"is_featured"                 gorm:"default:false"`
	ViewCount                int            `json:"view_count"                  gorm:"default:0"`
	Categories               StringArray    `json:"categories"                  gorm:"type:json"`
	AuthorID                 string         `json:"author_id"                   gorm:"type:char(36);index;not null"`
	Author                   *Administrator `json:"author,omitempty"            gorm:"foreignKey:AuthorID"`
	PublishedAt              *time.Time     `json:"published_at"`
}

func (Post) TableName() string { return "posts" }
