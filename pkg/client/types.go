package client

import (
	"encoding/json"
	"strings"
	"time"
)

// Known category slugs. Servers of any vintage only ever use these four.
const (
	CategoryNewsroom          = "newsroom"
	CategoryThoughtPieces     = "thought-pieces"
	CategoryAchievements      = "achievements"
	CategoryAwardsRecognition = "awards-recognition"

	defaultCategory = CategoryNewsroom
)

var knownCategories = map[string]bool{
	CategoryNewsroom:          true,
	CategoryThoughtPieces:     true,
	CategoryAchievements:      true,
	CategoryAwardsRecognition: true,
}

// CategoryList tolerates every shape older API versions have returned for
// categories: a JSON array, a comma-joined string, or garbage. Decoding
// always yields a non-empty list of known categories.
type CategoryList []string

func (l *CategoryList) UnmarshalJSON(data []byte) error {
	var values []string

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		values = arr
	} else {
		var single string
		if err := json.Unmarshal(data, &single); err == nil {
			values = strings.Split(single, ",")
		}
	}

	out := make(CategoryList, 0, len(values))
	seen := map[string]bool{}
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if knownCategories[v] && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		out = CategoryList{defaultCategory}
	}
	*l = out
	return nil
}

// Author is the post author as exposed by the API.
type Author struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName joins the author's name parts.
func (a Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Post is a blog post as exposed by the API.
type Post struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Content       string       `json:"content"`
	Excerpt       string       `json:"excerpt"`
	FeaturedImage string       `json:"featured_image"`
	IsPublished   bool         `json:"is_published"`
	IsFeatured    bool         `json:"is_featured"`
	ViewCount     int          `json:"view_count"`
	Categories    CategoryList `json:"categories"`
	Author        *Author      `json:"author,omitempty"`
	PublishedAt   *time.Time   `json:"published_at"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// UnmarshalJSON guarantees Categories is populated even when the key is
// absent from the payload. CategoryList's own decoder only runs when the key
// is present, so the missing-key case is defaulted here.
func (p *Post) UnmarshalJSON(data []byte) error {
	type alias Post
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Categories) == 0 {
		raw.Categories = CategoryList{defaultCategory}
	}
	*p = Post(raw)
	return nil
}

// Pagination is the paging metadata returned with list responses.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// PostPage is a paginated slice of posts.
type PostPage struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// Statistics is the blog statistics aggregate.
type Statistics struct {
	TotalPosts        int64            `json:"total_posts"`
	PublishedPosts    int64            `json:"published_posts"`
	DraftPosts        int64            `json:"draft_posts"`
	FeaturedPosts     int64            `json:"featured_posts"`
	RecentlyPublished int64            `json:"recently_published"`
	TotalViews        int64            `json:"total_views"`
	PostsByCategory   map[string]int64 `json:"posts_by_category"`
}

// LoginResult is the payload returned by a successful login.
type LoginResult struct {
	AccessToken   string `json:"access_token"`
	RefreshToken  string `json:"refresh_token"`
	Administrator Author `json:"administrator"`
}
