package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GetPublishedPosts returns a page of published posts.
func (c *Client) GetPublishedPosts(ctx context.Context, page, limit int) (*PostPage, error) {
	var out PostPage
	path := fmt.Sprintf("/blog/published?page=%d&limit=%d", page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFeaturedPosts returns all featured published posts.
func (c *Client) GetFeaturedPosts(ctx context.Context) ([]Post, error) {
	var out []Post
	if err := c.do(ctx, http.MethodGet, "/blog/featured", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRecentPosts returns the most recently published posts.
func (c *Client) GetRecentPosts(ctx context.Context, limit int) ([]Post, error) {
	var out []Post
	path := fmt.Sprintf("/blog/recent?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPostBySlug fetches a single published post.
func (c *Client) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodGet, "/blog/slug/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPostsByCategory returns published posts in a category.
func (c *Client) GetPostsByCategory(ctx context.Context, category string) ([]Post, error) {
	var out []Post
	if err := c.do(ctx, http.MethodGet, "/blog/category/"+url.PathEscape(category), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchPosts runs a published-post search.
func (c *Client) SearchPosts(ctx context.Context, term string) ([]Post, error) {
	var out []Post
	path := "/blog/search?q=" + url.QueryEscape(term)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStatistics fetches the blog statistics aggregate.
func (c *Client) GetStatistics(ctx context.Context) (*Statistics, error) {
	var out Statistics
	if err := c.do(ctx, http.MethodGet, "/blog/statistics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordView bumps a post's view counter and returns the new count.
func (c *Client) RecordView(ctx context.Context, slug string) (int, error) {
	var out struct {
		ViewCount int `json:"view_count"`
	}
	path := "/blog/slug/" + url.PathEscape(slug) + "/view"
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return 0, err
	}
	return out.ViewCount, nil
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshToken exchanges a refresh token for a new access token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", body, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// CreatePost creates a post. Requires a token source.
func (c *Client) CreatePost(ctx context.Context, post map[string]interface{}) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodPost, "/blog", post, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePost patches a post. Requires a token source.
func (c *Client) UpdatePost(ctx context.Context, id string, patch map[string]interface{}) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodPatch, "/blog/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost removes a post. Requires a token source.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/blog/"+url.PathEscape(id), nil, nil)
}
