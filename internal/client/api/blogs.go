package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

const (
	opListBlogs     = "Failed to fetch blogs"
	opGetBlog       = "Failed to fetch blog"
	opCreateBlog    = "Failed to create blog"
	opUpdateBlog    = "Failed to update blog"
	opDeleteBlog    = "Failed to delete blog"
	opListUserBlogs = "Failed to fetch user blogs"
)

// ListBlogs returns a page of public blogs. Page, limit and search are
// forwarded as given after defaults are applied.
func (c *HTTPClient) ListBlogs(ctx context.Context, opts models.ListOptions) (json.RawMessage, error) {
	opts = opts.Normalized()
	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("limit", strconv.Itoa(opts.Limit))
	q.Set("search", opts.Search)

	return c.raw(ctx, request{op: opListBlogs, method: http.MethodGet, path: "/api/blogs", query: q})
}

// GetBlog fetches a single blog by id.
func (c *HTTPClient) GetBlog(ctx context.Context, id string) (json.RawMessage, error) {
	return c.raw(ctx, request{op: opGetBlog, method: http.MethodGet, path: "/api/blogs/" + url.PathEscape(id)})
}

// CreateBlog posts s as multipart/form-data.
func (c *HTTPClient) CreateBlog(ctx context.Context, s models.BlogSubmission) (json.RawMessage, error) {
	body, contentType, err := encodeSubmission(s)
	if err != nil {
		return nil, &Error{Op: opCreateBlog, Message: opCreateBlog, Err: err}
	}

	return c.raw(ctx, request{
		op:          opCreateBlog,
		method:      http.MethodPost,
		path:        "/api/blogs",
		body:        body,
		contentType: contentType,
		auth:        true,
	})
}

// UpdateBlog replaces blog id with s, sent as multipart/form-data.
func (c *HTTPClient) UpdateBlog(ctx context.Context, id string, s models.BlogSubmission) (json.RawMessage, error) {
	body, contentType, err := encodeSubmission(s)
	if err != nil {
		return nil, &Error{Op: opUpdateBlog, Message: opUpdateBlog, Err: err}
	}

	return c.raw(ctx, request{
		op:          opUpdateBlog,
		method:      http.MethodPut,
		path:        "/api/blogs/" + url.PathEscape(id),
		body:        body,
		contentType: contentType,
		auth:        true,
	})
}

// DeleteBlog removes blog id.
func (c *HTTPClient) DeleteBlog(ctx context.Context, id string) (json.RawMessage, error) {
	return c.raw(ctx, request{op: opDeleteBlog, method: http.MethodDelete, path: "/api/blogs/" + url.PathEscape(id), auth: true})
}

// ListUserBlogs returns the current user's blogs. Search is not supported by
// this endpoint and is not sent.
func (c *HTTPClient) ListUserBlogs(ctx context.Context, opts models.ListOptions) (json.RawMessage, error) {
	opts = opts.Normalized()
	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("limit", strconv.Itoa(opts.Limit))

	return c.raw(ctx, request{op: opListUserBlogs, method: http.MethodGet, path: "/api/blogs/user", query: q, auth: true})
}
