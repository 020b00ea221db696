package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

const (
	opListComments  = "Failed to fetch comments"
	opAddComment    = "Failed to add comment"
	opDeleteComment = "Failed to delete comment"
	opGetProfile    = "Failed to fetch user profile"
)

func (c *HTTPClient) ListComments(ctx context.Context, blogID string) (json.RawMessage, error) {
	return c.raw(ctx, request{op: opListComments, method: http.MethodGet, path: "/api/comments/" + url.PathEscape(blogID)})
}

func (c *HTTPClient) AddComment(ctx context.Context, in models.CommentInput) (json.RawMessage, error) {
	req, err := jsonRequest(opAddComment, http.MethodPost, "/api/comments", in)
	if err != nil {
		return nil, err
	}
	req.auth = true
	return c.raw(ctx, req)
}

func (c *HTTPClient) DeleteComment(ctx context.Context, id string) (json.RawMessage, error) {
	return c.raw(ctx, request{op: opDeleteComment, method: http.MethodDelete, path: "/api/comments/" + url.PathEscape(id), auth: true})
}

// GetUserProfile fetches the profile of user id, or of the current user when
// id is empty.
func (c *HTTPClient) GetUserProfile(ctx context.Context, id string) (json.RawMessage, error) {
	path := "/api/users/me"
	if id != "" {
		path = "/api/users/" + url.PathEscape(id)
	}
	return c.raw(ctx, request{op: opGetProfile, method: http.MethodGet, path: path, auth: true})
}
