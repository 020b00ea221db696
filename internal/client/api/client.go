package api

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

// Client is the full backend contract.
type Client interface {
	SetAuthToken(token string)
	AuthToken() string
	OnUnauthorized(fn func())

	Register(ctx context.Context, r models.Registration) error
	Login(ctx context.Context, c models.Credentials) (*models.LoginResponse, error)
	Me(ctx context.Context) (*models.MeResponse, error)

	ListBlogs(ctx context.Context, opts models.ListOptions) (json.RawMessage, error)
	GetBlog(ctx context.Context, id string) (json.RawMessage, error)
	CreateBlog(ctx context.Context, s models.BlogSubmission) (json.RawMessage, error)
	UpdateBlog(ctx context.Context, id string, s models.BlogSubmission) (json.RawMessage, error)
	DeleteBlog(ctx context.Context, id string) (json.RawMessage, error)
	ListUserBlogs(ctx context.Context, opts models.ListOptions) (json.RawMessage, error)

	ListComments(ctx context.Context, blogID string) (json.RawMessage, error)
	AddComment(ctx context.Context, c models.CommentInput) (json.RawMessage, error)
	DeleteComment(ctx context.Context, id string) (json.RawMessage, error)

	GetUserProfile(ctx context.Context, id string) (json.RawMessage, error)
}

var _ Client = (*HTTPClient)(nil)
