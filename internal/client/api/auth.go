package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

const (
	opRegister = "Registration failed"
	opLogin    = "Login failed"
	opMe       = "Failed to load user"
)

// Register creates an account. The response body is not used.
func (c *HTTPClient) Register(ctx context.Context, r models.Registration) error {
	req, err := jsonRequest(opRegister, http.MethodPost, "/api/auth/register", r)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, req)
	return err
}

// Login exchanges credentials for a token. A 2xx response without a token
// is returned as is; the caller decides what that means.
func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	req, err := jsonRequest(opLogin, http.MethodPost, "/api/auth/login", creds)
	if err != nil {
		return nil, err
	}

	var resp models.LoginResponse
	if err := c.decode(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the profile of the token holder.
func (c *HTTPClient) Me(ctx context.Context) (*models.MeResponse, error) {
	var resp models.MeResponse
	req := request{op: opMe, method: http.MethodGet, path: "/api/auth/me", auth: true}
	if err := c.decode(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
