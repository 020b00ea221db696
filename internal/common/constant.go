// Package common contains constants and small helpers shared by the client
// packages.
package common

// Outbound HTTP headers.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
	RequestIDHeaderName     = "X-Request-ID"
)

// Keys of the local key/value store.
const (
	TokenKey     = "token"
	DraftKey     = "blogDraft"
	LastEmailKey = "last_email"
)

// DashboardRoute is where the client lands after creating a blog or
// cancelling the editor.
const DashboardRoute = "/dashboard"
