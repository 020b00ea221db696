// Package metadata is the client's durable key/value store: the Go
// counterpart of browser local storage. The session token and the blog
// draft live here, one row per key, with no versioning.
package metadata

import (
	"context"
)

// Repository reads and writes opaque values by key.
//
// Get returns (nil, nil) for a missing key. Writes are atomic per key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
