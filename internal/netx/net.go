// Package netx contains URL helpers shared by the HTTP API client.
package netx

import (
	"fmt"
	"io"
	"net/url"
	"strings"
)

// BuildURL joins a base address and a path and appends query. The base may
// carry its own path prefix (e.g. "https://host/blog"); a trailing slash on
// base and a leading slash on path are collapsed into one. Path segments are
// used verbatim, callers escape ids with url.PathEscape.
func BuildURL(base, path string, query url.Values) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", base)
	}

	ref, err := url.Parse(u.Path + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}
	u.Path = ref.Path
	u.RawPath = ref.RawPath

	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// ReadBody reads at most limit bytes from r. Error responses are read for
// their message only, so a hostile server cannot make the client buffer an
// unbounded body.
func ReadBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
