package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/netx"
	"github.com/google/uuid"
)

const (
	// maxResponseBytes bounds how much of any response body is buffered.
	maxResponseBytes = 8 << 20

	contentTypeJSON = "application/json"
)

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

// NewHTTPClient creates a client for the backend rooted at baseURL. A zero
// timeout disables the per-request deadline; the context still applies.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	if _, err := netx.BuildURL(baseURL, "/", nil); err != nil {
		return nil, fmt.Errorf("api base url: %w", err)
	}

	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

// SetAuthToken sets the default bearer token for authenticated calls. An
// empty token removes the Authorization header.
func (c *HTTPClient) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// AuthToken returns the current default bearer token.
func (c *HTTPClient) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnUnauthorized registers fn to run whenever a request that carried a
// bearer token is rejected with 401. fn runs on the caller's goroutine after
// the response is read.
func (c *HTTPClient) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	auth        bool
}

func jsonRequest(op, method, path string, payload any) (request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return request{}, &Error{Op: op, Message: op, Err: err}
	}
	return request{op: op, method: method, path: path, body: body, contentType: contentTypeJSON}, nil
}

// do performs r and returns the raw body of a 2xx response. Every failure
// is returned as *Error.
func (c *HTTPClient) do(ctx context.Context, r request) ([]byte, error) {
	endpoint, err := netx.BuildURL(c.baseURL, r.path, r.query)
	if err != nil {
		return nil, &Error{Op: r.op, Message: r.op, Err: err}
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return nil, &Error{Op: r.op, Message: r.op, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", contentTypeJSON)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	authorized := false
	if r.auth {
		if token := c.AuthToken(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
			authorized = true
		}
	}

	log := c.logger.With("method", r.method, "path", r.path, "request_id", requestID)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, &Error{Op: r.op, Message: r.op, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	payload, err := netx.ReadBody(resp.Body, maxResponseBytes)
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return nil, &Error{Op: r.op, Status: resp.StatusCode, Message: r.op, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := statusError(r.op, resp.StatusCode, payload)
		if resp.StatusCode == http.StatusUnauthorized && authorized {
			c.unauthorized()
		}
		return nil, apiErr
	}

	return payload, nil
}

func (c *HTTPClient) unauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()

	if fn != nil {
		fn()
	}
}

// raw runs r and returns the body verbatim. An empty body yields nil.
func (c *HTTPClient) raw(ctx context.Context, r request) (json.RawMessage, error) {
	payload, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, nil
	}
	return json.RawMessage(payload), nil
}

// decode runs r and unmarshals the body into out.
func (c *HTTPClient) decode(ctx context.Context, r request, out any) error {
	payload, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &Error{Op: r.op, Status: http.StatusOK, Message: r.op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
