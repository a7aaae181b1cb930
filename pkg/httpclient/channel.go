package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestInterceptor runs before a request is sent. It may mutate the
// request (typically to attach a credential). A non-nil error aborts the
// call before anything hits the wire.
type RequestInterceptor func(r *http.Request) error

// ResponseInterceptor runs after every completed exchange, successful or
// not. resp is nil when the request never produced a response (transport
// failure, timeout). The returned error replaces the one surfaced to the
// caller; interceptors that only observe return err unchanged.
type ResponseInterceptor func(resp *http.Response, err error) error

// Channel is a single outbound HTTP channel with its own client, timeout
// and interceptor chains. Zero value is not usable; use NewChannel.
type Channel struct {
	baseURL string
	timeout time.Duration
	// client is reused across requests for connection pooling
	client *http.Client

	mu               sync.RWMutex
	reqInterceptors  []RequestInterceptor
	respInterceptors []ResponseInterceptor
}

// ChannelOption configures a Channel at construction time.
type ChannelOption func(*Channel)

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) ChannelOption {
	return func(c *Channel) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client, for custom
// transports or testing.
func WithHTTPClient(client *http.Client) ChannelOption {
	return func(c *Channel) {
		if client != nil {
			c.client = client
		}
	}
}

// NewChannel creates a channel rooted at baseURL. The default timeout is
// 30 seconds; callers are expected to set a tighter one for user-facing
// channels.
func NewChannel(baseURL string, opts ...ChannelOption) *Channel {
	c := &Channel{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 30 * time.Second,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// OnRequest appends a request interceptor to this channel's chain.
func (c *Channel) OnRequest(fn RequestInterceptor) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.reqInterceptors = append(c.reqInterceptors, fn)
	c.mu.Unlock()
}

// OnResponse appends a response interceptor to this channel's chain.
func (c *Channel) OnResponse(fn ResponseInterceptor) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.respInterceptors = append(c.respInterceptors, fn)
	c.mu.Unlock()
}

// Get issues a GET request and decodes the response body into out.
func (c *Channel) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (c *Channel) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out.
func (c *Channel) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request and decodes the response body into out.
func (c *Channel) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do executes a single request through the channel. body is marshaled as
// JSON when non-nil; out, when non-nil, receives the decoded 2xx response
// body. Non-2xx responses return an *HTTPError after the response
// interceptor chain has had a chance to observe or replace it.
func (c *Channel) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Join(ErrEncodePayload, err)
		}
		reader = bytes.NewReader(payload)
	}

	// Layer the channel timeout on top of the caller's context so both
	// constraints are respected.
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Join(ErrTransport, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.New().String())

	c.mu.RLock()
	reqFns := append([]RequestInterceptor(nil), c.reqInterceptors...)
	respFns := append([]ResponseInterceptor(nil), c.respInterceptors...)
	c.mu.RUnlock()

	for _, fn := range reqFns {
		if err := fn(req); err != nil {
			return err
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// A timed-out call is a generic failure, never an auth failure.
		if reqCtx.Err() == context.DeadlineExceeded {
			err = errors.Join(ErrTimeout, err)
		} else {
			err = errors.Join(ErrTransport, err)
		}
		for _, fn := range respFns {
			err = fn(nil, err)
		}
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	// 1MB cap keeps a misbehaving endpoint from exhausting memory
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var callErr error
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		callErr = &HTTPError{
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(respBody),
		}
	}

	for _, fn := range respFns {
		callErr = fn(resp, callErr)
	}
	if callErr != nil {
		return callErr
	}

	if readErr != nil {
		return errors.Join(ErrDecodeResponse, readErr)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return errors.Join(ErrDecodeResponse, err)
		}
	}

	return nil
}

// extractDetail pulls the server's message out of an error body following
// the backend's {"detail": "..."} convention, falling back to a truncated
// body snippet.
func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var wrapper struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Detail != "" {
		return wrapper.Detail
	}

	snippet := strings.ReplaceAll(string(body), "\n", " ")
	if len(snippet) > 200 {
		snippet = snippet[:200] + "..."
	}
	return snippet
}
