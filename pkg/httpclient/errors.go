package httpclient

import (
	"errors"
	"fmt"
)

// Stable error identities for classification; detailed context is wrapped
// around them with errors.Join and fmt.Errorf.
var (
	ErrInvalidBaseURL = errors.New("httpclient.invalid_base_url")
	ErrEncodePayload  = errors.New("httpclient.encode_payload_failed")
	ErrDecodeResponse = errors.New("httpclient.decode_response_failed")
	ErrTimeout        = errors.New("httpclient.request_timeout")
	ErrTransport      = errors.New("httpclient.transport_failure")
)

// HTTPError represents a non-2xx response. Detail carries the server's
// human-readable message when the body follows the backend's
// {"detail": "..."} convention.
type HTTPError struct {
	StatusCode int
	Detail     string
}

func (e *HTTPError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Detail)
}

// IsStatus reports whether err wraps an HTTPError with the given status code.
func IsStatus(err error, statusCode int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == statusCode
}

// ErrorDetail extracts the server detail message from err, or falls back to
// err.Error(). Intended for inline display on forms.
func ErrorDetail(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Detail != "" {
		return httpErr.Detail
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
