package authsession

import "errors"

var (
	// ErrAuthRejected indicates login or signup credentials were refused
	// by the server. Recoverable; the wrapped detail is meant for inline
	// form display.
	ErrAuthRejected = errors.New("authsession.auth_rejected")

	// ErrSessionExpired indicates an authenticated request came back 401.
	// The session has already been force-cleared by the time a caller
	// observes this error.
	ErrSessionExpired = errors.New("authsession.session_expired")

	// ErrInvalidPrincipal indicates the server returned an identity record
	// that could not be decoded.
	ErrInvalidPrincipal = errors.New("authsession.invalid_principal")
)
