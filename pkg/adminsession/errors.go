package adminsession

import "errors"

var (
	// ErrAdminAccessDenied indicates the admin channel returned 401 or
	// 403. The secret has already been force-cleared by the time a caller
	// observes this error.
	ErrAdminAccessDenied = errors.New("adminsession.access_denied")

	// ErrNoSecret indicates an admin login was attempted with an empty secret.
	ErrNoSecret = errors.New("adminsession.no_secret")
)
