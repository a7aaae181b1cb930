package credstore

import "errors"

var (
	// ErrKeyNotFound indicates no value is stored under the requested key
	ErrKeyNotFound = errors.New("credstore.key_not_found")

	// ErrInvalidKey indicates the encryption key has the wrong length
	ErrInvalidKey = errors.New("credstore.invalid_encryption_key")

	// ErrStoreUnavailable indicates the backing storage could not be reached
	ErrStoreUnavailable = errors.New("credstore.store_unavailable")
)
