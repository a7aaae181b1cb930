package credstore

import "context"

// Store defines the interface for credential persistence.
//
// Implementations must make SetMany and Delete atomic with respect to
// concurrent readers: a reader observes either all of the written keys or
// none of them. Session managers rely on this to keep paired credentials
// consistent.
type Store interface {
	// Get retrieves the value stored under key.
	// Returns ErrKeyNotFound if the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a single value under key.
	Set(ctx context.Context, key, value string) error

	// SetMany stores all values atomically.
	SetMany(ctx context.Context, values map[string]string) error

	// Delete removes the given keys atomically. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
