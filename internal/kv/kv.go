// Package kv provides the string-valued key-value persistence used for chat
// history and the theme preference. Implementations are swappable: MemoryStore
// for tests, FileStore and SQLiteStore for real use.
package kv

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("key not found")

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Store is a string-valued key-value store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// ValidateKey rejects keys that cannot be used as file names.
func ValidateKey(key string) error {
	if key == "." || key == ".." || !validKey.MatchString(key) {
		return fmt.Errorf("invalid key %q: use letters, digits, '_', '-' or '.'", key)
	}
	return nil
}
