// Package store keeps the shopping list snapshot in a named slot of a
// synchronous key-value backend. Sub packages implement the backends.
package store

import "github.com/pkg/errors"

// ErrNotFound is returned by Backend.Get when the key holds nothing.
var ErrNotFound = errors.New("key not found")

// Backend is a synchronous string key-value store.
type Backend interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) (string, error)
	// Set overwrites the value under key. A slot is never left half written.
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Close releases the underlying resources.
	Close() error
}
