package storage

import (
	"context"
	"errors"
)

// Keys of the persisted storefront state, one value per session.
const (
	KeyCart     = "petflu-cart"
	KeyBookings = "petflu-bookings"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("storage: store is closed")

// Store is a durable key-value store. Values are written wholesale; there are
// no partial updates.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend's resources.
	Close() error
}

// SessionKey namespaces a storage key to a visitor session.
func SessionKey(sessionID, key string) string {
	return sessionID + ":" + key
}
