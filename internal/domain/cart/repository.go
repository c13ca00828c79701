package cart

import "context"

// CartRepository persists a session's cart as a single wholesale value.
type CartRepository interface {
	// Load returns the persisted cart, or an empty cart when nothing was stored yet.
	Load(ctx context.Context, sessionID string) (*Cart, error)

	// Save overwrites the persisted cart with the full current sequence.
	Save(ctx context.Context, sessionID string, cart *Cart) error
}
