package booking

import (
	"context"
)

// BookingRepository defines the persistence contract for a session's bookings.
// The sequence is stored wholesale; there is no per-record update or delete.
type BookingRepository interface {
	// FindAll retrieves the session's bookings in creation order.
	FindAll(ctx context.Context, sessionID string) ([]*Booking, error)

	// SaveAll overwrites the persisted sequence with the given bookings.
	SaveAll(ctx context.Context, sessionID string, bookings []*Booking) error
}
