package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopicStorefrontEvents carries cart and booking events.
const TopicStorefrontEvents = "storefront.events"

// Event types.
const (
	CartCheckedOut = "storefront.cart.checked_out"
	BookingCreated = "storefront.booking.created"
)

// CheckoutLine is one purchased line of a simulated checkout.
type CheckoutLine struct {
	ItemID string          `json:"item_id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Qtd    int             `json:"qtd"`
}

// CartCheckedOutEvent is published when a non-empty cart is checked out.
type CartCheckedOutEvent struct {
	SessionID  string          `json:"session_id"`
	Lines      []CheckoutLine  `json:"lines"`
	ItemCount  int             `json:"item_count"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// BookingCreatedEvent is published when a booking is recorded.
type BookingCreatedEvent struct {
	BookingID  string          `json:"booking_id"`
	SessionID  string          `json:"session_id"`
	ServiceID  string          `json:"service_id"`
	PetSize    string          `json:"pet_size"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	Pickup     bool            `json:"pickup"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
	OccurredAt time.Time       `json:"occurred_at"`
}
