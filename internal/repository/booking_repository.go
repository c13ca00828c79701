package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/petflu/service-storefront/internal/domain"
	bookingDomain "github.com/petflu/service-storefront/internal/domain/booking"
	"github.com/petflu/service-storefront/internal/storage"
	"github.com/shopspring/decimal"
)

// BookingRecord is the persisted JSON shape of one booking.
type BookingRecord struct {
	ID        string          `json:"id"`
	Service   string          `json:"service"`
	PetSize   string          `json:"petSize"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	PetName   string          `json:"petName"`
	Notes     string          `json:"notes"`
	Pickup    bool            `json:"pickup"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// StoreBookingRepository persists the booking sequence as one JSON array per session.
type StoreBookingRepository struct {
	store storage.Store
}

// NewStoreBookingRepository creates a new StoreBookingRepository.
func NewStoreBookingRepository(store storage.Store) *StoreBookingRepository {
	return &StoreBookingRepository{store: store}
}

// FindAll retrieves the session's bookings in creation order.
func (r *StoreBookingRepository) FindAll(ctx context.Context, sessionID string) ([]*bookingDomain.Booking, error) {
	raw, found, err := r.store.Get(ctx, storage.SessionKey(sessionID, storage.KeyBookings))
	if err != nil {
		return nil, domain.NewInternalError("failed to load bookings", err)
	}
	if !found {
		return []*bookingDomain.Booking{}, nil
	}

	var records []BookingRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, domain.NewInternalError("failed to decode bookings", err)
	}

	bookings := make([]*bookingDomain.Booking, len(records))
	for i := range records {
		bk, err := toDomainBooking(&records[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

// SaveAll overwrites the session's persisted bookings.
func (r *StoreBookingRepository) SaveAll(ctx context.Context, sessionID string, bookings []*bookingDomain.Booking) error {
	records := make([]BookingRecord, len(bookings))
	for i, bk := range bookings {
		records[i] = toBookingRecord(bk)
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return domain.NewInternalError("failed to encode bookings", err)
	}
	if err := r.store.Set(ctx, storage.SessionKey(sessionID, storage.KeyBookings), raw); err != nil {
		return domain.NewInternalError("failed to persist bookings", err)
	}
	return nil
}

// --- Conversions ---

func toBookingRecord(bk *bookingDomain.Booking) BookingRecord {
	return BookingRecord{
		ID:        bk.ID().String(),
		Service:   bk.ServiceID(),
		PetSize:   bk.PetSize().String(),
		Date:      bk.Date(),
		Time:      bk.Time(),
		PetName:   bk.PetName(),
		Notes:     bk.Notes(),
		Pickup:    bk.Pickup(),
		Total:     bk.Total(),
		CreatedAt: bk.CreatedAt(),
	}
}

func toDomainBooking(rec *BookingRecord) (*bookingDomain.Booking, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("corrupt booking record %q", rec.ID), err)
	}
	return bookingDomain.ReconstructBooking(
		id,
		rec.Service,
		bookingDomain.PetSize(rec.PetSize),
		rec.Date,
		rec.Time,
		rec.PetName,
		rec.Notes,
		rec.Pickup,
		rec.Total,
		rec.CreatedAt,
	), nil
}
