package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/petflu/service-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// MsgRequiredFields is the inline message shown when the booking form is incomplete.
const MsgRequiredFields = "Preencha os campos obrigatórios."

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
	// Browsers send seconds when the time input has a step below one minute.
	timeLayoutSeconds = "15:04:05"
)

// Request carries the booking form fields.
type Request struct {
	ServiceID string
	PetSize   PetSize
	Date      string
	Time      string
	PetName   string
	Notes     string
	Pickup    bool
}

// Normalize trims surrounding whitespace from the free-text fields and
// reduces an HH:MM:SS time to HH:MM.
func (r Request) Normalize() Request {
	r.ServiceID = strings.TrimSpace(r.ServiceID)
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	if t, err := time.Parse(timeLayoutSeconds, r.Time); err == nil {
		r.Time = t.Format(timeLayout)
	}
	r.PetName = strings.TrimSpace(r.PetName)
	r.Notes = strings.TrimSpace(r.Notes)
	return r
}

// Validate checks the form fields before any pricing happens.
func (r Request) Validate() error {
	if r.Date == "" || r.Time == "" || r.PetName == "" {
		return domain.NewValidationError(MsgRequiredFields)
	}
	if _, err := time.Parse(dateLayout, r.Date); err != nil {
		return domain.NewValidationError(fmt.Sprintf("invalid date: %s", r.Date))
	}
	if _, err := parseTime(r.Time); err != nil {
		return domain.NewValidationError(fmt.Sprintf("invalid time: %s", r.Time))
	}
	if r.ServiceID == "" {
		return domain.NewValidationError("service is required")
	}
	if !r.PetSize.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid pet size: %s", r.PetSize))
	}
	return nil
}

func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, v); err == nil {
		return t, nil
	}
	return time.Parse(timeLayoutSeconds, v)
}

// Booking is an immutable grooming appointment with its computed total.
type Booking struct {
	id        uuid.UUID
	serviceID string
	petSize   PetSize
	date      string
	time      string
	petName   string
	notes     string
	pickup    bool
	total     decimal.Decimal
	createdAt time.Time
}

// NewBooking creates a Booking from a validated request and its priced total.
// The id is a UUIDv7 so bookings sort by creation time.
func NewBooking(req Request, total decimal.Decimal) (*Booking, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !total.IsPositive() {
		return nil, domain.NewValidationError("booking total must be positive")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking id: %w", err)
	}

	return &Booking{
		id:        id,
		serviceID: req.ServiceID,
		petSize:   req.PetSize,
		date:      req.Date,
		time:      req.Time,
		petName:   req.PetName,
		notes:     req.Notes,
		pickup:    req.Pickup,
		total:     total,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	serviceID string,
	petSize PetSize,
	date, timeOfDay, petName, notes string,
	pickup bool,
	total decimal.Decimal,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		serviceID: serviceID,
		petSize:   petSize,
		date:      date,
		time:      timeOfDay,
		petName:   petName,
		notes:     notes,
		pickup:    pickup,
		total:     total,
		createdAt: createdAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ServiceID returns the id of the booked service.
func (b *Booking) ServiceID() string { return b.serviceID }

// PetSize returns the pet size category.
func (b *Booking) PetSize() PetSize { return b.petSize }

// Date returns the appointment date (YYYY-MM-DD).
func (b *Booking) Date() string { return b.date }

// Time returns the appointment time (HH:MM).
func (b *Booking) Time() string { return b.time }

// PetName returns the pet's name.
func (b *Booking) PetName() string { return b.petName }

// Notes returns any additional notes for the booking.
func (b *Booking) Notes() string { return b.notes }

// Pickup reports whether tele-busca was requested.
func (b *Booking) Pickup() bool { return b.pickup }

// Total returns the computed booking total.
func (b *Booking) Total() decimal.Decimal { return b.total }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
