package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	bookingDomain "github.com/petflu/service-storefront/internal/domain/booking"
	cartDomain "github.com/petflu/service-storefront/internal/domain/cart"
	"github.com/petflu/service-storefront/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// Session is the in-memory state of one visitor. Its cart and bookings are read
// from storage once, when the session is first seen, and written through on
// every mutation afterwards.
type Session struct {
	mu       sync.Mutex
	id       string
	cart     *cartDomain.Cart
	bookings []*bookingDomain.Booking
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// SessionStore keeps materialized sessions in an expiring in-process cache.
type SessionStore struct {
	cache       *gocache.Cache
	cartRepo    cartDomain.CartRepository
	bookingRepo bookingDomain.BookingRepository
	metrics     *metrics.Metrics

	// loads collapses concurrent first requests for one id into a single
	// materialization. Different ids load independently.
	loads singleflight.Group
}

// NewSessionStore creates a SessionStore whose idle sessions expire after ttl.
// Expired sessions are swept every cleanupInterval.
func NewSessionStore(
	cartRepo cartDomain.CartRepository,
	bookingRepo bookingDomain.BookingRepository,
	ttl, cleanupInterval time.Duration,
	m *metrics.Metrics,
) *SessionStore {
	s := &SessionStore{
		cache:       gocache.New(ttl, cleanupInterval),
		cartRepo:    cartRepo,
		bookingRepo: bookingRepo,
		metrics:     m,
	}
	s.cache.OnEvicted(func(string, interface{}) {
		s.metrics.ActiveSessions.Set(float64(s.cache.ItemCount()))
	})
	return s
}

// Get returns the session, loading its persisted cart and bookings on first use.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	if v, ok := s.cache.Get(sessionID); ok {
		s.cache.SetDefault(sessionID, v)
		return v.(*Session), nil
	}

	v, err, _ := s.loads.Do(sessionID, func() (interface{}, error) {
		if v, ok := s.cache.Get(sessionID); ok {
			return v, nil
		}

		c, err := s.cartRepo.Load(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load cart: %w", err)
		}
		bookings, err := s.bookingRepo.FindAll(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load bookings: %w", err)
		}

		sess := &Session{id: sessionID, cart: c, bookings: bookings}
		s.cache.SetDefault(sessionID, sess)
		s.metrics.ActiveSessions.Set(float64(s.cache.ItemCount()))
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// Forget drops the in-memory session. Persisted state is kept.
func (s *SessionStore) Forget(sessionID string) {
	s.cache.Delete(sessionID)
}

// Len returns the number of sessions currently in memory.
func (s *SessionStore) Len() int {
	return s.cache.ItemCount()
}
