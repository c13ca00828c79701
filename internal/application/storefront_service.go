package application

import (
	"context"
	"time"

	"github.com/petflu/service-storefront/internal/domain"
	bookingDomain "github.com/petflu/service-storefront/internal/domain/booking"
	cartDomain "github.com/petflu/service-storefront/internal/domain/cart"
	"github.com/petflu/service-storefront/internal/domain/catalog"
	"github.com/petflu/service-storefront/internal/events"
	"github.com/petflu/service-storefront/internal/metrics"
	"github.com/petflu/service-storefront/internal/storage"
	"github.com/petflu/service-storefront/internal/view"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	eventSource = "service-storefront"
	currencyBRL = "BRL"
)

// AddToCartRequest identifies the catalog item to add.
type AddToCartRequest struct {
	ItemID string `json:"id" form:"id" binding:"required"`
}

// CreateBookingRequest holds the booking form fields. Date, time and pet name are
// checked by the domain so a missing one yields the inline form message.
type CreateBookingRequest struct {
	Service string   `json:"service" form:"service" binding:"required"`
	PetSize string   `json:"pet_size" form:"pet-size" binding:"required"`
	Date    string   `json:"date" form:"date"`
	Time    string   `json:"time" form:"time"`
	PetName string   `json:"pet_name" form:"pet-name"`
	Notes   string   `json:"notes" form:"notes"`
	Pickup  Checkbox `json:"pickup" form:"pickup"`
}

// CartLineDTO is the response representation of a cart line.
type CartLineDTO struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Qtd      int             `json:"qtd"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartDTO is the response representation of a cart and its rendered view.
type CartDTO struct {
	Lines []CartLineDTO   `json:"lines"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
	View  view.CartView   `json:"view"`
}

// CheckoutDTO is the result of a simulated checkout.
type CheckoutDTO struct {
	CheckedOut bool    `json:"checked_out"`
	Message    string  `json:"message,omitempty"`
	Cart       CartDTO `json:"cart"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID        string          `json:"id"`
	Service   string          `json:"service"`
	PetSize   string          `json:"pet_size"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	PetName   string          `json:"pet_name"`
	Notes     string          `json:"notes,omitempty"`
	Pickup    bool            `json:"pickup"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// BookingResultDTO is returned after a booking is recorded.
type BookingResultDTO struct {
	Booking   BookingDTO `json:"booking"`
	Message   string     `json:"message"`
	ResetForm bool       `json:"reset_form"`
}

// StorefrontService is the application service orchestrating the cart and booking use cases.
type StorefrontService struct {
	catalog     *catalog.Catalog
	sessions    *SessionStore
	cartRepo    cartDomain.CartRepository
	bookingRepo bookingDomain.BookingRepository
	pricing     bookingDomain.PricingStrategy
	publisher   events.Publisher
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewStorefrontService creates a new StorefrontService.
func NewStorefrontService(
	cat *catalog.Catalog,
	sessions *SessionStore,
	cartRepo cartDomain.CartRepository,
	bookingRepo bookingDomain.BookingRepository,
	pricing bookingDomain.PricingStrategy,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *StorefrontService {
	if cat == nil {
		cat = catalog.Empty()
	}
	return &StorefrontService{
		catalog:     cat,
		sessions:    sessions,
		cartRepo:    cartRepo,
		bookingRepo: bookingRepo,
		pricing:     pricing,
		publisher:   publisher,
		metrics:     m,
		logger:      logger,
	}
}

// Catalog returns the loaded catalog.
func (s *StorefrontService) Catalog() *catalog.Catalog {
	return s.catalog
}

// CatalogView renders the product grid.
func (s *StorefrontService) CatalogView() view.CatalogView {
	return view.RenderCatalog(s.catalog)
}

// ServiceOptions renders the booking form's service select.
func (s *StorefrontService) ServiceOptions() []view.ServiceOption {
	return view.RenderServiceOptions(s.catalog.Services())
}

// GetCart returns the session's cart.
func (s *StorefrontService) GetCart(ctx context.Context, sessionID string) (*CartDTO, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	result := toCartDTO(sess.cart)
	return &result, nil
}

// AddToCart adds one unit of a catalog item to the session's cart.
func (s *StorefrontService) AddToCart(ctx context.Context, sessionID string, req AddToCartRequest) (*CartDTO, error) {
	it, err := s.catalog.FindItem(req.ItemID)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	line := sess.cart.Add(cartDomain.Item{ID: it.ID, Name: it.Name, Price: it.Price})
	s.metrics.CartMutations.WithLabelValues("add").Inc()

	if err := s.saveCart(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Debug("item added to cart",
		zap.String("session_id", sessionID),
		zap.String("item_id", line.ID),
		zap.Int("qtd", line.Qtd),
	)

	result := toCartDTO(sess.cart)
	return &result, nil
}

// RemoveFromCart deletes the whole line for itemID. An absent id leaves the cart
// unchanged and writes nothing.
func (s *StorefrontService) RemoveFromCart(ctx context.Context, sessionID, itemID string) (*CartDTO, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.cart.Remove(itemID) {
		s.metrics.CartMutations.WithLabelValues("remove").Inc()
		if err := s.saveCart(ctx, sess); err != nil {
			return nil, err
		}
	}

	result := toCartDTO(sess.cart)
	return &result, nil
}

// Checkout simulates a purchase: a non-empty cart is emptied and persisted as
// empty. Checking out an empty cart does nothing.
func (s *StorefrontService) Checkout(ctx context.Context, sessionID string) (*CheckoutDTO, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.cart.IsEmpty() {
		return &CheckoutDTO{CheckedOut: false, Cart: toCartDTO(sess.cart)}, nil
	}

	purchased := sess.cart.Lines()
	total := sess.cart.Total()
	count := sess.cart.Count()

	sess.cart.Clear()
	s.metrics.CartMutations.WithLabelValues("clear").Inc()

	if err := s.saveCart(ctx, sess); err != nil {
		return nil, err
	}
	s.metrics.Checkouts.Inc()

	s.publishCartCheckedOut(ctx, sessionID, purchased, count, total)

	s.logger.Info("cart checked out",
		zap.String("session_id", sessionID),
		zap.Int("items", count),
		zap.String("total", total.StringFixed(2)),
	)

	return &CheckoutDTO{
		CheckedOut: true,
		Message:    view.CheckoutMessage,
		Cart:       toCartDTO(sess.cart),
	}, nil
}

// CreateBooking validates the form, prices it and appends the booking to the session.
func (s *StorefrontService) CreateBooking(ctx context.Context, sessionID string, req CreateBookingRequest) (*BookingResultDTO, error) {
	bookingReq := bookingDomain.Request{
		ServiceID: req.Service,
		PetSize:   bookingDomain.PetSize(req.PetSize),
		Date:      req.Date,
		Time:      req.Time,
		PetName:   req.PetName,
		Notes:     req.Notes,
		Pickup:    bool(req.Pickup),
	}.Normalize()

	if err := bookingReq.Validate(); err != nil {
		s.metrics.BookingRejections.WithLabelValues("validation").Inc()
		return nil, err
	}

	total, err := s.pricing.Calculate(bookingDomain.PricingParams{
		ServiceID: bookingReq.ServiceID,
		PetSize:   bookingReq.PetSize,
		Pickup:    bookingReq.Pickup,
	})
	if err != nil {
		s.metrics.BookingRejections.WithLabelValues("pricing").Inc()
		s.logger.Warn("booking could not be priced",
			zap.String("service_id", bookingReq.ServiceID),
			zap.Bool("pickup", bookingReq.Pickup),
			zap.Error(err),
		)
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(bookingReq, total)
	if err != nil {
		s.metrics.BookingRejections.WithLabelValues("validation").Inc()
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.bookings = append(sess.bookings, bk)
	if err := s.bookingRepo.SaveAll(ctx, sessionID, sess.bookings); err != nil {
		s.metrics.StorageWriteErrors.WithLabelValues(storage.KeyBookings).Inc()
		s.logger.Error("failed to persist bookings",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil, domain.NewInternalError("failed to save booking", err)
	}
	s.metrics.BookingsCreated.WithLabelValues(bk.ServiceID()).Inc()

	s.publishBookingCreated(ctx, sessionID, bk)

	s.logger.Info("booking created",
		zap.String("session_id", sessionID),
		zap.String("booking_id", bk.ID().String()),
		zap.String("service_id", bk.ServiceID()),
		zap.String("total", bk.Total().StringFixed(2)),
	)

	return &BookingResultDTO{
		Booking:   toBookingDTO(bk),
		Message:   view.BookingMessage(bk.Total()),
		ResetForm: true,
	}, nil
}

// ListBookings returns the session's bookings in creation order.
func (s *StorefrontService) ListBookings(ctx context.Context, sessionID string) ([]BookingDTO, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	result := make([]BookingDTO, 0, len(sess.bookings))
	for _, bk := range sess.bookings {
		result = append(result, toBookingDTO(bk))
	}
	return result, nil
}

// CartView renders the cart dialog fragment data for the session.
func (s *StorefrontService) CartView(ctx context.Context, sessionID string) (view.CartView, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return view.CartView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return view.RenderCart(sess.cart), nil
}

// saveCart writes the full cart through to storage. The in-memory cart is kept
// even when the write fails.
func (s *StorefrontService) saveCart(ctx context.Context, sess *Session) error {
	if err := s.cartRepo.Save(ctx, sess.id, sess.cart); err != nil {
		s.metrics.StorageWriteErrors.WithLabelValues(storage.KeyCart).Inc()
		s.logger.Error("failed to persist cart",
			zap.String("session_id", sess.id),
			zap.Error(err),
		)
		return domain.NewInternalError("failed to save cart", err)
	}
	return nil
}

// --- Helpers ---

func toCartDTO(c *cartDomain.Cart) CartDTO {
	lines := c.Lines()
	dto := CartDTO{
		Lines: make([]CartLineDTO, 0, len(lines)),
		Count: c.Count(),
		Total: c.Total(),
		View:  view.RenderCart(c),
	}
	for _, l := range lines {
		dto.Lines = append(dto.Lines, CartLineDTO{
			ID:       l.ID,
			Name:     l.Name,
			Price:    l.Price,
			Qtd:      l.Qtd,
			Subtotal: l.Subtotal(),
		})
	}
	return dto
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
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

func (s *StorefrontService) publishCartCheckedOut(ctx context.Context, sessionID string, lines []cartDomain.Line, count int, total decimal.Decimal) {
	purchased := make([]events.CheckoutLine, 0, len(lines))
	for _, l := range lines {
		purchased = append(purchased, events.CheckoutLine{ItemID: l.ID, Name: l.Name, Price: l.Price, Qtd: l.Qtd})
	}
	evt := events.CartCheckedOutEvent{
		SessionID:  sessionID,
		Lines:      purchased,
		ItemCount:  count,
		Total:      total,
		Currency:   currencyBRL,
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicStorefrontEvents, events.CartCheckedOut, sessionID, evt)
}

func (s *StorefrontService) publishBookingCreated(ctx context.Context, sessionID string, bk *bookingDomain.Booking) {
	evt := events.BookingCreatedEvent{
		BookingID:  bk.ID().String(),
		SessionID:  sessionID,
		ServiceID:  bk.ServiceID(),
		PetSize:    bk.PetSize().String(),
		Date:       bk.Date(),
		Time:       bk.Time(),
		Pickup:     bk.Pickup(),
		Total:      bk.Total(),
		Currency:   currencyBRL,
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicStorefrontEvents, events.BookingCreated, sessionID, evt)
}

// publishEvent never fails the caller; the mutation is already persisted.
func (s *StorefrontService) publishEvent(ctx context.Context, topic, eventType, subject string, data interface{}) {
	cloudEvent, err := events.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = subject

	if err := s.publisher.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
