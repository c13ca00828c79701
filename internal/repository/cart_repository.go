package repository

import (
	"context"
	"encoding/json"

	"github.com/petflu/service-storefront/internal/domain"
	cartDomain "github.com/petflu/service-storefront/internal/domain/cart"
	"github.com/petflu/service-storefront/internal/storage"
)

// StoreCartRepository persists a cart as one JSON array of lines per session.
type StoreCartRepository struct {
	store storage.Store
}

// NewStoreCartRepository creates a new StoreCartRepository.
func NewStoreCartRepository(store storage.Store) *StoreCartRepository {
	return &StoreCartRepository{store: store}
}

// Load returns the persisted cart or an empty one.
func (r *StoreCartRepository) Load(ctx context.Context, sessionID string) (*cartDomain.Cart, error) {
	raw, found, err := r.store.Get(ctx, storage.SessionKey(sessionID, storage.KeyCart))
	if err != nil {
		return nil, domain.NewInternalError("failed to load cart", err)
	}
	if !found {
		return cartDomain.New(), nil
	}

	var lines []cartDomain.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, domain.NewInternalError("failed to decode cart", err)
	}
	return cartDomain.Reconstruct(lines), nil
}

// Save overwrites the persisted cart with its full line sequence.
func (r *StoreCartRepository) Save(ctx context.Context, sessionID string, cart *cartDomain.Cart) error {
	raw, err := json.Marshal(cart.Lines())
	if err != nil {
		return domain.NewInternalError("failed to encode cart", err)
	}
	if err := r.store.Set(ctx, storage.SessionKey(sessionID, storage.KeyCart), raw); err != nil {
		return domain.NewInternalError("failed to persist cart", err)
	}
	return nil
}
