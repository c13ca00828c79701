package booking

import (
	"fmt"

	"github.com/petflu/service-storefront/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// PricingStrategy defines the interface for calculating booking prices.
type PricingStrategy interface {
	// Calculate returns the booking total for the given parameters.
	Calculate(params PricingParams) (decimal.Decimal, error)
}

// PricingParams holds the inputs for price calculation.
type PricingParams struct {
	ServiceID string
	PetSize   PetSize
	Pickup    bool
}

// PriceLookup resolves the base price of a service by id.
type PriceLookup interface {
	ServicePrice(id string) (decimal.Decimal, error)
}

// StandardPricingStrategy implements the petflu grooming price table.
type StandardPricingStrategy struct {
	prices PriceLookup
}

// NewStandardPricingStrategy creates a StandardPricingStrategy backed by the loaded catalog.
func NewStandardPricingStrategy(prices PriceLookup) *StandardPricingStrategy {
	return &StandardPricingStrategy{prices: prices}
}

// Calculate computes the booking total.
//
// Pricing formula:
//   - Service: base price of the chosen service
//   - Size factor: pequeno 1.0, medio 1.2, grande 1.4
//   - Pickup: flat base price of the tele-busca service when requested
//
// A missing service is an error; the total is never defaulted.
func (s *StandardPricingStrategy) Calculate(params PricingParams) (decimal.Decimal, error) {
	base, err := s.prices.ServicePrice(params.ServiceID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("service price: %w", err)
	}

	factor, err := params.PetSize.Factor()
	if err != nil {
		return decimal.Zero, err
	}
	total := base.Mul(factor)

	if params.Pickup {
		fee, err := s.prices.ServicePrice(catalog.ServiceTeleBusca)
		if err != nil {
			return decimal.Zero, fmt.Errorf("pickup fee: %w", err)
		}
		total = total.Add(fee)
	}

	return total.Round(2), nil
}
