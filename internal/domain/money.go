package domain

import "github.com/shopspring/decimal"

func init() {
	// Persisted carts and bookings store amounts as bare JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Cents converts a decimal amount to integer cents, rounding half away from zero.
func Cents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
