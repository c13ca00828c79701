package booking

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PetSize is the size category of the pet being groomed.
type PetSize string

const (
	PetSizeSmall  PetSize = "pequeno"
	PetSizeMedium PetSize = "medio"
	PetSizeLarge  PetSize = "grande"
)

// sizeFactors multiply a service's base price according to pet size.
var sizeFactors = map[PetSize]decimal.Decimal{
	PetSizeSmall:  decimal.NewFromInt(1),
	PetSizeMedium: decimal.RequireFromString("1.2"),
	PetSizeLarge:  decimal.RequireFromString("1.4"),
}

// IsValid returns true if the pet size is recognized.
func (p PetSize) IsValid() bool {
	_, ok := sizeFactors[p]
	return ok
}

// Factor returns the price multiplier for the size.
func (p PetSize) Factor() (decimal.Decimal, error) {
	f, ok := sizeFactors[p]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown pet size: %s", p)
	}
	return f, nil
}

// String returns the string representation of the size.
func (p PetSize) String() string {
	return string(p)
}

// ParsePetSize converts a string to a PetSize, returning an error if invalid.
func ParsePetSize(s string) (PetSize, error) {
	size := PetSize(s)
	if !size.IsValid() {
		return "", fmt.Errorf("invalid pet size: %s", s)
	}
	return size, nil
}
