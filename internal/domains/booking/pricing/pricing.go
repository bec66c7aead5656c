// Package pricing computes the display breakdown for a stay. The
// reservation backend recomputes the binding charge on its side; this
// breakdown is what the guest sees before checkout.
package pricing

import (
	"stay/internal/domains/booking/model"

	"github.com/shopspring/decimal"
)

const (
	// minorUnitPlaces rounds every amount to the currency's minor unit.
	minorUnitPlaces = 2
)

var (
	taxRate        = decimal.RequireFromString("0.12")
	serviceFeeRate = decimal.RequireFromString("0.05")
)

// Compute derives the pricing breakdown for the given nightly rate and
// number of nights: subtotal = nights x rate, taxes = 12% of subtotal,
// service fee = 5% of subtotal. Pure and deterministic; callers always
// recompute from source values instead of caching the result.
func Compute(nightlyRate decimal.Decimal, nights int) model.PricingBreakdown {
	subtotal := nightlyRate.Mul(decimal.NewFromInt(int64(nights))).Round(minorUnitPlaces)
	taxes := subtotal.Mul(taxRate).Round(minorUnitPlaces)
	serviceFee := subtotal.Mul(serviceFeeRate).Round(minorUnitPlaces)
	total := subtotal.Add(taxes).Add(serviceFee)

	return model.PricingBreakdown{
		Nights:     nights,
		Subtotal:   subtotal,
		Taxes:      taxes,
		ServiceFee: serviceFee,
		Total:      total,
	}
}
