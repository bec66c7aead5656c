package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"stay/internal/domains/booking/pricing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name           string
		nightlyRate    string
		nights         int
		wantSubtotal   string
		wantTaxes      string
		wantServiceFee string
		wantTotal      string
	}{
		{
			name:           "three nights at a round rate",
			nightlyRate:    "5000",
			nights:         3,
			wantSubtotal:   "15000",
			wantTaxes:      "1800",
			wantServiceFee: "750",
			wantTotal:      "17550",
		},
		{
			name:           "single night",
			nightlyRate:    "120.50",
			nights:         1,
			wantSubtotal:   "120.5",
			wantTaxes:      "14.46",
			wantServiceFee: "6.03",
			wantTotal:      "140.99",
		},
		{
			name:           "fractional rate rounds to the minor unit",
			nightlyRate:    "99.99",
			nights:         7,
			wantSubtotal:   "699.93",
			wantTaxes:      "83.99",
			wantServiceFee: "35",
			wantTotal:      "818.92",
		},
		{
			name:           "zero nights yields zero amounts",
			nightlyRate:    "5000",
			nights:         0,
			wantSubtotal:   "0",
			wantTaxes:      "0",
			wantServiceFee: "0",
			wantTotal:      "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := decimal.RequireFromString(tt.nightlyRate)
			breakdown := pricing.Compute(rate, tt.nights)

			assert.Equal(t, tt.nights, breakdown.Nights)
			assert.True(t, breakdown.Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)), "subtotal: got %s", breakdown.Subtotal)
			assert.True(t, breakdown.Taxes.Equal(decimal.RequireFromString(tt.wantTaxes)), "taxes: got %s", breakdown.Taxes)
			assert.True(t, breakdown.ServiceFee.Equal(decimal.RequireFromString(tt.wantServiceFee)), "service fee: got %s", breakdown.ServiceFee)
			assert.True(t, breakdown.Total.Equal(decimal.RequireFromString(tt.wantTotal)), "total: got %s", breakdown.Total)
		})
	}
}

func TestCompute_TotalIsSumOfParts(t *testing.T) {
	rate := decimal.RequireFromString("137.77")

	for nights := 1; nights <= 30; nights++ {
		breakdown := pricing.Compute(rate, nights)
		sum := breakdown.Subtotal.Add(breakdown.Taxes).Add(breakdown.ServiceFee)

		assert.True(t, breakdown.Total.Equal(sum), "nights=%d: total %s != sum %s", nights, breakdown.Total, sum)
	}
}

func TestCompute_MonotonicInNights(t *testing.T) {
	rate := decimal.RequireFromString("250")
	prev := pricing.Compute(rate, 1)

	for nights := 2; nights <= 14; nights++ {
		current := pricing.Compute(rate, nights)

		assert.True(t, current.Total.GreaterThan(prev.Total), "total must grow with nights")

		prev = current
	}
}

func TestCompute_Deterministic(t *testing.T) {
	rate := decimal.RequireFromString("89.90")

	first := pricing.Compute(rate, 4)
	second := pricing.Compute(rate, 4)

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.Taxes.Equal(second.Taxes))
	assert.True(t, first.ServiceFee.Equal(second.ServiceFee))
}
