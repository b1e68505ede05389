package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestQuoteFor(t *testing.T) {
	policy := Default()

	tests := []struct {
		name         string
		subtotal     string
		wantTax      string
		wantShipping string
		wantTotal    string
	}{
		{
			name:         "free shipping at threshold",
			subtotal:     "100",
			wantTax:      "8",
			wantShipping: "0",
			wantTotal:    "108",
		},
		{
			name:         "flat fee below threshold",
			subtotal:     "99.99",
			wantTax:      "8",
			wantShipping: "15",
			wantTotal:    "122.99",
		},
		{
			name:         "two variant order",
			subtotal:     "290",
			wantTax:      "23.2",
			wantShipping: "0",
			wantTotal:    "313.2",
		},
		{
			name:         "tax rounds to cents",
			subtotal:     "10.55",
			wantTax:      "0.84",
			wantShipping: "15",
			wantTotal:    "26.39",
		},
		{
			name:         "zero subtotal",
			subtotal:     "0",
			wantTax:      "0",
			wantShipping: "15",
			wantTotal:    "15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := policy.QuoteFor(dec(tt.subtotal))
			assert.True(t, q.Tax.Equal(dec(tt.wantTax)), "tax = %s, want %s", q.Tax, tt.wantTax)
			assert.True(t, q.Shipping.Equal(dec(tt.wantShipping)), "shipping = %s, want %s", q.Shipping, tt.wantShipping)
			assert.True(t, q.Total.Equal(dec(tt.wantTotal)), "total = %s, want %s", q.Total, tt.wantTotal)
		})
	}
}

func TestConfiguredFlatFee(t *testing.T) {
	policy := Default()
	policy.FlatShippingFee = dec("9.99")

	q := policy.QuoteFor(dec("50"))
	assert.True(t, q.Shipping.Equal(dec("9.99")))
	assert.True(t, q.Total.Equal(dec("63.99")))
}
