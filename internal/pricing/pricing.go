// Package pricing holds the single pricing policy shared by cart display
// and order placement.
package pricing

import "github.com/shopspring/decimal"

// Policy computes tax and shipping for an order subtotal. One policy
// serves every call path so the flat fee and threshold cannot drift
// between the cart estimate and checkout.
type Policy struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

// Default returns the standard policy: 8% tax, free shipping at 100,
// flat fee 15 otherwise.
func Default() Policy {
	return Policy{
		TaxRate:               decimal.NewFromFloat(0.08),
		FreeShippingThreshold: decimal.NewFromInt(100),
		FlatShippingFee:       decimal.NewFromInt(15),
	}
}

// Quote is the priced breakdown of a subtotal.
type Quote struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// QuoteFor prices a subtotal under the policy. Tax and total are rounded
// to 2 decimal places.
func (p Policy) QuoteFor(subtotal decimal.Decimal) Quote {
	tax := subtotal.Mul(p.TaxRate).Round(2)

	shipping := p.FlatShippingFee
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping).Round(2),
	}
}
