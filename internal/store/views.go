package store

import (
	"github.com/shopspring/decimal"

	"github.com/strideworks/storefront/internal/models"
	"github.com/strideworks/storefront/internal/pricing"
)

// ProductWithVariants is a product together with all of its variants.
type ProductWithVariants struct {
	models.Product
	Variants []models.ProductVariant
}

// CartItemView is one cart line joined with its variant and product so a
// single read returns everything the storefront renders.
type CartItemView struct {
	ID               int
	ProductVariantID int
	Quantity         int
	Size             models.ShoeSize
	Color            models.ShoeColor
	StockQuantity    int
	UnitPrice        decimal.Decimal
	LineTotal        decimal.Decimal
	ProductID        int
	ProductName      string
	Brand            string
	ImageURL         *string
}

// CartView is a customer's cart with priced lines and a quote under the
// active pricing policy.
type CartView struct {
	Cart  models.Cart
	Items []CartItemView
	Quote pricing.Quote
}

// OrderItemView is one order line joined with variant and product
// details. Prices are the frozen placement-time values.
type OrderItemView struct {
	ID               int
	ProductVariantID int
	Quantity         int
	UnitPrice        decimal.Decimal
	TotalPrice       decimal.Decimal
	Size             models.ShoeSize
	Color            models.ShoeColor
	SKU              string
	ProductName      string
	Brand            string
	ImageURL         *string
}

// OrderView is an order with its lines and both addresses resolved.
type OrderView struct {
	Order           models.Order
	Items           []OrderItemView
	BillingAddress  models.Address
	ShippingAddress models.Address
}
