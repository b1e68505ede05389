package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuildOrderLines(t *testing.T) {
	lines := []checkoutLine{
		{cartItemID: 1, variantID: 10, cartQty: 2, stock: 5, unitPrice: dec("120.00")},
		{cartItemID: 2, variantID: 11, cartQty: 3, stock: 3, unitPrice: dec("49.99")},
	}

	items, subtotal, err := buildOrderLines([]OrderLineRequest{
		{ProductVariantID: 10, Quantity: 2},
		{ProductVariantID: 11, Quantity: 1},
	}, lines)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 10, items[0].ProductVariantID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(dec("120.00")))
	assert.True(t, items[0].TotalPrice.Equal(dec("240.00")))

	assert.True(t, items[1].TotalPrice.Equal(dec("49.99")))
	assert.True(t, subtotal.Equal(dec("289.99")))
}

func TestBuildOrderLinesPartialCart(t *testing.T) {
	lines := []checkoutLine{
		{cartItemID: 1, variantID: 10, cartQty: 4, stock: 10, unitPrice: dec("25.00")},
		{cartItemID: 2, variantID: 11, cartQty: 1, stock: 10, unitPrice: dec("99.00")},
	}

	// Checking out only one of the two cart lines is allowed.
	items, subtotal, err := buildOrderLines([]OrderLineRequest{
		{ProductVariantID: 10, Quantity: 3},
	}, lines)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, subtotal.Equal(dec("75.00")))
}

func TestBuildOrderLinesVariantNotInCart(t *testing.T) {
	lines := []checkoutLine{
		{cartItemID: 1, variantID: 10, cartQty: 1, stock: 5, unitPrice: dec("50.00")},
	}

	_, _, err := buildOrderLines([]OrderLineRequest{
		{ProductVariantID: 99, Quantity: 1},
	}, lines)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "Product variant 99 not found in cart")
}

func TestBuildOrderLinesInsufficientStock(t *testing.T) {
	lines := []checkoutLine{
		{cartItemID: 1, variantID: 10, cartQty: 8, stock: 2, unitPrice: dec("50.00")},
	}

	_, _, err := buildOrderLines([]OrderLineRequest{
		{ProductVariantID: 10, Quantity: 3},
	}, lines)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.EqualError(t, err, "Insufficient stock for variant 10")
}

func TestBuildOrderLinesExceedsCartQuantity(t *testing.T) {
	lines := []checkoutLine{
		{cartItemID: 1, variantID: 10, cartQty: 2, stock: 10, unitPrice: dec("50.00")},
	}

	_, _, err := buildOrderLines([]OrderLineRequest{
		{ProductVariantID: 10, Quantity: 5},
	}, lines)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.EqualError(t, err, "Requested quantity 5 exceeds cart quantity 2")
}
