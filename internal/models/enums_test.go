package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumValidity(t *testing.T) {
	assert.True(t, ShoeSize("10.5").Valid())
	assert.False(t, ShoeSize("4").Valid())
	assert.False(t, ShoeSize("14.5").Valid())

	assert.True(t, ShoeColor("navy").Valid())
	assert.False(t, ShoeColor("teal").Valid())

	assert.True(t, AddressBilling.Valid())
	assert.True(t, AddressShipping.Valid())
	assert.False(t, AddressType("work").Valid())

	assert.True(t, OrderPending.Valid())
	assert.False(t, OrderStatus("returned").Valid())
}

func TestCanTransition(t *testing.T) {
	all := []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

	allowed := map[[2]OrderStatus]bool{
		{OrderPending, OrderProcessing}: true,
		{OrderPending, OrderCancelled}:  true,
		{OrderProcessing, OrderShipped}: true,
		{OrderProcessing, OrderCancelled}: true,
		{OrderShipped, OrderDelivered}: true,
		{OrderShipped, OrderCancelled}: true,
	}

	// The table is total: every (from, to) pair has a defined answer.
	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]OrderStatus{from, to}]
			assert.Equalf(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesHaveNoTransitions(t *testing.T) {
	for _, to := range []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		assert.False(t, CanTransition(OrderDelivered, to))
		assert.False(t, CanTransition(OrderCancelled, to))
	}
}
