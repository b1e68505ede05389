package models

// ShoeSize is a US shoe size carried as its display string.
type ShoeSize string

// ShoeSizes lists every sellable size, half sizes included.
var ShoeSizes = []ShoeSize{
	"5", "5.5", "6", "6.5", "7", "7.5", "8", "8.5", "9", "9.5",
	"10", "10.5", "11", "11.5", "12", "12.5", "13", "13.5", "14",
}

// Valid reports whether s is a known size.
func (s ShoeSize) Valid() bool {
	for _, v := range ShoeSizes {
		if s == v {
			return true
		}
	}
	return false
}

// ShoeColor is a catalog color.
type ShoeColor string

// ShoeColors lists every catalog color.
var ShoeColors = []ShoeColor{
	"black", "white", "brown", "navy", "red", "blue", "gray",
	"green", "pink", "purple", "yellow", "orange", "beige",
}

// Valid reports whether c is a known color.
func (c ShoeColor) Valid() bool {
	for _, v := range ShoeColors {
		if c == v {
			return true
		}
	}
	return false
}

// AddressType distinguishes billing from shipping addresses.
type AddressType string

const (
	AddressBilling  AddressType = "billing"
	AddressShipping AddressType = "shipping"
)

// Valid reports whether t is a known address type.
func (t AddressType) Valid() bool {
	return t == AddressBilling || t == AddressShipping
}

// OrderStatus is an order lifecycle state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// statusTransitions is the full transition table. Delivered and cancelled
// are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCancelled},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
