// Package models defines the storefront's persisted entities.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a shoe in the catalog. Price and availability of concrete
// size/color combinations live on ProductVariant.
type Product struct {
	ID          int             `db:"id,primaryKey,auto"`
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	Brand       string          `db:"brand"`
	Category    string          `db:"category"`
	BasePrice   decimal.Decimal `db:"base_price"`
	ImageURL    *string         `db:"image_url"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at,auto"`
	UpdatedAt   time.Time       `db:"updated_at,auto"`
}

// TableName implements schema.TableNamer.
func (Product) TableName() string { return "products" }

// ProductVariant is one size/color combination of a product with its own
// stock count and price adjustment.
type ProductVariant struct {
	ID              int             `db:"id,primaryKey,auto"`
	ProductID       int             `db:"product_id"`
	Size            ShoeSize        `db:"size"`
	Color           ShoeColor       `db:"color"`
	StockQuantity   int             `db:"stock_quantity"`
	PriceAdjustment decimal.Decimal `db:"price_adjustment"`
	SKU             string          `db:"sku"`
	CreatedAt       time.Time       `db:"created_at,auto"`
	UpdatedAt       time.Time       `db:"updated_at,auto"`
}

func (ProductVariant) TableName() string { return "product_variants" }

// UnitPrice is the effective price of this variant given its product's
// base price.
func (v ProductVariant) UnitPrice(basePrice decimal.Decimal) decimal.Decimal {
	return basePrice.Add(v.PriceAdjustment)
}

// Customer is a registered shopper.
type Customer struct {
	ID        int       `db:"id,primaryKey,auto"`
	Email     string    `db:"email"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Phone     *string   `db:"phone"`
	CreatedAt time.Time `db:"created_at,auto"`
	UpdatedAt time.Time `db:"updated_at,auto"`
}

func (Customer) TableName() string { return "customers" }

// Cart is a customer's shopping cart. One per customer, created with the
// customer or lazily on first access.
type Cart struct {
	ID         int       `db:"id,primaryKey,auto"`
	CustomerID int       `db:"customer_id"`
	CreatedAt  time.Time `db:"created_at,auto"`
	UpdatedAt  time.Time `db:"updated_at,auto"`
}

func (Cart) TableName() string { return "carts" }

// CartItem is one (cart, variant) line with a positive quantity.
type CartItem struct {
	ID               int       `db:"id,primaryKey,auto"`
	CartID           int       `db:"cart_id"`
	ProductVariantID int       `db:"product_variant_id"`
	Quantity         int       `db:"quantity"`
	CreatedAt        time.Time `db:"created_at,auto"`
	UpdatedAt        time.Time `db:"updated_at,auto"`
}

func (CartItem) TableName() string { return "cart_items" }

// Address is a customer-owned billing or shipping address. At most one
// default per (customer, type).
type Address struct {
	ID            int         `db:"id,primaryKey,auto"`
	CustomerID    int         `db:"customer_id"`
	Type          AddressType `db:"type"`
	StreetAddress string      `db:"street_address"`
	Apartment     *string     `db:"apartment"`
	City          string      `db:"city"`
	State         string      `db:"state"`
	PostalCode    string      `db:"postal_code"`
	Country       string      `db:"country"`
	IsDefault     bool        `db:"is_default"`
	CreatedAt     time.Time   `db:"created_at,auto"`
	UpdatedAt     time.Time   `db:"updated_at,auto"`
}

func (Address) TableName() string { return "addresses" }

// Order is a placed order. Immutable after creation except for status and
// the two lifecycle date fields.
type Order struct {
	ID                int             `db:"id,primaryKey,auto"`
	CustomerID        int             `db:"customer_id"`
	Status            OrderStatus     `db:"status"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	TaxAmount         decimal.Decimal `db:"tax_amount"`
	ShippingAmount    decimal.Decimal `db:"shipping_amount"`
	BillingAddressID  int             `db:"billing_address_id"`
	ShippingAddressID int             `db:"shipping_address_id"`
	OrderDate         time.Time       `db:"order_date,auto"`
	ShippedDate       *time.Time      `db:"shipped_date"`
	DeliveredDate     *time.Time      `db:"delivered_date"`
	CreatedAt         time.Time       `db:"created_at,auto"`
	UpdatedAt         time.Time       `db:"updated_at,auto"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is one line of an order. unit_price and total_price are
// frozen at placement time and never recomputed from the catalog.
type OrderItem struct {
	ID               int             `db:"id,primaryKey,auto"`
	OrderID          int             `db:"order_id"`
	ProductVariantID int             `db:"product_variant_id"`
	Quantity         int             `db:"quantity"`
	UnitPrice        decimal.Decimal `db:"unit_price"`
	TotalPrice       decimal.Decimal `db:"total_price"`
	CreatedAt        time.Time       `db:"created_at,auto"`
}

func (OrderItem) TableName() string { return "order_items" }

// All returns one zero value of every model for registry registration.
func All() []any {
	return []any{
		Product{}, ProductVariant{}, Customer{}, Cart{},
		CartItem{}, Address{}, Order{}, OrderItem{},
	}
}
