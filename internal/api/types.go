package api

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/strideworks/storefront/internal/models"
	"github.com/strideworks/storefront/internal/store"
)

// Money crosses the wire as float64 and is converted to decimal at this
// edge. All validation happens here, before a handler runs.

type createProductInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	BasePrice   float64 `json:"base_price"`
	ImageURL    *string `json:"image_url"`
}

func (in createProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name is required")
	}
	if strings.TrimSpace(in.Brand) == "" {
		return invalid("brand is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return invalid("category is required")
	}
	if in.BasePrice <= 0 {
		return invalid("base_price must be positive")
	}
	return nil
}

type updateProductInput struct {
	ID          int      `json:"id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Brand       *string  `json:"brand"`
	Category    *string  `json:"category"`
	BasePrice   *float64 `json:"base_price"`
	ImageURL    *string  `json:"image_url"`
	IsActive    *bool    `json:"is_active"`
}

func (in updateProductInput) Validate() error {
	if in.ID <= 0 {
		return invalid("id must be positive")
	}
	if in.BasePrice != nil && *in.BasePrice <= 0 {
		return invalid("base_price must be positive")
	}
	return nil
}

type idInput struct {
	ID int `json:"id"`
}

func (in idInput) Validate() error {
	if in.ID <= 0 {
		return invalid("id must be positive")
	}
	return nil
}

type customerIDInput struct {
	CustomerID int `json:"customer_id"`
}

func (in customerIDInput) Validate() error {
	if in.CustomerID <= 0 {
		return invalid("customer_id must be positive")
	}
	return nil
}

type productIDInput struct {
	ProductID int `json:"product_id"`
}

func (in productIDInput) Validate() error {
	if in.ProductID <= 0 {
		return invalid("product_id must be positive")
	}
	return nil
}

type searchInput struct {
	Query string `json:"query"`
}

func (searchInput) Validate() error { return nil }

type categoryInput struct {
	Category string `json:"category"`
}

func (categoryInput) Validate() error { return nil }

type brandInput struct {
	Brand string `json:"brand"`
}

func (brandInput) Validate() error { return nil }

type createVariantInput struct {
	ProductID       int     `json:"product_id"`
	Size            string  `json:"size"`
	Color           string  `json:"color"`
	StockQuantity   int     `json:"stock_quantity"`
	PriceAdjustment float64 `json:"price_adjustment"`
	SKU             string  `json:"sku"`
}

func (in createVariantInput) Validate() error {
	if in.ProductID <= 0 {
		return invalid("product_id must be positive")
	}
	if !models.ShoeSize(in.Size).Valid() {
		return invalid("invalid size: %s", in.Size)
	}
	if !models.ShoeColor(in.Color).Valid() {
		return invalid("invalid color: %s", in.Color)
	}
	if in.StockQuantity < 0 {
		return invalid("stock_quantity must not be negative")
	}
	if strings.TrimSpace(in.SKU) == "" {
		return invalid("sku is required")
	}
	return nil
}

type updateVariantInput struct {
	ID              int      `json:"id"`
	StockQuantity   *int     `json:"stock_quantity"`
	PriceAdjustment *float64 `json:"price_adjustment"`
	SKU             *string  `json:"sku"`
}

func (in updateVariantInput) Validate() error {
	if in.ID <= 0 {
		return invalid("id must be positive")
	}
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		return invalid("stock_quantity must not be negative")
	}
	if in.SKU != nil && strings.TrimSpace(*in.SKU) == "" {
		return invalid("sku must not be empty")
	}
	return nil
}

type checkStockInput struct {
	VariantID int `json:"variant_id"`
	Quantity  int `json:"quantity"`
}

func (in checkStockInput) Validate() error {
	if in.VariantID <= 0 {
		return invalid("variant_id must be positive")
	}
	if in.Quantity <= 0 {
		return invalid("quantity must be positive")
	}
	return nil
}

type createCustomerInput struct {
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
}

func (in createCustomerInput) Validate() error {
	if !strings.Contains(in.Email, "@") {
		return invalid("email is invalid")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return invalid("first_name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return invalid("last_name is required")
	}
	return nil
}

type createAddressInput struct {
	CustomerID    int     `json:"customer_id"`
	Type          string  `json:"type"`
	StreetAddress string  `json:"street_address"`
	Apartment     *string `json:"apartment"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	PostalCode    string  `json:"postal_code"`
	Country       string  `json:"country"`
	IsDefault     bool    `json:"is_default"`
}

func (in createAddressInput) Validate() error {
	if in.CustomerID <= 0 {
		return invalid("customer_id must be positive")
	}
	if !models.AddressType(in.Type).Valid() {
		return invalid("invalid address type: %s", in.Type)
	}
	for field, value := range map[string]string{
		"street_address": in.StreetAddress,
		"city":           in.City,
		"state":          in.State,
		"postal_code":    in.PostalCode,
		"country":        in.Country,
	} {
		if strings.TrimSpace(value) == "" {
			return invalid("%s is required", field)
		}
	}
	return nil
}

type addToCartInput struct {
	CustomerID       int `json:"customer_id"`
	ProductVariantID int `json:"product_variant_id"`
	Quantity         int `json:"quantity"`
}

func (in addToCartInput) Validate() error {
	if in.CustomerID <= 0 {
		return invalid("customer_id must be positive")
	}
	if in.ProductVariantID <= 0 {
		return invalid("product_variant_id must be positive")
	}
	if in.Quantity <= 0 {
		return invalid("quantity must be positive")
	}
	return nil
}

type updateCartItemInput struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

func (in updateCartItemInput) Validate() error {
	if in.ID <= 0 {
		return invalid("id must be positive")
	}
	if in.Quantity < 0 {
		return invalid("quantity must not be negative")
	}
	return nil
}

type orderItemInput struct {
	ProductVariantID int `json:"product_variant_id"`
	Quantity         int `json:"quantity"`
}

type createOrderInput struct {
	CustomerID        int              `json:"customer_id"`
	BillingAddressID  int              `json:"billing_address_id"`
	ShippingAddressID int              `json:"shipping_address_id"`
	Items             []orderItemInput `json:"items"`
}

func (in createOrderInput) Validate() error {
	if in.CustomerID <= 0 {
		return invalid("customer_id must be positive")
	}
	if in.BillingAddressID <= 0 {
		return invalid("billing_address_id must be positive")
	}
	if in.ShippingAddressID <= 0 {
		return invalid("shipping_address_id must be positive")
	}
	if len(in.Items) == 0 {
		return invalid("items must not be empty")
	}
	for _, item := range in.Items {
		if item.ProductVariantID <= 0 {
			return invalid("product_variant_id must be positive")
		}
		if item.Quantity <= 0 {
			return invalid("quantity must be positive")
		}
	}
	return nil
}

type updateOrderStatusInput struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

func (in updateOrderStatusInput) Validate() error {
	if in.ID <= 0 {
		return invalid("id must be positive")
	}
	if !models.OrderStatus(in.Status).Valid() {
		return invalid("invalid status: %s", in.Status)
	}
	return nil
}

// emptyInput is the input of procedures that take no arguments.
type emptyInput struct{}

func (emptyInput) Validate() error { return nil }

// Responses mirror the persisted entities with money as float64.

type productResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	BasePrice   float64   `json:"base_price"`
	ImageURL    *string   `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type variantResponse struct {
	ID              int       `json:"id"`
	ProductID       int       `json:"product_id"`
	Size            string    `json:"size"`
	Color           string    `json:"color"`
	StockQuantity   int       `json:"stock_quantity"`
	PriceAdjustment float64   `json:"price_adjustment"`
	SKU             string    `json:"sku"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type productWithVariantsResponse struct {
	productResponse
	Variants []variantResponse `json:"variants"`
}

type customerResponse struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type addressResponse struct {
	ID            int       `json:"id"`
	CustomerID    int       `json:"customer_id"`
	Type          string    `json:"type"`
	StreetAddress string    `json:"street_address"`
	Apartment     *string   `json:"apartment"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	PostalCode    string    `json:"postal_code"`
	Country       string    `json:"country"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type cartItemResponse struct {
	ID               int     `json:"id"`
	ProductVariantID int     `json:"product_variant_id"`
	Quantity         int     `json:"quantity"`
	Size             string  `json:"size"`
	Color            string  `json:"color"`
	StockQuantity    int     `json:"stock_quantity"`
	UnitPrice        float64 `json:"unit_price"`
	LineTotal        float64 `json:"line_total"`
	ProductID        int     `json:"product_id"`
	ProductName      string  `json:"product_name"`
	Brand            string  `json:"brand"`
	ImageURL         *string `json:"image_url"`
}

type cartResponse struct {
	ID         int                `json:"id"`
	CustomerID int                `json:"customer_id"`
	Items      []cartItemResponse `json:"items"`
	Subtotal   float64            `json:"subtotal"`
	Tax        float64            `json:"tax"`
	Shipping   float64            `json:"shipping"`
	Total      float64            `json:"total"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type bareCartItemResponse struct {
	ID               int       `json:"id"`
	CartID           int       `json:"cart_id"`
	ProductVariantID int       `json:"product_variant_id"`
	Quantity         int       `json:"quantity"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type orderItemResponse struct {
	ID               int     `json:"id"`
	ProductVariantID int     `json:"product_variant_id"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	TotalPrice       float64 `json:"total_price"`
	Size             string  `json:"size"`
	Color            string  `json:"color"`
	SKU              string  `json:"sku"`
	ProductName      string  `json:"product_name"`
	Brand            string  `json:"brand"`
	ImageURL         *string `json:"image_url"`
}

type orderResponse struct {
	ID              int                 `json:"id"`
	CustomerID      int                 `json:"customer_id"`
	Status          string              `json:"status"`
	TotalAmount     float64             `json:"total_amount"`
	TaxAmount       float64             `json:"tax_amount"`
	ShippingAmount  float64             `json:"shipping_amount"`
	OrderDate       time.Time           `json:"order_date"`
	ShippedDate     *time.Time          `json:"shipped_date"`
	DeliveredDate   *time.Time          `json:"delivered_date"`
	Items           []orderItemResponse `json:"items"`
	BillingAddress  addressResponse     `json:"billing_address"`
	ShippingAddress addressResponse     `json:"shipping_address"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type bareOrderResponse struct {
	ID             int        `json:"id"`
	CustomerID     int        `json:"customer_id"`
	Status         string     `json:"status"`
	TotalAmount    float64    `json:"total_amount"`
	TaxAmount      float64    `json:"tax_amount"`
	ShippingAmount float64    `json:"shipping_amount"`
	OrderDate      time.Time  `json:"order_date"`
	ShippedDate    *time.Time `json:"shipped_date"`
	DeliveredDate  *time.Time `json:"delivered_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type stockCheckResponse struct {
	Available bool `json:"available"`
}

func money(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func toProductResponse(p models.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Brand:       p.Brand,
		Category:    p.Category,
		BasePrice:   money(p.BasePrice),
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toVariantResponse(v models.ProductVariant) variantResponse {
	return variantResponse{
		ID:              v.ID,
		ProductID:       v.ProductID,
		Size:            string(v.Size),
		Color:           string(v.Color),
		StockQuantity:   v.StockQuantity,
		PriceAdjustment: money(v.PriceAdjustment),
		SKU:             v.SKU,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func toProductWithVariants(p store.ProductWithVariants) productWithVariantsResponse {
	variants := make([]variantResponse, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = toVariantResponse(v)
	}
	return productWithVariantsResponse{
		productResponse: toProductResponse(p.Product),
		Variants:        variants,
	}
}

func toProductsWithVariants(products []store.ProductWithVariants) []productWithVariantsResponse {
	out := make([]productWithVariantsResponse, len(products))
	for i, p := range products {
		out[i] = toProductWithVariants(p)
	}
	return out
}

func toCustomerResponse(c models.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toAddressResponse(a models.Address) addressResponse {
	return addressResponse{
		ID:            a.ID,
		CustomerID:    a.CustomerID,
		Type:          string(a.Type),
		StreetAddress: a.StreetAddress,
		Apartment:     a.Apartment,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toCartResponse(view store.CartView) cartResponse {
	items := make([]cartItemResponse, len(view.Items))
	for i, item := range view.Items {
		items[i] = cartItemResponse{
			ID:               item.ID,
			ProductVariantID: item.ProductVariantID,
			Quantity:         item.Quantity,
			Size:             string(item.Size),
			Color:            string(item.Color),
			StockQuantity:    item.StockQuantity,
			UnitPrice:        money(item.UnitPrice),
			LineTotal:        money(item.LineTotal),
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			Brand:            item.Brand,
			ImageURL:         item.ImageURL,
		}
	}
	return cartResponse{
		ID:         view.Cart.ID,
		CustomerID: view.Cart.CustomerID,
		Items:      items,
		Subtotal:   money(view.Quote.Subtotal),
		Tax:        money(view.Quote.Tax),
		Shipping:   money(view.Quote.Shipping),
		Total:      money(view.Quote.Total),
		CreatedAt:  view.Cart.CreatedAt,
		UpdatedAt:  view.Cart.UpdatedAt,
	}
}

func toBareCartItemResponse(item models.CartItem) bareCartItemResponse {
	return bareCartItemResponse{
		ID:               item.ID,
		CartID:           item.CartID,
		ProductVariantID: item.ProductVariantID,
		Quantity:         item.Quantity,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}

func toOrderResponse(view store.OrderView) orderResponse {
	items := make([]orderItemResponse, len(view.Items))
	for i, item := range view.Items {
		items[i] = orderItemResponse{
			ID:               item.ID,
			ProductVariantID: item.ProductVariantID,
			Quantity:         item.Quantity,
			UnitPrice:        money(item.UnitPrice),
			TotalPrice:       money(item.TotalPrice),
			Size:             string(item.Size),
			Color:            string(item.Color),
			SKU:              item.SKU,
			ProductName:      item.ProductName,
			Brand:            item.Brand,
			ImageURL:         item.ImageURL,
		}
	}
	return orderResponse{
		ID:              view.Order.ID,
		CustomerID:      view.Order.CustomerID,
		Status:          string(view.Order.Status),
		TotalAmount:     money(view.Order.TotalAmount),
		TaxAmount:       money(view.Order.TaxAmount),
		ShippingAmount:  money(view.Order.ShippingAmount),
		OrderDate:       view.Order.OrderDate,
		ShippedDate:     view.Order.ShippedDate,
		DeliveredDate:   view.Order.DeliveredDate,
		Items:           items,
		BillingAddress:  toAddressResponse(view.BillingAddress),
		ShippingAddress: toAddressResponse(view.ShippingAddress),
		CreatedAt:       view.Order.CreatedAt,
		UpdatedAt:       view.Order.UpdatedAt,
	}
}

func toOrderResponses(views []store.OrderView) []orderResponse {
	out := make([]orderResponse, len(views))
	for i, v := range views {
		out[i] = toOrderResponse(v)
	}
	return out
}

func toBareOrderResponse(o models.Order) bareOrderResponse {
	return bareOrderResponse{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		Status:         string(o.Status),
		TotalAmount:    money(o.TotalAmount),
		TaxAmount:      money(o.TaxAmount),
		ShippingAmount: money(o.ShippingAmount),
		OrderDate:      o.OrderDate,
		ShippedDate:    o.ShippedDate,
		DeliveredDate:  o.DeliveredDate,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
