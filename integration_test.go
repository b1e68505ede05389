//go:build integration
// +build integration

package storefront_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/strideworks/storefront/internal/models"
	"github.com/strideworks/storefront/internal/pricing"
	"github.com/strideworks/storefront/internal/store"
	"github.com/strideworks/storefront/pkg/runtime"
)

// setupStore starts a PostgreSQL container and returns a bootstrapped store.
func setupStore(t *testing.T) (*store.Store, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	db, err := runtime.Connect(ctx, runtime.Config{URL: connStr, MaxConns: 5, MinConns: 1})
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}

	st, err := store.New(db, pricing.Default())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := st.Bootstrap(ctx); err != nil {
		t.Fatalf("Failed to bootstrap schema: %v", err)
	}

	cleanup := func() {
		db.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}
	return st, cleanup
}

type fixture struct {
	customer models.Customer
	billing  models.Address
	shipping models.Address
	variant  models.ProductVariant
}

// seedCheckout creates a customer with two addresses and one variant in stock.
func seedCheckout(t *testing.T, st *store.Store, basePrice, adjustment string, stock int) fixture {
	ctx := context.Background()

	product, err := st.CreateProduct(ctx, store.CreateProductParams{
		Name:      "Trail Runner",
		Brand:     "Stride",
		Category:  "running",
		BasePrice: mustDecimal(t, basePrice),
	})
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}

	variant, err := st.CreateVariant(ctx, store.CreateVariantParams{
		ProductID:       product.ID,
		Size:            "10",
		Color:           "black",
		StockQuantity:   stock,
		PriceAdjustment: mustDecimal(t, adjustment),
		SKU:             "TR-10-BLK",
	})
	if err != nil {
		t.Fatalf("Failed to create variant: %v", err)
	}

	customer, err := st.CreateCustomer(ctx, store.CreateCustomerParams{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	if err != nil {
		t.Fatalf("Failed to create customer: %v", err)
	}

	billing, err := st.CreateAddress(ctx, store.CreateAddressParams{
		CustomerID:    customer.ID,
		Type:          models.AddressBilling,
		StreetAddress: "1 Main St",
		City:          "Springfield",
		State:         "IL",
		PostalCode:    "62701",
		Country:       "US",
		IsDefault:     true,
	})
	if err != nil {
		t.Fatalf("Failed to create billing address: %v", err)
	}

	shipping, err := st.CreateAddress(ctx, store.CreateAddressParams{
		CustomerID:    customer.ID,
		Type:          models.AddressShipping,
		StreetAddress: "2 Oak Ave",
		City:          "Springfield",
		State:         "IL",
		PostalCode:    "62702",
		Country:       "US",
		IsDefault:     true,
	})
	if err != nil {
		t.Fatalf("Failed to create shipping address: %v", err)
	}

	return fixture{customer: customer, billing: billing, shipping: shipping, variant: variant}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestIntegration_CheckoutFlow(t *testing.T) {
	st, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	// Unit price 145.00, two units: subtotal 290, free shipping, 8% tax.
	fx := seedCheckout(t, st, "100.00", "45.00", 5)

	if _, err := st.AddToCart(ctx, fx.customer.ID, fx.variant.ID, 2); err != nil {
		t.Fatalf("Failed to add to cart: %v", err)
	}

	cart, err := st.CustomerCart(ctx, fx.customer.ID)
	if err != nil {
		t.Fatalf("Failed to get cart: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("Expected 1 cart line, got %d", len(cart.Items))
	}
	if !cart.Quote.Subtotal.Equal(mustDecimal(t, "290.00")) {
		t.Errorf("Expected subtotal 290.00, got %s", cart.Quote.Subtotal)
	}
	if !cart.Quote.Tax.Equal(mustDecimal(t, "23.20")) {
		t.Errorf("Expected tax 23.20, got %s", cart.Quote.Tax)
	}
	if !cart.Quote.Shipping.IsZero() {
		t.Errorf("Expected free shipping, got %s", cart.Quote.Shipping)
	}

	order, err := st.PlaceOrder(ctx, fx.customer.ID, fx.billing.ID, fx.shipping.ID,
		[]store.OrderLineRequest{{ProductVariantID: fx.variant.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("Failed to place order: %v", err)
	}
	if order.Order.Status != models.OrderPending {
		t.Errorf("Expected pending order, got %s", order.Order.Status)
	}
	if !order.Order.TotalAmount.Equal(mustDecimal(t, "313.20")) {
		t.Errorf("Expected total 313.20, got %s", order.Order.TotalAmount)
	}
	if len(order.Items) != 1 || !order.Items[0].UnitPrice.Equal(mustDecimal(t, "145.00")) {
		t.Errorf("Expected one line at unit price 145.00, got %+v", order.Items)
	}
	if order.BillingAddress.ID != fx.billing.ID || order.ShippingAddress.ID != fx.shipping.ID {
		t.Errorf("Order addresses do not match fixture")
	}

	// Stock was decremented and the consumed cart line removed.
	variants, err := st.VariantsByProduct(ctx, fx.variant.ProductID)
	if err != nil {
		t.Fatalf("Failed to fetch variants: %v", err)
	}
	if variants[0].StockQuantity != 3 {
		t.Errorf("Expected stock 3 after checkout, got %d", variants[0].StockQuantity)
	}

	cart, err = st.CustomerCart(ctx, fx.customer.ID)
	if err != nil {
		t.Fatalf("Failed to get cart after checkout: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("Expected empty cart after full checkout, got %d lines", len(cart.Items))
	}
}

func TestIntegration_PartialCheckoutKeepsRemainder(t *testing.T) {
	st, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	fx := seedCheckout(t, st, "50.00", "0.00", 10)

	if _, err := st.AddToCart(ctx, fx.customer.ID, fx.variant.ID, 3); err != nil {
		t.Fatalf("Failed to add to cart: %v", err)
	}

	_, err := st.PlaceOrder(ctx, fx.customer.ID, fx.billing.ID, fx.shipping.ID,
		[]store.OrderLineRequest{{ProductVariantID: fx.variant.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("Failed to place order: %v", err)
	}

	cart, err := st.CustomerCart(ctx, fx.customer.ID)
	if err != nil {
		t.Fatalf("Failed to get cart: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Errorf("Expected one remaining cart line with quantity 1, got %+v", cart.Items)
	}
}

func TestIntegration_CheckoutInsufficientStock(t *testing.T) {
	st, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	fx := seedCheckout(t, st, "50.00", "0.00", 2)

	if _, err := st.AddToCart(ctx, fx.customer.ID, fx.variant.ID, 2); err != nil {
		t.Fatalf("Failed to add to cart: %v", err)
	}
	if _, err := st.AddToCart(ctx, fx.customer.ID, fx.variant.ID, 1); err == nil {
		t.Errorf("Expected merged quantity above stock to be rejected")
	}

	// Drain the stock out from under the cart, then try to check out.
	remaining := 1
	if _, err := st.UpdateVariant(ctx, fx.variant.ID, store.UpdateVariantParams{StockQuantity: &remaining}); err != nil {
		t.Fatalf("Failed to update stock: %v", err)
	}

	_, err := st.PlaceOrder(ctx, fx.customer.ID, fx.billing.ID, fx.shipping.ID,
		[]store.OrderLineRequest{{ProductVariantID: fx.variant.ID, Quantity: 2}})
	if !store.IsConflict(err) {
		t.Fatalf("Expected conflict on oversell, got %v", err)
	}

	orders, err := st.CustomerOrders(ctx, fx.customer.ID)
	if err != nil {
		t.Fatalf("Failed to list orders: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("Expected no orders after failed checkout, got %d", len(orders))
	}
}

func TestIntegration_OrderStatusLifecycle(t *testing.T) {
	st, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	fx := seedCheckout(t, st, "120.00", "0.00", 5)
	if _, err := st.AddToCart(ctx, fx.customer.ID, fx.variant.ID, 1); err != nil {
		t.Fatalf("Failed to add to cart: %v", err)
	}
	placed, err := st.PlaceOrder(ctx, fx.customer.ID, fx.billing.ID, fx.shipping.ID,
		[]store.OrderLineRequest{{ProductVariantID: fx.variant.ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("Failed to place order: %v", err)
	}
	orderID := placed.Order.ID

	for _, status := range []models.OrderStatus{models.OrderProcessing, models.OrderShipped, models.OrderDelivered} {
		if _, err := st.UpdateOrderStatus(ctx, orderID, status); err != nil {
			t.Fatalf("Failed to move order to %s: %v", status, err)
		}
	}

	view, err := st.OrderByID(ctx, orderID)
	if err != nil {
		t.Fatalf("Failed to fetch order: %v", err)
	}
	if view.Order.ShippedDate == nil || view.Order.DeliveredDate == nil {
		t.Errorf("Expected shipped and delivered dates to be stamped")
	}

	// Delivered is terminal.
	if _, err := st.UpdateOrderStatus(ctx, orderID, models.OrderProcessing); !store.IsConflict(err) {
		t.Errorf("Expected conflict moving delivered order, got %v", err)
	}

	// Skipping a state is rejected too.
	if _, err := st.UpdateOrderStatus(ctx, orderID, models.OrderShipped); !store.IsConflict(err) {
		t.Errorf("Expected conflict on repeat transition, got %v", err)
	}
}

func TestIntegration_CustomerLifecycle(t *testing.T) {
	st, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	customer, err := st.CreateCustomer(ctx, store.CreateCustomerParams{
		Email:     "sam@example.com",
		FirstName: "Sam",
		LastName:  "Lee",
	})
	if err != nil {
		t.Fatalf("Failed to create customer: %v", err)
	}

	// Cart was created with the customer.
	cart, err := st.CustomerCart(ctx, customer.ID)
	if err != nil {
		t.Fatalf("Failed to get cart: %v", err)
	}
	if cart.Cart.CustomerID != customer.ID {
		t.Errorf("Cart belongs to customer %d, want %d", cart.Cart.CustomerID, customer.ID)
	}

	_, err = st.CreateCustomer(ctx, store.CreateCustomerParams{
		Email:     "sam@example.com",
		FirstName: "Other",
		LastName:  "Sam",
	})
	if !store.IsConflict(err) {
		t.Errorf("Expected conflict on duplicate email, got %v", err)
	}

	// A new default address demotes the previous default of its type.
	first, err := st.CreateAddress(ctx, store.CreateAddressParams{
		CustomerID:    customer.ID,
		Type:          models.AddressShipping,
		StreetAddress: "1 First St",
		City:          "Portland",
		State:         "OR",
		PostalCode:    "97201",
		Country:       "US",
		IsDefault:     true,
	})
	if err != nil {
		t.Fatalf("Failed to create address: %v", err)
	}
	_, err = st.CreateAddress(ctx, store.CreateAddressParams{
		CustomerID:    customer.ID,
		Type:          models.AddressShipping,
		StreetAddress: "2 Second St",
		City:          "Portland",
		State:         "OR",
		PostalCode:    "97202",
		Country:       "US",
		IsDefault:     true,
	})
	if err != nil {
		t.Fatalf("Failed to create second address: %v", err)
	}

	addresses, err := st.CustomerAddresses(ctx, customer.ID)
	if err != nil {
		t.Fatalf("Failed to list addresses: %v", err)
	}
	defaults := 0
	for _, a := range addresses {
		if a.Type == models.AddressShipping && a.IsDefault {
			defaults++
		}
		if a.ID == first.ID && a.IsDefault {
			t.Errorf("Expected first address to lose the default flag")
		}
	}
	if defaults != 1 {
		t.Errorf("Expected exactly one default shipping address, got %d", defaults)
	}
}

func TestIntegration_CatalogSearch(t *testing.T) {
	st, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	active, err := st.CreateProduct(ctx, store.CreateProductParams{
		Name:      "Court Classic",
		Brand:     "Stride",
		Category:  "sneakers",
		BasePrice: mustDecimal(t, "80.00"),
	})
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	inactive := false
	retired, err := st.CreateProduct(ctx, store.CreateProductParams{
		Name:      "Court Retired",
		Brand:     "Stride",
		Category:  "sneakers",
		BasePrice: mustDecimal(t, "60.00"),
	})
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	if _, err := st.UpdateProduct(ctx, retired.ID, store.UpdateProductParams{IsActive: &inactive}); err != nil {
		t.Fatalf("Failed to retire product: %v", err)
	}

	results, err := st.SearchProducts(ctx, "court")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != active.ID {
		t.Errorf("Expected only the active product, got %+v", results)
	}

	if results, err = st.SearchProducts(ctx, "  "); err != nil || len(results) != 0 {
		t.Errorf("Expected blank query to return nothing, got %v, %v", results, err)
	}

	byBrand, err := st.ProductsByBrand(ctx, "Stride")
	if err != nil {
		t.Fatalf("Brand listing failed: %v", err)
	}
	if len(byBrand) != 1 {
		t.Errorf("Expected 1 active brand product, got %d", len(byBrand))
	}
}
