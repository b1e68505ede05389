package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strideworks/storefront/internal/models"
	"github.com/strideworks/storefront/internal/store"
)

// stubStore implements Storefront with overridable functions. Methods
// without an override return zero values.
type stubStore struct {
	createCustomer    func(ctx context.Context, p store.CreateCustomerParams) (models.Customer, error)
	customerAddresses func(ctx context.Context, customerID int) ([]models.Address, error)
	addToCart         func(ctx context.Context, customerID, variantID, quantity int) (models.CartItem, error)
	productByID       func(ctx context.Context, id int) (*store.ProductWithVariants, error)
	placeOrder        func(ctx context.Context, customerID, billingAddressID, shippingAddressID int, items []store.OrderLineRequest) (*store.OrderView, error)
	updateOrderStatus func(ctx context.Context, orderID int, status models.OrderStatus) (models.Order, error)
}

func (s *stubStore) CreateProduct(context.Context, store.CreateProductParams) (models.Product, error) {
	return models.Product{}, nil
}

func (s *stubStore) UpdateProduct(context.Context, int, store.UpdateProductParams) (models.Product, error) {
	return models.Product{}, nil
}

func (s *stubStore) Products(context.Context) ([]store.ProductWithVariants, error) { return nil, nil }

func (s *stubStore) ProductByID(ctx context.Context, id int) (*store.ProductWithVariants, error) {
	if s.productByID != nil {
		return s.productByID(ctx, id)
	}
	return nil, nil
}

func (s *stubStore) SearchProducts(context.Context, string) ([]store.ProductWithVariants, error) {
	return nil, nil
}

func (s *stubStore) ProductsByCategory(context.Context, string) ([]store.ProductWithVariants, error) {
	return nil, nil
}

func (s *stubStore) ProductsByBrand(context.Context, string) ([]store.ProductWithVariants, error) {
	return nil, nil
}

func (s *stubStore) FeaturedProducts(context.Context) ([]store.ProductWithVariants, error) {
	return nil, nil
}

func (s *stubStore) CreateVariant(context.Context, store.CreateVariantParams) (models.ProductVariant, error) {
	return models.ProductVariant{}, nil
}

func (s *stubStore) UpdateVariant(context.Context, int, store.UpdateVariantParams) (models.ProductVariant, error) {
	return models.ProductVariant{}, nil
}

func (s *stubStore) VariantsByProduct(context.Context, int) ([]models.ProductVariant, error) {
	return nil, nil
}

func (s *stubStore) CheckVariantStock(context.Context, int, int) (bool, error) { return false, nil }

func (s *stubStore) CreateCustomer(ctx context.Context, p store.CreateCustomerParams) (models.Customer, error) {
	if s.createCustomer != nil {
		return s.createCustomer(ctx, p)
	}
	return models.Customer{}, nil
}

func (s *stubStore) CreateAddress(context.Context, store.CreateAddressParams) (models.Address, error) {
	return models.Address{}, nil
}

func (s *stubStore) CustomerAddresses(ctx context.Context, customerID int) ([]models.Address, error) {
	if s.customerAddresses != nil {
		return s.customerAddresses(ctx, customerID)
	}
	return nil, nil
}

func (s *stubStore) CustomerCart(context.Context, int) (*store.CartView, error) {
	return &store.CartView{}, nil
}

func (s *stubStore) AddToCart(ctx context.Context, customerID, variantID, quantity int) (models.CartItem, error) {
	if s.addToCart != nil {
		return s.addToCart(ctx, customerID, variantID, quantity)
	}
	return models.CartItem{}, nil
}

func (s *stubStore) UpdateCartItemQuantity(context.Context, int, int) (*models.CartItem, error) {
	return nil, nil
}

func (s *stubStore) RemoveFromCart(context.Context, int) error { return nil }

func (s *stubStore) ClearCart(context.Context, int) error { return nil }

func (s *stubStore) PlaceOrder(ctx context.Context, customerID, billingAddressID, shippingAddressID int, items []store.OrderLineRequest) (*store.OrderView, error) {
	if s.placeOrder != nil {
		return s.placeOrder(ctx, customerID, billingAddressID, shippingAddressID, items)
	}
	return &store.OrderView{}, nil
}

func (s *stubStore) CustomerOrders(context.Context, int) ([]store.OrderView, error) { return nil, nil }

func (s *stubStore) OrderByID(context.Context, int) (*store.OrderView, error) { return nil, nil }

func (s *stubStore) AllOrders(context.Context) ([]store.OrderView, error) { return nil, nil }

func (s *stubStore) UpdateOrderStatus(ctx context.Context, orderID int, status models.OrderStatus) (models.Order, error) {
	if s.updateOrderStatus != nil {
		return s.updateOrderStatus(ctx, orderID, status)
	}
	return models.Order{}, nil
}

func post(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHealthcheck(t *testing.T) {
	router := Router(&stubStore{})
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestUnknownProcedure(t *testing.T) {
	router := Router(&stubStore{})
	rec := post(t, router, "/rpc/noSuchProcedure", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCustomer(t *testing.T) {
	router := Router(&stubStore{
		createCustomer: func(_ context.Context, p store.CreateCustomerParams) (models.Customer, error) {
			return models.Customer{ID: 1, Email: p.Email, FirstName: p.FirstName, LastName: p.LastName}, nil
		},
	})

	rec := post(t, router, "/rpc/createCustomer",
		`{"email": "jane@example.com", "first_name": "Jane", "last_name": "Doe"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp customerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.ID)
	assert.Equal(t, "jane@example.com", resp.Email)
}

func TestCreateCustomerInvalidEmail(t *testing.T) {
	router := Router(&stubStore{})
	rec := post(t, router, "/rpc/createCustomer",
		`{"email": "not-an-email", "first_name": "Jane", "last_name": "Doe"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email is invalid", errorMessage(t, rec))
}

func TestCreateCustomerConflict(t *testing.T) {
	router := Router(&stubStore{
		createCustomer: func(_ context.Context, p store.CreateCustomerParams) (models.Customer, error) {
			return models.Customer{}, store.Conflict("Customer with email %s already exists", p.Email)
		},
	})

	rec := post(t, router, "/rpc/createCustomer",
		`{"email": "jane@example.com", "first_name": "Jane", "last_name": "Doe"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Customer with email jane@example.com already exists", errorMessage(t, rec))
}

func TestGetCustomerAddressesNotFound(t *testing.T) {
	router := Router(&stubStore{
		customerAddresses: func(_ context.Context, customerID int) ([]models.Address, error) {
			return nil, store.NotFound("Customer with ID %d not found", customerID)
		},
	})

	rec := post(t, router, "/rpc/getCustomerAddresses", `{"customer_id": 42}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Customer with ID 42 not found", errorMessage(t, rec))
}

func TestAddToCartInsufficientStock(t *testing.T) {
	router := Router(&stubStore{
		addToCart: func(context.Context, int, int, int) (models.CartItem, error) {
			return models.CartItem{}, store.Conflict("Insufficient stock available")
		},
	})

	rec := post(t, router, "/rpc/addToCart",
		`{"customer_id": 1, "product_variant_id": 2, "quantity": 3}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Insufficient stock available", errorMessage(t, rec))
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	router := Router(&stubStore{})
	rec := post(t, router, "/rpc/addToCart",
		`{"customer_id": 1, "product_variant_id": 2, "quantity": 0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProductByIdMissingReturnsNull(t *testing.T) {
	router := Router(&stubStore{})
	rec := post(t, router, "/rpc/getProductById", `{"id": 7}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestCreateOrderRequiresItems(t *testing.T) {
	router := Router(&stubStore{})
	rec := post(t, router, "/rpc/createOrder",
		`{"customer_id": 1, "billing_address_id": 1, "shipping_address_id": 2, "items": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "items must not be empty", errorMessage(t, rec))
}

func TestCreateOrderPassesLines(t *testing.T) {
	var got []store.OrderLineRequest
	router := Router(&stubStore{
		placeOrder: func(_ context.Context, customerID, billingID, shippingID int, items []store.OrderLineRequest) (*store.OrderView, error) {
			got = items
			return &store.OrderView{Order: models.Order{ID: 5, CustomerID: customerID, Status: models.OrderPending}}, nil
		},
	})

	rec := post(t, router, "/rpc/createOrder",
		`{"customer_id": 1, "billing_address_id": 1, "shipping_address_id": 2,
		  "items": [{"product_variant_id": 9, "quantity": 2}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, got, 1)
	assert.Equal(t, 9, got[0].ProductVariantID)
	assert.Equal(t, 2, got[0].Quantity)

	var resp orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.ID)
	assert.Equal(t, "pending", resp.Status)
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	router := Router(&stubStore{})
	rec := post(t, router, "/rpc/updateOrderStatus", `{"id": 1, "status": "lost"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid status: lost", errorMessage(t, rec))
}

func TestUpdateOrderStatusInvalidTransition(t *testing.T) {
	router := Router(&stubStore{
		updateOrderStatus: func(_ context.Context, orderID int, status models.OrderStatus) (models.Order, error) {
			return models.Order{}, store.Conflict("Invalid status transition from 'delivered' to '%s'", status)
		},
	})

	rec := post(t, router, "/rpc/updateOrderStatus", `{"id": 1, "status": "processing"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Invalid status transition from 'delivered' to 'processing'", errorMessage(t, rec))
}

func TestInvalidJSONBody(t *testing.T) {
	router := Router(&stubStore{})
	rec := post(t, router, "/rpc/createCustomer", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON body", errorMessage(t, rec))
}
