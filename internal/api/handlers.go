package api

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/strideworks/storefront/internal/models"
	"github.com/strideworks/storefront/internal/store"
)

// Storefront is the persistence surface the handlers call. *store.Store
// implements it; tests substitute a stub.
type Storefront interface {
	CreateProduct(ctx context.Context, p store.CreateProductParams) (models.Product, error)
	UpdateProduct(ctx context.Context, id int, p store.UpdateProductParams) (models.Product, error)
	Products(ctx context.Context) ([]store.ProductWithVariants, error)
	ProductByID(ctx context.Context, id int) (*store.ProductWithVariants, error)
	SearchProducts(ctx context.Context, query string) ([]store.ProductWithVariants, error)
	ProductsByCategory(ctx context.Context, category string) ([]store.ProductWithVariants, error)
	ProductsByBrand(ctx context.Context, brand string) ([]store.ProductWithVariants, error)
	FeaturedProducts(ctx context.Context) ([]store.ProductWithVariants, error)
	CreateVariant(ctx context.Context, p store.CreateVariantParams) (models.ProductVariant, error)
	UpdateVariant(ctx context.Context, id int, p store.UpdateVariantParams) (models.ProductVariant, error)
	VariantsByProduct(ctx context.Context, productID int) ([]models.ProductVariant, error)
	CheckVariantStock(ctx context.Context, variantID, requested int) (bool, error)
	CreateCustomer(ctx context.Context, p store.CreateCustomerParams) (models.Customer, error)
	CreateAddress(ctx context.Context, p store.CreateAddressParams) (models.Address, error)
	CustomerAddresses(ctx context.Context, customerID int) ([]models.Address, error)
	CustomerCart(ctx context.Context, customerID int) (*store.CartView, error)
	AddToCart(ctx context.Context, customerID, variantID, quantity int) (models.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, cartItemID, quantity int) (*models.CartItem, error)
	RemoveFromCart(ctx context.Context, cartItemID int) error
	ClearCart(ctx context.Context, customerID int) error
	PlaceOrder(ctx context.Context, customerID, billingAddressID, shippingAddressID int, items []store.OrderLineRequest) (*store.OrderView, error)
	CustomerOrders(ctx context.Context, customerID int) ([]store.OrderView, error)
	OrderByID(ctx context.Context, orderID int) (*store.OrderView, error)
	AllOrders(ctx context.Context) ([]store.OrderView, error)
	UpdateOrderStatus(ctx context.Context, orderID int, status models.OrderStatus) (models.Order, error)
}

// Server holds the procedure handlers.
type Server struct {
	store Storefront
}

// NewServer creates a Server over a storefront.
func NewServer(st Storefront) *Server {
	return &Server{store: st}
}

type successResponse struct {
	Success bool `json:"success"`
}

func (s *Server) createProduct(ctx context.Context, in createProductInput) (productResponse, error) {
	product, err := s.store.CreateProduct(ctx, store.CreateProductParams{
		Name:        in.Name,
		Description: in.Description,
		Brand:       in.Brand,
		Category:    in.Category,
		BasePrice:   decimal.NewFromFloat(in.BasePrice),
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return productResponse{}, err
	}
	return toProductResponse(product), nil
}

func (s *Server) updateProduct(ctx context.Context, in updateProductInput) (productResponse, error) {
	params := store.UpdateProductParams{
		Name:        in.Name,
		Description: in.Description,
		Brand:       in.Brand,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		IsActive:    in.IsActive,
	}
	if in.BasePrice != nil {
		price := decimal.NewFromFloat(*in.BasePrice)
		params.BasePrice = &price
	}

	product, err := s.store.UpdateProduct(ctx, in.ID, params)
	if err != nil {
		return productResponse{}, err
	}
	return toProductResponse(product), nil
}

func (s *Server) getProducts(ctx context.Context, _ emptyInput) ([]productWithVariantsResponse, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, err
	}
	return toProductsWithVariants(products), nil
}

func (s *Server) getProductById(ctx context.Context, in idInput) (*productWithVariantsResponse, error) {
	product, err := s.store.ProductByID(ctx, in.ID)
	if err != nil || product == nil {
		return nil, err
	}
	resp := toProductWithVariants(*product)
	return &resp, nil
}

func (s *Server) searchProducts(ctx context.Context, in searchInput) ([]productWithVariantsResponse, error) {
	products, err := s.store.SearchProducts(ctx, in.Query)
	if err != nil {
		return nil, err
	}
	return toProductsWithVariants(products), nil
}

func (s *Server) getProductsByCategory(ctx context.Context, in categoryInput) ([]productWithVariantsResponse, error) {
	products, err := s.store.ProductsByCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	return toProductsWithVariants(products), nil
}

func (s *Server) getProductsByBrand(ctx context.Context, in brandInput) ([]productWithVariantsResponse, error) {
	products, err := s.store.ProductsByBrand(ctx, in.Brand)
	if err != nil {
		return nil, err
	}
	return toProductsWithVariants(products), nil
}

func (s *Server) getFeaturedProducts(ctx context.Context, _ emptyInput) ([]productWithVariantsResponse, error) {
	products, err := s.store.FeaturedProducts(ctx)
	if err != nil {
		return nil, err
	}
	return toProductsWithVariants(products), nil
}

func (s *Server) createProductVariant(ctx context.Context, in createVariantInput) (variantResponse, error) {
	variant, err := s.store.CreateVariant(ctx, store.CreateVariantParams{
		ProductID:       in.ProductID,
		Size:            models.ShoeSize(in.Size),
		Color:           models.ShoeColor(in.Color),
		StockQuantity:   in.StockQuantity,
		PriceAdjustment: decimal.NewFromFloat(in.PriceAdjustment),
		SKU:             in.SKU,
	})
	if err != nil {
		return variantResponse{}, err
	}
	return toVariantResponse(variant), nil
}

func (s *Server) updateProductVariantStock(ctx context.Context, in updateVariantInput) (variantResponse, error) {
	params := store.UpdateVariantParams{
		StockQuantity: in.StockQuantity,
		SKU:           in.SKU,
	}
	if in.PriceAdjustment != nil {
		adjustment := decimal.NewFromFloat(*in.PriceAdjustment)
		params.PriceAdjustment = &adjustment
	}

	variant, err := s.store.UpdateVariant(ctx, in.ID, params)
	if err != nil {
		return variantResponse{}, err
	}
	return toVariantResponse(variant), nil
}

func (s *Server) getProductVariantsByProduct(ctx context.Context, in productIDInput) ([]variantResponse, error) {
	variants, err := s.store.VariantsByProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	out := make([]variantResponse, len(variants))
	for i, v := range variants {
		out[i] = toVariantResponse(v)
	}
	return out, nil
}

func (s *Server) checkVariantStock(ctx context.Context, in checkStockInput) (stockCheckResponse, error) {
	available, err := s.store.CheckVariantStock(ctx, in.VariantID, in.Quantity)
	if err != nil {
		return stockCheckResponse{}, err
	}
	return stockCheckResponse{Available: available}, nil
}

func (s *Server) createCustomer(ctx context.Context, in createCustomerInput) (customerResponse, error) {
	customer, err := s.store.CreateCustomer(ctx, store.CreateCustomerParams{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
	})
	if err != nil {
		return customerResponse{}, err
	}
	return toCustomerResponse(customer), nil
}

func (s *Server) createAddress(ctx context.Context, in createAddressInput) (addressResponse, error) {
	address, err := s.store.CreateAddress(ctx, store.CreateAddressParams{
		CustomerID:    in.CustomerID,
		Type:          models.AddressType(in.Type),
		StreetAddress: in.StreetAddress,
		Apartment:     in.Apartment,
		City:          in.City,
		State:         in.State,
		PostalCode:    in.PostalCode,
		Country:       in.Country,
		IsDefault:     in.IsDefault,
	})
	if err != nil {
		return addressResponse{}, err
	}
	return toAddressResponse(address), nil
}

func (s *Server) getCustomerAddresses(ctx context.Context, in customerIDInput) ([]addressResponse, error) {
	addresses, err := s.store.CustomerAddresses(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	out := make([]addressResponse, len(addresses))
	for i, a := range addresses {
		out[i] = toAddressResponse(a)
	}
	return out, nil
}

func (s *Server) getCustomerCart(ctx context.Context, in customerIDInput) (cartResponse, error) {
	view, err := s.store.CustomerCart(ctx, in.CustomerID)
	if err != nil {
		return cartResponse{}, err
	}
	return toCartResponse(*view), nil
}

func (s *Server) addToCart(ctx context.Context, in addToCartInput) (bareCartItemResponse, error) {
	item, err := s.store.AddToCart(ctx, in.CustomerID, in.ProductVariantID, in.Quantity)
	if err != nil {
		return bareCartItemResponse{}, err
	}
	return toBareCartItemResponse(item), nil
}

func (s *Server) updateCartItemQuantity(ctx context.Context, in updateCartItemInput) (*bareCartItemResponse, error) {
	item, err := s.store.UpdateCartItemQuantity(ctx, in.ID, in.Quantity)
	if err != nil || item == nil {
		return nil, err
	}
	resp := toBareCartItemResponse(*item)
	return &resp, nil
}

func (s *Server) removeFromCart(ctx context.Context, in idInput) (successResponse, error) {
	if err := s.store.RemoveFromCart(ctx, in.ID); err != nil {
		return successResponse{}, err
	}
	return successResponse{Success: true}, nil
}

func (s *Server) clearCart(ctx context.Context, in customerIDInput) (successResponse, error) {
	if err := s.store.ClearCart(ctx, in.CustomerID); err != nil {
		return successResponse{}, err
	}
	return successResponse{Success: true}, nil
}

func (s *Server) createOrder(ctx context.Context, in createOrderInput) (orderResponse, error) {
	items := make([]store.OrderLineRequest, len(in.Items))
	for i, item := range in.Items {
		items[i] = store.OrderLineRequest{
			ProductVariantID: item.ProductVariantID,
			Quantity:         item.Quantity,
		}
	}

	view, err := s.store.PlaceOrder(ctx, in.CustomerID, in.BillingAddressID, in.ShippingAddressID, items)
	if err != nil {
		return orderResponse{}, err
	}
	return toOrderResponse(*view), nil
}

func (s *Server) getCustomerOrders(ctx context.Context, in customerIDInput) ([]orderResponse, error) {
	views, err := s.store.CustomerOrders(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(views), nil
}

func (s *Server) getOrderById(ctx context.Context, in idInput) (*orderResponse, error) {
	view, err := s.store.OrderByID(ctx, in.ID)
	if err != nil || view == nil {
		return nil, err
	}
	resp := toOrderResponse(*view)
	return &resp, nil
}

func (s *Server) getAllOrders(ctx context.Context, _ emptyInput) ([]orderResponse, error) {
	views, err := s.store.AllOrders(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(views), nil
}

func (s *Server) updateOrderStatus(ctx context.Context, in updateOrderStatusInput) (bareOrderResponse, error) {
	order, err := s.store.UpdateOrderStatus(ctx, in.ID, models.OrderStatus(in.Status))
	if err != nil {
		return bareOrderResponse{}, err
	}
	return toBareOrderResponse(order), nil
}
