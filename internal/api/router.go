// Package api exposes the storefront as typed remote procedures over
// JSON: one POST route per procedure under /rpc.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router builds the HTTP handler for a storefront.
func Router(st Storefront) http.Handler {
	s := NewServer(st)

	r := mux.NewRouter()
	r.HandleFunc("/healthcheck", healthcheck).Methods(http.MethodGet)

	rpc := r.PathPrefix("/rpc").Subrouter()
	for name, handler := range map[string]http.HandlerFunc{
		"createProduct":               procedure(s.createProduct),
		"updateProduct":               procedure(s.updateProduct),
		"getProducts":                 procedure(s.getProducts),
		"getProductById":              procedure(s.getProductById),
		"searchProducts":              procedure(s.searchProducts),
		"getProductsByCategory":       procedure(s.getProductsByCategory),
		"getProductsByBrand":          procedure(s.getProductsByBrand),
		"getFeaturedProducts":         procedure(s.getFeaturedProducts),
		"createProductVariant":        procedure(s.createProductVariant),
		"updateProductVariantStock":   procedure(s.updateProductVariantStock),
		"getProductVariantsByProduct": procedure(s.getProductVariantsByProduct),
		"checkVariantStock":           procedure(s.checkVariantStock),
		"createCustomer":              procedure(s.createCustomer),
		"createAddress":               procedure(s.createAddress),
		"getCustomerAddresses":        procedure(s.getCustomerAddresses),
		"getCustomerCart":             procedure(s.getCustomerCart),
		"addToCart":                   procedure(s.addToCart),
		"updateCartItemQuantity":      procedure(s.updateCartItemQuantity),
		"removeFromCart":              procedure(s.removeFromCart),
		"clearCart":                   procedure(s.clearCart),
		"createOrder":                 procedure(s.createOrder),
		"getCustomerOrders":           procedure(s.getCustomerOrders),
		"getOrderById":                procedure(s.getOrderById),
		"getAllOrders":                procedure(s.getAllOrders),
		"updateOrderStatus":           procedure(s.updateOrderStatus),
	} {
		rpc.HandleFunc("/"+name, handler).Methods(http.MethodPost)
	}

	return logMiddleware(r)
}

func healthcheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
