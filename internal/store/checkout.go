package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/strideworks/storefront/internal/models"
	"github.com/strideworks/storefront/pkg/builder"
	"github.com/strideworks/storefront/pkg/runtime"
)

// OrderLineRequest selects a cart line and quantity to check out.
type OrderLineRequest struct {
	ProductVariantID int
	Quantity         int
}

// checkoutLine is one cart line with the fields checkout validates and
// prices against.
type checkoutLine struct {
	cartItemID int
	variantID  int
	cartQty    int
	stock      int
	unitPrice  decimal.Decimal
}

// checkoutLinesSQL loads the cart's lines with current stock and prices
// inside the checkout transaction.
const checkoutLinesSQL = `
SELECT ci.id, ci.product_variant_id, ci.quantity,
       pv.stock_quantity, pv.price_adjustment, p.base_price
FROM cart_items ci
JOIN product_variants pv ON pv.id = ci.product_variant_id
JOIN products p ON p.id = pv.product_id
WHERE ci.cart_id = $1
ORDER BY ci.id`

// PlaceOrder checks out the requested cart lines into a pending order.
// Everything runs in one transaction: address and cart validation, the
// price snapshot, stock decrements, and cart reconciliation. Stock is
// decremented conditionally so concurrent checkouts cannot oversell.
func (s *Store) PlaceOrder(ctx context.Context, customerID, billingAddressID, shippingAddressID int, requests []OrderLineRequest) (*OrderView, error) {
	var order models.Order
	err := s.qb.InTx(ctx, func(tx *builder.Tx) error {
		_, err := builder.Select[models.Address](tx).
			Where(builder.Eq("id", billingAddressID)).
			And(builder.Eq("customer_id", customerID)).
			First(ctx)
		if err == runtime.ErrNotFound {
			return NotFound("Billing address not found or does not belong to customer")
		}
		if err != nil {
			return err
		}

		_, err = builder.Select[models.Address](tx).
			Where(builder.Eq("id", shippingAddressID)).
			And(builder.Eq("customer_id", customerID)).
			First(ctx)
		if err == runtime.ErrNotFound {
			return NotFound("Shipping address not found or does not belong to customer")
		}
		if err != nil {
			return err
		}

		cart, err := builder.Select[models.Cart](tx).
			Where(builder.Eq("customer_id", customerID)).
			First(ctx)
		if err == runtime.ErrNotFound {
			return NotFound("Customer cart not found")
		}
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx, checkoutLinesSQL, cart.ID)
		if err != nil {
			return err
		}
		lines := []checkoutLine{}
		for rows.Next() {
			var (
				line       checkoutLine
				adjustment decimal.Decimal
				basePrice  decimal.Decimal
			)
			err := rows.Scan(&line.cartItemID, &line.variantID, &line.cartQty,
				&line.stock, &adjustment, &basePrice)
			if err != nil {
				rows.Close()
				return err
			}
			line.unitPrice = basePrice.Add(adjustment)
			lines = append(lines, line)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(lines) == 0 {
			return Conflict("Cart is empty")
		}

		items, subtotal, err := buildOrderLines(requests, lines)
		if err != nil {
			return err
		}
		quote := s.policy.QuoteFor(subtotal)

		order, err = builder.Insert[models.Order](tx).
			Values(models.Order{
				CustomerID:        customerID,
				Status:            models.OrderPending,
				TotalAmount:       quote.Total,
				TaxAmount:         quote.Tax,
				ShippingAmount:    quote.Shipping,
				BillingAddressID:  billingAddressID,
				ShippingAddressID: shippingAddressID,
			}).
			One(ctx)
		if err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if _, err := builder.Insert[models.OrderItem](tx).Values(items...).Exec(ctx); err != nil {
			return err
		}

		byVariant := make(map[int]checkoutLine, len(lines))
		for _, line := range lines {
			byVariant[line.variantID] = line
		}

		for _, item := range items {
			affected, err := builder.Update[models.ProductVariant](tx).
				SetExpr("stock_quantity", "stock_quantity - ?", item.Quantity).
				Set("updated_at", time.Now()).
				Where(builder.Eq("id", item.ProductVariantID)).
				And(builder.Gte("stock_quantity", item.Quantity)).
				Exec(ctx)
			if err != nil {
				return err
			}
			if affected == 0 {
				return Conflict("Insufficient stock for variant %d", item.ProductVariantID)
			}

			line := byVariant[item.ProductVariantID]
			if item.Quantity == line.cartQty {
				_, err = builder.Delete[models.CartItem](tx).
					Where(builder.Eq("id", line.cartItemID)).
					Exec(ctx)
			} else {
				_, err = builder.Update[models.CartItem](tx).
					SetExpr("quantity", "quantity - ?", item.Quantity).
					Set("updated_at", time.Now()).
					Where(builder.Eq("id", line.cartItemID)).
					Exec(ctx)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := s.orderView(ctx, order)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// buildOrderLines validates the requested lines against the cart and
// prices them. Unit prices are frozen here; later catalog changes do not
// touch placed orders.
func buildOrderLines(requests []OrderLineRequest, lines []checkoutLine) ([]models.OrderItem, decimal.Decimal, error) {
	byVariant := make(map[int]checkoutLine, len(lines))
	for _, line := range lines {
		byVariant[line.variantID] = line
	}

	items := make([]models.OrderItem, 0, len(requests))
	subtotal := decimal.Zero
	for _, req := range requests {
		line, ok := byVariant[req.ProductVariantID]
		if !ok {
			return nil, decimal.Zero, NotFound("Product variant %d not found in cart", req.ProductVariantID)
		}
		if req.Quantity > line.stock {
			return nil, decimal.Zero, Conflict("Insufficient stock for variant %d", req.ProductVariantID)
		}
		if req.Quantity > line.cartQty {
			return nil, decimal.Zero, Conflict("Requested quantity %d exceeds cart quantity %d", req.Quantity, line.cartQty)
		}

		total := line.unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
		items = append(items, models.OrderItem{
			ProductVariantID: req.ProductVariantID,
			Quantity:         req.Quantity,
			UnitPrice:        line.unitPrice,
			TotalPrice:       total,
		})
		subtotal = subtotal.Add(total)
	}
	return items, subtotal, nil
}
