package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/strideworks/storefront/internal/models"
	"github.com/strideworks/storefront/pkg/builder"
	"github.com/strideworks/storefront/pkg/runtime"
)

// cartLinesSQL joins cart items with their variant and product in one
// read so cart rendering never recomputes per line.
const cartLinesSQL = `
SELECT ci.id, ci.product_variant_id, ci.quantity,
       pv.size, pv.color, pv.stock_quantity, pv.price_adjustment,
       p.id, p.name, p.brand, p.image_url, p.base_price
FROM cart_items ci
JOIN product_variants pv ON pv.id = ci.product_variant_id
JOIN products p ON p.id = pv.product_id
WHERE ci.cart_id = $1
ORDER BY ci.id`

// CustomerCart returns the customer's cart with priced lines and a
// quote. The cart is created on first access if the customer has none.
func (s *Store) CustomerCart(ctx context.Context, customerID int) (*CartView, error) {
	exists, err := s.customerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, NotFound("Customer with id %d not found", customerID)
	}

	cart, err := s.ensureCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB().Query(ctx, cartLinesSQL, cart.ID)
	if err != nil {
		return nil, err
	}
	items, err := scanCartLines(rows)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
	}

	return &CartView{
		Cart:  cart,
		Items: items,
		Quote: s.policy.QuoteFor(subtotal),
	}, nil
}

// ensureCart returns the customer's cart, creating it when missing.
func (s *Store) ensureCart(ctx context.Context, customerID int) (models.Cart, error) {
	cart, err := builder.Select[models.Cart](s.qb).
		Where(builder.Eq("customer_id", customerID)).
		First(ctx)
	if err == runtime.ErrNotFound {
		return builder.Insert[models.Cart](s.qb).
			Values(models.Cart{CustomerID: customerID}).
			One(ctx)
	}
	return cart, err
}

func scanCartLines(rows pgx.Rows) ([]CartItemView, error) {
	defer rows.Close()

	items := []CartItemView{}
	for rows.Next() {
		var (
			item       CartItemView
			adjustment decimal.Decimal
			basePrice  decimal.Decimal
		)
		err := rows.Scan(
			&item.ID, &item.ProductVariantID, &item.Quantity,
			&item.Size, &item.Color, &item.StockQuantity, &adjustment,
			&item.ProductID, &item.ProductName, &item.Brand, &item.ImageURL, &basePrice,
		)
		if err != nil {
			return nil, err
		}
		item.UnitPrice = basePrice.Add(adjustment)
		item.LineTotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddToCart adds a quantity of a variant to the customer's cart. An
// existing line for the same variant is merged, and the merged quantity
// must still fit within stock.
func (s *Store) AddToCart(ctx context.Context, customerID, variantID, quantity int) (models.CartItem, error) {
	exists, err := s.customerExists(ctx, customerID)
	if err != nil {
		return models.CartItem{}, err
	}
	if !exists {
		return models.CartItem{}, NotFound("Customer with id %d not found", customerID)
	}

	cart, err := s.ensureCart(ctx, customerID)
	if err != nil {
		return models.CartItem{}, err
	}

	var item models.CartItem
	err = s.qb.InTx(ctx, func(tx *builder.Tx) error {
		variant, err := builder.Select[models.ProductVariant](tx).
			Where(builder.Eq("id", variantID)).
			First(ctx)
		if err == runtime.ErrNotFound {
			return NotFound("Product variant not found")
		}
		if err != nil {
			return err
		}
		if variant.StockQuantity < quantity {
			return Conflict("Insufficient stock available")
		}

		existing, err := builder.Select[models.CartItem](tx).
			Where(builder.Eq("cart_id", cart.ID)).
			And(builder.Eq("product_variant_id", variantID)).
			First(ctx)
		switch err {
		case nil:
			merged := existing.Quantity + quantity
			if variant.StockQuantity < merged {
				return Conflict("Total quantity would exceed available stock")
			}
			item, err = builder.Update[models.CartItem](tx).
				Set("quantity", merged).
				Set("updated_at", time.Now()).
				Where(builder.Eq("id", existing.ID)).
				One(ctx)
			return err
		case runtime.ErrNotFound:
			item, err = builder.Insert[models.CartItem](tx).
				Values(models.CartItem{
					CartID:           cart.ID,
					ProductVariantID: variantID,
					Quantity:         quantity,
				}).
				One(ctx)
			return err
		default:
			return err
		}
	})
	if err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// UpdateCartItemQuantity sets a cart line's quantity. Zero removes the
// line and returns nil. The new quantity must fit within stock.
func (s *Store) UpdateCartItemQuantity(ctx context.Context, cartItemID, quantity int) (*models.CartItem, error) {
	if quantity == 0 {
		if err := s.RemoveFromCart(ctx, cartItemID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var item models.CartItem
	err := s.qb.InTx(ctx, func(tx *builder.Tx) error {
		existing, err := builder.Select[models.CartItem](tx).
			Where(builder.Eq("id", cartItemID)).
			First(ctx)
		if err == runtime.ErrNotFound {
			return NotFound("Cart item not found")
		}
		if err != nil {
			return err
		}

		variant, err := builder.Select[models.ProductVariant](tx).
			Where(builder.Eq("id", existing.ProductVariantID)).
			First(ctx)
		if err == runtime.ErrNotFound {
			return NotFound("Product variant not found")
		}
		if err != nil {
			return err
		}
		if quantity > variant.StockQuantity {
			return Conflict("Insufficient stock. Available: %d, Requested: %d", variant.StockQuantity, quantity)
		}

		item, err = builder.Update[models.CartItem](tx).
			Set("quantity", quantity).
			Set("updated_at", time.Now()).
			Where(builder.Eq("id", cartItemID)).
			One(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromCart deletes one cart line.
func (s *Store) RemoveFromCart(ctx context.Context, cartItemID int) error {
	affected, err := builder.Delete[models.CartItem](s.qb).
		Where(builder.Eq("id", cartItemID)).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFound("Cart item not found")
	}
	return nil
}

// ClearCart removes every line from the customer's cart.
func (s *Store) ClearCart(ctx context.Context, customerID int) error {
	cart, err := builder.Select[models.Cart](s.qb).
		Where(builder.Eq("customer_id", customerID)).
		First(ctx)
	if err == runtime.ErrNotFound {
		return NotFound("Customer cart not found")
	}
	if err != nil {
		return err
	}

	_, err = builder.Delete[models.CartItem](s.qb).
		Where(builder.Eq("cart_id", cart.ID)).
		Exec(ctx)
	return err
}
