package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/strideworks/storefront/internal/models"
	"github.com/strideworks/storefront/pkg/builder"
	"github.com/strideworks/storefront/pkg/runtime"
)

// orderLinesSQL joins order items with the variant and product details
// the storefront renders. Prices come from the order line, not the
// catalog.
const orderLinesSQL = `
SELECT oi.id, oi.product_variant_id, oi.quantity, oi.unit_price, oi.total_price,
       pv.size, pv.color, pv.sku,
       p.name, p.brand, p.image_url
FROM order_items oi
JOIN product_variants pv ON pv.id = oi.product_variant_id
JOIN products p ON p.id = pv.product_id
WHERE oi.order_id = $1
ORDER BY oi.id`

// CustomerOrders returns a customer's orders, newest first, each with
// its lines and addresses.
func (s *Store) CustomerOrders(ctx context.Context, customerID int) ([]OrderView, error) {
	orders, err := builder.Select[models.Order](s.qb).
		Where(builder.Eq("customer_id", customerID)).
		OrderByDesc("order_date").
		All(ctx)
	if err != nil {
		return nil, err
	}
	return s.orderViews(ctx, orders)
}

// OrderByID returns one order with its lines and addresses, or nil when
// the id is unknown.
func (s *Store) OrderByID(ctx context.Context, orderID int) (*OrderView, error) {
	order, err := builder.Select[models.Order](s.qb).
		Where(builder.Eq("id", orderID)).
		First(ctx)
	if err == runtime.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	view, err := s.orderView(ctx, order)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// AllOrders returns every order, newest first.
func (s *Store) AllOrders(ctx context.Context) ([]OrderView, error) {
	orders, err := builder.Select[models.Order](s.qb).
		OrderByDesc("order_date").
		All(ctx)
	if err != nil {
		return nil, err
	}
	return s.orderViews(ctx, orders)
}

func (s *Store) orderViews(ctx context.Context, orders []models.Order) ([]OrderView, error) {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		view, err := s.orderView(ctx, order)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Store) orderView(ctx context.Context, order models.Order) (OrderView, error) {
	rows, err := s.DB().Query(ctx, orderLinesSQL, order.ID)
	if err != nil {
		return OrderView{}, err
	}
	items, err := scanOrderLines(rows)
	if err != nil {
		return OrderView{}, err
	}

	billing, err := builder.Select[models.Address](s.qb).
		Where(builder.Eq("id", order.BillingAddressID)).
		First(ctx)
	if err != nil {
		return OrderView{}, err
	}
	shipping, err := builder.Select[models.Address](s.qb).
		Where(builder.Eq("id", order.ShippingAddressID)).
		First(ctx)
	if err != nil {
		return OrderView{}, err
	}

	return OrderView{
		Order:           order,
		Items:           items,
		BillingAddress:  billing,
		ShippingAddress: shipping,
	}, nil
}

func scanOrderLines(rows pgx.Rows) ([]OrderItemView, error) {
	defer rows.Close()

	items := []OrderItemView{}
	for rows.Next() {
		var item OrderItemView
		err := rows.Scan(
			&item.ID, &item.ProductVariantID, &item.Quantity, &item.UnitPrice, &item.TotalPrice,
			&item.Size, &item.Color, &item.SKU,
			&item.ProductName, &item.Brand, &item.ImageURL,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateOrderStatus advances an order along the status state machine.
// shipped_date and delivered_date are stamped on the first transition
// into their status and never overwritten.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int, status models.OrderStatus) (models.Order, error) {
	var updated models.Order
	err := s.qb.InTx(ctx, func(tx *builder.Tx) error {
		order, err := builder.Select[models.Order](tx).
			Where(builder.Eq("id", orderID)).
			First(ctx)
		if err == runtime.ErrNotFound {
			return NotFound("Order with id %d not found", orderID)
		}
		if err != nil {
			return err
		}

		if !models.CanTransition(order.Status, status) {
			return Conflict("Invalid status transition from '%s' to '%s'", order.Status, status)
		}

		now := time.Now()
		q := builder.Update[models.Order](tx).
			Set("status", status).
			Set("updated_at", now)
		if status == models.OrderShipped && order.ShippedDate == nil {
			q.Set("shipped_date", now)
		}
		if status == models.OrderDelivered && order.DeliveredDate == nil {
			q.Set("delivered_date", now)
		}

		updated, err = q.Where(builder.Eq("id", orderID)).One(ctx)
		return err
	})
	if err != nil {
		return models.Order{}, err
	}
	return updated, nil
}
