package store

import (
	"context"

	"github.com/strideworks/storefront/internal/models"
	"github.com/strideworks/storefront/pkg/builder"
)

// CreateCustomerParams are the caller-supplied fields of a new customer.
type CreateCustomerParams struct {
	Email     string
	FirstName string
	LastName  string
	Phone     *string
}

// CreateCustomer inserts a customer and their empty cart in one
// transaction. Duplicate emails are conflicts.
func (s *Store) CreateCustomer(ctx context.Context, p CreateCustomerParams) (models.Customer, error) {
	var customer models.Customer
	err := s.qb.InTx(ctx, func(tx *builder.Tx) error {
		var err error
		customer, err = builder.Insert[models.Customer](tx).
			Values(models.Customer{
				Email:     p.Email,
				FirstName: p.FirstName,
				LastName:  p.LastName,
				Phone:     p.Phone,
			}).
			One(ctx)
		if _, ok := uniqueViolation(err); ok {
			return Conflict("Customer with email %s already exists", p.Email)
		}
		if err != nil {
			return err
		}

		_, err = builder.Insert[models.Cart](tx).
			Values(models.Cart{CustomerID: customer.ID}).
			Exec(ctx)
		return err
	})
	if err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// customerExists reports whether the customer id is known.
func (s *Store) customerExists(ctx context.Context, customerID int) (bool, error) {
	return builder.Select[models.Customer](s.qb).
		Where(builder.Eq("id", customerID)).
		Exists(ctx)
}
