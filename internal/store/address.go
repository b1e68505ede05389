package store

import (
	"context"
	"time"

	"github.com/strideworks/storefront/internal/models"
	"github.com/strideworks/storefront/pkg/builder"
)

// CreateAddressParams are the caller-supplied fields of a new address.
type CreateAddressParams struct {
	CustomerID    int
	Type          models.AddressType
	StreetAddress string
	Apartment     *string
	City          string
	State         string
	PostalCode    string
	Country       string
	IsDefault     bool
}

// CreateAddress inserts an address for a customer. When the new address
// is the default, the previous default of the same type loses the flag
// in the same transaction.
func (s *Store) CreateAddress(ctx context.Context, p CreateAddressParams) (models.Address, error) {
	exists, err := s.customerExists(ctx, p.CustomerID)
	if err != nil {
		return models.Address{}, err
	}
	if !exists {
		return models.Address{}, NotFound("Customer with ID %d not found", p.CustomerID)
	}

	var address models.Address
	err = s.qb.InTx(ctx, func(tx *builder.Tx) error {
		if p.IsDefault {
			_, err := builder.Update[models.Address](tx).
				Set("is_default", false).
				Set("updated_at", time.Now()).
				Where(builder.Eq("customer_id", p.CustomerID)).
				And(builder.Eq("type", p.Type)).
				Exec(ctx)
			if err != nil {
				return err
			}
		}

		var err error
		address, err = builder.Insert[models.Address](tx).
			Values(models.Address{
				CustomerID:    p.CustomerID,
				Type:          p.Type,
				StreetAddress: p.StreetAddress,
				Apartment:     p.Apartment,
				City:          p.City,
				State:         p.State,
				PostalCode:    p.PostalCode,
				Country:       p.Country,
				IsDefault:     p.IsDefault,
			}).
			One(ctx)
		return err
	})
	if err != nil {
		return models.Address{}, err
	}
	return address, nil
}

// CustomerAddresses returns a customer's addresses, defaults first, then
// newest first.
func (s *Store) CustomerAddresses(ctx context.Context, customerID int) ([]models.Address, error) {
	exists, err := s.customerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, NotFound("Customer with ID %d not found", customerID)
	}

	return builder.Select[models.Address](s.qb).
		Where(builder.Eq("customer_id", customerID)).
		OrderByDesc("is_default").
		OrderByDesc("created_at").
		All(ctx)
}
