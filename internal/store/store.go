// Package store implements the storefront's persistence operations over
// the query builder.
package store

import (
	"github.com/strideworks/storefront/internal/models"
	"github.com/strideworks/storefront/internal/pricing"
	"github.com/strideworks/storefront/pkg/builder"
	"github.com/strideworks/storefront/pkg/registry"
	"github.com/strideworks/storefront/pkg/runtime"
)

// Store exposes every storefront persistence operation.
type Store struct {
	qb     *builder.DB
	policy pricing.Policy
}

// New creates a Store. All models are registered with the schema
// registry up front so metadata errors surface at construction.
func New(db *runtime.DB, policy pricing.Policy) (*Store, error) {
	for _, model := range models.All() {
		if err := registry.Register(model); err != nil {
			return nil, err
		}
	}
	return &Store{qb: builder.New(db), policy: policy}, nil
}

// Policy returns the active pricing policy.
func (s *Store) Policy() pricing.Policy {
	return s.policy
}

// DB returns the underlying runtime database.
func (s *Store) DB() *runtime.DB {
	return s.qb.Runtime()
}
