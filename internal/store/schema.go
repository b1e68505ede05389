package store

import (
	"context"

	"github.com/pkg/errors"
)

// ddl is the storefront schema. Statements are idempotent so Bootstrap
// can run at every startup.
var ddl = []string{
	`DO $$ BEGIN
		CREATE TYPE shoe_size AS ENUM (
			'5', '5.5', '6', '6.5', '7', '7.5', '8', '8.5', '9', '9.5',
			'10', '10.5', '11', '11.5', '12', '12.5', '13', '13.5', '14');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		CREATE TYPE shoe_color AS ENUM (
			'black', 'white', 'brown', 'navy', 'red', 'blue', 'gray',
			'green', 'pink', 'purple', 'yellow', 'orange', 'beige');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		CREATE TYPE order_status AS ENUM (
			'pending', 'processing', 'shipped', 'delivered', 'cancelled');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		CREATE TYPE address_type AS ENUM ('billing', 'shipping');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		brand TEXT NOT NULL,
		category TEXT NOT NULL,
		base_price NUMERIC(10,2) NOT NULL,
		image_url TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS product_variants (
		id SERIAL PRIMARY KEY,
		product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		size shoe_size NOT NULL,
		color shoe_color NOT NULL,
		stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
		price_adjustment NUMERIC(10,2) NOT NULL DEFAULT 0,
		sku TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		CONSTRAINT product_variants_sku_key UNIQUE (sku),
		CONSTRAINT product_variants_product_size_color_key UNIQUE (product_id, size, color)
	)`,

	`CREATE TABLE IF NOT EXISTS customers (
		id SERIAL PRIMARY KEY,
		email TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		CONSTRAINT customers_email_key UNIQUE (email)
	)`,

	`CREATE TABLE IF NOT EXISTS carts (
		id SERIAL PRIMARY KEY,
		customer_id INTEGER NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS cart_items (
		id SERIAL PRIMARY KEY,
		cart_id INTEGER NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
		product_variant_id INTEGER NOT NULL REFERENCES product_variants(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity > 0),
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		CONSTRAINT cart_items_cart_variant_key UNIQUE (cart_id, product_variant_id)
	)`,

	`CREATE TABLE IF NOT EXISTS addresses (
		id SERIAL PRIMARY KEY,
		customer_id INTEGER NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		type address_type NOT NULL,
		street_address TEXT NOT NULL,
		apartment TEXT,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		postal_code TEXT NOT NULL,
		country TEXT NOT NULL,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		customer_id INTEGER NOT NULL REFERENCES customers(id),
		status order_status NOT NULL DEFAULT 'pending',
		total_amount NUMERIC(10,2) NOT NULL,
		tax_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		shipping_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		billing_address_id INTEGER NOT NULL REFERENCES addresses(id),
		shipping_address_id INTEGER NOT NULL REFERENCES addresses(id),
		order_date TIMESTAMP NOT NULL DEFAULT NOW(),
		shipped_date TIMESTAMP,
		delivered_date TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_variant_id INTEGER NOT NULL REFERENCES product_variants(id),
		quantity INTEGER NOT NULL,
		unit_price NUMERIC(10,2) NOT NULL,
		total_price NUMERIC(10,2) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
}

// Bootstrap applies the schema. Safe to call repeatedly.
func (s *Store) Bootstrap(ctx context.Context) error {
	for _, stmt := range ddl {
		if _, err := s.DB().Exec(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to apply schema")
		}
	}
	return nil
}
