package store

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/strideworks/storefront/internal/models"
	"github.com/strideworks/storefront/pkg/builder"
	"github.com/strideworks/storefront/pkg/runtime"
)

// featuredLimit caps the featured-products listing.
const featuredLimit = 10

// CreateProductParams are the caller-supplied fields of a new product.
type CreateProductParams struct {
	Name        string
	Description *string
	Brand       string
	Category    string
	BasePrice   decimal.Decimal
	ImageURL    *string
}

// CreateProduct inserts a product. New products are active.
func (s *Store) CreateProduct(ctx context.Context, p CreateProductParams) (models.Product, error) {
	return builder.Insert[models.Product](s.qb).
		Values(models.Product{
			Name:        p.Name,
			Description: p.Description,
			Brand:       p.Brand,
			Category:    p.Category,
			BasePrice:   p.BasePrice,
			ImageURL:    p.ImageURL,
			IsActive:    true,
		}).
		One(ctx)
}

// UpdateProductParams are the optional fields of a product update. Nil
// fields are left unchanged.
type UpdateProductParams struct {
	Name        *string
	Description *string
	Brand       *string
	Category    *string
	BasePrice   *decimal.Decimal
	ImageURL    *string
	IsActive    *bool
}

// UpdateProduct applies a partial update and returns the updated row.
func (s *Store) UpdateProduct(ctx context.Context, id int, p UpdateProductParams) (models.Product, error) {
	q := builder.Update[models.Product](s.qb)
	if p.Name != nil {
		q.Set("name", *p.Name)
	}
	if p.Description != nil {
		q.Set("description", *p.Description)
	}
	if p.Brand != nil {
		q.Set("brand", *p.Brand)
	}
	if p.Category != nil {
		q.Set("category", *p.Category)
	}
	if p.BasePrice != nil {
		q.Set("base_price", *p.BasePrice)
	}
	if p.ImageURL != nil {
		q.Set("image_url", *p.ImageURL)
	}
	if p.IsActive != nil {
		q.Set("is_active", *p.IsActive)
	}
	q.Set("updated_at", time.Now())

	product, err := q.Where(builder.Eq("id", id)).One(ctx)
	if err == runtime.ErrNotFound {
		return models.Product{}, NotFound("Product with id %d not found", id)
	}
	return product, err
}

// Products returns all active products with their variants.
func (s *Store) Products(ctx context.Context) ([]ProductWithVariants, error) {
	products, err := builder.Select[models.Product](s.qb).
		Where(builder.Eq("is_active", true)).
		OrderByAsc("id").
		All(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachVariants(ctx, products)
}

// ProductByID returns one product with its variants, or nil when the id
// is unknown. Inactive products are still returned for direct lookup.
func (s *Store) ProductByID(ctx context.Context, id int) (*ProductWithVariants, error) {
	product, err := builder.Select[models.Product](s.qb).
		Where(builder.Eq("id", id)).
		First(ctx)
	if err == runtime.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	variants, err := s.VariantsByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return &ProductWithVariants{Product: product, Variants: variants}, nil
}

// SearchProducts matches active products whose name, brand, or
// description contains the query, case-insensitively. A blank query
// returns no results.
func (s *Store) SearchProducts(ctx context.Context, query string) ([]ProductWithVariants, error) {
	if strings.TrimSpace(query) == "" {
		return []ProductWithVariants{}, nil
	}
	pattern := "%" + strings.ToLower(query) + "%"

	products, err := builder.Select[models.Product](s.qb).
		Where(builder.Eq("is_active", true)).
		And(builder.Group(
			builder.ILike("name", pattern),
			builder.Or(builder.ILike("brand", pattern)),
			builder.Or(builder.ILike("description", pattern)),
		)).
		OrderByAsc("name").
		All(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachVariants(ctx, products)
}

// ProductsByCategory returns active products in a category.
func (s *Store) ProductsByCategory(ctx context.Context, category string) ([]ProductWithVariants, error) {
	if strings.TrimSpace(category) == "" {
		return []ProductWithVariants{}, nil
	}
	products, err := builder.Select[models.Product](s.qb).
		Where(builder.Eq("is_active", true)).
		And(builder.Eq("category", category)).
		OrderByAsc("name").
		All(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachVariants(ctx, products)
}

// ProductsByBrand returns active products of a brand.
func (s *Store) ProductsByBrand(ctx context.Context, brand string) ([]ProductWithVariants, error) {
	if strings.TrimSpace(brand) == "" {
		return []ProductWithVariants{}, nil
	}
	products, err := builder.Select[models.Product](s.qb).
		Where(builder.Eq("is_active", true)).
		And(builder.Eq("brand", brand)).
		OrderByAsc("name").
		All(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachVariants(ctx, products)
}

// FeaturedProducts returns the most recently created active products.
func (s *Store) FeaturedProducts(ctx context.Context) ([]ProductWithVariants, error) {
	products, err := builder.Select[models.Product](s.qb).
		Where(builder.Eq("is_active", true)).
		OrderByDesc("created_at").
		Limit(featuredLimit).
		All(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachVariants(ctx, products)
}

// attachVariants loads the variants of every product in one query and
// groups them onto their products, preserving product order.
func (s *Store) attachVariants(ctx context.Context, products []models.Product) ([]ProductWithVariants, error) {
	result := make([]ProductWithVariants, len(products))
	if len(products) == 0 {
		return result, nil
	}

	ids := make([]any, len(products))
	index := make(map[int]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
		result[i] = ProductWithVariants{Product: p, Variants: []models.ProductVariant{}}
	}

	variants, err := builder.Select[models.ProductVariant](s.qb).
		Where(builder.In("product_id", ids...)).
		OrderByAsc("id").
		All(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range variants {
		i := index[v.ProductID]
		result[i].Variants = append(result[i].Variants, v)
	}
	return result, nil
}

// CreateVariantParams are the caller-supplied fields of a new variant.
type CreateVariantParams struct {
	ProductID       int
	Size            models.ShoeSize
	Color           models.ShoeColor
	StockQuantity   int
	PriceAdjustment decimal.Decimal
	SKU             string
}

// CreateVariant inserts a product variant after checking the product
// exists. Duplicate SKUs and duplicate size/color pairs are conflicts.
func (s *Store) CreateVariant(ctx context.Context, p CreateVariantParams) (models.ProductVariant, error) {
	exists, err := builder.Select[models.Product](s.qb).
		Where(builder.Eq("id", p.ProductID)).
		Exists(ctx)
	if err != nil {
		return models.ProductVariant{}, err
	}
	if !exists {
		return models.ProductVariant{}, NotFound("Product with ID %d does not exist", p.ProductID)
	}

	variant, err := builder.Insert[models.ProductVariant](s.qb).
		Values(models.ProductVariant{
			ProductID:       p.ProductID,
			Size:            p.Size,
			Color:           p.Color,
			StockQuantity:   p.StockQuantity,
			PriceAdjustment: p.PriceAdjustment,
			SKU:             p.SKU,
		}).
		One(ctx)
	if constraint, ok := uniqueViolation(err); ok {
		switch constraint {
		case "product_variants_sku_key":
			return models.ProductVariant{}, Conflict("Variant with SKU %s already exists", p.SKU)
		case "product_variants_product_size_color_key":
			return models.ProductVariant{}, Conflict("Variant with size %s and color %s already exists for product %d", p.Size, p.Color, p.ProductID)
		}
	}
	return variant, err
}

// UpdateVariantParams are the optional fields of a variant update. Nil
// fields are left unchanged.
type UpdateVariantParams struct {
	StockQuantity   *int
	PriceAdjustment *decimal.Decimal
	SKU             *string
}

// UpdateVariant applies a partial update and returns the updated row.
func (s *Store) UpdateVariant(ctx context.Context, id int, p UpdateVariantParams) (models.ProductVariant, error) {
	q := builder.Update[models.ProductVariant](s.qb)
	if p.StockQuantity != nil {
		q.Set("stock_quantity", *p.StockQuantity)
	}
	if p.PriceAdjustment != nil {
		q.Set("price_adjustment", *p.PriceAdjustment)
	}
	if p.SKU != nil {
		q.Set("sku", *p.SKU)
	}
	q.Set("updated_at", time.Now())

	variant, err := q.Where(builder.Eq("id", id)).One(ctx)
	if err == runtime.ErrNotFound {
		return models.ProductVariant{}, NotFound("Product variant with id %d not found", id)
	}
	if constraint, ok := uniqueViolation(err); ok && constraint == "product_variants_sku_key" {
		return models.ProductVariant{}, Conflict("Variant with SKU %s already exists", *p.SKU)
	}
	return variant, err
}

// VariantsByProduct returns every variant of a product.
func (s *Store) VariantsByProduct(ctx context.Context, productID int) ([]models.ProductVariant, error) {
	return builder.Select[models.ProductVariant](s.qb).
		Where(builder.Eq("product_id", productID)).
		OrderByAsc("id").
		All(ctx)
}

// CheckVariantStock reports whether a variant has at least the requested
// quantity in stock.
func (s *Store) CheckVariantStock(ctx context.Context, variantID, requested int) (bool, error) {
	variant, err := builder.Select[models.ProductVariant](s.qb).
		Where(builder.Eq("id", variantID)).
		First(ctx)
	if err == runtime.ErrNotFound {
		return false, NotFound("Product variant with id %d not found", variantID)
	}
	if err != nil {
		return false, err
	}
	return variant.StockQuantity >= requested, nil
}
