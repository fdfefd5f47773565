package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/retail/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter, ordered by name
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product; variant rows cascade at the storage layer
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all products
	Count(ctx context.Context) (int64, error)
}

// LookupRepository provides access to the small category/size/color lookup
// tables consumed by the catalog screens and the query-side denormalization.
type LookupRepository interface {
	FindCategories(ctx context.Context) ([]Category, error)
	FindSizes(ctx context.Context) ([]Size, error)
	FindColors(ctx context.Context) ([]Color, error)

	SaveCategory(ctx context.Context, category *Category) error
	SaveSize(ctx context.Context, size *Size) error
	SaveColor(ctx context.Context, color *Color) error

	DeleteCategory(ctx context.Context, id uuid.UUID) error
	DeleteSize(ctx context.Context, id uuid.UUID) error
	DeleteColor(ctx context.Context, id uuid.UUID) error
}
