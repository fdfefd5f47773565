package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/retail/backend/internal/domain/shared"
)

// VariantRepository defines the interface for variant stock persistence.
//
// AdjustStock is the invariant-bearing operation: the check-and-apply must be
// a single atomic storage operation so that concurrent adjustments on the
// same variant can never drive a counter below zero, observe a transient
// negative value, or lose an update.
type VariantRepository interface {
	// FindByID finds a variant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Variant, error)

	// FindByCombination finds the variant for a product-size-color triple
	FindByCombination(ctx context.Context, productID, sizeID, colorID uuid.UUID) (*Variant, error)

	// FindByProduct finds all variants of a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Variant, error)

	// FindAll finds variants matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Variant, error)

	// Create inserts a new variant; a duplicate product-size-color
	// combination fails with ErrAlreadyExists
	Create(ctx context.Context, variant *Variant) error

	// Save persists operator edits (price, image, manual stock correction)
	Save(ctx context.Context, variant *Variant) error

	// Delete removes a variant
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustStock applies delta (positive or negative) to the counter
	// selected by class as one atomic conditional update. It fails with
	// ErrInsufficientStock instead of applying when the result would be
	// negative, and with ErrNotFound for an unknown variant. On success it
	// returns the variant with post-adjustment counters.
	AdjustStock(ctx context.Context, id uuid.UUID, class SaleClass, delta int) (*Variant, error)

	// FindLowStock returns variants with stock_sound at or below threshold,
	// ascending by stock_sound, excluding variants whose product is flagged
	// ignore_low_stock, truncated to limit.
	FindLowStock(ctx context.Context, threshold, limit int) ([]LowStockView, error)

	// SumStock aggregates both counters across all variants
	SumStock(ctx context.Context) (StockTotals, error)
}

// SaleFilter narrows SaleRepository.List.
type SaleFilter struct {
	shared.Filter
	VariantID *uuid.UUID
	SaleClass *SaleClass
	Returned  *bool
	StartDate *time.Time
	EndDate   *time.Time
}

// SaleRepository defines the interface for the sale ledger.
type SaleRepository interface {
	// Insert appends a new unreturned record
	Insert(ctx context.Context, record *SaleRecord) error

	// FindByID finds a sale record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SaleRecord, error)

	// MarkReturned performs an atomic compare-and-set on the returned flag.
	// Exactly one caller observes success for a given record; later callers
	// get ErrAlreadyReturned, and an unknown id gets ErrNotFound.
	MarkReturned(ctx context.Context, id uuid.UUID) error

	// List returns denormalized ledger rows matching the filter, ordered by
	// occurred_at descending, paginated via the embedded Filter. Each call
	// is self-contained; no cursor state is kept between calls.
	List(ctx context.Context, filter SaleFilter) ([]SaleView, int64, error)

	// SumByVariant aggregates total quantity per variant over unreturned
	// sales, descending, truncated to limit.
	SumByVariant(ctx context.Context, limit int) ([]VariantSales, error)

	// DailyTotals sums unreturned sale quantities per calendar day from
	// since onward, ascending by day. Days with no sales are absent.
	DailyTotals(ctx context.Context, since time.Time) ([]DailyTotal, error)

	// TotalQuantity sums the quantity of every ledger record
	TotalQuantity(ctx context.Context) (int64, error)
}
