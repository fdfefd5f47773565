package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/shared"
)

// GormVariantRepository implements VariantRepository using GORM
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GormVariantRepository
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// FindByID finds a variant by its ID
func (r *GormVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Variant, error) {
	var variant inventory.Variant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindByCombination finds the variant for a product-size-color triple
func (r *GormVariantRepository) FindByCombination(ctx context.Context, productID, sizeID, colorID uuid.UUID) (*inventory.Variant, error) {
	var variant inventory.Variant
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND size_id = ? AND color_id = ?", productID, sizeID, colorID).
		First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindByProduct finds all variants of a product
func (r *GormVariantRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.Variant, error) {
	var variants []inventory.Variant
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// FindAll finds variants matching the filter
func (r *GormVariantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Variant, error) {
	var variants []inventory.Variant
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Variant{}), filter)
	if err := query.Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// Create inserts a new variant. The unique index on the product-size-color
// triple rejects duplicates, which surface as ErrAlreadyExists.
func (r *GormVariantRepository) Create(ctx context.Context, variant *inventory.Variant) error {
	if err := r.db.WithContext(ctx).Create(variant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save persists operator edits (price, image, manual stock correction)
func (r *GormVariantRepository) Save(ctx context.Context, variant *inventory.Variant) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Variant{}).
		Where("id = ?", variant.ID).
		Updates(map[string]interface{}{
			"stock_sound":     variant.StockSound,
			"stock_defective": variant.StockDefective,
			"price":           variant.Price,
			"image_url":       variant.ImageURL,
			"updated_at":      variant.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a variant
func (r *GormVariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Variant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AdjustStock applies delta to the counter selected by class as a single
// conditional UPDATE. The WHERE clause carries the non-negativity guard, so
// the check and the write are one atomic statement and concurrent adjustments
// serialize on the row without any application-level locking.
func (r *GormVariantRepository) AdjustStock(ctx context.Context, id uuid.UUID, class inventory.SaleClass, delta int) (*inventory.Variant, error) {
	column, err := class.Column()
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Model(&inventory.Variant{}).
		Where("id = ?", id).
		Where(column+" + ? >= 0", delta).
		Updates(map[string]interface{}{
			column:       gorm.Expr(column+" + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Either the variant does not exist or the guard rejected the delta.
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, shared.ErrInsufficientStock
	}

	return r.FindByID(ctx, id)
}

// FindLowStock returns variants with stock_sound at or below threshold,
// ascending, excluding variants whose product opted out of low-stock alerts.
func (r *GormVariantRepository) FindLowStock(ctx context.Context, threshold, limit int) ([]inventory.LowStockView, error) {
	var views []inventory.LowStockView
	err := r.db.WithContext(ctx).
		Table("product_variants AS v").
		Select(`v.id AS variant_id, p.id AS product_id, p.name AS product_name,
			p.image_url AS product_image, s.name AS size_name, c.name AS color_name,
			v.stock_sound AS stock_sound`).
		Joins("JOIN products p ON p.id = v.product_id").
		Joins("JOIN sizes s ON s.id = v.size_id").
		Joins("JOIN colors c ON c.id = v.color_id").
		Where("p.ignore_low_stock = false").
		Where("v.stock_sound <= ?", threshold).
		Order("v.stock_sound ASC").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// SumStock aggregates both counters across all variants
func (r *GormVariantRepository) SumStock(ctx context.Context) (inventory.StockTotals, error) {
	var totals inventory.StockTotals
	err := r.db.WithContext(ctx).
		Model(&inventory.Variant{}).
		Select("COALESCE(SUM(stock_sound), 0) AS sound, COALESCE(SUM(stock_defective), 0) AS defective").
		Scan(&totals).Error
	if err != nil {
		return inventory.StockTotals{}, err
	}
	return totals, nil
}

// applyFilter applies filter options to the query
func (r *GormVariantRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}
	return query
}

// Ensure GormVariantRepository implements VariantRepository
var _ inventory.VariantRepository = (*GormVariantRepository)(nil)
