package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/shared"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Insert appends a new unreturned record
func (r *GormSaleRepository) Insert(ctx context.Context, record *inventory.SaleRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID finds a sale record by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.SaleRecord, error) {
	var record inventory.SaleRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// MarkReturned flips the returned flag with a compare-and-set: the WHERE
// clause only matches the unreturned row, so under concurrent returns of the
// same sale exactly one statement reports an affected row.
func (r *GormSaleRepository) MarkReturned(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.SaleRecord{}).
		Where("id = ? AND returned = false", id).
		Updates(map[string]interface{}{
			"returned":   true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the record does not exist or it was already returned.
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return shared.ErrAlreadyReturned
	}
	return nil
}

// List returns denormalized ledger rows matching the filter, newest first,
// with the total match count. Variant rows may be gone when their product was
// deleted, so the joins are LEFT and missing names come back empty.
func (r *GormSaleRepository) List(ctx context.Context, filter inventory.SaleFilter) ([]inventory.SaleView, int64, error) {
	base := r.db.WithContext(ctx).
		Table("sales AS s").
		Joins("LEFT JOIN product_variants v ON v.id = s.variant_id").
		Joins("LEFT JOIN products p ON p.id = v.product_id").
		Joins("LEFT JOIN sizes sz ON sz.id = v.size_id").
		Joins("LEFT JOIN colors c ON c.id = v.color_id")
	base = r.applySaleFilter(base, filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{}).
		Select(`s.id AS id, s.variant_id AS variant_id,
			COALESCE(p.name, '') AS product_name,
			COALESCE(sz.name, '') AS size_name,
			COALESCE(c.name, '') AS color_name,
			s.quantity AS quantity, s.sale_class AS sale_class,
			s.total_price AS total_price, s.occurred_at AS occurred_at,
			s.returned AS returned`).
		Order("s.occurred_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var views []inventory.SaleView
	if err := query.Scan(&views).Error; err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// SumByVariant aggregates total quantity per variant over unreturned sales,
// descending, truncated to limit.
func (r *GormSaleRepository) SumByVariant(ctx context.Context, limit int) ([]inventory.VariantSales, error) {
	var rows []inventory.VariantSales
	err := r.db.WithContext(ctx).
		Table("sales AS s").
		Select(`s.variant_id AS variant_id, p.id AS product_id,
			p.name AS product_name, p.image_url AS product_image,
			sz.name AS size_name, c.name AS color_name,
			SUM(s.quantity) AS total_sold`).
		Joins("JOIN product_variants v ON v.id = s.variant_id").
		Joins("JOIN products p ON p.id = v.product_id").
		Joins("JOIN sizes sz ON sz.id = v.size_id").
		Joins("JOIN colors c ON c.id = v.color_id").
		Where("s.returned = false").
		Group("s.variant_id, p.id, p.name, p.image_url, sz.name, c.name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DailyTotals sums unreturned sale quantities per UTC calendar day from since
// onward, ascending by day. Days with no sales are absent from the result.
// Bucketing happens in UTC regardless of the session time zone, matching the
// zero-filled window the query service builds around it.
func (r *GormSaleRepository) DailyTotals(ctx context.Context, since time.Time) ([]inventory.DailyTotal, error) {
	var totals []inventory.DailyTotal
	err := r.db.WithContext(ctx).
		Model(&inventory.SaleRecord{}).
		Select("DATE(occurred_at AT TIME ZONE 'UTC') AS day, SUM(quantity) AS total_quantity").
		Where("returned = false AND occurred_at >= ?", since).
		Group("DATE(occurred_at AT TIME ZONE 'UTC')").
		Order("day ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// TotalQuantity sums the quantity of every ledger record, returned included
func (r *GormSaleRepository) TotalQuantity(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&inventory.SaleRecord{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// applySaleFilter applies the optional ledger filters to the query
func (r *GormSaleRepository) applySaleFilter(query *gorm.DB, filter inventory.SaleFilter) *gorm.DB {
	if filter.VariantID != nil {
		query = query.Where("s.variant_id = ?", *filter.VariantID)
	}
	if filter.SaleClass != nil {
		query = query.Where("s.sale_class = ?", filter.SaleClass.String())
	}
	if filter.Returned != nil {
		query = query.Where("s.returned = ?", *filter.Returned)
	}
	if filter.StartDate != nil {
		query = query.Where("s.occurred_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("s.occurred_at <= ?", *filter.EndDate)
	}
	return query
}

// Ensure GormSaleRepository implements SaleRepository
var _ inventory.SaleRepository = (*GormSaleRepository)(nil)
