package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/shared"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products matching the filter, ordered by name
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.db.WithContext(ctx).Model(&catalog.Product{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+strings.TrimSpace(filter.Search)+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	query = query.Order("name ASC")

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete deletes a product. The foreign key on product_variants cascades, so
// the product's variants go with it; ledger rows stay for history.
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all products
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// GormLookupRepository implements LookupRepository using GORM
type GormLookupRepository struct {
	db *gorm.DB
}

// NewGormLookupRepository creates a new GormLookupRepository
func NewGormLookupRepository(db *gorm.DB) *GormLookupRepository {
	return &GormLookupRepository{db: db}
}

// FindCategories returns all categories ordered by name
func (r *GormLookupRepository) FindCategories(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindSizes returns all sizes ordered by name
func (r *GormLookupRepository) FindSizes(ctx context.Context) ([]catalog.Size, error) {
	var sizes []catalog.Size
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

// FindColors returns all colors ordered by name
func (r *GormLookupRepository) FindColors(ctx context.Context) ([]catalog.Color, error) {
	var colors []catalog.Color
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

// SaveCategory creates or updates a category
func (r *GormLookupRepository) SaveCategory(ctx context.Context, category *catalog.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveSize creates or updates a size
func (r *GormLookupRepository) SaveSize(ctx context.Context, size *catalog.Size) error {
	if err := r.db.WithContext(ctx).Save(size).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveColor creates or updates a color
func (r *GormLookupRepository) SaveColor(ctx context.Context, color *catalog.Color) error {
	if err := r.db.WithContext(ctx).Save(color).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// DeleteCategory removes a category
func (r *GormLookupRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, &catalog.Category{}, id)
}

// DeleteSize removes a size
func (r *GormLookupRepository) DeleteSize(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, &catalog.Size{}, id)
}

// DeleteColor removes a color
func (r *GormLookupRepository) DeleteColor(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, &catalog.Color{}, id)
}

func (r *GormLookupRepository) deleteByID(ctx context.Context, model interface{}, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormLookupRepository implements LookupRepository
var _ catalog.LookupRepository = (*GormLookupRepository)(nil)
