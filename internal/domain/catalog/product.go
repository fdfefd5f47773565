package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/retail/backend/internal/domain/shared"
)

// Product is a catalog record. Stock is not tracked here; it lives on the
// product's variants (size/color combinations) in the inventory domain.
type Product struct {
	shared.BaseEntity
	Name           string     `gorm:"type:varchar(255);not null"`
	Description    string     `gorm:"type:text"`
	CategoryID     *uuid.UUID `gorm:"type:uuid;index"`
	ImageURL       string     `gorm:"type:varchar(512)"`
	IgnoreLowStock bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product record
func NewProduct(name, description string, categoryID *uuid.UUID) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		CategoryID:  categoryID,
	}, nil
}

// Update applies an edit to the mutable product fields
func (p *Product) Update(name, description string, categoryID *uuid.UUID) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	return nil
}

// SetIgnoreLowStock toggles whether the product is excluded from low-stock alerts
func (p *Product) SetIgnoreLowStock(ignore bool) {
	p.IgnoreLowStock = ignore
	p.UpdatedAt = time.Now()
}

// Category groups products for the back-office listing screens.
type Category struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(255);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category record
func NewCategory(name string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	return &Category{BaseEntity: shared.NewBaseEntity(), Name: name}, nil
}

// Size is a lookup record (e.g. S, M, L, 38, 40).
type Size struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(64);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Size) TableName() string {
	return "sizes"
}

// NewSize creates a new size record
func NewSize(name string) (*Size, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Size name cannot be empty")
	}
	return &Size{BaseEntity: shared.NewBaseEntity(), Name: name}, nil
}

// Color is a lookup record with an optional display hex code.
type Color struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(64);not null;uniqueIndex"`
	HexCode string `gorm:"type:varchar(7)"`
}

// TableName returns the table name for GORM
func (Color) TableName() string {
	return "colors"
}

// NewColor creates a new color record
func NewColor(name, hexCode string) (*Color, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Color name cannot be empty")
	}
	return &Color{BaseEntity: shared.NewBaseEntity(), Name: name, HexCode: hexCode}, nil
}
