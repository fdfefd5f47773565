package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail/backend/internal/domain/shared"
)

// SaleClass selects which of the two stock counters a sale debits.
type SaleClass string

const (
	// SaleClassSound debits undamaged, regular-price stock
	SaleClassSound SaleClass = "sound"
	// SaleClassDefective debits damaged stock sold separately
	SaleClassDefective SaleClass = "defective"
)

// String returns the string representation of SaleClass
func (c SaleClass) String() string {
	return string(c)
}

// IsValid returns true if the sale class is valid
func (c SaleClass) IsValid() bool {
	return c == SaleClassSound || c == SaleClassDefective
}

// Column returns the variant column holding the counter for this class.
// Repositories use it to build the conditional stock update.
func (c SaleClass) Column() (string, error) {
	switch c {
	case SaleClassSound:
		return "stock_sound", nil
	case SaleClassDefective:
		return "stock_defective", nil
	}
	return "", shared.NewDomainError("INVALID_SALE_CLASS", "Sale class must be 'sound' or 'defective'")
}

// ParseSaleClass converts external input into a SaleClass
func ParseSaleClass(s string) (SaleClass, error) {
	c := SaleClass(s)
	if !c.IsValid() {
		return "", shared.NewDomainError("INVALID_SALE_CLASS", "Sale class must be 'sound' or 'defective'")
	}
	return c, nil
}

// Variant is the unit at which stock is tracked: one row per
// product + size + color combination, with two independent non-negative
// counters. The counters are only mutated through VariantRepository's
// conditional AdjustStock or an explicit operator correction.
type Variant struct {
	shared.BaseEntity
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variants_product_size_color,priority:1"`
	SizeID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variants_product_size_color,priority:2"`
	ColorID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variants_product_size_color,priority:3"`
	StockSound     int             `gorm:"not null;default:0;check:stock_sound >= 0"`
	StockDefective int             `gorm:"not null;default:0;check:stock_defective >= 0"`
	Price          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ImageURL       string          `gorm:"type:varchar(512)"`
}

// TableName returns the table name for GORM
func (Variant) TableName() string {
	return "product_variants"
}

// NewVariant creates a new variant for a product-size-color combination
func NewVariant(productID, sizeID, colorID uuid.UUID, stockSound, stockDefective int, price decimal.Decimal) (*Variant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if sizeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SIZE", "Size ID cannot be empty")
	}
	if colorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COLOR", "Color ID cannot be empty")
	}
	if stockSound < 0 || stockDefective < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock counters cannot be negative")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Variant{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		SizeID:         sizeID,
		ColorID:        colorID,
		StockSound:     stockSound,
		StockDefective: stockDefective,
		Price:          price,
	}, nil
}

// TotalStock returns the total sellable units across both classes
func (v *Variant) TotalStock() int {
	return v.StockSound + v.StockDefective
}

// StockFor returns the counter value for the given sale class
func (v *Variant) StockFor(class SaleClass) int {
	if class == SaleClassDefective {
		return v.StockDefective
	}
	return v.StockSound
}

// CanFulfill returns true if the requested class holds at least quantity
// units. The two classes are never combined to satisfy one request.
func (v *Variant) CanFulfill(class SaleClass, quantity int) bool {
	return v.StockFor(class) >= quantity
}

// Correct overwrites both counters with operator-supplied values. This is the
// manual recount path: it bypasses the sale ledger and leaves no audit trail.
func (v *Variant) Correct(stockSound, stockDefective int) error {
	if stockSound < 0 || stockDefective < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock counters cannot be negative")
	}
	v.StockSound = stockSound
	v.StockDefective = stockDefective
	v.UpdatedAt = time.Now()
	return nil
}

// SetPrice updates the variant's unit price
func (v *Variant) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	v.Price = price
	v.UpdatedAt = time.Now()
	return nil
}
