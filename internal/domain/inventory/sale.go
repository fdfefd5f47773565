package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail/backend/internal/domain/shared"
)

// SaleRecord is one event in the sale ledger. Records are append-mostly:
// quantity and class never change after creation, and the only mutation is
// the one-way Returned transition performed by the return flow. Records are
// never deleted; they are the audit trail.
type SaleRecord struct {
	shared.BaseEntity
	VariantID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_sales_variant"`
	Quantity   int             `gorm:"not null;check:quantity > 0"`
	SaleClass  SaleClass       `gorm:"type:varchar(16);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OccurredAt time.Time       `gorm:"type:timestamptz;not null;index:idx_sales_occurred_at"`
	Returned   bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (SaleRecord) TableName() string {
	return "sales"
}

// NewSaleRecord creates a new unreturned sale event
func NewSaleRecord(variantID uuid.UUID, quantity int, class SaleClass, unitPrice decimal.Decimal) (*SaleRecord, error) {
	if variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !class.IsValid() {
		return nil, shared.NewDomainError("INVALID_SALE_CLASS", "Sale class must be 'sound' or 'defective'")
	}

	return &SaleRecord{
		BaseEntity: shared.NewBaseEntity(),
		VariantID:  variantID,
		Quantity:   quantity,
		SaleClass:  class,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		OccurredAt: time.Now(),
	}, nil
}

// IsReturned returns true once the sale has been reversed
func (s *SaleRecord) IsReturned() bool {
	return s.Returned
}

// MarkReturned flips the returned flag in memory. Exclusivity between
// concurrent returns is enforced by the repository's compare-and-set, not
// here; this guard only catches callers that already hold a returned record.
func (s *SaleRecord) MarkReturned() error {
	if s.Returned {
		return shared.ErrAlreadyReturned
	}
	s.Returned = true
	s.UpdatedAt = time.Now()
	return nil
}
