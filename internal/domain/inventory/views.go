package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleView is a ledger row denormalized for display: the variant's product,
// size and color names are joined in so list screens need no follow-up reads.
type SaleView struct {
	ID          uuid.UUID
	VariantID   uuid.UUID
	ProductName string
	SizeName    string
	ColorName   string
	Quantity    int
	SaleClass   SaleClass
	TotalPrice  decimal.Decimal
	OccurredAt  time.Time
	Returned    bool
}

// LowStockView is one low-stock alert row.
type LowStockView struct {
	VariantID    uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	ProductImage string
	SizeName     string
	ColorName    string
	StockSound   int
}

// VariantSales is one best-seller aggregate row: total quantity across all
// unreturned sales of a variant.
type VariantSales struct {
	VariantID    uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	ProductImage string
	SizeName     string
	ColorName    string
	TotalSold    int
}

// DailyTotal is the summed quantity of unreturned sales on one calendar day.
type DailyTotal struct {
	Day           time.Time
	TotalQuantity int
}

// StockTotals aggregates the counters across all variants.
type StockTotals struct {
	Sound     int
	Defective int
}

// Total returns the combined sellable units across both classes
func (t StockTotals) Total() int {
	return t.Sound + t.Defective
}
