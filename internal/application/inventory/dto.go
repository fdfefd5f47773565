package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail/backend/internal/domain/inventory"
)

// RecordSaleRequest is the input for recording a sale event
type RecordSaleRequest struct {
	VariantID uuid.UUID
	Quantity  int
	SaleClass string
}

// SaleResult reports the outcome of a sale or return: the affected sale id
// and the variant's stock counters after the operation committed.
type SaleResult struct {
	SaleID         uuid.UUID       `json:"sale_id"`
	VariantID      uuid.UUID       `json:"variant_id"`
	Quantity       int             `json:"quantity"`
	SaleClass      string          `json:"sale_class"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	StockSound     int             `json:"stock_sound"`
	StockDefective int             `json:"stock_defective"`
}

// SaleListItem is one denormalized ledger row for list screens
type SaleListItem struct {
	ID          uuid.UUID       `json:"id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductName string          `json:"product_name"`
	SizeName    string          `json:"size_name"`
	ColorName   string          `json:"color_name"`
	Quantity    int             `json:"quantity"`
	SaleClass   string          `json:"sale_class"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Returned    bool            `json:"returned"`
}

// ToSaleListItem converts a domain ledger view to its response form
func ToSaleListItem(v inventory.SaleView) SaleListItem {
	return SaleListItem{
		ID:          v.ID,
		VariantID:   v.VariantID,
		ProductName: v.ProductName,
		SizeName:    v.SizeName,
		ColorName:   v.ColorName,
		Quantity:    v.Quantity,
		SaleClass:   v.SaleClass.String(),
		TotalPrice:  v.TotalPrice,
		OccurredAt:  v.OccurredAt,
		Returned:    v.Returned,
	}
}

// ToSaleListItems converts a slice of ledger views
func ToSaleListItems(views []inventory.SaleView) []SaleListItem {
	items := make([]SaleListItem, len(views))
	for i, v := range views {
		items[i] = ToSaleListItem(v)
	}
	return items
}

// LowStockItem is one low-stock alert entry
type LowStockItem struct {
	VariantID    uuid.UUID `json:"variant_id"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image,omitempty"`
	SizeName     string    `json:"size_name"`
	ColorName    string    `json:"color_name"`
	StockSound   int       `json:"stock_sound"`
}

// BestSellerItem is one best-seller ranking entry
type BestSellerItem struct {
	VariantID    uuid.UUID `json:"variant_id"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image,omitempty"`
	SizeName     string    `json:"size_name"`
	ColorName    string    `json:"color_name"`
	TotalSold    int       `json:"total_sold"`
}

// TrendPoint is one day of the sales trend series
type TrendPoint struct {
	Date          string `json:"date"`
	TotalQuantity int    `json:"total_quantity"`
}

// DashboardStats aggregates the back-office dashboard numbers
type DashboardStats struct {
	TotalUniqueProducts int64            `json:"total_unique_products"`
	TotalProductStock   int              `json:"total_product_stock"`
	TotalSoundStock     int              `json:"total_sound_stock"`
	TotalDefectiveStock int              `json:"total_defective_stock"`
	TotalSalesQuantity  int64            `json:"total_sales_quantity"`
	LowStockItems       []LowStockItem   `json:"low_stock_items"`
	BestSellingItems    []BestSellerItem `json:"best_selling_items"`
	DailySalesData      []TrendPoint     `json:"daily_sales_data"`
}
