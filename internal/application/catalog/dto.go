package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
)

// CreateProductRequest is the input for creating a product
type CreateProductRequest struct {
	Name        string
	Description string
	CategoryID  *uuid.UUID
	ImageURL    string
}

// UpdateProductRequest is the input for editing a product
type UpdateProductRequest struct {
	Name           string
	Description    string
	CategoryID     *uuid.UUID
	ImageURL       string
	IgnoreLowStock bool
}

// ProductResponse is the response form of a product
type ProductResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
	IgnoreLowStock bool       `json:"ignore_low_stock"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToProductResponse converts a product to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		CategoryID:     p.CategoryID,
		ImageURL:       p.ImageURL,
		IgnoreLowStock: p.IgnoreLowStock,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// CreateVariantRequest is the input for adding a size/color combination to a
// product, with its opening stock counters.
type CreateVariantRequest struct {
	ProductID      uuid.UUID
	SizeID         uuid.UUID
	ColorID        uuid.UUID
	StockSound     int
	StockDefective int
	Price          decimal.Decimal
	ImageURL       string
}

// CorrectStockRequest is the input for an operator stock recount
type CorrectStockRequest struct {
	VariantID      uuid.UUID
	StockSound     int
	StockDefective int
}

// VariantResponse is the response form of a variant
type VariantResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	SizeID         uuid.UUID       `json:"size_id"`
	ColorID        uuid.UUID       `json:"color_id"`
	StockSound     int             `json:"stock_sound"`
	StockDefective int             `json:"stock_defective"`
	Price          decimal.Decimal `json:"price"`
	ImageURL       string          `json:"image_url,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToVariantResponse converts a variant to its response form
func ToVariantResponse(v *inventory.Variant) VariantResponse {
	return VariantResponse{
		ID:             v.ID,
		ProductID:      v.ProductID,
		SizeID:         v.SizeID,
		ColorID:        v.ColorID,
		StockSound:     v.StockSound,
		StockDefective: v.StockDefective,
		Price:          v.Price,
		ImageURL:       v.ImageURL,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

// ToVariantResponses converts a slice of variants
func ToVariantResponses(variants []inventory.Variant) []VariantResponse {
	responses := make([]VariantResponse, len(variants))
	for i := range variants {
		responses[i] = ToVariantResponse(&variants[i])
	}
	return responses
}

// LookupResponse is the response form of a category, size or color row
type LookupResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	HexCode string    `json:"hex_code,omitempty"`
}
