package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/shared"
)

// ProductService handles the catalog surface: products, their size/color
// variants and the lookup tables. Variant stock here is only touched by
// explicit operator actions (opening stock on creation, manual recounts);
// sale-driven mutations belong to the inventory transaction engine.
type ProductService struct {
	products catalog.ProductRepository
	lookups  catalog.LookupRepository
	variants inventory.VariantRepository
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	products catalog.ProductRepository,
	lookups catalog.LookupRepository,
	variants inventory.VariantRepository,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		products: products,
		lookups:  lookups,
		variants: variants,
		logger:   logger,
	}
}

// CreateProduct creates a new product record
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Description, req.CategoryID)
	if err != nil {
		return nil, err
	}
	product.ImageURL = req.ImageURL

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetProduct returns a product by id
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// ListProducts returns products matching the filter
func (s *ProductService) ListProducts(ctx context.Context, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, nil
}

// UpdateProduct applies an edit to a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.Description, req.CategoryID); err != nil {
		return nil, err
	}
	product.ImageURL = req.ImageURL
	product.SetIgnoreLowStock(req.IgnoreLowStock)

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// DeleteProduct removes a product. Its variants cascade at the storage layer;
// ledger records referencing those variants are kept for history.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

// CreateVariant adds a size/color combination to a product with its opening
// stock. A duplicate combination for the same product fails with
// ErrAlreadyExists.
func (s *ProductService) CreateVariant(ctx context.Context, req CreateVariantRequest) (*VariantResponse, error) {
	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	variant, err := inventory.NewVariant(req.ProductID, req.SizeID, req.ColorID, req.StockSound, req.StockDefective, req.Price)
	if err != nil {
		return nil, err
	}
	variant.ImageURL = req.ImageURL

	if err := s.variants.Create(ctx, variant); err != nil {
		return nil, err
	}

	s.logger.Info("variant created",
		zap.String("variant_id", variant.ID.String()),
		zap.String("product_id", variant.ProductID.String()),
	)
	resp := ToVariantResponse(variant)
	return &resp, nil
}

// ListVariants returns all variants of a product
func (s *ProductService) ListVariants(ctx context.Context, productID uuid.UUID) ([]VariantResponse, error) {
	variants, err := s.variants.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToVariantResponses(variants), nil
}

// CorrectStock overwrites a variant's counters with operator-supplied values.
// This is the manual recount path; it does not write the sale ledger.
func (s *ProductService) CorrectStock(ctx context.Context, req CorrectStockRequest) (*VariantResponse, error) {
	variant, err := s.variants.FindByID(ctx, req.VariantID)
	if err != nil {
		return nil, err
	}
	if err := variant.Correct(req.StockSound, req.StockDefective); err != nil {
		return nil, err
	}
	if err := s.variants.Save(ctx, variant); err != nil {
		return nil, err
	}

	s.logger.Info("stock corrected",
		zap.String("variant_id", variant.ID.String()),
		zap.Int("stock_sound", variant.StockSound),
		zap.Int("stock_defective", variant.StockDefective),
	)
	resp := ToVariantResponse(variant)
	return &resp, nil
}

// DeleteVariant removes a variant
func (s *ProductService) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	if _, err := s.variants.FindByID(ctx, id); err != nil {
		return err
	}
	return s.variants.Delete(ctx, id)
}

// ListCategories returns all categories
func (s *ProductService) ListCategories(ctx context.Context) ([]LookupResponse, error) {
	categories, err := s.lookups.FindCategories(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]LookupResponse, len(categories))
	for i, c := range categories {
		responses[i] = LookupResponse{ID: c.ID, Name: c.Name}
	}
	return responses, nil
}

// CreateCategory creates a new category
func (s *ProductService) CreateCategory(ctx context.Context, name string) (*LookupResponse, error) {
	category, err := catalog.NewCategory(name)
	if err != nil {
		return nil, err
	}
	if err := s.lookups.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return &LookupResponse{ID: category.ID, Name: category.Name}, nil
}

// DeleteCategory removes a category
func (s *ProductService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.lookups.DeleteCategory(ctx, id)
}

// ListSizes returns all sizes
func (s *ProductService) ListSizes(ctx context.Context) ([]LookupResponse, error) {
	sizes, err := s.lookups.FindSizes(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]LookupResponse, len(sizes))
	for i, sz := range sizes {
		responses[i] = LookupResponse{ID: sz.ID, Name: sz.Name}
	}
	return responses, nil
}

// CreateSize creates a new size
func (s *ProductService) CreateSize(ctx context.Context, name string) (*LookupResponse, error) {
	size, err := catalog.NewSize(name)
	if err != nil {
		return nil, err
	}
	if err := s.lookups.SaveSize(ctx, size); err != nil {
		return nil, err
	}
	return &LookupResponse{ID: size.ID, Name: size.Name}, nil
}

// DeleteSize removes a size
func (s *ProductService) DeleteSize(ctx context.Context, id uuid.UUID) error {
	return s.lookups.DeleteSize(ctx, id)
}

// ListColors returns all colors
func (s *ProductService) ListColors(ctx context.Context) ([]LookupResponse, error) {
	colors, err := s.lookups.FindColors(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]LookupResponse, len(colors))
	for i, c := range colors {
		responses[i] = LookupResponse{ID: c.ID, Name: c.Name, HexCode: c.HexCode}
	}
	return responses, nil
}

// CreateColor creates a new color
func (s *ProductService) CreateColor(ctx context.Context, name, hexCode string) (*LookupResponse, error) {
	color, err := catalog.NewColor(name, hexCode)
	if err != nil {
		return nil, err
	}
	if err := s.lookups.SaveColor(ctx, color); err != nil {
		return nil, err
	}
	return &LookupResponse{ID: color.ID, Name: color.Name, HexCode: color.HexCode}, nil
}

// DeleteColor removes a color
func (s *ProductService) DeleteColor(ctx context.Context, id uuid.UUID) error {
	return s.lookups.DeleteColor(ctx, id)
}
