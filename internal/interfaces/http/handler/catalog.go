package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcat "github.com/retail/backend/internal/application/catalog"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/interfaces/http/dto"
)

// CatalogHandler exposes products, variants and the lookup tables
type CatalogHandler struct {
	BaseHandler
	service *appcat.ProductService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(service *appcat.ProductService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers the catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.GET("/:id/variants", h.ListVariants)
	}

	variants := rg.Group("/variants")
	{
		variants.POST("", h.CreateVariant)
		variants.PUT("/:id/stock", h.CorrectStock)
		variants.DELETE("/:id", h.DeleteVariant)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	sizes := rg.Group("/sizes")
	{
		sizes.GET("", h.ListSizes)
		sizes.POST("", h.CreateSize)
		sizes.DELETE("/:id", h.DeleteSize)
	}

	colors := rg.Group("/colors")
	{
		colors.GET("", h.ListColors)
		colors.POST("", h.CreateColor)
		colors.DELETE("/:id", h.DeleteColor)
	}
}

// productRequest is the request body for creating or updating a product
type productRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	Description    string `json:"description"`
	CategoryID     string `json:"category_id" binding:"omitempty,uuid"`
	ImageURL       string `json:"image_url" binding:"omitempty,max=512"`
	IgnoreLowStock bool   `json:"ignore_low_stock"`
}

func (r *productRequest) categoryID() (*uuid.UUID, error) {
	if r.CategoryID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(r.CategoryID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// CreateProduct handles POST /products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	categoryID, err := req.categoryID()
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), appcat.CreateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  categoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter := shared.NewFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search

	products, err := h.service.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetProduct handles GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UpdateProduct handles PUT /products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	categoryID, err := req.categoryID()
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), id, appcat.UpdateProductRequest{
		Name:           req.Name,
		Description:    req.Description,
		CategoryID:     categoryID,
		ImageURL:       req.ImageURL,
		IgnoreLowStock: req.IgnoreLowStock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// DeleteProduct handles DELETE /products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListVariants handles GET /products/:id/variants
func (h *CatalogHandler) ListVariants(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	variants, err := h.service.ListVariants(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variants)
}

// createVariantRequest is the request body for adding a variant
type createVariantRequest struct {
	ProductID      string          `json:"product_id" binding:"required,uuid"`
	SizeID         string          `json:"size_id" binding:"required,uuid"`
	ColorID        string          `json:"color_id" binding:"required,uuid"`
	StockSound     int             `json:"stock_sound" binding:"min=0"`
	StockDefective int             `json:"stock_defective" binding:"min=0"`
	Price          decimal.Decimal `json:"price"`
	ImageURL       string          `json:"image_url" binding:"omitempty,max=512"`
}

// CreateVariant handles POST /variants
func (h *CatalogHandler) CreateVariant(c *gin.Context) {
	var req createVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	productID, _ := uuid.Parse(req.ProductID)
	sizeID, _ := uuid.Parse(req.SizeID)
	colorID, _ := uuid.Parse(req.ColorID)

	variant, err := h.service.CreateVariant(c.Request.Context(), appcat.CreateVariantRequest{
		ProductID:      productID,
		SizeID:         sizeID,
		ColorID:        colorID,
		StockSound:     req.StockSound,
		StockDefective: req.StockDefective,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, variant)
}

// correctStockRequest is the request body for an operator stock recount
type correctStockRequest struct {
	StockSound     int `json:"stock_sound" binding:"min=0"`
	StockDefective int `json:"stock_defective" binding:"min=0"`
}

// CorrectStock handles PUT /variants/:id/stock
func (h *CatalogHandler) CorrectStock(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req correctStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	variant, err := h.service.CorrectStock(c.Request.Context(), appcat.CorrectStockRequest{
		VariantID:      id,
		StockSound:     req.StockSound,
		StockDefective: req.StockDefective,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variant)
}

// DeleteVariant handles DELETE /variants/:id
func (h *CatalogHandler) DeleteVariant(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteVariant(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// nameRequest is the request body for creating a lookup row
type nameRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	HexCode string `json:"hex_code" binding:"omitempty,hexcolor"`
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	items, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// CreateCategory handles POST /categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.service.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// DeleteCategory handles DELETE /categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListSizes handles GET /sizes
func (h *CatalogHandler) ListSizes(c *gin.Context) {
	items, err := h.service.ListSizes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// CreateSize handles POST /sizes
func (h *CatalogHandler) CreateSize(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.service.CreateSize(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// DeleteSize handles DELETE /sizes/:id
func (h *CatalogHandler) DeleteSize(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteSize(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListColors handles GET /colors
func (h *CatalogHandler) ListColors(c *gin.Context) {
	items, err := h.service.ListColors(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// CreateColor handles POST /colors
func (h *CatalogHandler) CreateColor(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.service.CreateColor(c.Request.Context(), req.Name, req.HexCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// DeleteColor handles DELETE /colors/:id
func (h *CatalogHandler) DeleteColor(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteColor(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// parseID binds and parses the :id path parameter, writing the error
// response itself when the value is not a UUID.
func (h *CatalogHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}
