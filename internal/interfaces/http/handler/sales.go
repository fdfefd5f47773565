package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appinv "github.com/retail/backend/internal/application/inventory"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/interfaces/http/dto"
)

// SalesHandler exposes the sale ledger: recording sales, processing returns
// and listing ledger rows.
type SalesHandler struct {
	BaseHandler
	service *appinv.SalesService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(service *appinv.SalesService) *SalesHandler {
	return &SalesHandler{service: service}
}

// RegisterRoutes registers the sales routes
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.RecordSale)
		sales.GET("", h.ListSales)
	}
	rg.POST("/returns", h.ProcessReturn)
}

// RecordSaleRequest is the request body for recording a sale
type RecordSaleRequest struct {
	VariantID string `json:"variant_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	SaleClass string `json:"sale_class" binding:"required,oneof=sound defective"`
}

// RecordSale handles POST /sales
func (h *SalesHandler) RecordSale(c *gin.Context) {
	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	variantID, err := uuid.Parse(req.VariantID)
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	result, err := h.service.RecordSale(c.Request.Context(), appinv.RecordSaleRequest{
		VariantID: variantID,
		Quantity:  req.Quantity,
		SaleClass: req.SaleClass,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ProcessReturnRequest is the request body for processing a return
type ProcessReturnRequest struct {
	SaleID string `json:"sale_id" binding:"required,uuid"`
}

// ProcessReturn handles POST /returns
func (h *SalesHandler) ProcessReturn(c *gin.Context) {
	var req ProcessReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	saleID, err := uuid.Parse(req.SaleID)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	result, err := h.service.ProcessReturn(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListSalesRequest holds the ledger list query parameters
type ListSalesRequest struct {
	dto.ListRequest
	VariantID string `form:"variant_id" binding:"omitempty,uuid"`
	SaleClass string `form:"sale_class" binding:"omitempty,oneof=sound defective"`
	Returned  *bool  `form:"returned"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// ListSales handles GET /sales
func (h *SalesHandler) ListSales(c *gin.Context) {
	var req ListSalesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	filter := inventory.SaleFilter{}
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.Returned = req.Returned

	if req.VariantID != "" {
		variantID, err := uuid.Parse(req.VariantID)
		if err != nil {
			h.BadRequest(c, "Invalid variant ID")
			return
		}
		filter.VariantID = &variantID
	}
	if req.SaleClass != "" {
		class, err := inventory.ParseSaleClass(req.SaleClass)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		filter.SaleClass = &class
	}
	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			h.BadRequest(c, "Invalid start date")
			return
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			h.BadRequest(c, "Invalid end date")
			return
		}
		// Include the whole end day
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.EndDate = &end
	}

	items, total, err := h.service.ListSales(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, req.Page, req.PageSize)
}
