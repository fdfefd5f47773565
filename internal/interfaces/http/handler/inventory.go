package handler

import (
	"github.com/gin-gonic/gin"

	appinv "github.com/retail/backend/internal/application/inventory"
)

// InventoryHandler exposes the derived read views: low-stock alerts, the
// best-seller ranking, the daily sales trend and the composed dashboard.
type InventoryHandler struct {
	BaseHandler
	service *appinv.QueryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *appinv.QueryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes registers the inventory view routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	{
		inv.GET("/low-stock", h.LowStock)
		inv.GET("/best-sellers", h.BestSellers)
		inv.GET("/sales-trend", h.SalesTrend)
	}
	rg.GET("/dashboard/stats", h.DashboardStats)
}

// lowStockQuery holds the low-stock query parameters
type lowStockQuery struct {
	Threshold int `form:"threshold" binding:"omitempty,min=0"`
	Limit     int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// LowStock handles GET /inventory/low-stock
func (h *InventoryHandler) LowStock(c *gin.Context) {
	query := lowStockQuery{Threshold: h.service.Defaults().LowStockThreshold}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	items, err := h.service.LowStock(c.Request.Context(), query.Threshold, query.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// BestSellers handles GET /inventory/best-sellers
func (h *InventoryHandler) BestSellers(c *gin.Context) {
	var query struct {
		Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	items, err := h.service.BestSellers(c.Request.Context(), query.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// SalesTrend handles GET /inventory/sales-trend
func (h *InventoryHandler) SalesTrend(c *gin.Context) {
	var query struct {
		Days int `form:"days" binding:"omitempty,min=1,max=365"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	points, err := h.service.DailySalesTrend(c.Request.Context(), query.Days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}

// DashboardStats handles GET /dashboard/stats
func (h *InventoryHandler) DashboardStats(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
