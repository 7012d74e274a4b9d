package handler

import (
	appstock "github.com/barstock/backend/internal/application/stock"
	"github.com/gin-gonic/gin"
)

// StockHandler serves daily stock ledger endpoints
type StockHandler struct {
	BaseHandler
	service *appstock.Service
}

// NewStockHandler creates a stock handler
func NewStockHandler(service *appstock.Service) *StockHandler {
	return &StockHandler{service: service}
}

// RegisterRoutes registers stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.POST("/replenishment", h.SubmitReplenishment)
		stock.POST("/closing", h.SubmitClosing)
		stock.GET("/entries", h.Entries)
	}
}

// SubmitReplenishment records delivered stock for one ingredient and date
func (h *StockHandler) SubmitReplenishment(c *gin.Context) {
	var req appstock.ReplenishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.service.SubmitReplenishment(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SubmitClosing records a physical closing count for one ingredient and date
func (h *StockHandler) SubmitClosing(c *gin.Context) {
	var req appstock.ClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.service.SubmitClosing(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// entriesQuery bounds an entries listing to a location and date
type entriesQuery struct {
	StoreID  string `form:"store_id"`
	DeviceID string `form:"device_id"`
	Date     string `form:"date" binding:"required"`
}

// Entries lists ledger entries for a location and date
func (h *StockHandler) Entries(c *gin.Context) {
	var query entriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.ValidationError(c, err)
		return
	}

	entries, err := h.service.Entries(c.Request.Context(), query.StoreID, query.DeviceID, query.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
