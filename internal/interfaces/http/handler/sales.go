package handler

import (
	"strconv"

	appsales "github.com/barstock/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
)

// defaultRecentLimit caps the recent transactions listing when no limit is given
const defaultRecentLimit = 50

// SalesHandler serves sales feed endpoints
type SalesHandler struct {
	BaseHandler
	service *appsales.Service
}

// NewSalesHandler creates a sales handler
func NewSalesHandler(service *appsales.Service) *SalesHandler {
	return &SalesHandler{service: service}
}

// RegisterRoutes registers sales routes
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("/ingest", h.Ingest)
		sales.GET("/recent", h.Recent)
		sales.GET("/stores", h.Stores)
		sales.GET("/devices", h.Devices)
	}
}

// Ingest accepts a batch of sales feed rows
func (h *SalesHandler) Ingest(c *gin.Context) {
	var req appsales.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.IngestBatch(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Recent lists the most recently recorded transactions
func (h *SalesHandler) Recent(c *gin.Context) {
	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	txns, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, txns)
}

// Stores lists the distinct store IDs seen in the sales feed
func (h *SalesHandler) Stores(c *gin.Context) {
	stores, err := h.service.Stores(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stores)
}

// Devices lists the distinct device IDs seen in the sales feed
func (h *SalesHandler) Devices(c *gin.Context) {
	devices, err := h.service.Devices(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, devices)
}
