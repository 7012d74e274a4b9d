package handler

import (
	"bytes"
	"fmt"
	"net/http"

	appreconciliation "github.com/barstock/backend/internal/application/reconciliation"
	"github.com/gin-gonic/gin"
)

// ReconciliationHandler serves variance report endpoints
type ReconciliationHandler struct {
	BaseHandler
	service *appreconciliation.Service
}

// NewReconciliationHandler creates a reconciliation handler
func NewReconciliationHandler(service *appreconciliation.Service) *ReconciliationHandler {
	return &ReconciliationHandler{service: service}
}

// RegisterRoutes registers reconciliation routes
func (h *ReconciliationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recon := rg.Group("/reconciliation")
	{
		recon.GET("/run", h.Run)
		recon.GET("/export", h.Export)
	}
}

// Run computes a variance report for one date and scope
func (h *ReconciliationHandler) Run(c *gin.Context) {
	var req appreconciliation.RunRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	report, err := h.service.Run(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// Export streams the variance report as a CSV attachment
func (h *ReconciliationHandler) Export(c *gin.Context) {
	var req appreconciliation.RunRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	var buf bytes.Buffer
	report, err := h.service.ExportCSV(c.Request.Context(), req, &buf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("variance_%s_%s.csv", report.Mode, report.Date.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
