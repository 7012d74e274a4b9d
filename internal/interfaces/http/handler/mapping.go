package handler

import (
	"strconv"

	appmapping "github.com/barstock/backend/internal/application/mapping"
	"github.com/gin-gonic/gin"
)

// defaultUnmappedLimit caps the unmapped-codes listing when no limit is given
const defaultUnmappedLimit = 100

// MappingHandler serves mapping table management endpoints
type MappingHandler struct {
	BaseHandler
	service *appmapping.Service
}

// NewMappingHandler creates a mapping handler
func NewMappingHandler(service *appmapping.Service) *MappingHandler {
	return &MappingHandler{service: service}
}

// RegisterRoutes registers mapping routes
func (h *MappingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mappings := rg.Group("/mappings")
	{
		mappings.GET("/direct", h.ListDirect)
		mappings.POST("/direct", h.UpsertDirect)
		mappings.DELETE("/direct", h.DeleteDirect)

		mappings.GET("/recipes", h.ListRecipes)
		mappings.POST("/recipes", h.UpsertRecipe)
		mappings.DELETE("/recipes", h.DeleteRecipes)

		mappings.GET("/composite", h.ListComposites)
		mappings.POST("/composite", h.UpsertComposite)
		mappings.DELETE("/composite", h.DeleteComposites)

		mappings.GET("/vending", h.ListVending)
		mappings.POST("/vending", h.UpsertVending)
		mappings.DELETE("/vending", h.DeleteVending)

		mappings.POST("/import", h.ImportPack)
		mappings.GET("/unmapped-codes", h.UnmappedCodes)
	}
}

// ListDirect lists direct mappings with pagination and search
func (h *MappingHandler) ListDirect(c *gin.Context) {
	var filter appmapping.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.service.ListDirect(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpsertDirect creates or updates one direct mapping
func (h *MappingHandler) UpsertDirect(c *gin.Context) {
	var req appmapping.UpsertDirectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	m, err := h.service.UpsertDirect(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// DeleteDirect removes direct mappings by ID
func (h *MappingHandler) DeleteDirect(c *gin.Context) {
	var req appmapping.DeleteBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.service.DeleteDirect(c.Request.Context(), req.IDs); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListRecipes lists machine recipe lines
func (h *MappingHandler) ListRecipes(c *gin.Context) {
	var filter appmapping.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.service.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpsertRecipe creates or updates one machine recipe line
func (h *MappingHandler) UpsertRecipe(c *gin.Context) {
	var req appmapping.UpsertRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	m, err := h.service.UpsertRecipe(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// DeleteRecipes removes recipe lines by ID
func (h *MappingHandler) DeleteRecipes(c *gin.Context) {
	var req appmapping.DeleteBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.service.DeleteRecipes(c.Request.Context(), req.IDs); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListComposites lists composite recipe lines
func (h *MappingHandler) ListComposites(c *gin.Context) {
	var filter appmapping.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.service.ListComposites(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpsertComposite creates or updates one composite recipe line
func (h *MappingHandler) UpsertComposite(c *gin.Context) {
	var req appmapping.UpsertCompositeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	m, err := h.service.UpsertComposite(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// DeleteComposites removes composite recipe lines by ID
func (h *MappingHandler) DeleteComposites(c *gin.Context) {
	var req appmapping.DeleteBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.service.DeleteComposites(c.Request.Context(), req.IDs); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListVending lists vending slot mappings
func (h *MappingHandler) ListVending(c *gin.Context) {
	var filter appmapping.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.service.ListVending(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpsertVending creates or updates one vending slot mapping
func (h *MappingHandler) UpsertVending(c *gin.Context) {
	var req appmapping.UpsertVendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	m, err := h.service.UpsertVending(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// DeleteVending removes vending slot mappings by ID
func (h *MappingHandler) DeleteVending(c *gin.Context) {
	var req appmapping.DeleteBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.service.DeleteVending(c.Request.Context(), req.IDs); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ImportPack imports a complete mapping bundle in one request
func (h *MappingHandler) ImportPack(c *gin.Context) {
	var pack appmapping.Pack
	if err := c.ShouldBindJSON(&pack); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.ImportPack(c.Request.Context(), pack)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UnmappedCodes lists POS codes that lack an active direct mapping
func (h *MappingHandler) UnmappedCodes(c *gin.Context) {
	limit := defaultUnmappedLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	codes, err := h.service.UnmappedCodes(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, codes)
}
