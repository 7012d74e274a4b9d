package mapping

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListFilter represents filter options for mapping lists
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UpsertDirectRequest writes one direct code-to-ingredient mapping
type UpsertDirectRequest struct {
	StoreID        string          `json:"store_id" binding:"required"`
	Code           string          `json:"code" binding:"required"`
	IngredientName string          `json:"ingredient_name" binding:"required"`
	Volume         decimal.Decimal `json:"volume" binding:"required"`
}

// UpsertRecipeRequest writes one machine recipe line. StoreID may be empty
// for a store-agnostic fallback row.
type UpsertRecipeRequest struct {
	StoreID        string          `json:"store_id"`
	MachineName    string          `json:"machine_name" binding:"required"`
	IngredientName string          `json:"ingredient_name" binding:"required"`
	Volume         decimal.Decimal `json:"volume" binding:"required"`
}

// UpsertCompositeRequest writes one composite recipe line for a POS code
type UpsertCompositeRequest struct {
	StoreID        string          `json:"store_id" binding:"required"`
	Code           string          `json:"code" binding:"required"`
	IngredientName string          `json:"ingredient_name" binding:"required"`
	Volume         decimal.Decimal `json:"volume" binding:"required"`
}

// UpsertVendingRequest writes one vending slot mapping
type UpsertVendingRequest struct {
	DeviceID    string          `json:"device_id" binding:"required"`
	Slot        string          `json:"slot" binding:"required"`
	Code        string          `json:"code" binding:"required"`
	ProductName string          `json:"product_name"`
	StoreID     string          `json:"store_id"`
	Multiplier  decimal.Decimal `json:"multiplier"`
	IsMain      *bool           `json:"is_main"`
}

// DeleteBatchRequest removes mapping rows by ID
type DeleteBatchRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// Pack is a complete mapping bundle imported in one request, the bulk
// seeding path for a new store or device.
type Pack struct {
	Direct    []UpsertDirectRequest    `json:"direct"`
	Composite []UpsertCompositeRequest `json:"composite"`
	Recipes   []UpsertRecipeRequest    `json:"recipes"`
	Vending   []UpsertVendingRequest   `json:"vending"`
}

// RowError describes one rejected pack row
type RowError struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// ImportResult summarizes a pack import
type ImportResult struct {
	TotalRows    int        `json:"total_rows"`
	ImportedRows int        `json:"imported_rows"`
	ErrorRows    int        `json:"error_rows"`
	Errors       []RowError `json:"errors,omitempty"`
}
