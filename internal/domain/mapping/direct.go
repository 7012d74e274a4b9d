package mapping

import (
	"time"

	"github.com/barstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direct maps a point-of-sale code to one ingredient pour. A code may carry
// several Direct rows, one per ingredient, for multi-ingredient products.
type Direct struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StoreID        string          `gorm:"size:64;not null;uniqueIndex:idx_direct_mappings_natural,priority:1"`
	Code           string          `gorm:"size:64;not null;uniqueIndex:idx_direct_mappings_natural,priority:2"`
	IngredientName string          `gorm:"size:255;not null;uniqueIndex:idx_direct_mappings_natural,priority:3"`
	Volume         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Active         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the database table name
func (Direct) TableName() string {
	return "direct_mappings"
}

// NewDirect creates a direct code-to-ingredient mapping. The ingredient name
// is canonicalized so all downstream joins agree on identity.
func NewDirect(storeID, code, ingredientName string, volume decimal.Decimal) (*Direct, error) {
	if storeID == "" {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	ingredient := CanonicalIngredient(ingredientName)
	if ingredient == "" {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient name cannot be empty")
	}
	if volume.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VOLUME", "Volume cannot be negative")
	}

	now := time.Now()
	return &Direct{
		ID:             uuid.New(),
		StoreID:        storeID,
		Code:           code,
		IngredientName: ingredient,
		Volume:         volume,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
