package mapping

import (
	"time"

	"github.com/barstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Composite is one line of a multi-ingredient product sold under a single
// point-of-sale code (a cocktail). Resolution explodes the code into its
// lines, prorating servings by each ingredient's standard pour.
type Composite struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StoreID        string          `gorm:"size:64;not null;uniqueIndex:idx_composite_recipes_natural,priority:1"`
	Code           string          `gorm:"size:64;not null;uniqueIndex:idx_composite_recipes_natural,priority:2"`
	IngredientName string          `gorm:"size:255;not null;uniqueIndex:idx_composite_recipes_natural,priority:3"`
	Volume         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Active         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the database table name
func (Composite) TableName() string {
	return "composite_recipes"
}

// NewComposite creates a composite recipe line for a POS code
func NewComposite(storeID, code, ingredientName string, volume decimal.Decimal) (*Composite, error) {
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
	return &Composite{
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
