package mapping

import (
	"time"

	"github.com/barstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recipe is one line of a dispensing machine's bill of materials for a
// single serving. All lines sharing (store, machine name) together form the
// recipe; a one-line recipe is a pure pour, several lines a composite.
//
// A row with an empty StoreID is a store-agnostic fallback, matched only
// when a transaction carries no store.
type Recipe struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StoreID        string          `gorm:"size:64;uniqueIndex:idx_recipe_mappings_natural,priority:1"`
	MachineName    string          `gorm:"size:255;not null;uniqueIndex:idx_recipe_mappings_natural,priority:2"`
	IngredientName string          `gorm:"size:255;not null;uniqueIndex:idx_recipe_mappings_natural,priority:3"`
	Volume         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Active         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the database table name
func (Recipe) TableName() string {
	return "recipe_mappings"
}

// NewRecipe creates a recipe line. The machine name is stored in normalized
// form so lookups need no further folding; storeID may be empty for a
// store-agnostic fallback row.
func NewRecipe(storeID, machineName, ingredientName string, volume decimal.Decimal) (*Recipe, error) {
	machine := NormalizeName(machineName)
	if machine == "" {
		return nil, shared.NewDomainError("INVALID_MACHINE", "Machine name cannot be empty")
	}
	ingredient := CanonicalIngredient(ingredientName)
	if ingredient == "" {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient name cannot be empty")
	}
	if volume.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VOLUME", "Volume cannot be negative")
	}

	now := time.Now()
	return &Recipe{
		ID:             uuid.New(),
		StoreID:        storeID,
		MachineName:    machine,
		IngredientName: ingredient,
		Volume:         volume,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
