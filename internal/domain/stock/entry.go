package stock

import (
	"time"

	"github.com/barstock/backend/internal/domain/mapping"
	"github.com/barstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is one daily stock ledger row for an ingredient at a location.
// Opening for a date is defined as the closing of the previous date at the
// same location; it is never stored.
type Entry struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StoreID        string          `gorm:"size:64;uniqueIndex:idx_stock_entries_natural,priority:1"`
	DeviceID       string          `gorm:"size:64;uniqueIndex:idx_stock_entries_natural,priority:2"`
	IngredientName string          `gorm:"size:255;not null;uniqueIndex:idx_stock_entries_natural,priority:3"`
	Date           time.Time       `gorm:"type:date;not null;uniqueIndex:idx_stock_entries_natural,priority:4"`
	Replenishment  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Closing        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Note           string          `gorm:"size:500"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the database table name
func (Entry) TableName() string {
	return "stock_entries"
}

// Location identifies where a stock count was taken: a store, a device, or
// a device within a store.
type Location struct {
	StoreID  string
	DeviceID string
}

// IsZero reports whether no location component is set
func (l Location) IsZero() bool {
	return l.StoreID == "" && l.DeviceID == ""
}

// NewEntry creates a stock ledger row for the given location, ingredient
// and date. Negative quantities are rejected; the ingredient name is
// canonicalized.
func NewEntry(loc Location, ingredientName string, date time.Time, replenishment, closing decimal.Decimal, note string) (*Entry, error) {
	if loc.IsZero() {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Store or device is required")
	}
	ingredient := mapping.CanonicalIngredient(ingredientName)
	if ingredient == "" {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient name cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	if replenishment.IsNegative() || closing.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock quantities cannot be negative")
	}

	now := time.Now()
	return &Entry{
		ID:             uuid.New(),
		StoreID:        loc.StoreID,
		DeviceID:       loc.DeviceID,
		IngredientName: ingredient,
		Date:           date,
		Replenishment:  replenishment,
		Closing:        closing,
		Note:           note,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
