package stock

import (
	"time"

	"github.com/barstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ReplenishmentRequest records delivered stock for one ingredient at a
// location on a date.
type ReplenishmentRequest struct {
	StoreID        string          `json:"store_id"`
	DeviceID       string          `json:"device_id"`
	IngredientName string          `json:"ingredient_name" binding:"required"`
	Date           string          `json:"date" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
}

// ClosingRequest records a physical closing count. The secret gates the
// submission because closing counts directly move the variance.
type ClosingRequest struct {
	StoreID        string          `json:"store_id"`
	DeviceID       string          `json:"device_id"`
	IngredientName string          `json:"ingredient_name" binding:"required"`
	Date           string          `json:"date" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity"`
	Note           string          `json:"note" binding:"max=500"`
	Secret         string          `json:"secret"`
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, shared.NewDomainError("ERR_INVALID_DATE", "Date must be YYYY-MM-DD")
	}
	return d, nil
}
