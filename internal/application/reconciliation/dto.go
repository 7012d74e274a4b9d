package reconciliation

import (
	"time"

	"github.com/barstock/backend/internal/domain/shared"
)

// RunRequest bounds one reconciliation run to a date and an optional store
// and/or device, and selects the report mode and unit. An omitted date
// means today.
type RunRequest struct {
	Mode     string `form:"mode" json:"mode" binding:"required,oneof=stock sales"`
	Unit     string `form:"unit" json:"unit" binding:"omitempty,oneof=volume servings"`
	StoreID  string `form:"store_id" json:"store_id"`
	DeviceID string `form:"device_id" json:"device_id"`
	Date     string `form:"date" json:"date"`
}

const dateLayout = "2006-01-02"

// ParseDate parses the request date as a calendar day. An empty date
// defaults to the current day in UTC.
func (r RunRequest) ParseDate() (time.Time, error) {
	if r.Date == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return time.Time{}, shared.NewDomainError("ERR_INVALID_DATE", "Date must be YYYY-MM-DD")
	}
	return d, nil
}
