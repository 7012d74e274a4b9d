package sales

import (
	"time"

	"github.com/barstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// IngestRow is one sales feed row submitted by an upstream collector
type IngestRow struct {
	Source      string          `json:"source" binding:"required,oneof=POS DISPENSER VENDING CLUSTER"`
	StoreID     string          `json:"store_id"`
	DeviceID    string          `json:"device_id"`
	Date        string          `json:"date" binding:"required"`
	Time        string          `json:"time"`
	Code        string          `json:"code"`
	ProductName string          `json:"product_name"`
	MachineName string          `json:"machine_name"`
	Slot        string          `json:"slot"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency" binding:"omitempty,len=3"`
}

// IngestRequest is a batch of sales feed rows
type IngestRequest struct {
	Rows []IngestRow `json:"rows" binding:"required,min=1,max=10000,dive"`
}

// IngestResult summarizes one ingest batch
type IngestResult struct {
	Accepted int `json:"accepted"`
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, shared.NewDomainError("ERR_INVALID_DATE", "Date must be YYYY-MM-DD")
	}
	return d, nil
}
