package mapping

import (
	"time"

	"github.com/barstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vending maps a vending kiosk slot to a point-of-sale code. Multiplier
// scales the raw dispensed quantity (a slot may vend multi-packs); IsMain
// marks the slot that represents the product in reports.
type Vending struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DeviceID    string          `gorm:"size:64;not null;uniqueIndex:idx_vending_mappings_natural,priority:1"`
	Slot        string          `gorm:"size:32;not null;uniqueIndex:idx_vending_mappings_natural,priority:2"`
	Code        string          `gorm:"size:64;not null;uniqueIndex:idx_vending_mappings_natural,priority:3"`
	ProductName string          `gorm:"size:255"`
	StoreID     string          `gorm:"size:64;uniqueIndex:idx_vending_mappings_natural,priority:4"`
	Multiplier  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsMain      bool            `gorm:"not null;default:true"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the database table name
func (Vending) TableName() string {
	return "vending_mappings"
}

// NewVending creates a vending slot mapping. The code is normalized
// (whitespace stripped, uppercased); a zero multiplier defaults to 1.
func NewVending(deviceID, slot, code, productName, storeID string, multiplier decimal.Decimal, isMain bool) (*Vending, error) {
	if deviceID == "" {
		return nil, shared.NewDomainError("INVALID_DEVICE", "Device ID cannot be empty")
	}
	if slot == "" {
		return nil, shared.NewDomainError("INVALID_SLOT", "Slot cannot be empty")
	}
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if multiplier.IsNegative() {
		return nil, shared.NewDomainError("INVALID_MULTIPLIER", "Multiplier cannot be negative")
	}
	if multiplier.IsZero() {
		multiplier = decimal.NewFromInt(1)
	}

	now := time.Now()
	return &Vending{
		ID:          uuid.New(),
		DeviceID:    deviceID,
		Slot:        slot,
		Code:        normalized,
		ProductName: productName,
		StoreID:     storeID,
		Multiplier:  multiplier,
		IsMain:      isMain,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
