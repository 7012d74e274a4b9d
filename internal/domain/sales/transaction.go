package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source identifies the sales channel a transaction was recorded on.
type Source string

const (
	// SourcePOS is a point-of-sale terminal; Quantity is a unit count.
	SourcePOS Source = "POS"
	// SourceDispenser is an automated beverage dispenser; Quantity is the
	// total dispensed volume of one pour.
	SourceDispenser Source = "DISPENSER"
	// SourceVending is a vending kiosk; Quantity is a unit count per slot.
	SourceVending Source = "VENDING"
	// SourceCluster is a cluster-level dispensing machine reporting
	// aggregate figures only.
	SourceCluster Source = "CLUSTER"
)

// IsValid checks if the source is a known sales channel
func (s Source) IsValid() bool {
	switch s {
	case SourcePOS, SourceDispenser, SourceVending, SourceCluster:
		return true
	}
	return false
}

// String returns the string representation of Source
func (s Source) String() string {
	return string(s)
}

// Transaction is one immutable sales feed row. Rows are append-only and
// produced upstream; the reconciliation engine only reads them.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Source      Source          `gorm:"size:32;not null;index:idx_sales_date_source"`
	StoreID     string          `gorm:"size:64;index"`
	DeviceID    string          `gorm:"size:64;index"`
	Date        time.Time       `gorm:"type:date;not null;index:idx_sales_date_source"`
	Time        string          `gorm:"size:16"`
	Code        string          `gorm:"size:64;index"`
	ProductName string          `gorm:"size:255"`
	MachineName string          `gorm:"size:255"`
	Slot        string          `gorm:"size:32"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4)"`
	Currency    string          `gorm:"size:8"`
	CreatedAt   time.Time
}

// TableName returns the database table name
func (Transaction) TableName() string {
	return "sales_transactions"
}

// NewTransaction creates a sales transaction row. Quantity semantics depend
// on the source: unit count for POS and vending, dispensed volume for
// dispensers.
func NewTransaction(source Source, date time.Time, quantity decimal.Decimal) *Transaction {
	return &Transaction{
		ID:        uuid.New(),
		Source:    source,
		Date:      date,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
}

// Scope bounds one reconciliation run to a store and/or device on a single
// calendar date.
type Scope struct {
	StoreID  string
	DeviceID string
	Date     time.Time
}
