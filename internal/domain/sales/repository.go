package sales

import (
	"context"
)

// UnmappedCode is a POS code seen in the sales feed that has no active
// direct mapping for its store.
type UnmappedCode struct {
	Code        string `json:"code"`
	ProductName string `json:"product_name"`
	StoreID     string `json:"store_id"`
}

// Repository provides read and ingest access to the sales feed
type Repository interface {
	// FindByScope returns all transactions for the scope's date, narrowed
	// to the scope's store and/or device when set.
	FindByScope(ctx context.Context, scope Scope) ([]Transaction, error)
	// FindRecent returns the latest transactions ordered by date and time descending.
	FindRecent(ctx context.Context, limit int) ([]Transaction, error)
	// SaveBatch inserts a batch of transactions.
	SaveBatch(ctx context.Context, txns []Transaction) error
	// ListStoreIDs returns the distinct non-empty store IDs seen in the feed.
	ListStoreIDs(ctx context.Context) ([]string, error)
	// ListDeviceIDs returns the distinct non-empty device IDs seen in the feed.
	ListDeviceIDs(ctx context.Context) ([]string, error)
	// ListUnmappedCodes returns distinct POS codes with no active direct
	// mapping for their store.
	ListUnmappedCodes(ctx context.Context, limit int) ([]UnmappedCode, error)
}
