package sales

import (
	"context"
	"fmt"

	"github.com/barstock/backend/internal/domain/sales"
	"github.com/barstock/backend/internal/domain/shared"
)

// Service provides application services for the sales feed
type Service struct {
	repo sales.Repository
}

// NewService creates a sales service
func NewService(repo sales.Repository) *Service {
	return &Service{repo: repo}
}

// IngestBatch validates and stores a batch of sales feed rows. The batch is
// all-or-nothing: one bad row rejects the whole request so collectors can
// retry it unchanged.
func (s *Service) IngestBatch(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	txns := make([]sales.Transaction, 0, len(req.Rows))
	for i, row := range req.Rows {
		source := sales.Source(row.Source)
		if !source.IsValid() {
			return nil, shared.NewDomainError("ERR_INVALID_SOURCE",
				fmt.Sprintf("Row %d: unknown source %q", i, row.Source))
		}
		date, err := parseDate(row.Date)
		if err != nil {
			return nil, shared.NewDomainError("ERR_INVALID_DATE",
				fmt.Sprintf("Row %d: date must be YYYY-MM-DD", i))
		}

		tx := sales.NewTransaction(source, date, row.Quantity)
		tx.StoreID = row.StoreID
		tx.DeviceID = row.DeviceID
		tx.Time = row.Time
		tx.Code = row.Code
		tx.ProductName = row.ProductName
		tx.MachineName = row.MachineName
		tx.Slot = row.Slot
		tx.Amount = row.Amount
		tx.Currency = row.Currency
		txns = append(txns, *tx)
	}

	if err := s.repo.SaveBatch(ctx, txns); err != nil {
		return nil, err
	}
	return &IngestResult{Accepted: len(txns)}, nil
}

// Recent returns the latest feed rows for operational spot checks
func (s *Service) Recent(ctx context.Context, limit int) ([]sales.Transaction, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return s.repo.FindRecent(ctx, limit)
}

// Stores lists the distinct store IDs seen in the feed
func (s *Service) Stores(ctx context.Context) ([]string, error) {
	return s.repo.ListStoreIDs(ctx)
}

// Devices lists the distinct device IDs seen in the feed
func (s *Service) Devices(ctx context.Context) ([]string, error) {
	return s.repo.ListDeviceIDs(ctx)
}
