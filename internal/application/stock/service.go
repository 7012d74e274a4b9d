package stock

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/barstock/backend/internal/domain/shared"
	"github.com/barstock/backend/internal/domain/stock"
)

// Service provides application services for the daily stock ledger
type Service struct {
	repo stock.Repository
	// closingSecretHash is a bcrypt hash of the shared closing secret.
	// Empty disables the check for development setups.
	closingSecretHash string
}

// NewService creates a stock service
func NewService(repo stock.Repository, closingSecretHash string) *Service {
	return &Service{repo: repo, closingSecretHash: closingSecretHash}
}

// SubmitReplenishment upserts the replenishment figure for one ingredient
// at a location on a date.
func (s *Service) SubmitReplenishment(ctx context.Context, req ReplenishmentRequest) error {
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}
	loc := stock.Location{StoreID: req.StoreID, DeviceID: req.DeviceID}
	entry, err := stock.NewEntry(loc, req.IngredientName, date, req.Quantity, decimal.Zero, "")
	if err != nil {
		return err
	}
	return s.repo.UpsertReplenishment(ctx, loc, entry.IngredientName, date, req.Quantity)
}

// SubmitClosing verifies the closing secret and upserts the physical
// closing count for one ingredient at a location on a date.
func (s *Service) SubmitClosing(ctx context.Context, req ClosingRequest) error {
	if err := s.verifySecret(req.Secret); err != nil {
		return err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}
	loc := stock.Location{StoreID: req.StoreID, DeviceID: req.DeviceID}
	entry, err := stock.NewEntry(loc, req.IngredientName, date, decimal.Zero, req.Quantity, req.Note)
	if err != nil {
		return err
	}
	return s.repo.UpsertClosing(ctx, loc, entry.IngredientName, date, req.Quantity, req.Note)
}

// Entries lists the ledger rows for a location and date
func (s *Service) Entries(ctx context.Context, storeID, deviceID, dateStr string) ([]stock.Entry, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByLocationAndDate(ctx, stock.Location{StoreID: storeID, DeviceID: deviceID}, date)
}

func (s *Service) verifySecret(secret string) error {
	if s.closingSecretHash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.closingSecretHash), []byte(secret)); err != nil {
		return shared.ErrUnauthorized
	}
	return nil
}
