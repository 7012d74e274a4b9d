package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository persists daily stock ledger rows
type Repository interface {
	// FindByLocationAndDate returns all rows for the location on the date.
	// A store-only location matches every device of the store.
	FindByLocationAndDate(ctx context.Context, loc Location, date time.Time) ([]Entry, error)
	// UpsertReplenishment writes the replenishment figure keyed by
	// (location, ingredient, date), overwriting on conflict.
	UpsertReplenishment(ctx context.Context, loc Location, ingredientName string, date time.Time, quantity decimal.Decimal) error
	// UpsertClosing writes the physical closing count keyed by
	// (location, ingredient, date), overwriting on conflict.
	UpsertClosing(ctx context.Context, loc Location, ingredientName string, date time.Time, quantity decimal.Decimal, note string) error
}
