package persistence

import (
	"context"
	"time"

	"github.com/barstock/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

// GormStockRepository implements stock.Repository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindByLocationAndDate finds all ledger rows for the location on the date.
// A store-only location matches every device of the store.
func (r *GormStockRepository) FindByLocationAndDate(ctx context.Context, loc stock.Location, date time.Time) ([]stock.Entry, error) {
	query := r.db.WithContext(ctx).Where("date = ?", date.Format(dateLayout))
	if loc.StoreID != "" {
		query = query.Where("store_id = ?", loc.StoreID)
	}
	if loc.DeviceID != "" {
		query = query.Where("device_id = ?", loc.DeviceID)
	}

	var entries []stock.Entry
	if err := query.Order("ingredient_name ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// UpsertReplenishment writes the replenishment figure keyed by
// (location, ingredient, date), overwriting on conflict.
func (r *GormStockRepository) UpsertReplenishment(ctx context.Context, loc stock.Location, ingredientName string, date time.Time, quantity decimal.Decimal) error {
	entry := r.newEntry(loc, ingredientName, date)
	entry.Replenishment = quantity

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   naturalKey(),
		DoUpdates: clause.AssignmentColumns([]string{"replenishment", "updated_at"}),
	}).Create(entry).Error
}

// UpsertClosing writes the physical closing count keyed by
// (location, ingredient, date), overwriting on conflict.
func (r *GormStockRepository) UpsertClosing(ctx context.Context, loc stock.Location, ingredientName string, date time.Time, quantity decimal.Decimal, note string) error {
	entry := r.newEntry(loc, ingredientName, date)
	entry.Closing = quantity
	entry.Note = note

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   naturalKey(),
		DoUpdates: clause.AssignmentColumns([]string{"closing", "note", "updated_at"}),
	}).Create(entry).Error
}

func (r *GormStockRepository) newEntry(loc stock.Location, ingredientName string, date time.Time) *stock.Entry {
	now := time.Now()
	return &stock.Entry{
		ID:             uuid.New(),
		StoreID:        loc.StoreID,
		DeviceID:       loc.DeviceID,
		IngredientName: ingredientName,
		Date:           date,
		Replenishment:  decimal.Zero,
		Closing:        decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func naturalKey() []clause.Column {
	return []clause.Column{
		{Name: "store_id"}, {Name: "device_id"}, {Name: "ingredient_name"}, {Name: "date"},
	}
}

// Ensure GormStockRepository implements stock.Repository
var _ stock.Repository = (*GormStockRepository)(nil)
