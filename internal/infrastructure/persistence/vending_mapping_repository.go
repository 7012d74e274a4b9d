package persistence

import (
	"context"
	"time"

	"github.com/barstock/backend/internal/domain/mapping"
	"github.com/barstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVendingMappingRepository implements mapping.VendingRepository using GORM
type GormVendingMappingRepository struct {
	db *gorm.DB
}

// NewGormVendingMappingRepository creates a new GormVendingMappingRepository
func NewGormVendingMappingRepository(db *gorm.DB) *GormVendingMappingRepository {
	return &GormVendingMappingRepository{db: db}
}

// FindActive finds all active vending slot mappings
func (r *GormVendingMappingRepository) FindActive(ctx context.Context) ([]mapping.Vending, error) {
	var rows []mapping.Vending
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindAll finds all vending slot mappings matching the filter, with the total count
func (r *GormVendingMappingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mapping.Vending, int64, error) {
	query := r.db.WithContext(ctx).Model(&mapping.Vending{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR product_name ILIKE ? OR device_id ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []mapping.Vending
	if err := applyFilter(query, filter, VendingMappingSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Upsert writes the row keyed by (device, slot, code, store); on conflict the
// product name, multiplier and flags are overwritten.
func (r *GormVendingMappingRepository) Upsert(ctx context.Context, m *mapping.Vending) error {
	m.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "device_id"}, {Name: "slot"}, {Name: "code"}, {Name: "store_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"product_name", "multiplier", "is_main", "active", "updated_at"}),
	}).Create(m).Error
}

// DeleteBatch removes exactly the given rows; unknown IDs are ignored
func (r *GormVendingMappingRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&mapping.Vending{}, "id IN ?", ids).Error
}

// Ensure GormVendingMappingRepository implements mapping.VendingRepository
var _ mapping.VendingRepository = (*GormVendingMappingRepository)(nil)
