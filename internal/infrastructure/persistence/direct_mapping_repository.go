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

// GormDirectMappingRepository implements mapping.DirectRepository using GORM
type GormDirectMappingRepository struct {
	db *gorm.DB
}

// NewGormDirectMappingRepository creates a new GormDirectMappingRepository
func NewGormDirectMappingRepository(db *gorm.DB) *GormDirectMappingRepository {
	return &GormDirectMappingRepository{db: db}
}

// FindActive finds all active direct mappings
func (r *GormDirectMappingRepository) FindActive(ctx context.Context) ([]mapping.Direct, error) {
	var rows []mapping.Direct
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindAll finds all direct mappings matching the filter, with the total count
func (r *GormDirectMappingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mapping.Direct, int64, error) {
	query := r.db.WithContext(ctx).Model(&mapping.Direct{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR ingredient_name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []mapping.Direct
	if err := applyFilter(query, filter, DirectMappingSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Upsert writes the row keyed by (store, code, ingredient); on conflict the
// volume and active flag are overwritten.
func (r *GormDirectMappingRepository) Upsert(ctx context.Context, m *mapping.Direct) error {
	m.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "store_id"}, {Name: "code"}, {Name: "ingredient_name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"volume", "active", "updated_at"}),
	}).Create(m).Error
}

// DeleteBatch removes exactly the given rows; unknown IDs are ignored
func (r *GormDirectMappingRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&mapping.Direct{}, "id IN ?", ids).Error
}

// applyFilter applies pagination and whitelisted ordering to the query
func applyFilter(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, allowedFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormDirectMappingRepository implements mapping.DirectRepository
var _ mapping.DirectRepository = (*GormDirectMappingRepository)(nil)
