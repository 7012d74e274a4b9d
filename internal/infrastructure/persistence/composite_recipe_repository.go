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

// GormCompositeRecipeRepository implements mapping.CompositeRepository using GORM
type GormCompositeRecipeRepository struct {
	db *gorm.DB
}

// NewGormCompositeRecipeRepository creates a new GormCompositeRecipeRepository
func NewGormCompositeRecipeRepository(db *gorm.DB) *GormCompositeRecipeRepository {
	return &GormCompositeRecipeRepository{db: db}
}

// FindActive finds all active composite recipe lines
func (r *GormCompositeRecipeRepository) FindActive(ctx context.Context) ([]mapping.Composite, error) {
	var rows []mapping.Composite
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindAll finds all composite recipe lines matching the filter, with the total count
func (r *GormCompositeRecipeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mapping.Composite, int64, error) {
	query := r.db.WithContext(ctx).Model(&mapping.Composite{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR ingredient_name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []mapping.Composite
	if err := applyFilter(query, filter, CompositeRecipeSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Upsert writes the row keyed by (store, code, ingredient); on conflict the
// volume and active flag are overwritten.
func (r *GormCompositeRecipeRepository) Upsert(ctx context.Context, m *mapping.Composite) error {
	m.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "store_id"}, {Name: "code"}, {Name: "ingredient_name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"volume", "active", "updated_at"}),
	}).Create(m).Error
}

// DeleteBatch removes exactly the given rows; unknown IDs are ignored
func (r *GormCompositeRecipeRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&mapping.Composite{}, "id IN ?", ids).Error
}

// Ensure GormCompositeRecipeRepository implements mapping.CompositeRepository
var _ mapping.CompositeRepository = (*GormCompositeRecipeRepository)(nil)
