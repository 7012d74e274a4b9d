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

// GormRecipeMappingRepository implements mapping.RecipeRepository using GORM
type GormRecipeMappingRepository struct {
	db *gorm.DB
}

// NewGormRecipeMappingRepository creates a new GormRecipeMappingRepository
func NewGormRecipeMappingRepository(db *gorm.DB) *GormRecipeMappingRepository {
	return &GormRecipeMappingRepository{db: db}
}

// FindActive finds all active recipe lines
func (r *GormRecipeMappingRepository) FindActive(ctx context.Context) ([]mapping.Recipe, error) {
	var rows []mapping.Recipe
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindAll finds all recipe lines matching the filter, with the total count
func (r *GormRecipeMappingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mapping.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&mapping.Recipe{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("machine_name ILIKE ? OR ingredient_name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []mapping.Recipe
	if err := applyFilter(query, filter, RecipeMappingSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Upsert writes the row keyed by (store, machine, ingredient); on conflict the
// volume and active flag are overwritten.
func (r *GormRecipeMappingRepository) Upsert(ctx context.Context, m *mapping.Recipe) error {
	m.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "store_id"}, {Name: "machine_name"}, {Name: "ingredient_name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"volume", "active", "updated_at"}),
	}).Create(m).Error
}

// DeleteBatch removes exactly the given rows; unknown IDs are ignored
func (r *GormRecipeMappingRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&mapping.Recipe{}, "id IN ?", ids).Error
}

// Ensure GormRecipeMappingRepository implements mapping.RecipeRepository
var _ mapping.RecipeRepository = (*GormRecipeMappingRepository)(nil)
