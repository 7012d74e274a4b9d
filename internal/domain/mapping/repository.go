package mapping

import (
	"context"

	"github.com/barstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DirectRepository persists direct code-to-ingredient mappings
type DirectRepository interface {
	FindActive(ctx context.Context) ([]Direct, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Direct, int64, error)
	// Upsert writes the row keyed by (store, code, ingredient); on conflict
	// the volume is overwritten.
	Upsert(ctx context.Context, m *Direct) error
	// DeleteBatch removes exactly the given rows; unknown IDs are ignored.
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}

// RecipeRepository persists machine recipe lines
type RecipeRepository interface {
	FindActive(ctx context.Context) ([]Recipe, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Recipe, int64, error)
	Upsert(ctx context.Context, m *Recipe) error
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}

// CompositeRepository persists composite recipe lines for POS codes
type CompositeRepository interface {
	FindActive(ctx context.Context) ([]Composite, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Composite, int64, error)
	Upsert(ctx context.Context, m *Composite) error
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}

// VendingRepository persists vending slot mappings
type VendingRepository interface {
	FindActive(ctx context.Context) ([]Vending, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Vending, int64, error)
	Upsert(ctx context.Context, m *Vending) error
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}
