package mapping

import (
	"context"

	"github.com/barstock/backend/internal/domain/mapping"
	"github.com/barstock/backend/internal/domain/sales"
	"github.com/barstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Service provides application services for mapping maintenance
type Service struct {
	directRepo    mapping.DirectRepository
	recipeRepo    mapping.RecipeRepository
	compositeRepo mapping.CompositeRepository
	vendingRepo   mapping.VendingRepository
	salesRepo     sales.Repository
}

// NewService creates a mapping service
func NewService(
	directRepo mapping.DirectRepository,
	recipeRepo mapping.RecipeRepository,
	compositeRepo mapping.CompositeRepository,
	vendingRepo mapping.VendingRepository,
	salesRepo sales.Repository,
) *Service {
	return &Service{
		directRepo:    directRepo,
		recipeRepo:    recipeRepo,
		compositeRepo: compositeRepo,
		vendingRepo:   vendingRepo,
		salesRepo:     salesRepo,
	}
}

func (f *ListFilter) domain() shared.Filter {
	d := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
	}.Normalized()
	f.Page = d.Page
	f.PageSize = d.PageSize
	return d
}

// ===================== Direct mappings =====================

// ListDirect retrieves a paginated list of direct mappings
func (s *Service) ListDirect(ctx context.Context, filter ListFilter) (*shared.Paginated[mapping.Direct], error) {
	rows, total, err := s.directRepo.FindAll(ctx, filter.domain())
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(rows, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpsertDirect writes one direct mapping keyed by (store, code, ingredient)
func (s *Service) UpsertDirect(ctx context.Context, req UpsertDirectRequest) (*mapping.Direct, error) {
	row, err := mapping.NewDirect(req.StoreID, req.Code, req.IngredientName, req.Volume)
	if err != nil {
		return nil, err
	}
	if err := s.directRepo.Upsert(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteDirect removes direct mappings by ID
func (s *Service) DeleteDirect(ctx context.Context, ids []uuid.UUID) error {
	return s.directRepo.DeleteBatch(ctx, ids)
}

// ===================== Recipe mappings =====================

// ListRecipes retrieves a paginated list of recipe lines
func (s *Service) ListRecipes(ctx context.Context, filter ListFilter) (*shared.Paginated[mapping.Recipe], error) {
	rows, total, err := s.recipeRepo.FindAll(ctx, filter.domain())
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(rows, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpsertRecipe writes one recipe line keyed by (store, machine, ingredient)
func (s *Service) UpsertRecipe(ctx context.Context, req UpsertRecipeRequest) (*mapping.Recipe, error) {
	row, err := mapping.NewRecipe(req.StoreID, req.MachineName, req.IngredientName, req.Volume)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Upsert(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteRecipes removes recipe lines by ID
func (s *Service) DeleteRecipes(ctx context.Context, ids []uuid.UUID) error {
	return s.recipeRepo.DeleteBatch(ctx, ids)
}

// ===================== Composite recipes =====================

// ListComposites retrieves a paginated list of composite recipe lines
func (s *Service) ListComposites(ctx context.Context, filter ListFilter) (*shared.Paginated[mapping.Composite], error) {
	rows, total, err := s.compositeRepo.FindAll(ctx, filter.domain())
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(rows, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpsertComposite writes one composite recipe line
func (s *Service) UpsertComposite(ctx context.Context, req UpsertCompositeRequest) (*mapping.Composite, error) {
	row, err := mapping.NewComposite(req.StoreID, req.Code, req.IngredientName, req.Volume)
	if err != nil {
		return nil, err
	}
	if err := s.compositeRepo.Upsert(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteComposites removes composite recipe lines by ID
func (s *Service) DeleteComposites(ctx context.Context, ids []uuid.UUID) error {
	return s.compositeRepo.DeleteBatch(ctx, ids)
}

// ===================== Vending mappings =====================

// ListVending retrieves a paginated list of vending slot mappings
func (s *Service) ListVending(ctx context.Context, filter ListFilter) (*shared.Paginated[mapping.Vending], error) {
	rows, total, err := s.vendingRepo.FindAll(ctx, filter.domain())
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(rows, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpsertVending writes one vending slot mapping
func (s *Service) UpsertVending(ctx context.Context, req UpsertVendingRequest) (*mapping.Vending, error) {
	isMain := true
	if req.IsMain != nil {
		isMain = *req.IsMain
	}
	row, err := mapping.NewVending(req.DeviceID, req.Slot, req.Code, req.ProductName, req.StoreID, req.Multiplier, isMain)
	if err != nil {
		return nil, err
	}
	if err := s.vendingRepo.Upsert(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteVending removes vending slot mappings by ID
func (s *Service) DeleteVending(ctx context.Context, ids []uuid.UUID) error {
	return s.vendingRepo.DeleteBatch(ctx, ids)
}

// ===================== Bulk import =====================

// ImportPack upserts a complete mapping bundle section by section. Rows
// that fail domain validation are collected, not fatal; a repository error
// aborts the import.
func (s *Service) ImportPack(ctx context.Context, pack Pack) (*ImportResult, error) {
	result := &ImportResult{
		TotalRows: len(pack.Direct) + len(pack.Composite) + len(pack.Recipes) + len(pack.Vending),
	}

	for i, req := range pack.Direct {
		if _, err := s.UpsertDirect(ctx, req); err != nil {
			if !result.collect("direct", i, err) {
				return nil, err
			}
			continue
		}
		result.ImportedRows++
	}
	for i, req := range pack.Composite {
		if _, err := s.UpsertComposite(ctx, req); err != nil {
			if !result.collect("composite", i, err) {
				return nil, err
			}
			continue
		}
		result.ImportedRows++
	}
	for i, req := range pack.Recipes {
		if _, err := s.UpsertRecipe(ctx, req); err != nil {
			if !result.collect("recipes", i, err) {
				return nil, err
			}
			continue
		}
		result.ImportedRows++
	}
	for i, req := range pack.Vending {
		if _, err := s.UpsertVending(ctx, req); err != nil {
			if !result.collect("vending", i, err) {
				return nil, err
			}
			continue
		}
		result.ImportedRows++
	}

	return result, nil
}

// collect records a validation failure and reports whether the import may
// continue. Non-domain errors are infrastructure failures and abort.
func (r *ImportResult) collect(section string, index int, err error) bool {
	domainErr, ok := err.(*shared.DomainError)
	if !ok {
		return false
	}
	r.ErrorRows++
	r.Errors = append(r.Errors, RowError{Section: section, Index: index, Message: domainErr.Message})
	return true
}

// UnmappedCodes lists POS codes seen in the sales feed with no active
// direct mapping, the worklist for mapping maintenance.
func (s *Service) UnmappedCodes(ctx context.Context, limit int) ([]sales.UnmappedCode, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.salesRepo.ListUnmappedCodes(ctx, limit)
}
