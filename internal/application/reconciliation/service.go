package reconciliation

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/barstock/backend/internal/domain/mapping"
	"github.com/barstock/backend/internal/domain/reconciliation"
	"github.com/barstock/backend/internal/domain/sales"
	"github.com/barstock/backend/internal/domain/stock"
)

// Options tunes a reconciliation run
type Options struct {
	// DefaultServingSize is the fallback pour volume for ingredients with
	// no recipe samples. Non-positive values use the engine default.
	DefaultServingSize decimal.Decimal
	// DetailCap limits contribution traces per report row. Zero keeps all.
	DetailCap int
}

// Service runs reconciliation over one day's bounded snapshot: it loads the
// active mappings and the day's transactions and stock rows, resolves
// consumption and assembles the variance report.
type Service struct {
	salesRepo     sales.Repository
	directRepo    mapping.DirectRepository
	recipeRepo    mapping.RecipeRepository
	compositeRepo mapping.CompositeRepository
	vendingRepo   mapping.VendingRepository
	stockRepo     stock.Repository
	opts          Options
}

// NewService creates a reconciliation service
func NewService(
	salesRepo sales.Repository,
	directRepo mapping.DirectRepository,
	recipeRepo mapping.RecipeRepository,
	compositeRepo mapping.CompositeRepository,
	vendingRepo mapping.VendingRepository,
	stockRepo stock.Repository,
	opts Options,
) *Service {
	return &Service{
		salesRepo:     salesRepo,
		directRepo:    directRepo,
		recipeRepo:    recipeRepo,
		compositeRepo: compositeRepo,
		vendingRepo:   vendingRepo,
		stockRepo:     stockRepo,
		opts:          opts,
	}
}

// Run executes one reconciliation run and returns the assembled report
func (s *Service) Run(ctx context.Context, req RunRequest) (*reconciliation.Report, error) {
	mode, err := reconciliation.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	unit, err := reconciliation.ParseUnitView(req.Unit)
	if err != nil {
		return nil, err
	}
	date, err := req.ParseDate()
	if err != nil {
		return nil, err
	}

	directs, err := s.directRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	composites, err := s.compositeRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	recipes, err := s.recipeRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	vendings, err := s.vendingRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	txns, err := s.salesRepo.FindByScope(ctx, sales.Scope{
		StoreID:  req.StoreID,
		DeviceID: req.DeviceID,
		Date:     date,
	})
	if err != nil {
		return nil, err
	}

	snap := reconciliation.BuildSnapshot(directs, composites, recipes, vendings)
	sizes := reconciliation.EstimateServingSizes(recipes, s.opts.DefaultServingSize)
	resolver := reconciliation.NewResolver(snap, sizes, reconciliation.WithDetailCap(s.opts.DetailCap))
	result := resolver.Resolve(txns)

	var rows []reconciliation.Row
	switch mode {
	case reconciliation.ModeStock:
		rows, err = s.stockRows(ctx, req, date, unit, sizes, result)
		if err != nil {
			return nil, err
		}
	case reconciliation.ModeSales:
		// Vending cross-checks join POS and machine figures by code; the
		// cluster figures are summed per side and listed for direct
		// comparison.
		rows = reconciliation.SalesVariance(result.VendingPOS, result.VendingMachine)
		rows = append(rows, reconciliation.SalesVariance(result.ClusterPOS, result.ClusterMachine)...)
	}

	return reconciliation.AssembleReport(mode, unit, req.StoreID, req.DeviceID, date, rows, result.Stats), nil
}

// ExportCSV runs reconciliation and streams the report as CSV
func (s *Service) ExportCSV(ctx context.Context, req RunRequest, w io.Writer) (*reconciliation.Report, error) {
	report, err := s.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := report.WriteCSV(w); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) stockRows(ctx context.Context, req RunRequest, date time.Time, unit reconciliation.UnitView, sizes *reconciliation.ServingSizes, result *reconciliation.Result) ([]reconciliation.Row, error) {
	loc := stock.Location{StoreID: req.StoreID, DeviceID: req.DeviceID}

	previous, err := s.stockRepo.FindByLocationAndDate(ctx, loc, date.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	current, err := s.stockRepo.FindByLocationAndDate(ctx, loc, date)
	if err != nil {
		return nil, err
	}

	ledger := reconciliation.BuildLedger(previous, current)
	pos, machine := result.POS, result.Machine
	if unit == reconciliation.UnitServings {
		ledger = ledger.InServings(sizes, req.StoreID)
		pos = reconciliation.Consumption{Volume: pos.Servings, Servings: pos.Servings}
		machine = reconciliation.Consumption{Volume: machine.Servings, Servings: machine.Servings}
	}

	return reconciliation.StockVariance(pos, machine, ledger), nil
}
