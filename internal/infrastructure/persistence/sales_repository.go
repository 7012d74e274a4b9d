package persistence

import (
	"context"

	"github.com/barstock/backend/internal/domain/sales"
	"gorm.io/gorm"
)

const saveBatchSize = 500

// GormSalesRepository implements sales.Repository using GORM
type GormSalesRepository struct {
	db *gorm.DB
}

// NewGormSalesRepository creates a new GormSalesRepository
func NewGormSalesRepository(db *gorm.DB) *GormSalesRepository {
	return &GormSalesRepository{db: db}
}

// FindByScope finds all transactions on the scope's date, narrowed to the
// scope's store and/or device when set.
func (r *GormSalesRepository) FindByScope(ctx context.Context, scope sales.Scope) ([]sales.Transaction, error) {
	query := r.db.WithContext(ctx).Where("date = ?", scope.Date.Format(dateLayout))
	if scope.StoreID != "" {
		query = query.Where("store_id = ?", scope.StoreID)
	}
	if scope.DeviceID != "" {
		query = query.Where("device_id = ?", scope.DeviceID)
	}

	var txns []sales.Transaction
	if err := query.Order("date ASC, time ASC, created_at ASC").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// FindRecent returns the latest transactions ordered by date and time descending
func (r *GormSalesRepository) FindRecent(ctx context.Context, limit int) ([]sales.Transaction, error) {
	var txns []sales.Transaction
	if err := r.db.WithContext(ctx).
		Order("date DESC, time DESC, created_at DESC").
		Limit(limit).
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// SaveBatch inserts a batch of transactions
func (r *GormSalesRepository) SaveBatch(ctx context.Context, txns []sales.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(txns, saveBatchSize).Error
}

// ListStoreIDs returns the distinct non-empty store IDs seen in the feed
func (r *GormSalesRepository) ListStoreIDs(ctx context.Context) ([]string, error) {
	var storeIDs []string
	if err := r.db.WithContext(ctx).
		Model(&sales.Transaction{}).
		Distinct("store_id").
		Where("store_id <> ''").
		Order("store_id ASC").
		Pluck("store_id", &storeIDs).Error; err != nil {
		return nil, err
	}
	return storeIDs, nil
}

// ListDeviceIDs returns the distinct non-empty device IDs seen in the feed
func (r *GormSalesRepository) ListDeviceIDs(ctx context.Context) ([]string, error) {
	var deviceIDs []string
	if err := r.db.WithContext(ctx).
		Model(&sales.Transaction{}).
		Distinct("device_id").
		Where("device_id <> ''").
		Order("device_id ASC").
		Pluck("device_id", &deviceIDs).Error; err != nil {
		return nil, err
	}
	return deviceIDs, nil
}

// ListUnmappedCodes returns distinct POS codes that have no active direct
// mapping for their store.
func (r *GormSalesRepository) ListUnmappedCodes(ctx context.Context, limit int) ([]sales.UnmappedCode, error) {
	var codes []sales.UnmappedCode
	if err := r.db.WithContext(ctx).
		Model(&sales.Transaction{}).
		Select("DISTINCT sales_transactions.code, sales_transactions.product_name, sales_transactions.store_id").
		Joins("LEFT JOIN direct_mappings ON direct_mappings.store_id = sales_transactions.store_id AND direct_mappings.code = sales_transactions.code AND direct_mappings.active = ?", true).
		Where("sales_transactions.source = ?", sales.SourcePOS).
		Where("sales_transactions.code <> ''").
		Where("direct_mappings.id IS NULL").
		Order("sales_transactions.code ASC").
		Limit(limit).
		Scan(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// Ensure GormSalesRepository implements sales.Repository
var _ sales.Repository = (*GormSalesRepository)(nil)
