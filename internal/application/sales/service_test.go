package sales

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barstock/backend/internal/domain/sales"
)

type MockSalesRepository struct {
	mock.Mock
}

func (m *MockSalesRepository) FindByScope(ctx context.Context, scope sales.Scope) ([]sales.Transaction, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).([]sales.Transaction), args.Error(1)
}

func (m *MockSalesRepository) FindRecent(ctx context.Context, limit int) ([]sales.Transaction, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]sales.Transaction), args.Error(1)
}

func (m *MockSalesRepository) SaveBatch(ctx context.Context, txns []sales.Transaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockSalesRepository) ListStoreIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSalesRepository) ListDeviceIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSalesRepository) ListUnmappedCodes(ctx context.Context, limit int) ([]sales.UnmappedCode, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]sales.UnmappedCode), args.Error(1)
}

func TestIngestBatch(t *testing.T) {
	t.Run("stores all rows of a valid batch", func(t *testing.T) {
		repo := new(MockSalesRepository)
		repo.On("SaveBatch", mock.Anything, mock.MatchedBy(func(txns []sales.Transaction) bool {
			return len(txns) == 2 &&
				txns[0].Source == sales.SourcePOS &&
				txns[1].Source == sales.SourceDispenser
		})).Return(nil)
		svc := NewService(repo)

		result, err := svc.IngestBatch(context.Background(), IngestRequest{Rows: []IngestRow{
			{Source: "POS", StoreID: "s1", Date: "2026-08-01", Code: "GIN30", Quantity: decimal.NewFromInt(2)},
			{Source: "DISPENSER", StoreID: "s1", Date: "2026-08-01", MachineName: "Gin Pour", Quantity: decimal.NewFromInt(90)},
		}})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Accepted)
		repo.AssertExpectations(t)
	})

	t.Run("one bad row rejects the whole batch", func(t *testing.T) {
		repo := new(MockSalesRepository)
		svc := NewService(repo)

		_, err := svc.IngestBatch(context.Background(), IngestRequest{Rows: []IngestRow{
			{Source: "POS", Date: "2026-08-01", Quantity: decimal.NewFromInt(1)},
			{Source: "POS", Date: "01.08.2026", Quantity: decimal.NewFromInt(1)},
		}})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})
}

func TestRecent(t *testing.T) {
	t.Run("clamps an unreasonable limit", func(t *testing.T) {
		repo := new(MockSalesRepository)
		repo.On("FindRecent", mock.Anything, 100).Return([]sales.Transaction{}, nil)
		svc := NewService(repo)

		_, err := svc.Recent(context.Background(), -5)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
