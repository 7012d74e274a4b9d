package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/barstock/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockStockRepository creates a GormStockRepository with a mocked SQL connection
func newMockStockRepository(t *testing.T) (*GormStockRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStockRepository(gormDB), mock, mockDB
}

func TestGormStockRepository_FindByLocationAndDate(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("store-only location matches every device of the store", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "store_id", "device_id", "ingredient_name", "date", "replenishment", "closing"}).
			AddRow(uuid.New(), "s1", "d1", "gin", date, decimal.NewFromInt(50), decimal.NewFromInt(80)).
			AddRow(uuid.New(), "s1", "d2", "gin", date, decimal.Zero, decimal.NewFromInt(20))

		mock.ExpectQuery(`SELECT \* FROM "stock_entries" WHERE date = \$1 AND store_id = \$2 ORDER BY ingredient_name ASC`).
			WithArgs("2026-03-14", "s1").
			WillReturnRows(rows)

		entries, err := repo.FindByLocationAndDate(context.Background(), stock.Location{StoreID: "s1"}, date)

		assert.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "d1", entries[0].DeviceID)
		assert.Equal(t, "d2", entries[1].DeviceID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("full location narrows to store and device", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "stock_entries" WHERE date = \$1 AND store_id = \$2 AND device_id = \$3 ORDER BY ingredient_name ASC`).
			WithArgs("2026-03-14", "s1", "d1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		entries, err := repo.FindByLocationAndDate(context.Background(), stock.Location{StoreID: "s1", DeviceID: "d1"}, date)

		assert.NoError(t, err)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRepository_UpsertReplenishment(t *testing.T) {
	t.Run("updates only replenishment on conflict", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "stock_entries" .* ON CONFLICT \("store_id","device_id","ingredient_name","date"\) DO UPDATE SET .*"replenishment".*`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpsertReplenishment(context.Background(),
			stock.Location{StoreID: "s1"}, "gin",
			time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(50))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRepository_UpsertClosing(t *testing.T) {
	t.Run("updates closing and note on conflict", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "stock_entries" .* ON CONFLICT \("store_id","device_id","ingredient_name","date"\) DO UPDATE SET .*"closing".*"note".*`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpsertClosing(context.Background(),
			stock.Location{StoreID: "s1", DeviceID: "d1"}, "gin",
			time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(42), "evening count")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
