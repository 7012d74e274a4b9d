package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appstock "github.com/barstock/backend/internal/application/stock"
	"github.com/barstock/backend/internal/domain/stock"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStockRepo struct {
	entries        []stock.Entry
	replenishments int
	closings       int
	err            error
}

func (f *fakeStockRepo) FindByLocationAndDate(ctx context.Context, loc stock.Location, date time.Time) ([]stock.Entry, error) {
	return f.entries, f.err
}

func (f *fakeStockRepo) UpsertReplenishment(ctx context.Context, loc stock.Location, ingredientName string, date time.Time, quantity decimal.Decimal) error {
	f.replenishments++
	return f.err
}

func (f *fakeStockRepo) UpsertClosing(ctx context.Context, loc stock.Location, ingredientName string, date time.Time, quantity decimal.Decimal, note string) error {
	f.closings++
	return f.err
}

func newStockRouter(repo *fakeStockRepo) *gin.Engine {
	engine := gin.New()
	h := NewStockHandler(appstock.NewService(repo, ""))
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestStockHandler_SubmitReplenishment(t *testing.T) {
	t.Run("records a delivery", func(t *testing.T) {
		repo := &fakeStockRepo{}
		router := newStockRouter(repo)

		body := `{"store_id":"S1","ingredient_name":"Vodka","date":"2026-03-14","quantity":"1500"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/stock/replenishment", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 1, repo.replenishments)
	})

	t.Run("rejects missing ingredient with 400", func(t *testing.T) {
		repo := &fakeStockRepo{}
		router := newStockRouter(repo)

		body := `{"store_id":"S1","date":"2026-03-14","quantity":"1500"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/stock/replenishment", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, repo.replenishments)
	})

	t.Run("maps a bad date to 400", func(t *testing.T) {
		repo := &fakeStockRepo{}
		router := newStockRouter(repo)

		body := `{"store_id":"S1","ingredient_name":"Vodka","date":"14.03.2026","quantity":"1500"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/stock/replenishment", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ERR_INVALID_DATE", resp.Error.Code)
	})
}

func TestStockHandler_SubmitClosing(t *testing.T) {
	repo := &fakeStockRepo{}
	router := newStockRouter(repo)

	body := `{"store_id":"S1","ingredient_name":"Vodka","date":"2026-03-14","quantity":"380","note":"end of shift"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stock/closing", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, repo.closings)
}

func TestStockHandler_Entries(t *testing.T) {
	t.Run("lists entries for a date", func(t *testing.T) {
		entry, err := stock.NewEntry(
			stock.Location{StoreID: "S1"},
			"Vodka",
			time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(1500),
			decimal.Zero,
			"",
		)
		require.NoError(t, err)

		repo := &fakeStockRepo{entries: []stock.Entry{*entry}}
		router := newStockRouter(repo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stock/entries?store_id=S1&date=2026-03-14", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Vodka")
	})

	t.Run("requires a date", func(t *testing.T) {
		router := newStockRouter(&fakeStockRepo{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stock/entries?store_id=S1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
