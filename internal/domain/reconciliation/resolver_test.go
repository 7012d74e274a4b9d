package reconciliation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barstock/backend/internal/domain/mapping"
	"github.com/barstock/backend/internal/domain/sales"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func posTx(storeID, code, productName string, qty float64) sales.Transaction {
	return sales.Transaction{
		Source:      sales.SourcePOS,
		StoreID:     storeID,
		Code:        code,
		ProductName: productName,
		Date:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Quantity:    dec(qty),
	}
}

func dispenserTx(storeID, machine string, volume float64) sales.Transaction {
	return sales.Transaction{
		Source:      sales.SourceDispenser,
		StoreID:     storeID,
		MachineName: machine,
		Date:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Quantity:    dec(volume),
	}
}

func vendingTx(deviceID, slot, machineName string, qty float64) sales.Transaction {
	return sales.Transaction{
		Source:      sales.SourceVending,
		DeviceID:    deviceID,
		Slot:        slot,
		MachineName: machineName,
		Date:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Quantity:    dec(qty),
	}
}

func clusterTx(deviceID, machine string, qty float64) sales.Transaction {
	return sales.Transaction{
		Source:      sales.SourceCluster,
		DeviceID:    deviceID,
		MachineName: machine,
		Date:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Quantity:    dec(qty),
	}
}

func directRow(storeID, code, ingredient string, volume float64) mapping.Direct {
	return mapping.Direct{
		StoreID:        storeID,
		Code:           code,
		IngredientName: ingredient,
		Volume:         dec(volume),
		Active:         true,
	}
}

func compositeRow(storeID, code, ingredient string, volume float64) mapping.Composite {
	return mapping.Composite{
		StoreID:        storeID,
		Code:           code,
		IngredientName: ingredient,
		Volume:         dec(volume),
		Active:         true,
	}
}

func vendingRow(deviceID, slot, code, productName string, multiplier float64) mapping.Vending {
	return mapping.Vending{
		DeviceID:    deviceID,
		Slot:        slot,
		Code:        code,
		ProductName: productName,
		Multiplier:  dec(multiplier),
		Active:      true,
	}
}

func TestResolvePOS(t *testing.T) {
	t.Run("direct mapping multiplies quantity by pour volume", func(t *testing.T) {
		snap := BuildSnapshot(
			[]mapping.Direct{directRow("s1", "GIN30", "gin", 30)},
			nil, nil, nil,
		)
		r := NewResolver(snap, EstimateServingSizes(nil, decimal.Zero))

		res := r.Resolve([]sales.Transaction{posTx("s1", "GIN30", "Gin Shot", 3)})

		assert.True(t, res.POS.Volume.Get("gin").Equal(dec(90)))
		assert.True(t, res.POS.Servings.Get("gin").Equal(dec(3)))
		assert.Equal(t, 1, res.Stats.Resolved)
		assert.Equal(t, 0, res.Stats.Unmapped)
	})

	t.Run("composite explodes into lines with prorated servings", func(t *testing.T) {
		recipes := []mapping.Recipe{
			recipeLine("s1", "a shot", "vodka", 30, true),
			recipeLine("s1", "t shot", "tequila", 30, true),
		}
		snap := BuildSnapshot(nil,
			[]mapping.Composite{
				compositeRow("s1", "MIX1", "vodka", 60),
				compositeRow("s1", "MIX1", "tequila", 30),
			},
			nil, nil,
		)
		r := NewResolver(snap, EstimateServingSizes(recipes, decimal.Zero))

		res := r.Resolve([]sales.Transaction{posTx("s1", "MIX1", "House Mix", 2)})

		assert.True(t, res.POS.Volume.Get("vodka").Equal(dec(120)))
		assert.True(t, res.POS.Volume.Get("tequila").Equal(dec(60)))
		assert.True(t, res.POS.Servings.Get("vodka").Equal(dec(4)))
		assert.True(t, res.POS.Servings.Get("tequila").Equal(dec(2)))
	})

	t.Run("direct mapping wins over composite for the same code", func(t *testing.T) {
		snap := BuildSnapshot(
			[]mapping.Direct{directRow("s1", "X1", "gin", 30)},
			[]mapping.Composite{compositeRow("s1", "X1", "vodka", 60)},
			nil, nil,
		)
		r := NewResolver(snap, EstimateServingSizes(nil, decimal.Zero))

		res := r.Resolve([]sales.Transaction{posTx("s1", "X1", "", 1)})

		assert.True(t, res.POS.Volume.Get("gin").Equal(dec(30)))
		assert.False(t, res.POS.Volume.Has("vodka"))
	})

	t.Run("unmapped code yields zero consumption without error", func(t *testing.T) {
		snap := BuildSnapshot(nil, nil, nil, nil)
		r := NewResolver(snap, EstimateServingSizes(nil, decimal.Zero))

		res := r.Resolve([]sales.Transaction{posTx("s1", "NOPE", "Mystery", 5)})

		assert.Equal(t, 0, res.POS.Volume.Len())
		assert.Equal(t, 1, res.Stats.Unmapped)
		assert.Equal(t, 0, res.Stats.Resolved)
	})

	t.Run("negative quantity is clamped to zero", func(t *testing.T) {
		snap := BuildSnapshot(
			[]mapping.Direct{directRow("s1", "GIN30", "gin", 30)},
			nil, nil, nil,
		)
		r := NewResolver(snap, EstimateServingSizes(nil, decimal.Zero))

		res := r.Resolve([]sales.Transaction{posTx("s1", "GIN30", "", -2)})

		assert.True(t, res.POS.Volume.Get("gin").IsZero())
	})
}

func TestResolveDispenser(t *testing.T) {
	t.Run("pure pour consumes the dispensed volume directly", func(t *testing.T) {
		recipes := []mapping.Recipe{recipeLine("s1", "gin pour", "gin", 30, true)}
		snap := BuildSnapshot(nil, nil, recipes, nil)
		r := NewResolver(snap, EstimateServingSizes(recipes, decimal.Zero))

		res := r.Resolve([]sales.Transaction{dispenserTx("s1", "Gin  Pour", 90)})

		assert.True(t, res.Machine.Volume.Get("gin").Equal(dec(90)))
		assert.True(t, res.Machine.Servings.Get("gin").Equal(dec(3)))
	})

	t.Run("multi line recipe prorates volume by line share", func(t *testing.T) {
		recipes := []mapping.Recipe{
			recipeLine("s1", "fifty fifty", "a", 15, true),
			recipeLine("s1", "fifty fifty", "b", 15, true),
		}
		snap := BuildSnapshot(nil, nil, recipes, nil)
		r := NewResolver(snap, EstimateServingSizes(recipes, decimal.Zero))

		res := r.Resolve([]sales.Transaction{dispenserTx("s1", "Fifty-Fifty", 90)})

		assert.True(t, res.Machine.Volume.Get("a").Equal(dec(45)))
		assert.True(t, res.Machine.Volume.Get("b").Equal(dec(45)))
		assert.True(t, res.Machine.Servings.Get("a").Equal(dec(3)))
		assert.True(t, res.Machine.Servings.Get("b").Equal(dec(3)))
	})

	t.Run("pos and dispenser agree on equivalent sales", func(t *testing.T) {
		// Selling 3 units of a 30ml direct-mapped code must equal a 90ml
		// pure pour of the same ingredient.
		recipes := []mapping.Recipe{recipeLine("s1", "gin pour", "gin", 30, true)}
		snap := BuildSnapshot(
			[]mapping.Direct{directRow("s1", "GIN30", "gin", 30)},
			nil, recipes, nil,
		)
		r := NewResolver(snap, EstimateServingSizes(recipes, decimal.Zero))

		res := r.Resolve([]sales.Transaction{
			posTx("s1", "GIN30", "", 3),
			dispenserTx("s1", "gin pour", 90),
		})

		assert.True(t, res.POS.Volume.Get("gin").Equal(res.Machine.Volume.Get("gin")))
		assert.True(t, res.POS.Servings.Get("gin").Equal(res.Machine.Servings.Get("gin")))
	})

	t.Run("degenerate zero-volume recipe is skipped", func(t *testing.T) {
		recipes := []mapping.Recipe{recipeLine("s1", "broken", "gin", 0, true)}
		snap := BuildSnapshot(nil, nil, recipes, nil)
		r := NewResolver(snap, EstimateServingSizes(recipes, decimal.Zero))

		res := r.Resolve([]sales.Transaction{dispenserTx("s1", "broken", 90)})

		assert.Equal(t, 0, res.Machine.Volume.Len())
		assert.Equal(t, 1, res.Stats.DegenerateRecipes)
		assert.Equal(t, 0, res.Stats.Resolved)
	})

	t.Run("store scoped recipe is invisible to storeless transactions", func(t *testing.T) {
		recipes := []mapping.Recipe{
			recipeLine("s1", "house pour", "gin", 30, true),
			recipeLine("", "house pour", "vodka", 30, true),
		}
		snap := BuildSnapshot(nil, nil, recipes, nil)
		r := NewResolver(snap, EstimateServingSizes(recipes, decimal.Zero))

		res := r.Resolve([]sales.Transaction{
			dispenserTx("s1", "house pour", 30),
			dispenserTx("", "house pour", 30),
		})

		assert.True(t, res.Machine.Volume.Get("gin").Equal(dec(30)))
		assert.True(t, res.Machine.Volume.Get("vodka").Equal(dec(30)))
	})
}

func TestResolveVending(t *testing.T) {
	t.Run("slot match applies the multiplier", func(t *testing.T) {
		snap := BuildSnapshot(nil, nil, nil,
			[]mapping.Vending{vendingRow("d1", "A1", "COLA6", "Cola Sixpack", 6)},
		)
		r := NewResolver(snap, EstimateServingSizes(nil, decimal.Zero))

		res := r.Resolve([]sales.Transaction{vendingTx("d1", "A1", "", 2)})

		assert.True(t, res.VendingMachine.Get("COLA6").Equal(dec(12)))
	})

	t.Run("name fallback when slot is unknown", func(t *testing.T) {
		snap := BuildSnapshot(nil, nil, nil,
			[]mapping.Vending{vendingRow("d1", "A1", "COLA1", "Cola Can", 1)},
		)
		r := NewResolver(snap, EstimateServingSizes(nil, decimal.Zero))

		res := r.Resolve([]sales.Transaction{vendingTx("d1", "B9", "Cola  Can", 3)})

		assert.True(t, res.VendingMachine.Get("COLA1").Equal(dec(3)))
		assert.Equal(t, 1, res.Stats.Resolved)
	})

	t.Run("unknown slot and name is unmapped", func(t *testing.T) {
		snap := BuildSnapshot(nil, nil, nil, nil)
		r := NewResolver(snap, EstimateServingSizes(nil, decimal.Zero))

		res := r.Resolve([]sales.Transaction{vendingTx("d1", "A1", "Ghost", 1)})

		assert.Equal(t, 1, res.Stats.Unmapped)
	})

	t.Run("pos units cross-check matches by code then name", func(t *testing.T) {
		snap := BuildSnapshot(nil, nil, nil,
			[]mapping.Vending{
				vendingRow("d1", "A1", "COLA1", "Cola Can", 1),
				vendingRow("d1", "A2", "FANTA1", "Fanta Can", 1),
			},
		)
		r := NewResolver(snap, EstimateServingSizes(nil, decimal.Zero))

		res := r.Resolve([]sales.Transaction{
			vendingTx("d1", "A1", "", 4),
			vendingTx("d1", "A2", "", 2),
			// POS sold the cola under the same code but the fanta only
			// under its product name.
			posTx("s1", "COLA1", "Cola Can", 3),
			posTx("s1", "OTHER", "Fanta Can", 2),
		})

		assert.True(t, res.VendingPOS.Get("COLA1").Equal(dec(3)))
		assert.True(t, res.VendingPOS.Get("FANTA1").Equal(dec(2)))
		assert.True(t, res.VendingMachine.Get("COLA1").Equal(dec(4)))
		assert.True(t, res.VendingMachine.Get("FANTA1").Equal(dec(2)))
	})
}

func TestResolveCluster(t *testing.T) {
	t.Run("cluster figures sum across devices by machine name", func(t *testing.T) {
		snap := BuildSnapshot(nil, nil, nil, nil)
		r := NewResolver(snap, EstimateServingSizes(nil, decimal.Zero))

		res := r.Resolve([]sales.Transaction{
			clusterTx("d1", "Espresso  Machine", 10),
			clusterTx("d2", "espresso machine", 5),
			posTx("s1", "ESP1", "Espresso", 12),
		})

		assert.True(t, res.ClusterMachine.Get("espresso machine").Equal(dec(15)))
		assert.True(t, res.ClusterPOS.Get("ESP1").Equal(dec(12)))
	})
}

func TestResolveStats(t *testing.T) {
	t.Run("unknown source is counted and skipped", func(t *testing.T) {
		snap := BuildSnapshot(nil, nil, nil, nil)
		r := NewResolver(snap, EstimateServingSizes(nil, decimal.Zero))

		res := r.Resolve([]sales.Transaction{
			{Source: sales.Source("TELEPATHY"), Quantity: dec(1)},
		})

		assert.Equal(t, 1, res.Stats.Transactions)
		assert.Equal(t, 1, res.Stats.UnknownSource)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		snap := BuildSnapshot(nil, nil, nil, nil)
		r := NewResolver(snap, EstimateServingSizes(nil, decimal.Zero))

		res := r.Resolve(nil)

		require.NotNil(t, res)
		assert.Equal(t, RunStats{}, res.Stats)
		assert.Equal(t, 0, res.POS.Volume.Len())
	})
}
