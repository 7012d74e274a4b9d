package reconciliation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/barstock/backend/internal/domain/mapping"
)

func recipeLine(storeID, machine, ingredient string, volume float64, active bool) mapping.Recipe {
	return mapping.Recipe{
		StoreID:        storeID,
		MachineName:    machine,
		IngredientName: ingredient,
		Volume:         decimal.NewFromFloat(volume),
		Active:         active,
	}
}

func TestEstimateServingSizes(t *testing.T) {
	t.Run("mode of observed volumes wins", func(t *testing.T) {
		recipes := []mapping.Recipe{
			recipeLine("s1", "gin tonic", "gin", 30, true),
			recipeLine("s1", "gin fizz", "gin", 30, true),
			recipeLine("s1", "martini", "gin", 60, true),
		}
		sizes := EstimateServingSizes(recipes, decimal.Zero)
		assert.True(t, sizes.Get("gin", "s1").Equal(decimal.NewFromInt(30)))
	})

	t.Run("tie breaks to smallest volume", func(t *testing.T) {
		recipes := []mapping.Recipe{
			recipeLine("s1", "a", "rum", 45, true),
			recipeLine("s1", "b", "rum", 30, true),
		}
		sizes := EstimateServingSizes(recipes, decimal.Zero)
		assert.True(t, sizes.Get("rum", "s1").Equal(decimal.NewFromInt(30)))
	})

	t.Run("inactive and non-positive samples are ignored", func(t *testing.T) {
		recipes := []mapping.Recipe{
			recipeLine("s1", "a", "gin", 60, false),
			recipeLine("s1", "b", "gin", 0, true),
			recipeLine("s1", "c", "gin", -5, true),
			recipeLine("s1", "d", "gin", 45, true),
		}
		sizes := EstimateServingSizes(recipes, decimal.Zero)
		assert.True(t, sizes.Get("gin", "s1").Equal(decimal.NewFromInt(45)))
	})

	t.Run("estimates are store scoped", func(t *testing.T) {
		recipes := []mapping.Recipe{
			recipeLine("s1", "a", "gin", 30, true),
			recipeLine("s2", "a", "gin", 50, true),
		}
		sizes := EstimateServingSizes(recipes, decimal.Zero)
		assert.True(t, sizes.Get("gin", "s1").Equal(decimal.NewFromInt(30)))
		assert.True(t, sizes.Get("gin", "s2").Equal(decimal.NewFromInt(50)))
	})

	t.Run("missing pair falls back to configured default", func(t *testing.T) {
		sizes := EstimateServingSizes(nil, decimal.NewFromInt(25))
		assert.True(t, sizes.Get("whiskey", "s1").Equal(decimal.NewFromInt(25)))
	})

	t.Run("non-positive fallback becomes standard pour", func(t *testing.T) {
		sizes := EstimateServingSizes(nil, decimal.Zero)
		assert.True(t, sizes.Get("whiskey", "s1").Equal(DefaultServingSize))
	})
}
