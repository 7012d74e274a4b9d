package reconciliation

import (
	"github.com/barstock/backend/internal/domain/mapping"
	"github.com/shopspring/decimal"
)

// DefaultServingSize is the standard pour assumed for an ingredient when no
// recipe data provides a sample.
var DefaultServingSize = decimal.NewFromInt(30)

type servingKey struct {
	ingredient string
	storeID    string
}

// ServingSizes holds the inferred standard pour volume per (ingredient,
// store), derived from recipe lines. It converts physical volume into
// comparable serving counts across channels.
type ServingSizes struct {
	sizes    map[servingKey]decimal.Decimal
	fallback decimal.Decimal
}

// EstimateServingSizes infers each (ingredient, store)'s serving size as
// the most frequent positive volume across its recipe lines. When several
// volumes are equally frequent the smallest wins, so the estimate is
// deterministic. fallback is returned for pairs with no samples; a
// non-positive fallback is replaced by DefaultServingSize.
func EstimateServingSizes(recipes []mapping.Recipe, fallback decimal.Decimal) *ServingSizes {
	if !fallback.IsPositive() {
		fallback = DefaultServingSize
	}

	counts := make(map[servingKey]map[string]int)
	values := make(map[servingKey]map[string]decimal.Decimal)
	for _, r := range recipes {
		if !r.Active || !r.Volume.IsPositive() {
			continue
		}
		k := servingKey{ingredient: r.IngredientName, storeID: r.StoreID}
		if counts[k] == nil {
			counts[k] = make(map[string]int)
			values[k] = make(map[string]decimal.Decimal)
		}
		vk := r.Volume.String()
		counts[k][vk]++
		values[k][vk] = r.Volume
	}

	sizes := make(map[servingKey]decimal.Decimal, len(counts))
	for k, byVolume := range counts {
		var best decimal.Decimal
		bestCount := 0
		for vk, n := range byVolume {
			v := values[k][vk]
			if n > bestCount || (n == bestCount && v.LessThan(best)) {
				best = v
				bestCount = n
			}
		}
		sizes[k] = best
	}

	return &ServingSizes{sizes: sizes, fallback: fallback}
}

// Get returns the serving size for (ingredient, store), falling back to
// the configured default when no sample exists.
func (s *ServingSizes) Get(ingredient, storeID string) decimal.Decimal {
	if v, ok := s.sizes[servingKey{ingredient: ingredient, storeID: storeID}]; ok {
		return v
	}
	return s.fallback
}
