package reconciliation

import (
	"github.com/barstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// LedgerEntry is the per-ingredient stock view for one date: opening is the
// previous date's closing, absent figures default to zero.
type LedgerEntry struct {
	Opening       decimal.Decimal
	Replenishment decimal.Decimal
	Closing       decimal.Decimal
}

// Ledger maps canonical ingredient names to their daily stock view
type Ledger map[string]LedgerEntry

// BuildLedger merges the previous date's rows with the current date's rows
// into a per-ingredient view. Device-level rows sharing an ingredient are
// summed, producing the location-level figures.
func BuildLedger(previous, current []stock.Entry) Ledger {
	ledger := make(Ledger)

	for _, e := range previous {
		entry := ledger[e.IngredientName]
		entry.Opening = entry.Opening.Add(e.Closing)
		ledger[e.IngredientName] = entry
	}

	for _, e := range current {
		entry := ledger[e.IngredientName]
		entry.Replenishment = entry.Replenishment.Add(e.Replenishment)
		entry.Closing = entry.Closing.Add(e.Closing)
		ledger[e.IngredientName] = entry
	}

	return ledger
}

// InServings converts the ledger's physical volumes into serving counts
// using the per-ingredient serving sizes, so a servings report stays in one
// unit throughout. Ingredients with a non-positive size are dropped.
func (l Ledger) InServings(sizes *ServingSizes, storeID string) Ledger {
	out := make(Ledger, len(l))
	for ingredient, entry := range l {
		size := sizes.Get(ingredient, storeID)
		if !size.IsPositive() {
			continue
		}
		out[ingredient] = LedgerEntry{
			Opening:       entry.Opening.Div(size),
			Replenishment: entry.Replenishment.Div(size),
			Closing:       entry.Closing.Div(size),
		}
	}
	return out
}
