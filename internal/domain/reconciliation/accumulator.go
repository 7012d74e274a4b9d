// Package reconciliation implements the inventory reconciliation engine:
// it resolves raw sales transactions into per-ingredient consumption via
// the mapping snapshot, merges consumption with the daily stock ledger and
// produces variance report rows.
package reconciliation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Accumulator is a keyed additive accumulator: the zero of every key is
// decimal.Zero and Add combines by addition, so accumulation order never
// changes a total. Consumed-volume and consumed-servings both use it.
type Accumulator struct {
	totals    map[string]decimal.Decimal
	details   map[string][]string
	detailCap int
}

// NewAccumulator creates an accumulator that keeps totals only
func NewAccumulator() *Accumulator {
	return &Accumulator{totals: make(map[string]decimal.Decimal)}
}

// NewAccumulatorWithDetails creates an accumulator that additionally keeps
// up to detailCap human-readable contribution traces per key. Capping the
// traces never affects the totals.
func NewAccumulatorWithDetails(detailCap int) *Accumulator {
	return &Accumulator{
		totals:    make(map[string]decimal.Decimal),
		details:   make(map[string][]string),
		detailCap: detailCap,
	}
}

// Add adds qty to the key's running total
func (a *Accumulator) Add(key string, qty decimal.Decimal) {
	a.totals[key] = a.totals[key].Add(qty)
}

// AddWithDetail adds qty to the key's running total and records a
// contribution trace, subject to the detail cap.
func (a *Accumulator) AddWithDetail(key string, qty decimal.Decimal, detail string) {
	a.Add(key, qty)
	if a.details == nil || detail == "" {
		return
	}
	if a.detailCap > 0 && len(a.details[key]) >= a.detailCap {
		return
	}
	a.details[key] = append(a.details[key], detail)
}

// Get returns the key's total, decimal.Zero for unseen keys
func (a *Accumulator) Get(key string) decimal.Decimal {
	return a.totals[key]
}

// Has reports whether the key has received any contribution
func (a *Accumulator) Has(key string) bool {
	_, ok := a.totals[key]
	return ok
}

// Keys returns all keys in sorted order
func (a *Accumulator) Keys() []string {
	keys := make([]string, 0, len(a.totals))
	for k := range a.totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Details returns the recorded contribution traces for the key
func (a *Accumulator) Details(key string) []string {
	if a.details == nil {
		return nil
	}
	return a.details[key]
}

// Len returns the number of keys with contributions
func (a *Accumulator) Len() int {
	return len(a.totals)
}
