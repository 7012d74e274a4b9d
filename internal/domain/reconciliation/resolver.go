package reconciliation

import (
	"fmt"

	"github.com/barstock/backend/internal/domain/mapping"
	"github.com/barstock/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// Consumption holds the two parallel per-ingredient accumulators for one
// channel: physical volume and serving-equivalent counts.
type Consumption struct {
	Volume   *Accumulator
	Servings *Accumulator
}

func newConsumption(detailCap int) Consumption {
	return Consumption{
		Volume:   NewAccumulatorWithDetails(detailCap),
		Servings: NewAccumulator(),
	}
}

// RunStats counts per-row outcomes of one resolution pass. None of these
// are errors: unmapped and degenerate rows are excluded, not retried.
type RunStats struct {
	Transactions      int `json:"transactions"`
	Resolved          int `json:"resolved"`
	Unmapped          int `json:"unmapped"`
	DegenerateRecipes int `json:"degenerate_recipes"`
	UnknownSource     int `json:"unknown_source"`
}

// Result is the outcome of resolving one bounded set of sales transactions.
// POS and Machine are ingredient-keyed; the vending and cluster accumulators
// are cross-check figures keyed by code or normalized machine name.
type Result struct {
	POS            Consumption
	Machine        Consumption
	VendingPOS     *Accumulator
	VendingMachine *Accumulator
	ClusterPOS     *Accumulator
	ClusterMachine *Accumulator
	Stats          RunStats
}

// Resolver converts raw sales transactions into per-ingredient consumption
// using an immutable mapping snapshot and serving-size estimates. It holds
// no mutable state across calls; each Resolve pass is independent.
type Resolver struct {
	snap      *Snapshot
	sizes     *ServingSizes
	detailCap int
}

// Option configures a Resolver
type Option func(*Resolver)

// WithDetailCap caps the number of contribution traces kept per ingredient
func WithDetailCap(n int) Option {
	return func(r *Resolver) {
		r.detailCap = n
	}
}

// NewResolver creates a resolver over the given snapshot and serving sizes
func NewResolver(snap *Snapshot, sizes *ServingSizes, opts ...Option) *Resolver {
	r := &Resolver{snap: snap, sizes: sizes}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// resolution carries the working state of one Resolve pass
type resolution struct {
	snap  *Snapshot
	sizes *ServingSizes
	out   *Result

	// POS unit counts by normalized code and name, feeding the vending
	// and cluster cross-checks.
	posUnitsByCode *Accumulator
	posUnitsByName *Accumulator
}

// sourceResolver is one channel-specific resolution strategy. The set of
// implementations is closed; unknown sources match none of them.
type sourceResolver interface {
	resolve(tx *sales.Transaction, run *resolution)
}

var sourceResolvers = map[sales.Source]sourceResolver{
	sales.SourcePOS:       posResolver{},
	sales.SourceDispenser: dispenserResolver{},
	sales.SourceVending:   vendingResolver{},
	sales.SourceCluster:   clusterResolver{},
}

// Resolve processes the transactions of one run and returns the channel
// accumulators. Per-row issues are counted in Stats and never abort the
// pass.
func (r *Resolver) Resolve(txns []sales.Transaction) *Result {
	out := &Result{
		POS:            newConsumption(r.detailCap),
		Machine:        newConsumption(r.detailCap),
		VendingPOS:     NewAccumulator(),
		VendingMachine: NewAccumulatorWithDetails(r.detailCap),
		ClusterMachine: NewAccumulatorWithDetails(r.detailCap),
	}
	run := &resolution{
		snap:           r.snap,
		sizes:          r.sizes,
		out:            out,
		posUnitsByCode: NewAccumulator(),
		posUnitsByName: NewAccumulator(),
	}

	for i := range txns {
		tx := &txns[i]
		out.Stats.Transactions++
		sr, ok := sourceResolvers[tx.Source]
		if !ok {
			out.Stats.UnknownSource++
			continue
		}
		sr.resolve(tx, run)
	}

	run.finalize()
	return out
}

// posResolver resolves point-of-sale transactions: direct mapping first,
// composite recipe second; quantity is a unit count.
type posResolver struct{}

func (posResolver) resolve(tx *sales.Transaction, run *resolution) {
	qty := nonNegative(tx.Quantity)

	// POS unit counts by code and name feed the vending and cluster
	// cross-checks regardless of ingredient mapping.
	if code := mapping.NormalizeCode(tx.Code); code != "" {
		run.posUnitsByCode.Add(code, qty)
	}
	if name := mapping.NormalizeName(tx.ProductName); name != "" {
		run.posUnitsByName.Add(name, qty)
	}

	if lines := run.snap.DirectLines(tx.Code, tx.StoreID); len(lines) > 0 {
		for _, ln := range lines {
			used := qty.Mul(ln.Volume)
			run.out.POS.Volume.AddWithDetail(ln.Ingredient, used,
				fmt.Sprintf("pos %s x%s -> %s", tx.Code, qty, used))
			run.out.POS.Servings.Add(ln.Ingredient, qty)
		}
		run.out.Stats.Resolved++
		return
	}

	if lines := run.snap.CompositeLines(tx.Code, tx.StoreID); len(lines) > 0 {
		for _, ln := range lines {
			used := qty.Mul(ln.Volume)
			run.out.POS.Volume.AddWithDetail(ln.Ingredient, used,
				fmt.Sprintf("pos composite %s x%s -> %s", tx.Code, qty, used))
			if size := run.sizes.Get(ln.Ingredient, tx.StoreID); size.IsPositive() {
				run.out.POS.Servings.Add(ln.Ingredient, used.Div(size))
			}
		}
		run.out.Stats.Resolved++
		return
	}

	run.out.Stats.Unmapped++
}

// dispenserResolver resolves beverage dispenser pours: quantity is the
// total dispensed volume, prorated over the machine's recipe lines.
type dispenserResolver struct{}

func (dispenserResolver) resolve(tx *sales.Transaction, run *resolution) {
	machine := mapping.NormalizeName(tx.MachineName)
	lines := run.snap.RecipeLines(machine, tx.StoreID)
	if len(lines) == 0 {
		run.out.Stats.Unmapped++
		return
	}

	baseTotal := decimal.Zero
	for _, ln := range lines {
		baseTotal = baseTotal.Add(ln.Volume)
	}
	if !baseTotal.IsPositive() {
		run.out.Stats.DegenerateRecipes++
		return
	}

	qty := nonNegative(tx.Quantity)
	servings := qty.Div(baseTotal)
	for _, ln := range lines {
		used := servings.Mul(ln.Volume)
		run.out.Machine.Volume.AddWithDetail(ln.Ingredient, used,
			fmt.Sprintf("dispenser %s vol %s -> %s", machine, qty, used))
		if size := run.sizes.Get(ln.Ingredient, tx.StoreID); size.IsPositive() {
			run.out.Machine.Servings.Add(ln.Ingredient, used.Div(size))
		}
	}
	run.out.Stats.Resolved++
}

// vendingResolver resolves vending kiosk dispenses: exact slot match first,
// normalized-name fallback second; the mapping's multiplier scales the raw
// quantity.
type vendingResolver struct{}

func (vendingResolver) resolve(tx *sales.Transaction, run *resolution) {
	v, ok := run.snap.VendingBySlot(tx.DeviceID, tx.Slot)
	if !ok {
		name := mapping.NormalizeName(tx.MachineName)
		if name == "" {
			name = mapping.NormalizeName(tx.ProductName)
		}
		v, ok = run.snap.VendingByName(tx.DeviceID, name)
	}
	if !ok {
		run.out.Stats.Unmapped++
		return
	}

	units := nonNegative(tx.Quantity).Mul(v.Multiplier)
	run.out.VendingMachine.AddWithDetail(v.Code, units,
		fmt.Sprintf("vending %s slot %s x%s", tx.DeviceID, tx.Slot, units))
	run.out.Stats.Resolved++
}

// clusterResolver sums cluster-level machine figures by normalized machine
// name. No recipe explosion: cluster machines report aggregates only and
// never participate in ingredient-level reconciliation.
type clusterResolver struct{}

func (clusterResolver) resolve(tx *sales.Transaction, run *resolution) {
	name := mapping.NormalizeName(tx.MachineName)
	if name == "" {
		run.out.Stats.Unmapped++
		return
	}
	qty := nonNegative(tx.Quantity)
	run.out.ClusterMachine.AddWithDetail(name, qty,
		fmt.Sprintf("cluster %s x%s", tx.DeviceID, qty))
	run.out.Stats.Resolved++
}

// finalize derives the POS-side cross-check accumulators once all
// transactions are processed.
func (run *resolution) finalize() {
	// Cluster cross-check: POS unit counts by code, whole-cluster.
	run.out.ClusterPOS = run.posUnitsByCode

	// Vending cross-check: for each vending code, match POS sales by code
	// first, by normalized product name second. The universe is bounded by
	// the vending mapping plus codes seen on vending machines.
	codes := make(map[string]struct{})
	for code := range run.snap.VendingProductNames() {
		codes[code] = struct{}{}
	}
	for _, code := range run.out.VendingMachine.Keys() {
		codes[code] = struct{}{}
	}

	for code := range codes {
		units := run.posUnitsByCode.Get(code)
		if units.IsZero() {
			if name, ok := run.snap.VendingProductNames()[code]; ok {
				units = run.posUnitsByName.Get(name)
			}
		}
		if !units.IsZero() || run.out.VendingMachine.Has(code) {
			run.out.VendingPOS.Add(code, units)
		}
	}
}

// nonNegative coerces malformed or negative quantities to zero so the
// accumulators stay monotonically non-negative.
func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
