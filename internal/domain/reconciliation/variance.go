package reconciliation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/barstock/backend/internal/domain/shared"
)

// Mode selects which side of the reconciliation a report covers
type Mode string

const (
	// ModeStock reconciles physical stock against expected consumption
	ModeStock Mode = "stock"
	// ModeSales cross-checks machine-reported figures against POS records
	ModeSales Mode = "sales"
)

// IsValid reports whether the mode is one of the known values
func (m Mode) IsValid() bool {
	return m == ModeStock || m == ModeSales
}

// UnitView selects the unit the consumption figures are expressed in
type UnitView string

const (
	// UnitVolume reports physical volume (ml, g)
	UnitVolume UnitView = "volume"
	// UnitServings reports serving-equivalent counts
	UnitServings UnitView = "servings"
)

// IsValid reports whether the unit view is one of the known values
func (u UnitView) IsValid() bool {
	return u == UnitVolume || u == UnitServings
}

// Row is one reconciled line of a variance report. For stock mode the key
// is a canonical ingredient name; for sales mode it is a product code or
// normalized machine name and only the sales columns are populated.
type Row struct {
	Key             string          `json:"key"`
	Opening         decimal.Decimal `json:"opening"`
	Replenishment   decimal.Decimal `json:"replenishment"`
	POSSales        decimal.Decimal `json:"pos_sales"`
	MachineSales    decimal.Decimal `json:"machine_sales"`
	ExpectedClosing decimal.Decimal `json:"expected_closing"`
	PhysicalClosing decimal.Decimal `json:"physical_closing"`
	Variance        decimal.Decimal `json:"variance"`
	Details         []string        `json:"details,omitempty"`
}

// StockVariance merges per-ingredient consumption with the stock ledger
// into variance rows. The key universe is the full outer union of both
// sides: an ingredient only ever counted, or only ever sold, still gets a
// row. Expected closing is opening plus replenishment minus consumption;
// variance is physical minus expected, so shortage is negative.
func StockVariance(pos, machine Consumption, ledger Ledger) []Row {
	keys := make(map[string]struct{})
	for _, k := range pos.Volume.Keys() {
		keys[k] = struct{}{}
	}
	for _, k := range machine.Volume.Keys() {
		keys[k] = struct{}{}
	}
	for k := range ledger {
		keys[k] = struct{}{}
	}

	rows := make([]Row, 0, len(keys))
	for k := range keys {
		entry := ledger[k]
		posUsed := pos.Volume.Get(k)
		machineUsed := machine.Volume.Get(k)
		consumed := posUsed.Add(machineUsed)
		expected := entry.Opening.Add(entry.Replenishment).Sub(consumed)

		details := append([]string(nil), pos.Volume.Details(k)...)
		details = append(details, machine.Volume.Details(k)...)

		rows = append(rows, Row{
			Key:             k,
			Opening:         entry.Opening,
			Replenishment:   entry.Replenishment,
			POSSales:        posUsed,
			MachineSales:    machineUsed,
			ExpectedClosing: expected,
			PhysicalClosing: entry.Closing,
			Variance:        entry.Closing.Sub(expected),
			Details:         details,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// SalesVariance cross-checks machine-reported unit counts against POS unit
// counts over the union of both key sets. Variance is POS minus machine, so
// units the machines dispensed without a matching POS record show up
// negative. Keys with zero on both sides are suppressed; the stock columns
// stay zero.
func SalesVariance(pos, machine *Accumulator) []Row {
	keys := make(map[string]struct{})
	for _, k := range pos.Keys() {
		keys[k] = struct{}{}
	}
	for _, k := range machine.Keys() {
		keys[k] = struct{}{}
	}

	rows := make([]Row, 0, len(keys))
	for k := range keys {
		posUnits := pos.Get(k)
		machineUnits := machine.Get(k)
		if posUnits.IsZero() && machineUnits.IsZero() {
			continue
		}
		rows = append(rows, Row{
			Key:          k,
			POSSales:     posUnits,
			MachineSales: machineUnits,
			Variance:     posUnits.Sub(machineUnits),
			Details:      machine.Details(k),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// ParseMode validates a mode string from the API surface
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.IsValid() {
		return "", shared.NewDomainError("ERR_INVALID_MODE", "mode must be stock or sales")
	}
	return m, nil
}

// ParseUnitView validates a unit view string from the API surface
func ParseUnitView(s string) (UnitView, error) {
	if s == "" {
		return UnitVolume, nil
	}
	u := UnitView(s)
	if !u.IsValid() {
		return "", shared.NewDomainError("ERR_INVALID_UNIT", "unit must be volume or servings")
	}
	return u, nil
}
