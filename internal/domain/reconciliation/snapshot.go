package reconciliation

import (
	"github.com/barstock/backend/internal/domain/mapping"
	"github.com/shopspring/decimal"
)

// Line is one resolved ingredient-volume pair from a mapping record
type Line struct {
	Ingredient string
	Volume     decimal.Decimal
}

// VendingSlot is the resolved mapping for one vending kiosk slot
type VendingSlot struct {
	Code        string
	ProductName string
	StoreID     string
	Multiplier  decimal.Decimal
	IsMain      bool
}

type codeKey struct {
	code    string
	storeID string
}

type machineKey struct {
	machine string
	storeID string
}

type slotKey struct {
	deviceID string
	slot     string
}

type nameKey struct {
	deviceID string
	name     string
}

// Snapshot is an immutable in-memory view of the active mapping records,
// built once per reconciliation run. Only active rows participate; the
// snapshot is never mutated after construction, so a run needs no locking.
type Snapshot struct {
	direct          map[codeKey][]Line
	composite       map[codeKey][]Line
	recipes         map[machineKey][]Line
	recipesAnyStore map[string][]Line
	vendingBySlot   map[slotKey]VendingSlot
	vendingByName   map[nameKey]VendingSlot
	vendingProducts map[string]string // code -> normalized product name
}

// BuildSnapshot indexes the given active mapping rows for one run.
// Machine names and ingredient names are assumed already normalized at
// ingestion; vending product names are normalized here for the fallback
// name index.
func BuildSnapshot(directs []mapping.Direct, composites []mapping.Composite, recipes []mapping.Recipe, vendings []mapping.Vending) *Snapshot {
	s := &Snapshot{
		direct:          make(map[codeKey][]Line),
		composite:       make(map[codeKey][]Line),
		recipes:         make(map[machineKey][]Line),
		recipesAnyStore: make(map[string][]Line),
		vendingBySlot:   make(map[slotKey]VendingSlot),
		vendingByName:   make(map[nameKey]VendingSlot),
		vendingProducts: make(map[string]string),
	}

	for _, d := range directs {
		if !d.Active {
			continue
		}
		k := codeKey{code: d.Code, storeID: d.StoreID}
		s.direct[k] = append(s.direct[k], Line{Ingredient: d.IngredientName, Volume: d.Volume})
	}

	for _, c := range composites {
		if !c.Active {
			continue
		}
		k := codeKey{code: c.Code, storeID: c.StoreID}
		s.composite[k] = append(s.composite[k], Line{Ingredient: c.IngredientName, Volume: c.Volume})
	}

	for _, r := range recipes {
		if !r.Active {
			continue
		}
		line := Line{Ingredient: r.IngredientName, Volume: r.Volume}
		if r.StoreID == "" {
			s.recipesAnyStore[r.MachineName] = append(s.recipesAnyStore[r.MachineName], line)
			continue
		}
		k := machineKey{machine: r.MachineName, storeID: r.StoreID}
		s.recipes[k] = append(s.recipes[k], line)
	}

	for _, v := range vendings {
		if !v.Active {
			continue
		}
		slot := VendingSlot{
			Code:        v.Code,
			ProductName: v.ProductName,
			StoreID:     v.StoreID,
			Multiplier:  v.Multiplier,
			IsMain:      v.IsMain,
		}
		s.vendingBySlot[slotKey{deviceID: v.DeviceID, slot: v.Slot}] = slot

		name := mapping.NormalizeName(v.ProductName)
		if name != "" {
			s.vendingByName[nameKey{deviceID: v.DeviceID, name: name}] = slot
			s.vendingProducts[v.Code] = name
		}
	}

	return s
}

// DirectLines returns the direct-mapping lines for (code, store)
func (s *Snapshot) DirectLines(code, storeID string) []Line {
	return s.direct[codeKey{code: code, storeID: storeID}]
}

// CompositeLines returns the composite recipe lines for (code, store)
func (s *Snapshot) CompositeLines(code, storeID string) []Line {
	return s.composite[codeKey{code: code, storeID: storeID}]
}

// RecipeLines returns the recipe lines for a normalized machine name.
// A transaction that carries a store matches only the store-scoped key;
// one without a store matches only the store-agnostic fallback rows.
func (s *Snapshot) RecipeLines(machine, storeID string) []Line {
	if storeID != "" {
		return s.recipes[machineKey{machine: machine, storeID: storeID}]
	}
	return s.recipesAnyStore[machine]
}

// VendingBySlot returns the slot mapping for (device, slot)
func (s *Snapshot) VendingBySlot(deviceID, slot string) (VendingSlot, bool) {
	v, ok := s.vendingBySlot[slotKey{deviceID: deviceID, slot: slot}]
	return v, ok
}

// VendingByName returns the slot mapping for a normalized product or
// machine name on the given device, the fallback when no slot matches.
func (s *Snapshot) VendingByName(deviceID, name string) (VendingSlot, bool) {
	v, ok := s.vendingByName[nameKey{deviceID: deviceID, name: name}]
	return v, ok
}

// VendingProductNames returns the code to normalized product name index
// across all vending mappings.
func (s *Snapshot) VendingProductNames() map[string]string {
	return s.vendingProducts
}
