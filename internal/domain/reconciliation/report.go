package reconciliation

import (
	"encoding/csv"
	"io"
	"strings"
	"time"
)

// Report is the assembled output of one reconciliation run. All figures
// are rounded to two decimal places at assembly; every intermediate
// computation upstream keeps full precision.
type Report struct {
	Mode        Mode      `json:"mode"`
	Unit        UnitView  `json:"unit"`
	StoreID     string    `json:"store_id,omitempty"`
	DeviceID    string    `json:"device_id,omitempty"`
	Date        time.Time `json:"date"`
	Rows        []Row     `json:"rows"`
	Stats       RunStats  `json:"stats"`
	GeneratedAt time.Time `json:"generated_at"`
}

// AssembleReport rounds the rows to report precision and wraps them with
// the run metadata. Rows arrive already sorted by key.
func AssembleReport(mode Mode, unit UnitView, storeID, deviceID string, date time.Time, rows []Row, stats RunStats) *Report {
	rounded := make([]Row, len(rows))
	for i, r := range rows {
		r.Opening = r.Opening.Round(2)
		r.Replenishment = r.Replenishment.Round(2)
		r.POSSales = r.POSSales.Round(2)
		r.MachineSales = r.MachineSales.Round(2)
		r.ExpectedClosing = r.ExpectedClosing.Round(2)
		r.PhysicalClosing = r.PhysicalClosing.Round(2)
		r.Variance = r.Variance.Round(2)
		rounded[i] = r
	}
	return &Report{
		Mode:        mode,
		Unit:        unit,
		StoreID:     storeID,
		DeviceID:    deviceID,
		Date:        date,
		Rows:        rounded,
		Stats:       stats,
		GeneratedAt: time.Now().UTC(),
	}
}

var csvHeader = []string{
	"ingredient_name",
	"opening",
	"replenishment",
	"pos_sales",
	"machine_sales",
	"expected_closing",
	"physical_closing",
	"variance",
	"details",
}

// WriteCSV streams the report rows as CSV in row order. Details are joined
// with "; " into the last column.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range r.Rows {
		record := []string{
			row.Key,
			row.Opening.String(),
			row.Replenishment.String(),
			row.POSSales.String(),
			row.MachineSales.String(),
			row.ExpectedClosing.String(),
			row.PhysicalClosing.String(),
			row.Variance.String(),
			strings.Join(row.Details, "; "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
