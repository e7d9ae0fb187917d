// Package exporter renders the aggregation views as CSV for download. The
// rate columns use the same $-prefixed fixed-decimal formatting as the
// dashboard tables; formatting happens here, at the edge, never before
// aggregation.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"ratedash/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize UTF-8 encoded exports.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOverview writes the overview rows as CSV.
func WriteOverview(w io.Writer, rows []domain.OverviewRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Country, r.Destination, r.Supplier, r.Trunk,
			r.RateDisplay, formatInt(r.MinDur), formatInt(r.IncDur),
		})
	}
	return write(w, []string{"Country", "Destination", "Supplier", "Trunk", "Rate", "Min Dur", "Inc Dur"}, records)
}

// WriteBilling writes the billing increment comparison as CSV.
func WriteBilling(w io.Writer, rows []domain.BillingRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Supplier, r.Trunk,
			formatInt(r.MinDuration), formatInt(r.IncDuration), r.AvgRateDisplay,
		})
	}
	return write(w, []string{"Supplier", "Trunk", "Min Duration", "Increment Duration", "Avg Rate"}, records)
}

// WriteRates writes the full rate listing as CSV.
func WriteRates(w io.Writer, rows []domain.RateRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Country, r.Destination, r.Supplier, r.Trunk,
			r.RateDisplay, formatInt(r.MinDur), formatInt(r.IncDur),
		})
	}
	return write(w, []string{"Country", "Destination", "Supplier", "Trunk", "Rate", "Min Dur", "Inc Dur"}, records)
}

// WriteSupplierSummary writes the per-supplier rollup as CSV.
func WriteSupplierSummary(w io.Writer, rows []domain.SupplierSummaryRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Supplier, fmt.Sprintf("%d", r.Routes),
			r.AvgRateDisplay, r.MinRateDisplay, r.MaxRateDisplay,
		})
	}
	return write(w, []string{"Supplier", "Total Routes", "Average Rate", "Lowest Rate", "Highest Rate"}, records)
}

func write(w io.Writer, headers []string, records [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}
