package dataprocessing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ratedash/pkg/contracts/domain"
)

// LoadError reports an unusable rate sheet: missing file, malformed workbook
// or missing required columns. A LoadError is terminal; no partial table is
// ever produced.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load rate sheet %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Source column names, after trimming. "Customer" is accepted as an alias
// for "Supplier" because older sheets from billing exports use it.
const (
	colName     = "Name"
	colSupplier = "Supplier"
	colCustomer = "Customer"
	colTrunk    = "Trunk"
	colRate     = "Rate (inter)"
	colMinDur   = "Min Dur"
	colIncDur   = "Inc Dur"
)

// LoadWorkbook reads the vendor rate sheet at path and returns the
// normalized route table. The first sheet of the workbook is used; the first
// row must be the header row. Column names are trimmed before lookup.
func LoadWorkbook(path string, logger *slog.Logger) ([]domain.RouteRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("read sheet %q: %w", sheets[0], err)}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("sheet %q is empty", sheets[0])}
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	records := make([]domain.RouteRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, buildRecord(row, columns))
	}

	logger.Info("rate sheet loaded",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("routes", len(records)))

	return records, nil
}

// mapColumns resolves the required column positions from the header row.
// Header cells may carry incidental whitespace. The Customer column, when
// present, is treated as the Supplier column.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if name == colCustomer {
			name = colSupplier
		}
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	for _, required := range []string{colName, colSupplier, colTrunk, colRate, colMinDur, colIncDur} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return columns, nil
}

// buildRecord converts one data row into a normalized RouteRecord. Numeric
// cells are parsed leniently: thousands separators are stripped and
// unparseable values pass through as zero, matching the sheet-trusting
// behavior of the dashboard.
func buildRecord(row []string, columns map[string]int) domain.RouteRecord {
	cell := func(name string) string {
		if idx, ok := columns[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}
	parseFloat := func(name string) float64 {
		v, _ := strconv.ParseFloat(strings.ReplaceAll(cell(name), ",", ""), 64)
		return v
	}
	parseInt := func(name string) int64 {
		s := strings.ReplaceAll(cell(name), ",", "")
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
		// Duration cells are occasionally stored as "6.0".
		v, _ := strconv.ParseFloat(s, 64)
		return int64(v)
	}

	name := cell(colName)
	supplier := cell(colSupplier)
	destination := NormalizeDestination(name)

	return domain.RouteRecord{
		Name:               name,
		Supplier:           supplier,
		Trunk:              cell(colTrunk),
		Rate:               parseFloat(colRate),
		MinDur:             parseInt(colMinDur),
		IncDur:             parseInt(colIncDur),
		Destination:        destination,
		Country:            ExtractCountry(destination),
		SupplierNormalized: NormalizeSupplierName(supplier),
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
