// Package domain contains the core data structures shared between the
// dataprocessing, filter, analytics and transport layers.
package domain

// RouteRecord is one normalized row of the vendor rate sheet. The raw
// spreadsheet fields are kept verbatim; Destination, Country and
// SupplierNormalized are derived at load time and never recomputed.
type RouteRecord struct {
	Name     string  `json:"name"`
	Supplier string  `json:"supplier"`
	Trunk    string  `json:"trunk"`
	Rate     float64 `json:"rate"`
	MinDur   int64   `json:"min_dur"`
	IncDur   int64   `json:"inc_dur"`

	// Derived fields. Destination and Country fall back to "Unknown" when
	// the source cell is empty. SupplierNormalized is a reserved key for
	// fuzzy duplicate detection; no filter or view groups by it.
	Destination        string `json:"destination"`
	Country            string `json:"country"`
	SupplierNormalized string `json:"supplier_normalized"`
}

// Selection holds the values chosen for each filter dimension. An empty
// slice means the dimension is unconstrained, not "match nothing".
type Selection struct {
	Countries    []string `json:"countries"`
	Destinations []string `json:"destinations"`
	Suppliers    []string `json:"suppliers"`
	Trunks       []string `json:"trunks"`
}

// IsEmpty reports whether no dimension carries a constraint.
func (s Selection) IsEmpty() bool {
	return len(s.Countries) == 0 && len(s.Destinations) == 0 &&
		len(s.Suppliers) == 0 && len(s.Trunks) == 0
}

// Candidates holds the valid option lists per filter dimension, computed
// under the Country -> Destination -> Supplier -> Trunk cascade. Lists are
// sorted ascending for stable presentation.
type Candidates struct {
	Countries    []string `json:"countries"`
	Destinations []string `json:"destinations"`
	Suppliers    []string `json:"suppliers"`
	Trunks       []string `json:"trunks"`
}
