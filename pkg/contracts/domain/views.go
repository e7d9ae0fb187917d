package domain

// OverviewRow is one aggregated row of the destination/supplier overview:
// grouped by (Country, Destination, Supplier, Trunk) with the mean rate and
// the best billing terms seen for the group.
type OverviewRow struct {
	Country     string  `json:"country"`
	Destination string  `json:"destination"`
	Supplier    string  `json:"supplier"`
	Trunk       string  `json:"trunk"`
	Rate        float64 `json:"rate"`
	RateDisplay string  `json:"rate_display"`
	MinDur      int64   `json:"min_dur"`
	IncDur      int64   `json:"inc_dur"`
}

// BillingRow compares billing terms per (Supplier, Trunk) pair regardless of
// destination.
type BillingRow struct {
	Supplier       string  `json:"supplier"`
	Trunk          string  `json:"trunk"`
	MinDuration    int64   `json:"min_duration"`
	IncDuration    int64   `json:"inc_duration"`
	AvgRate        float64 `json:"avg_rate"`
	AvgRateDisplay string  `json:"avg_rate_display"`
}

// RateRow is one unaggregated row of the full rate listing. It carries all
// six base columns plus the derived country.
type RateRow struct {
	Country     string  `json:"country"`
	Destination string  `json:"destination"`
	Supplier    string  `json:"supplier"`
	Trunk       string  `json:"trunk"`
	Rate        float64 `json:"rate"`
	RateDisplay string  `json:"rate_display"`
	MinDur      int64   `json:"min_dur"`
	IncDur      int64   `json:"inc_dur"`
}

// SupplierSummaryRow collapses the filtered table across destinations and
// trunks, one row per supplier.
type SupplierSummaryRow struct {
	Supplier       string  `json:"supplier"`
	Routes         int     `json:"routes"`
	AvgRate        float64 `json:"avg_rate"`
	MinRate        float64 `json:"min_rate"`
	MaxRate        float64 `json:"max_rate"`
	AvgRateDisplay string  `json:"avg_rate_display"`
	MinRateDisplay string  `json:"min_rate_display"`
	MaxRateDisplay string  `json:"max_rate_display"`
}

// DatasetStats are the headline KPIs over the full normalized table.
type DatasetStats struct {
	Countries    int     `json:"countries"`
	Destinations int     `json:"destinations"`
	Suppliers    int     `json:"suppliers"`
	Trunks       int     `json:"trunks"`
	Routes       int     `json:"routes"`
	AvgRate      float64 `json:"avg_rate"`
}

// RateStats are the KPIs over the filtered table.
type RateStats struct {
	Routes  int     `json:"routes"`
	MinRate float64 `json:"min_rate"`
	MaxRate float64 `json:"max_rate"`
	AvgRate float64 `json:"avg_rate"`
}

// DashboardSnapshot bundles everything the landing view needs in one call.
type DashboardSnapshot struct {
	Dataset  DatasetStats `json:"dataset"`
	Filtered RateStats    `json:"filtered"`
	Empty    bool         `json:"empty"`
}
