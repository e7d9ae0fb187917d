package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratedash/pkg/contracts/domain"
)

func route(country, destination, supplier, trunk string, rate float64, minDur, incDur int64) domain.RouteRecord {
	return domain.RouteRecord{
		Name:        destination,
		Country:     country,
		Destination: destination,
		Supplier:    supplier,
		Trunk:       trunk,
		Rate:        rate,
		MinDur:      minDur,
		IncDur:      incDur,
	}
}

func TestOverviewAggregatesGroup(t *testing.T) {
	records := []domain.RouteRecord{
		route("UK", "UK-London", "ABC Comm", "T1", 0.01, 6, 6),
		route("UK", "UK-London", "ABC Comm", "T1", 0.02, 6, 6),
	}

	rows := Overview(records)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "UK", row.Country)
	assert.Equal(t, "UK-London", row.Destination)
	assert.Equal(t, "ABC Comm", row.Supplier)
	assert.Equal(t, "T1", row.Trunk)
	assert.InDelta(t, 0.015, row.Rate, 1e-9)
	assert.Equal(t, "$0.0150", row.RateDisplay)
	assert.Equal(t, int64(6), row.MinDur)
	assert.Equal(t, int64(6), row.IncDur)
}

func TestOverviewTakesMinDurations(t *testing.T) {
	records := []domain.RouteRecord{
		route("UK", "UK-London", "ABC Comm", "T1", 0.01, 30, 6),
		route("UK", "UK-London", "ABC Comm", "T1", 0.01, 6, 1),
	}

	rows := Overview(records)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(6), rows[0].MinDur)
	assert.Equal(t, int64(1), rows[0].IncDur)
}

func TestOverviewSortOrder(t *testing.T) {
	records := []domain.RouteRecord{
		route("UK", "UK-London", "Pricey", "T1", 0.05, 1, 1),
		route("Germany", "Germany Mobile", "ACME", "T1", 0.03, 1, 1),
		route("UK", "UK-London", "Cheap", "T2", 0.01, 1, 1),
		route("UK", "UK-Leeds", "ACME", "T1", 0.02, 1, 1),
	}

	rows := Overview(records)
	require.Len(t, rows, 4)

	// (Country, Destination, Rate) ascending.
	assert.Equal(t, "Germany", rows[0].Country)
	assert.Equal(t, "UK-Leeds", rows[1].Destination)
	assert.Equal(t, "Cheap", rows[2].Supplier)
	assert.Equal(t, "Pricey", rows[3].Supplier)
}

func TestBillingIncrementsIgnoresDestination(t *testing.T) {
	records := []domain.RouteRecord{
		route("UK", "UK-London", "ACME", "T1", 0.01, 30, 6),
		route("Germany", "Germany Mobile", "ACME", "T1", 0.03, 6, 1),
		route("UK", "UK-London", "Other", "T2", 0.02, 1, 1),
	}

	rows := BillingIncrements(records)
	require.Len(t, rows, 2)

	acme := rows[0]
	assert.Equal(t, "ACME", acme.Supplier)
	assert.Equal(t, "T1", acme.Trunk)
	assert.Equal(t, int64(6), acme.MinDuration)
	assert.Equal(t, int64(1), acme.IncDuration)
	assert.InDelta(t, 0.02, acme.AvgRate, 1e-9)
	assert.Equal(t, "$0.0200", acme.AvgRateDisplay)
}

func TestRateListingGroupedBySupplier(t *testing.T) {
	records := []domain.RouteRecord{
		route("UK", "UK-London", "Beta", "T1", 0.01, 1, 1),
		route("UK", "UK-London", "Alpha", "T1", 0.05, 1, 1),
		route("UK", "UK-London", "Alpha", "T2", 0.02, 1, 1),
		route("Germany", "Germany Mobile", "Beta", "T1", 0.03, 1, 1),
	}

	// Descending rates, but Alpha's rows stay contiguous before Beta's.
	rows := RateListing(records, GroupBySupplier, SortDescending)
	require.Len(t, rows, 4)
	assert.Equal(t, "Germany Mobile", rows[0].Destination)
	assert.Equal(t, "Alpha", rows[1].Supplier)
	assert.InDelta(t, 0.05, rows[1].Rate, 1e-9)
	assert.Equal(t, "Alpha", rows[2].Supplier)
	assert.InDelta(t, 0.02, rows[2].Rate, 1e-9)
	assert.Equal(t, "Beta", rows[3].Supplier)
}

func TestRateListingDestinationOnly(t *testing.T) {
	records := []domain.RouteRecord{
		route("UK", "UK-London", "Beta", "T1", 0.01, 1, 1),
		route("UK", "UK-London", "Alpha", "T1", 0.05, 1, 1),
		route("UK", "UK-London", "Alpha", "T2", 0.02, 1, 1),
	}

	rows := RateListing(records, GroupByDestination, SortAscending)
	require.Len(t, rows, 3)
	assert.InDelta(t, 0.01, rows[0].Rate, 1e-9)
	assert.InDelta(t, 0.02, rows[1].Rate, 1e-9)
	assert.InDelta(t, 0.05, rows[2].Rate, 1e-9)

	rows = RateListing(records, GroupByDestination, SortDescending)
	assert.InDelta(t, 0.05, rows[0].Rate, 1e-9)
	assert.InDelta(t, 0.01, rows[2].Rate, 1e-9)
}

func TestRateListingDoesNotAggregate(t *testing.T) {
	records := []domain.RouteRecord{
		route("UK", "UK-London", "ACME", "T1", 0.01, 1, 1),
		route("UK", "UK-London", "ACME", "T1", 0.01, 1, 1),
	}
	assert.Len(t, RateListing(records, GroupBySupplier, SortAscending), 2)
}

func TestSupplierSummary(t *testing.T) {
	records := []domain.RouteRecord{
		route("UK", "UK-London", "Pricey", "T1", 0.05, 1, 1),
		route("UK", "UK-London", "Cheap", "T1", 0.01, 1, 1),
		route("UK", "UK-Manchester", "Cheap", "T2", 0.03, 1, 1),
	}

	rows := SupplierSummary(records)
	require.Len(t, rows, 2)

	// Sorted by mean rate ascending: Cheap (0.02) before Pricey (0.05).
	cheap := rows[0]
	assert.Equal(t, "Cheap", cheap.Supplier)
	assert.Equal(t, 2, cheap.Routes)
	assert.InDelta(t, 0.02, cheap.AvgRate, 1e-9)
	assert.InDelta(t, 0.01, cheap.MinRate, 1e-9)
	assert.InDelta(t, 0.03, cheap.MaxRate, 1e-9)
	assert.Equal(t, "$0.0200", cheap.AvgRateDisplay)

	assert.Equal(t, "Pricey", rows[1].Supplier)
	assert.Equal(t, 1, rows[1].Routes)
}

func TestSupplierSummaryRoutesMatchesRecordCount(t *testing.T) {
	records := []domain.RouteRecord{
		route("UK", "UK-London", "A", "T1", 0.01, 1, 1),
		route("UK", "UK-London", "A", "T2", 0.02, 1, 1),
		route("UK", "UK-Leeds", "A", "T1", 0.03, 1, 1),
		route("UK", "UK-Leeds", "B", "T1", 0.04, 1, 1),
	}

	counts := map[string]int{}
	for _, rec := range records {
		counts[rec.Supplier]++
	}

	for _, row := range SupplierSummary(records) {
		assert.Equal(t, counts[row.Supplier], row.Routes, "supplier %s", row.Supplier)
	}
}

func TestDatasetKPIs(t *testing.T) {
	records := []domain.RouteRecord{
		route("UK", "UK-London", "A", "T1", 0.01, 1, 1),
		route("UK", "UK-Manchester", "B", "T2", 0.03, 1, 1),
		route("Germany", "Germany Mobile", "A", "T1", 0.05, 1, 1),
	}

	stats := DatasetKPIs(records)
	assert.Equal(t, 2, stats.Countries)
	assert.Equal(t, 3, stats.Destinations)
	assert.Equal(t, 2, stats.Suppliers)
	assert.Equal(t, 2, stats.Trunks)
	assert.Equal(t, 3, stats.Routes)
	assert.InDelta(t, 0.03, stats.AvgRate, 1e-9)
}

func TestDatasetKPIsEmpty(t *testing.T) {
	stats := DatasetKPIs(nil)
	assert.Zero(t, stats.Routes)
	assert.Zero(t, stats.AvgRate)
}

func TestRateKPIs(t *testing.T) {
	records := []domain.RouteRecord{
		route("UK", "UK-London", "A", "T1", 0.02, 1, 1),
		route("UK", "UK-London", "B", "T1", 0.01, 1, 1),
		route("UK", "UK-London", "C", "T1", 0.06, 1, 1),
	}

	stats := RateKPIs(records)
	assert.Equal(t, 3, stats.Routes)
	assert.InDelta(t, 0.01, stats.MinRate, 1e-9)
	assert.InDelta(t, 0.06, stats.MaxRate, 1e-9)
	assert.InDelta(t, 0.03, stats.AvgRate, 1e-9)
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "$0.0150", FormatRate(0.015))
	assert.Equal(t, "$1.2346", FormatRate(1.23456))
	assert.Equal(t, "$0.0000", FormatRate(0))
}
