// Package analytics builds the aggregated dashboard views from a filtered
// route table. Every view is a pure function: the input slice is never
// mutated and no state is carried between calls. Aggregation always runs on
// the raw float64 rates; the $-prefixed display strings are attached after
// all grouping, sorting and averaging is done.
package analytics

import (
	"fmt"
	"sort"

	"ratedash/pkg/contracts/domain"
)

// SortOrder is the caller-chosen rate direction for the rate listing.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// GroupMode selects the rate listing layout.
type GroupMode string

const (
	// GroupBySupplier keeps all rows of one supplier at one destination
	// contiguous regardless of rate direction.
	GroupBySupplier GroupMode = "supplier"
	// GroupByDestination orders purely by destination and rate.
	GroupByDestination GroupMode = "destination"
)

// FormatRate renders a raw rate for display. Display only: formatted values
// must never feed back into an aggregation or a sort comparator.
func FormatRate(rate float64) string {
	return fmt.Sprintf("$%.4f", rate)
}

// Overview groups the filtered table by (Country, Destination, Supplier,
// Trunk) and reports the mean rate with the lowest billing durations seen
// per group, sorted by country, destination and rate ascending.
func Overview(records []domain.RouteRecord) []domain.OverviewRow {
	type key struct{ country, destination, supplier, trunk string }
	type agg struct {
		rateSum float64
		count   int
		minDur  int64
		incDur  int64
	}

	groups := make(map[key]*agg, len(records))
	order := make([]key, 0, len(records))
	for _, rec := range records {
		k := key{rec.Country, rec.Destination, rec.Supplier, rec.Trunk}
		g, ok := groups[k]
		if !ok {
			g = &agg{minDur: rec.MinDur, incDur: rec.IncDur}
			groups[k] = g
			order = append(order, k)
		}
		g.rateSum += rec.Rate
		g.count++
		if rec.MinDur < g.minDur {
			g.minDur = rec.MinDur
		}
		if rec.IncDur < g.incDur {
			g.incDur = rec.IncDur
		}
	}

	rows := make([]domain.OverviewRow, 0, len(order))
	for _, k := range order {
		g := groups[k]
		mean := g.rateSum / float64(g.count)
		rows = append(rows, domain.OverviewRow{
			Country:     k.country,
			Destination: k.destination,
			Supplier:    k.supplier,
			Trunk:       k.trunk,
			Rate:        mean,
			RateDisplay: FormatRate(mean),
			MinDur:      g.minDur,
			IncDur:      g.incDur,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Country != rows[j].Country {
			return rows[i].Country < rows[j].Country
		}
		if rows[i].Destination != rows[j].Destination {
			return rows[i].Destination < rows[j].Destination
		}
		return rows[i].Rate < rows[j].Rate
	})
	return rows
}

// BillingIncrements groups by (Supplier, Trunk) and reports the billing
// terms the pair offers regardless of destination: lowest minimum duration,
// lowest increment and mean rate.
func BillingIncrements(records []domain.RouteRecord) []domain.BillingRow {
	type key struct{ supplier, trunk string }
	type agg struct {
		rateSum float64
		count   int
		minDur  int64
		incDur  int64
	}

	groups := make(map[key]*agg, len(records))
	order := make([]key, 0, len(records))
	for _, rec := range records {
		k := key{rec.Supplier, rec.Trunk}
		g, ok := groups[k]
		if !ok {
			g = &agg{minDur: rec.MinDur, incDur: rec.IncDur}
			groups[k] = g
			order = append(order, k)
		}
		g.rateSum += rec.Rate
		g.count++
		if rec.MinDur < g.minDur {
			g.minDur = rec.MinDur
		}
		if rec.IncDur < g.incDur {
			g.incDur = rec.IncDur
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].supplier != order[j].supplier {
			return order[i].supplier < order[j].supplier
		}
		return order[i].trunk < order[j].trunk
	})

	rows := make([]domain.BillingRow, 0, len(order))
	for _, k := range order {
		g := groups[k]
		mean := g.rateSum / float64(g.count)
		rows = append(rows, domain.BillingRow{
			Supplier:       k.supplier,
			Trunk:          k.trunk,
			MinDuration:    g.minDur,
			IncDuration:    g.incDur,
			AvgRate:        mean,
			AvgRateDisplay: FormatRate(mean),
		})
	}
	return rows
}

// RateListing returns the full filtered table row-per-record, sorted for one
// of the two layouts. GroupBySupplier sorts (Destination asc, Supplier asc,
// Rate dir) so a supplier's rows stay together; GroupByDestination sorts
// (Destination asc, Rate dir).
func RateListing(records []domain.RouteRecord, mode GroupMode, order SortOrder) []domain.RateRow {
	rows := make([]domain.RateRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, domain.RateRow{
			Country:     rec.Country,
			Destination: rec.Destination,
			Supplier:    rec.Supplier,
			Trunk:       rec.Trunk,
			Rate:        rec.Rate,
			RateDisplay: FormatRate(rec.Rate),
			MinDur:      rec.MinDur,
			IncDur:      rec.IncDur,
		})
	}

	rateLess := func(a, b float64) bool {
		if order == SortDescending {
			return a > b
		}
		return a < b
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Destination != rows[j].Destination {
			return rows[i].Destination < rows[j].Destination
		}
		if mode == GroupBySupplier && rows[i].Supplier != rows[j].Supplier {
			return rows[i].Supplier < rows[j].Supplier
		}
		return rateLess(rows[i].Rate, rows[j].Rate)
	})
	return rows
}

// SupplierSummary collapses the filtered table across destinations and
// trunks: route count and mean/min/max rate per supplier, cheapest supplier
// first.
func SupplierSummary(records []domain.RouteRecord) []domain.SupplierSummaryRow {
	type agg struct {
		routes  int
		rateSum float64
		minRate float64
		maxRate float64
	}

	groups := make(map[string]*agg, len(records))
	order := make([]string, 0, len(records))
	for _, rec := range records {
		g, ok := groups[rec.Supplier]
		if !ok {
			g = &agg{minRate: rec.Rate, maxRate: rec.Rate}
			groups[rec.Supplier] = g
			order = append(order, rec.Supplier)
		}
		g.routes++
		g.rateSum += rec.Rate
		if rec.Rate < g.minRate {
			g.minRate = rec.Rate
		}
		if rec.Rate > g.maxRate {
			g.maxRate = rec.Rate
		}
	}

	rows := make([]domain.SupplierSummaryRow, 0, len(order))
	for _, supplier := range order {
		g := groups[supplier]
		mean := g.rateSum / float64(g.routes)
		rows = append(rows, domain.SupplierSummaryRow{
			Supplier:       supplier,
			Routes:         g.routes,
			AvgRate:        mean,
			MinRate:        g.minRate,
			MaxRate:        g.maxRate,
			AvgRateDisplay: FormatRate(mean),
			MinRateDisplay: FormatRate(g.minRate),
			MaxRateDisplay: FormatRate(g.maxRate),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AvgRate < rows[j].AvgRate
	})
	return rows
}

// DatasetKPIs computes the headline cards over the full normalized table.
func DatasetKPIs(records []domain.RouteRecord) domain.DatasetStats {
	countries := make(map[string]struct{})
	destinations := make(map[string]struct{})
	suppliers := make(map[string]struct{})
	trunks := make(map[string]struct{})
	var rateSum float64
	for _, rec := range records {
		countries[rec.Country] = struct{}{}
		destinations[rec.Destination] = struct{}{}
		suppliers[rec.Supplier] = struct{}{}
		trunks[rec.Trunk] = struct{}{}
		rateSum += rec.Rate
	}

	stats := domain.DatasetStats{
		Countries:    len(countries),
		Destinations: len(destinations),
		Suppliers:    len(suppliers),
		Trunks:       len(trunks),
		Routes:       len(records),
	}
	if stats.Routes > 0 {
		stats.AvgRate = rateSum / float64(stats.Routes)
	}
	return stats
}

// RateKPIs computes min/max/mean rate and route count over the filtered
// table. Callers must not invoke it on an empty table; the service layer
// short-circuits the empty case first.
func RateKPIs(records []domain.RouteRecord) domain.RateStats {
	stats := domain.RateStats{
		Routes:  len(records),
		MinRate: records[0].Rate,
		MaxRate: records[0].Rate,
	}
	var sum float64
	for _, rec := range records {
		sum += rec.Rate
		if rec.Rate < stats.MinRate {
			stats.MinRate = rec.Rate
		}
		if rec.Rate > stats.MaxRate {
			stats.MaxRate = rec.Rate
		}
	}
	stats.AvgRate = sum / float64(len(records))
	return stats
}
