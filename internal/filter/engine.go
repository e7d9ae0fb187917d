// Package filter implements the cascading filter engine over the normalized
// route table. Dimensions cascade in a fixed order (Country, Destination,
// Supplier, Trunk) so each dimension's candidate options depend only on the
// selections of the dimensions before it.
package filter

import (
	"sort"

	"ratedash/pkg/contracts/domain"
)

// Apply returns the subsequence of records matching every constrained
// dimension of the selection. An empty selection set leaves its dimension
// unconstrained. The input slice is never mutated.
func Apply(records []domain.RouteRecord, sel domain.Selection) []domain.RouteRecord {
	if sel.IsEmpty() {
		return records
	}

	countries := toSet(sel.Countries)
	destinations := toSet(sel.Destinations)
	suppliers := toSet(sel.Suppliers)
	trunks := toSet(sel.Trunks)

	filtered := make([]domain.RouteRecord, 0, len(records))
	for _, rec := range records {
		if !matches(countries, rec.Country) ||
			!matches(destinations, rec.Destination) ||
			!matches(suppliers, rec.Supplier) ||
			!matches(trunks, rec.Trunk) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// Candidates computes the valid option list for every dimension. Each
// dimension sees only the records that satisfy the selections of earlier
// dimensions: country candidates always span the full table, trunk
// candidates see the table narrowed by countries, destinations and
// suppliers. Selections on later dimensions never narrow earlier ones.
func Candidates(records []domain.RouteRecord, sel domain.Selection) domain.Candidates {
	var c domain.Candidates
	c.Countries = distinct(records, func(r domain.RouteRecord) string { return r.Country })

	narrowed := Apply(records, domain.Selection{Countries: sel.Countries})
	c.Destinations = distinct(narrowed, func(r domain.RouteRecord) string { return r.Destination })

	narrowed = Apply(narrowed, domain.Selection{Destinations: sel.Destinations})
	c.Suppliers = distinct(narrowed, func(r domain.RouteRecord) string { return r.Supplier })

	narrowed = Apply(narrowed, domain.Selection{Suppliers: sel.Suppliers})
	c.Trunks = distinct(narrowed, func(r domain.RouteRecord) string { return r.Trunk })

	return c
}

// Prune drops every selected value that is no longer present in its
// candidate set, silently. After Prune a selection never references an
// option the cascade has made invalid.
func Prune(sel domain.Selection, c domain.Candidates) domain.Selection {
	return domain.Selection{
		Countries:    intersect(sel.Countries, c.Countries),
		Destinations: intersect(sel.Destinations, c.Destinations),
		Suppliers:    intersect(sel.Suppliers, c.Suppliers),
		Trunks:       intersect(sel.Trunks, c.Trunks),
	}
}

func matches(set map[string]struct{}, value string) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[value]
	return ok
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// distinct collects the sorted distinct values of one dimension.
func distinct(records []domain.RouteRecord, key func(domain.RouteRecord) string) []string {
	seen := make(map[string]struct{}, len(records))
	values := make([]string, 0, 16)
	for _, rec := range records {
		k := key(rec)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, k)
	}
	sort.Strings(values)
	return values
}

// intersect keeps the values of sel that appear in allowed, preserving the
// original selection order.
func intersect(sel, allowed []string) []string {
	if len(sel) == 0 {
		return nil
	}
	set := toSet(allowed)
	kept := make([]string, 0, len(sel))
	for _, v := range sel {
		if _, ok := set[v]; ok {
			kept = append(kept, v)
		}
	}
	return kept
}
