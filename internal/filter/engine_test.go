package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratedash/pkg/contracts/domain"
)

func route(country, destination, supplier, trunk string, rate float64) domain.RouteRecord {
	return domain.RouteRecord{
		Name:        destination,
		Country:     country,
		Destination: destination,
		Supplier:    supplier,
		Trunk:       trunk,
		Rate:        rate,
	}
}

func testTable() []domain.RouteRecord {
	return []domain.RouteRecord{
		route("UK", "UK-London", "ABC Comm", "T1", 0.01),
		route("UK", "UK-London", "XYZ Tel", "T2", 0.02),
		route("UK", "UK-Manchester", "ABC Comm", "T1", 0.015),
		route("Germany", "Germany Mobile", "XYZ Tel", "T2", 0.03),
		route("Germany", "Germany Fixed", "Delta Voice", "T3", 0.025),
	}
}

func TestApply(t *testing.T) {
	table := testTable()

	tests := []struct {
		name string
		sel  domain.Selection
		want int
	}{
		{name: "empty selection returns full table", sel: domain.Selection{}, want: 5},
		{name: "country only", sel: domain.Selection{Countries: []string{"UK"}}, want: 3},
		{name: "country and supplier", sel: domain.Selection{Countries: []string{"UK"}, Suppliers: []string{"ABC Comm"}}, want: 2},
		{name: "all four dimensions", sel: domain.Selection{
			Countries:    []string{"UK"},
			Destinations: []string{"UK-London"},
			Suppliers:    []string{"ABC Comm"},
			Trunks:       []string{"T1"},
		}, want: 1},
		{name: "multiple values per dimension", sel: domain.Selection{Countries: []string{"UK", "Germany"}}, want: 5},
		{name: "unknown supplier matches nothing", sel: domain.Selection{Suppliers: []string{"Nobody"}}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Apply(table, tt.sel), tt.want)
		})
	}
}

func TestApplyEmptySelectionPreservesContent(t *testing.T) {
	table := testTable()
	got := Apply(table, domain.Selection{})
	assert.Equal(t, table, got)
}

func TestCandidatesCascade(t *testing.T) {
	table := testTable()

	// No selection: every dimension offers its full distinct set.
	c := Candidates(table, domain.Selection{})
	assert.Equal(t, []string{"Germany", "UK"}, c.Countries)
	assert.Equal(t, []string{"Germany Fixed", "Germany Mobile", "UK-London", "UK-Manchester"}, c.Destinations)
	assert.Equal(t, []string{"ABC Comm", "Delta Voice", "XYZ Tel"}, c.Suppliers)
	assert.Equal(t, []string{"T1", "T2", "T3"}, c.Trunks)

	// Selecting a country narrows destinations, suppliers and trunks but
	// never the country list itself.
	c = Candidates(table, domain.Selection{Countries: []string{"UK"}})
	assert.Equal(t, []string{"Germany", "UK"}, c.Countries)
	assert.Equal(t, []string{"UK-London", "UK-Manchester"}, c.Destinations)
	assert.Equal(t, []string{"ABC Comm", "XYZ Tel"}, c.Suppliers)
	assert.Equal(t, []string{"T1", "T2"}, c.Trunks)

	// Deselecting restores the full destination set.
	c = Candidates(table, domain.Selection{})
	assert.Len(t, c.Destinations, 4)
}

func TestCandidatesLaterDimensionsDoNotNarrowEarlier(t *testing.T) {
	table := testTable()

	// A trunk selection is the last cascade stage: it must not shrink any
	// other dimension's options.
	c := Candidates(table, domain.Selection{Trunks: []string{"T3"}})
	assert.Equal(t, []string{"Germany", "UK"}, c.Countries)
	assert.Len(t, c.Destinations, 4)
	assert.Len(t, c.Suppliers, 3)

	// A supplier selection narrows trunks but not destinations.
	c = Candidates(table, domain.Selection{Suppliers: []string{"Delta Voice"}})
	assert.Len(t, c.Destinations, 4)
	assert.Equal(t, []string{"T3"}, c.Trunks)
}

func TestCandidatesCombinedUpstreamSelections(t *testing.T) {
	table := testTable()

	c := Candidates(table, domain.Selection{
		Countries:    []string{"UK"},
		Destinations: []string{"UK-London"},
	})
	assert.Equal(t, []string{"ABC Comm", "XYZ Tel"}, c.Suppliers)

	c = Candidates(table, domain.Selection{
		Countries:    []string{"UK"},
		Destinations: []string{"UK-London"},
		Suppliers:    []string{"XYZ Tel"},
	})
	assert.Equal(t, []string{"T2"}, c.Trunks)
}

func TestPruneDropsInvalidatedValues(t *testing.T) {
	table := testTable()

	// The user had Germany destinations selected, then narrowed the country
	// filter to UK: the German destinations silently leave the selection.
	sel := domain.Selection{
		Countries:    []string{"UK"},
		Destinations: []string{"UK-London", "Germany Mobile"},
		Suppliers:    []string{"ABC Comm"},
	}
	cands := Candidates(table, sel)
	pruned := Prune(sel, cands)

	assert.Equal(t, []string{"UK"}, pruned.Countries)
	assert.Equal(t, []string{"UK-London"}, pruned.Destinations)
	assert.Equal(t, []string{"ABC Comm"}, pruned.Suppliers)
	assert.Empty(t, pruned.Trunks)

	// Every pruned value sits inside its candidate set.
	for _, d := range pruned.Destinations {
		assert.Contains(t, cands.Destinations, d)
	}
}

func TestPruneEmptySelection(t *testing.T) {
	table := testTable()
	pruned := Prune(domain.Selection{}, Candidates(table, domain.Selection{}))
	assert.True(t, pruned.IsEmpty())
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	table := testTable()
	backup := testTable()

	_ = Apply(table, domain.Selection{Countries: []string{"UK"}})
	require.Equal(t, backup, table)
}
