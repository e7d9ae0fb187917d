package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ratedash/internal/analytics"
	"ratedash/internal/dataprocessing"
	"ratedash/internal/session"
	"ratedash/pkg/contracts/domain"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "vendors.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// newTestService builds a RateService over a small fixed workbook:
// two UK-London routes from ABC Comm plus one German route.
func newTestService(t *testing.T) (*RateService, *session.Session) {
	t.Helper()

	path := writeWorkbook(t, [][]interface{}{
		{"Name", "Customer", "Trunk", "Rate (inter)", "Min Dur", "Inc Dur"},
		{"UK-London", "ABC Comm", "T1", 0.01, 6, 6},
		{"UK-London", "ABC Comm", "T1", 0.02, 6, 6},
		{"Germany Mobile", "XYZ Tel", "T2", 0.03, 1, 1},
	})

	svc := NewRateService(session.NewDatasetCache(path, nil), nil)
	store := session.NewStore(nil)
	sess, _ := store.GetOrCreate("")
	return svc, sess
}

func TestFilterState(t *testing.T) {
	svc, sess := newTestService(t)
	ctx := context.Background()

	sel, cands, err := svc.FilterState(ctx, sess)
	require.NoError(t, err)
	assert.True(t, sel.IsEmpty())
	assert.Equal(t, []string{"Germany", "UK"}, cands.Countries)
	assert.Equal(t, []string{"Germany Mobile", "UK-London"}, cands.Destinations)
}

func TestUpdateSelectionPrunesStaleValues(t *testing.T) {
	svc, sess := newTestService(t)
	ctx := context.Background()

	// Destination from a country outside the new country selection is
	// silently dropped; candidates reflect the effective selection.
	sel, cands, err := svc.UpdateSelection(ctx, sess, domain.Selection{
		Countries:    []string{"UK"},
		Destinations: []string{"UK-London", "Germany Mobile"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"UK-London"}, sel.Destinations)
	assert.Equal(t, []string{"ABC Comm"}, cands.Suppliers)

	// The pruned selection is persisted on the session.
	assert.Equal(t, []string{"UK-London"}, sess.Selection().Destinations)
}

func TestFilteredUnknownValuesArePrunedNotFatal(t *testing.T) {
	svc, sess := newTestService(t)
	ctx := context.Background()

	// A supplier that never appears in the table is not a candidate, so
	// pruning drops it and the selection becomes unconstrained again.
	sess.SetSelection(domain.Selection{Suppliers: []string{"Nobody Comm"}})

	filtered, err := svc.Filtered(ctx, sess)
	require.NoError(t, err)
	assert.Len(t, filtered, 3)
	assert.True(t, sess.Selection().IsEmpty())
}

func TestFilteredEmptyDataset(t *testing.T) {
	// A sheet with headers but no data rows loads as an empty table, and
	// filtering it reports the soft empty-result error instead of handing
	// zero rows to the views.
	path := writeWorkbook(t, [][]interface{}{
		{"Name", "Supplier", "Trunk", "Rate (inter)", "Min Dur", "Inc Dur"},
	})
	svc := NewRateService(session.NewDatasetCache(path, nil), nil)
	store := session.NewStore(nil)
	sess, _ := store.GetOrCreate("")
	ctx := context.Background()

	_, err := svc.Filtered(ctx, sess)
	require.ErrorIs(t, err, ErrNoMatchingRoutes)

	_, err = svc.Overview(ctx, sess)
	require.ErrorIs(t, err, ErrNoMatchingRoutes)

	// The dashboard treats the same condition as a warning, not an error.
	snap, err := svc.Dashboard(ctx, sess)
	require.NoError(t, err)
	assert.True(t, snap.Empty)
	assert.Zero(t, snap.Filtered.Routes)
}

func TestDashboardSnapshot(t *testing.T) {
	svc, sess := newTestService(t)
	ctx := context.Background()

	snap, err := svc.Dashboard(ctx, sess)
	require.NoError(t, err)
	assert.False(t, snap.Empty)
	assert.Equal(t, 2, snap.Dataset.Countries)
	assert.Equal(t, 3, snap.Dataset.Routes)
	assert.InDelta(t, 0.02, snap.Dataset.AvgRate, 1e-9)
	assert.Equal(t, 3, snap.Filtered.Routes)
	assert.InDelta(t, 0.01, snap.Filtered.MinRate, 1e-9)
	assert.InDelta(t, 0.03, snap.Filtered.MaxRate, 1e-9)
}

func TestViewsOverFilteredTable(t *testing.T) {
	svc, sess := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.UpdateSelection(ctx, sess, domain.Selection{Countries: []string{"UK"}})
	require.NoError(t, err)

	overview, err := svc.Overview(ctx, sess)
	require.NoError(t, err)
	require.Len(t, overview, 1)
	assert.InDelta(t, 0.015, overview[0].Rate, 1e-9)

	billing, err := svc.BillingIncrements(ctx, sess)
	require.NoError(t, err)
	require.Len(t, billing, 1)
	assert.Equal(t, "ABC Comm", billing[0].Supplier)

	listing, err := svc.RateListing(ctx, sess, analytics.GroupBySupplier, analytics.SortAscending)
	require.NoError(t, err)
	assert.Len(t, listing, 2)

	suppliers, err := svc.SupplierSummary(ctx, sess)
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, 2, suppliers[0].Routes)
}

func TestResetSelection(t *testing.T) {
	svc, sess := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.UpdateSelection(ctx, sess, domain.Selection{Countries: []string{"UK"}})
	require.NoError(t, err)

	cands, err := svc.ResetSelection(ctx, sess)
	require.NoError(t, err)
	assert.True(t, sess.Selection().IsEmpty())
	assert.Len(t, cands.Destinations, 2)
}

func TestLoadErrorPropagates(t *testing.T) {
	svc := NewRateService(session.NewDatasetCache(filepath.Join(t.TempDir(), "absent.xlsx"), nil), nil)
	store := session.NewStore(nil)
	sess, _ := store.GetOrCreate("")

	_, err := svc.Dashboard(context.Background(), sess)
	var loadErr *dataprocessing.LoadError
	require.ErrorAs(t, err, &loadErr)

	_, _, err = svc.FilterState(context.Background(), sess)
	require.ErrorAs(t, err, &loadErr)
}
