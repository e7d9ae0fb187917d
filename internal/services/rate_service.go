package services

import (
	"context"
	"log/slog"

	"ratedash/internal/analytics"
	"ratedash/internal/filter"
	"ratedash/internal/session"
	"ratedash/pkg/contracts/domain"
)

// RateService orchestrates one dashboard interaction: load-if-needed, prune
// the session's selection against the recomputed candidate sets, filter, and
// aggregate. It owns no state of its own: the dataset lives in the cache
// and the selection in the session.
type RateService struct {
	cache  *session.DatasetCache
	logger *slog.Logger
}

// NewRateService creates a rate service backed by the given dataset cache.
func NewRateService(cache *session.DatasetCache, logger *slog.Logger) *RateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateService{
		cache:  cache,
		logger: logger.With(slog.String("component", "rate_service")),
	}
}

// FilterState recomputes the candidate sets for sess and prunes its
// selection against them, persisting the pruned selection. This is the one
// place where stale selections (values invalidated by an upstream filter
// change) are dropped.
func (s *RateService) FilterState(ctx context.Context, sess *session.Session) (domain.Selection, domain.Candidates, error) {
	records, err := s.cache.Get(ctx)
	if err != nil {
		return domain.Selection{}, domain.Candidates{}, err
	}

	sel := sess.Selection()
	cands := filter.Candidates(records, sel)
	pruned := filter.Prune(sel, cands)
	sess.SetSelection(pruned)

	// Pruning a dimension can widen the candidates of the dimensions after
	// it, so recompute once with the effective selection.
	cands = filter.Candidates(records, pruned)
	return pruned, cands, nil
}

// UpdateSelection replaces the session's selection and returns the pruned
// effective selection plus the fresh candidate sets.
func (s *RateService) UpdateSelection(ctx context.Context, sess *session.Session, sel domain.Selection) (domain.Selection, domain.Candidates, error) {
	sess.SetSelection(sel)
	return s.FilterState(ctx, sess)
}

// ResetSelection clears the session's filters and returns the full
// candidate sets.
func (s *RateService) ResetSelection(ctx context.Context, sess *session.Session) (domain.Candidates, error) {
	sess.Reset()
	_, cands, err := s.FilterState(ctx, sess)
	return cands, err
}

// Filtered returns the records matching the session's (pruned) selection.
// An empty result is reported as ErrNoMatchingRoutes so downstream views
// are never computed over zero rows.
func (s *RateService) Filtered(ctx context.Context, sess *session.Session) ([]domain.RouteRecord, error) {
	records, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	sel, _, err := s.FilterState(ctx, sess)
	if err != nil {
		return nil, err
	}

	filtered := filter.Apply(records, sel)
	if len(filtered) == 0 {
		s.logger.InfoContext(ctx, "selection matched no routes",
			slog.String("session_id", sess.ID))
		return nil, ErrNoMatchingRoutes
	}
	return filtered, nil
}

// Dashboard builds the KPI snapshot: headline numbers over the full table
// plus min/max/mean rate over the filtered table. An empty filtered table is
// not an error here; the snapshot carries Empty=true and zeroed filtered
// stats so the page can show its warning banner.
func (s *RateService) Dashboard(ctx context.Context, sess *session.Session) (*domain.DashboardSnapshot, error) {
	records, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.DashboardSnapshot{
		Dataset: analytics.DatasetKPIs(records),
	}

	filtered, err := s.Filtered(ctx, sess)
	if err == ErrNoMatchingRoutes {
		snapshot.Empty = true
		return snapshot, nil
	}
	if err != nil {
		return nil, err
	}
	snapshot.Filtered = analytics.RateKPIs(filtered)
	return snapshot, nil
}

// Overview returns the destination/supplier overview for the session.
func (s *RateService) Overview(ctx context.Context, sess *session.Session) ([]domain.OverviewRow, error) {
	filtered, err := s.Filtered(ctx, sess)
	if err != nil {
		return nil, err
	}
	return analytics.Overview(filtered), nil
}

// BillingIncrements returns the billing terms comparison for the session.
func (s *RateService) BillingIncrements(ctx context.Context, sess *session.Session) ([]domain.BillingRow, error) {
	filtered, err := s.Filtered(ctx, sess)
	if err != nil {
		return nil, err
	}
	return analytics.BillingIncrements(filtered), nil
}

// RateListing returns the full rate listing in the requested layout.
func (s *RateService) RateListing(ctx context.Context, sess *session.Session, mode analytics.GroupMode, order analytics.SortOrder) ([]domain.RateRow, error) {
	filtered, err := s.Filtered(ctx, sess)
	if err != nil {
		return nil, err
	}
	return analytics.RateListing(filtered, mode, order), nil
}

// SupplierSummary returns the per-supplier rollup for the session.
func (s *RateService) SupplierSummary(ctx context.Context, sess *session.Session) ([]domain.SupplierSummaryRow, error) {
	filtered, err := s.Filtered(ctx, sess)
	if err != nil {
		return nil, err
	}
	return analytics.SupplierSummary(filtered), nil
}

// DatasetLoaded reports whether the rate sheet is in memory (readiness).
func (s *RateService) DatasetLoaded() bool {
	return s.cache.Loaded()
}
