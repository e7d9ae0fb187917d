package http

import (
	"context"

	"ratedash/internal/analytics"
	"ratedash/internal/session"
	"ratedash/pkg/contracts/domain"
)

// RateServiceInterface defines the rate service operations the handlers
// depend on. Kept as an interface so handler tests can substitute a mock.
type RateServiceInterface interface {
	FilterState(ctx context.Context, sess *session.Session) (domain.Selection, domain.Candidates, error)
	UpdateSelection(ctx context.Context, sess *session.Session, sel domain.Selection) (domain.Selection, domain.Candidates, error)
	ResetSelection(ctx context.Context, sess *session.Session) (domain.Candidates, error)
	Dashboard(ctx context.Context, sess *session.Session) (*domain.DashboardSnapshot, error)
	Overview(ctx context.Context, sess *session.Session) ([]domain.OverviewRow, error)
	BillingIncrements(ctx context.Context, sess *session.Session) ([]domain.BillingRow, error)
	RateListing(ctx context.Context, sess *session.Session, mode analytics.GroupMode, order analytics.SortOrder) ([]domain.RateRow, error)
	SupplierSummary(ctx context.Context, sess *session.Session) ([]domain.SupplierSummaryRow, error)
}
