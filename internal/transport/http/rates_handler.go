package http

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"ratedash/internal/analytics"
	"ratedash/internal/dataprocessing"
	apierrors "ratedash/internal/errors"
	"ratedash/internal/exporter"
	"ratedash/internal/services"
	apiv1 "ratedash/pkg/contracts/api/v1"
	"ratedash/pkg/contracts/domain"
)

// RatesHandler serves the dashboard data plane: KPIs, filter state and the
// four aggregation views.
type RatesHandler struct {
	service  RateServiceInterface
	logger   *slog.Logger
	validate *validator.Validate
}

// NewRatesHandler creates a new rates handler.
func NewRatesHandler(service RateServiceInterface, logger *slog.Logger) *RatesHandler {
	return &RatesHandler{
		service:  service,
		logger:   logger.With(slog.String("component", "rates_handler")),
		validate: validator.New(),
	}
}

// Routes returns the rates routes.
func (h *RatesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/dashboard", h.Dashboard)

	r.Route("/filters", func(r chi.Router) {
		r.Get("/", h.GetFilters)
		r.Put("/", h.UpdateFilters)
		r.Delete("/", h.ResetFilters)
	})

	r.Route("/views", func(r chi.Router) {
		r.Get("/overview", h.Overview)
		r.Get("/billing", h.Billing)
		r.Get("/rates", h.Rates)
		r.Get("/suppliers", h.Suppliers)
	})

	r.Get("/export/{view}", h.Export)

	return r
}

// Dashboard handles GET /api/dashboard.
func (h *RatesHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	snapshot, err := h.service.Dashboard(r.Context(), sess)
	if err != nil {
		h.renderError(w, r, "dashboard", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   snapshot,
	})
}

// GetFilters handles GET /api/filters: the session's effective selection
// plus the candidate option lists for every dimension.
func (h *RatesHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	sel, cands, err := h.service.FilterState(r.Context(), sess)
	if err != nil {
		h.renderError(w, r, "filter state", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":     "success",
		"selection":  sel,
		"candidates": cands,
	})
}

// UpdateFilters handles PUT /api/filters. The submitted selection is pruned
// against the cascade before it takes effect, so values invalidated by an
// upstream change are silently dropped.
func (h *RatesHandler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var req apiv1.FilterUpdateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.InvalidRequestWithError(err)))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", err.Error())))
		return
	}

	sess := SessionFromContext(r.Context())
	sel, cands, err := h.service.UpdateSelection(r.Context(), sess, domain.Selection{
		Countries:    req.Countries,
		Destinations: req.Destinations,
		Suppliers:    req.Suppliers,
		Trunks:       req.Trunks,
	})
	if err != nil {
		h.renderError(w, r, "update filters", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":     "success",
		"selection":  sel,
		"candidates": cands,
	})
}

// ResetFilters handles DELETE /api/filters.
func (h *RatesHandler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	cands, err := h.service.ResetSelection(r.Context(), sess)
	if err != nil {
		h.renderError(w, r, "reset filters", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":     "success",
		"selection":  domain.Selection{},
		"candidates": cands,
	})
}

// Overview handles GET /api/views/overview.
func (h *RatesHandler) Overview(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	rows, err := h.service.Overview(r.Context(), sess)
	if err != nil {
		h.renderError(w, r, "overview view", err)
		return
	}
	h.renderRows(w, r, rows, len(rows))
}

// Billing handles GET /api/views/billing.
func (h *RatesHandler) Billing(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	rows, err := h.service.BillingIncrements(r.Context(), sess)
	if err != nil {
		h.renderError(w, r, "billing view", err)
		return
	}
	h.renderRows(w, r, rows, len(rows))
}

// Rates handles GET /api/views/rates?order=asc|desc&group=supplier|destination.
func (h *RatesHandler) Rates(w http.ResponseWriter, r *http.Request) {
	mode, order, apiErr := listingParams(r)
	if apiErr != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apiErr))
		return
	}

	sess := SessionFromContext(r.Context())
	rows, err := h.service.RateListing(r.Context(), sess, mode, order)
	if err != nil {
		h.renderError(w, r, "rate listing view", err)
		return
	}
	h.renderRows(w, r, rows, len(rows))
}

// Suppliers handles GET /api/views/suppliers.
func (h *RatesHandler) Suppliers(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	rows, err := h.service.SupplierSummary(r.Context(), sess)
	if err != nil {
		h.renderError(w, r, "supplier summary view", err)
		return
	}
	h.renderRows(w, r, rows, len(rows))
}

// Export handles GET /api/export/{view} and streams the view as a CSV
// attachment.
func (h *RatesHandler) Export(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	ctx := r.Context()
	sess := SessionFromContext(ctx)

	var writeCSV func() error
	switch view {
	case "overview":
		rows, err := h.service.Overview(ctx, sess)
		if err != nil {
			h.renderError(w, r, "export", err)
			return
		}
		writeCSV = func() error { return exporter.WriteOverview(w, rows) }
	case "billing":
		rows, err := h.service.BillingIncrements(ctx, sess)
		if err != nil {
			h.renderError(w, r, "export", err)
			return
		}
		writeCSV = func() error { return exporter.WriteBilling(w, rows) }
	case "rates":
		mode, order, apiErr := listingParams(r)
		if apiErr != nil {
			render.Render(w, r, apierrors.NewErrorResponse(apiErr))
			return
		}
		rows, err := h.service.RateListing(ctx, sess, mode, order)
		if err != nil {
			h.renderError(w, r, "export", err)
			return
		}
		writeCSV = func() error { return exporter.WriteRates(w, rows) }
	case "suppliers":
		rows, err := h.service.SupplierSummary(ctx, sess)
		if err != nil {
			h.renderError(w, r, "export", err)
			return
		}
		writeCSV = func() error { return exporter.WriteSupplierSummary(w, rows) }
	default:
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.InvalidParameter("view", view)))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", view))
	if err := writeCSV(); err != nil {
		h.logger.ErrorContext(ctx, "csv export failed",
			slog.String("view", view),
			slog.String("error", err.Error()))
	}
}

// renderRows writes the standard success envelope for a view.
func (h *RatesHandler) renderRows(w http.ResponseWriter, r *http.Request, rows interface{}, count int) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rows,
		"count":  count,
	})
}

// renderError maps service errors to API responses. An empty filtered table
// is not a failure: the client gets a 200 "empty" envelope and stays
// interactive; a load error is blocking and reported as 503.
func (h *RatesHandler) renderError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	if stderrors.Is(err, services.ErrNoMatchingRoutes) {
		render.JSON(w, r, map[string]interface{}{
			"status":  "empty",
			"message": "No routes match the current filter selection.",
			"data":    []interface{}{},
			"count":   0,
		})
		return
	}

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()))

	var loadErr *dataprocessing.LoadError
	if stderrors.As(err, &loadErr) {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.DataLoadError(err)))
		return
	}

	var apiErr *apierrors.APIError
	if stderrors.As(err, &apiErr) {
		render.Render(w, r, apierrors.NewErrorResponse(apiErr))
		return
	}

	render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrInternalServer))
}

// listingParams parses the rate listing's order and group query parameters,
// defaulting to ascending rates grouped by supplier.
func listingParams(r *http.Request) (analytics.GroupMode, analytics.SortOrder, *apierrors.APIError) {
	mode := analytics.GroupBySupplier
	switch g := r.URL.Query().Get("group"); g {
	case "", "supplier":
	case "destination":
		mode = analytics.GroupByDestination
	default:
		return "", "", apierrors.InvalidParameter("group", g)
	}

	order := analytics.SortAscending
	switch o := r.URL.Query().Get("order"); o {
	case "", "asc":
	case "desc":
		order = analytics.SortDescending
	default:
		return "", "", apierrors.InvalidParameter("order", o)
	}

	return mode, order, nil
}
