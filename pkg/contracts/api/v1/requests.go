// Package api contains API contract definitions for the rate analytics
// service. Version v1 represents the current stable API version.
package api

// FilterUpdateRequest replaces the session's filter selection. Empty slices
// clear the constraint for that dimension.
type FilterUpdateRequest struct {
	Countries    []string `json:"countries" validate:"omitempty,dive,min=1,max=128"`
	Destinations []string `json:"destinations" validate:"omitempty,dive,min=1,max=256"`
	Suppliers    []string `json:"suppliers" validate:"omitempty,dive,min=1,max=256"`
	Trunks       []string `json:"trunks" validate:"omitempty,dive,min=1,max=128"`
}

// RateListingRequest selects the sort direction and grouping mode for the
// full rate listing view.
type RateListingRequest struct {
	Order string `json:"order" query:"order" validate:"omitempty,oneof=asc desc"`
	Group string `json:"group" query:"group" validate:"omitempty,oneof=supplier destination"`
}

// ExportRequest identifies the view to export as CSV.
type ExportRequest struct {
	View  string `json:"view" param:"view" validate:"required,oneof=overview billing rates suppliers"`
	Order string `json:"order" query:"order" validate:"omitempty,oneof=asc desc"`
	Group string `json:"group" query:"group" validate:"omitempty,oneof=supplier destination"`
}
