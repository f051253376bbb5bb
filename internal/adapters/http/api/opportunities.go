// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"internmatch/internal/domain/model"
)

// OpportunitiesHandler handles opportunity catalog reads.
type OpportunitiesHandler struct {
	deps Dependencies
}

// NewOpportunitiesHandler creates a new opportunities handler.
func NewOpportunitiesHandler(deps Dependencies) *OpportunitiesHandler {
	return &OpportunitiesHandler{deps: deps}
}

// opportunityRow mirrors the catalog read shape for opportunities.
type opportunityRow struct {
	ID                int     `json:"id"`
	Company           string  `json:"company"`
	Role              string  `json:"role"`
	Domain            string  `json:"domain"`
	Location          string  `json:"location"`
	Type              string  `json:"type"`
	Duration          string  `json:"duration"`
	Compensation      string  `json:"compensation"`
	CompensationValue float64 `json:"compensation_value"`
}

func toOpportunityRow(o model.Opportunity) opportunityRow {
	return opportunityRow{
		ID:                o.ID,
		Company:           o.Company,
		Role:              o.Role,
		Domain:            o.Domain,
		Location:          o.Location,
		Type:              o.Type,
		Duration:          o.Duration,
		Compensation:      o.Compensation,
		CompensationValue: o.CompensationValue(),
	}
}

// HandleList handles GET /opportunities requests.
func (h *OpportunitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	opportunities := h.deps.Opportunities()
	rows := make([]opportunityRow, len(opportunities))
	for i, o := range opportunities {
		rows[i] = toOpportunityRow(o)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"opportunities": rows,
		"total":         len(rows),
	})
}
