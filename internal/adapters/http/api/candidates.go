// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"internmatch/internal/app"
	"internmatch/internal/domain/model"
)

// CandidatesHandler handles candidate catalog reads.
type CandidatesHandler struct {
	deps Dependencies
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps Dependencies) *CandidatesHandler {
	return &CandidatesHandler{deps: deps}
}

// candidateRow mirrors the catalog read shape for candidates.
type candidateRow struct {
	ID                int    `json:"id"`
	Name              string `json:"name,omitempty"`
	Education         string `json:"education"`
	Skills            string `json:"skills"`
	PreferredDomain   string `json:"preferred_domain"`
	PreferredLocation string `json:"preferred_location"`
	DurationPref      string `json:"duration_preference"`
	EnrollmentStatus  string `json:"enrollment_status"`
}

func toCandidateRow(c model.CandidateProfile) candidateRow {
	return candidateRow{
		ID:                c.ID,
		Name:              c.Name,
		Education:         c.Education,
		Skills:            c.Skills,
		PreferredDomain:   c.PreferredDomain,
		PreferredLocation: c.PreferredLocation,
		DurationPref:      c.DurationPref,
		EnrollmentStatus:  c.EnrollmentStatus,
	}
}

// HandleList handles GET /candidates requests.
func (h *CandidatesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	candidates := h.deps.Candidates()
	rows := make([]candidateRow, len(candidates))
	for i, c := range candidates {
		rows[i] = toCandidateRow(c)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"candidates": rows,
		"total":      len(rows),
	})
}

// HandleGet handles GET /candidates/{id} requests.
func (h *CandidatesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_candidate"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/candidates/")
	id, err := strconv.Atoi(path)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	c, err := h.deps.CandidateInfo(id)
	if err != nil {
		if errors.Is(err, app.ErrCandidateNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, toCandidateRow(c))
}
