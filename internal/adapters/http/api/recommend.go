// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"internmatch/internal/app"
)

// RecommendHandler handles single-candidate recommendation requests.
type RecommendHandler struct {
	deps        Dependencies
	maxTopK     int
	topKDefault int
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(deps Dependencies, maxTopK, topKDefault int) *RecommendHandler {
	return &RecommendHandler{deps: deps, maxTopK: maxTopK, topKDefault: topKDefault}
}

// recommendRequest mirrors the schema for POST /recommend. Exactly one of
// candidate_id and profile must be present.
type recommendRequest struct {
	CandidateID *int            `json:"candidate_id,omitempty"`
	Profile     *profilePayload `json:"profile,omitempty"`
	TopK        int             `json:"top_k,omitempty"`
}

func (req recommendRequest) validate(maxTopK int) error {
	switch {
	case req.CandidateID == nil && req.Profile == nil:
		return errors.New("one of candidate_id or profile is required")
	case req.CandidateID != nil && req.Profile != nil:
		return errors.New("candidate_id and profile are mutually exclusive")
	case req.CandidateID != nil && *req.CandidateID < 1:
		return errors.New("candidate_id must be >= 1")
	case req.TopK < 0:
		return errors.New("top_k must be >= 1")
	case req.TopK > maxTopK:
		return errors.New("top_k exceeds the configured maximum")
	}
	return nil
}

type recommendResponse struct {
	CandidateID          int                 `json:"candidate_id,omitempty"`
	Recommendations      []recommendationRow `json:"recommendations"`
	TotalRecommendations int                 `json:"total_recommendations"`
	RequestedCount       int                 `json:"requested_count"`
}

// HandleRecommend handles POST /recommend requests.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(h.maxTopK); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var (
		recs        []recommendationRow
		candidateID int
	)
	if req.CandidateID != nil {
		candidateID = *req.CandidateID
		out, err := h.deps.Recommend(r.Context(), candidateID, req.TopK)
		if err != nil {
			if errors.Is(err, app.ErrCandidateNotFound) {
				writeError(w, http.StatusNotFound, "not_found", err)
				return
			}
			if errors.Is(err, app.ErrNotLoaded) {
				writeError(w, http.StatusServiceUnavailable, "not_loaded", err)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		recs = toRows(out)
	} else {
		out, err := h.deps.RecommendProfile(r.Context(), req.Profile.toModel(), req.TopK)
		if err != nil {
			if errors.Is(err, app.ErrNotLoaded) {
				writeError(w, http.StatusServiceUnavailable, "not_loaded", err)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		recs = toRows(out)
	}

	// Report the top-k the service actually applied, not the raw zero
	// from an omitted field.
	requested := req.TopK
	if requested == 0 {
		requested = h.topKDefault
	}

	writeJSON(w, http.StatusOK, recommendResponse{
		CandidateID:          candidateID,
		Recommendations:      recs,
		TotalRecommendations: len(recs),
		RequestedCount:       requested,
	})
}
