// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

// BatchHandler handles batch recommendation requests.
type BatchHandler struct {
	deps    Dependencies
	maxTopK int
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(deps Dependencies, maxTopK int) *BatchHandler {
	return &BatchHandler{deps: deps, maxTopK: maxTopK}
}

// batchRequest mirrors the schema for POST /batch_recommend.
type batchRequest struct {
	CandidateIDs []int `json:"candidate_ids"`
	TopK         int   `json:"top_k,omitempty"`
}

func (req batchRequest) validate(maxTopK int) error {
	switch {
	case len(req.CandidateIDs) == 0:
		return errors.New("candidate_ids must not be empty")
	case req.TopK < 0:
		return errors.New("top_k must be >= 1")
	case req.TopK > maxTopK:
		return errors.New("top_k exceeds the configured maximum")
	}
	for _, id := range req.CandidateIDs {
		if id < 1 {
			return errors.New("candidate ids must be >= 1")
		}
	}
	return nil
}

// batchEntry reports one candidate's outcome. Error is populated instead
// of aborting the rest of the batch.
type batchEntry struct {
	CandidateID          int                 `json:"candidate_id"`
	Recommendations      []recommendationRow `json:"recommendations,omitempty"`
	TotalRecommendations int                 `json:"total_recommendations"`
	Error                string              `json:"error,omitempty"`
}

type batchResponse struct {
	Results   []batchEntry `json:"results"`
	Processed int          `json:"processed"`
	Requested int          `json:"requested"`
}

// HandleBatchRecommend handles POST /batch_recommend requests.
func (h *BatchHandler) HandleBatchRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.batch_recommend"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(h.maxTopK); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	results := h.deps.BatchRecommend(r.Context(), req.CandidateIDs, req.TopK)

	entries := make([]batchEntry, len(results))
	processed := 0
	for i, res := range results {
		entry := batchEntry{CandidateID: res.CandidateID}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		} else {
			entry.Recommendations = toRows(res.Recommendations)
			entry.TotalRecommendations = len(entry.Recommendations)
			processed++
		}
		entries[i] = entry
	}

	writeJSON(w, http.StatusOK, batchResponse{
		Results:   entries,
		Processed: processed,
		Requested: len(req.CandidateIDs),
	})
}
