// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"internmatch/internal/app"
	"internmatch/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Recommendation operations.
	Recommend(ctx context.Context, candidateID, topK int) ([]model.Recommendation, error)
	RecommendProfile(ctx context.Context, profile model.CandidateProfile, topK int) ([]model.Recommendation, error)
	BatchRecommend(ctx context.Context, candidateIDs []int, topK int) []app.BatchResult

	// Catalog read operations.
	CandidateInfo(id int) (model.CandidateProfile, error)
	Candidates() []model.CandidateProfile
	Opportunities() []model.Opportunity
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	recommendHandler     *RecommendHandler
	batchHandler         *BatchHandler
	candidatesHandler    *CandidatesHandler
	opportunitiesHandler *OpportunitiesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxTopK, topKDefault int) *Server {
	return &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		recommendHandler:     NewRecommendHandler(deps, maxTopK, topKDefault),
		batchHandler:         NewBatchHandler(deps, maxTopK),
		candidatesHandler:    NewCandidatesHandler(deps),
		opportunitiesHandler: NewOpportunitiesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", RequestIDMiddleware(MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")))
	mux.HandleFunc("/stats", RequestIDMiddleware(MetricsMiddleware(s.statsHandler.HandleStats, "stats")))
	mux.HandleFunc("/recommend", RequestIDMiddleware(MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommend")))
	mux.HandleFunc("/batch_recommend", RequestIDMiddleware(MetricsMiddleware(s.batchHandler.HandleBatchRecommend, "batch_recommend")))
	mux.HandleFunc("/candidates", RequestIDMiddleware(MetricsMiddleware(s.candidatesHandler.HandleList, "candidates")))
	mux.HandleFunc("/candidates/", RequestIDMiddleware(MetricsMiddleware(s.candidatesHandler.HandleGet, "candidate")))
	mux.HandleFunc("/opportunities", RequestIDMiddleware(MetricsMiddleware(s.opportunitiesHandler.HandleList, "opportunities")))
}

// recommendationRow mirrors the response schema shared by /recommend and
// /batch_recommend.
type recommendationRow struct {
	OpportunityID     int     `json:"opportunity_id"`
	Company           string  `json:"company"`
	Role              string  `json:"role"`
	Domain            string  `json:"domain"`
	Location          string  `json:"location"`
	Type              string  `json:"type"`
	Duration          string  `json:"duration"`
	Compensation      string  `json:"compensation"`
	CompensationValue float64 `json:"compensation_value"`
	Score             float64 `json:"score"`
	Reason            string  `json:"reason"`
}

func toRows(recs []model.Recommendation) []recommendationRow {
	rows := make([]recommendationRow, len(recs))
	for i, rec := range recs {
		o := rec.Opportunity
		rows[i] = recommendationRow{
			OpportunityID:     o.ID,
			Company:           o.Company,
			Role:              o.Role,
			Domain:            o.Domain,
			Location:          o.Location,
			Type:              o.Type,
			Duration:          o.Duration,
			Compensation:      o.Compensation,
			CompensationValue: o.CompensationValue(),
			Score:             rec.Score,
			Reason:            rec.Reason,
		}
	}
	return rows
}

// profilePayload mirrors the inline ad-hoc profile accepted by /recommend.
type profilePayload struct {
	Education         string `json:"education"`
	Skills            string `json:"skills"`
	PreferredDomain   string `json:"preferred_domain"`
	PreferredLocation string `json:"preferred_location"`
	DurationPref      string `json:"duration_preference"`
	EnrollmentStatus  string `json:"enrollment_status"`
}

func (p profilePayload) toModel() model.CandidateProfile {
	return model.CandidateProfile{
		Education:         p.Education,
		Skills:            p.Skills,
		PreferredDomain:   p.PreferredDomain,
		PreferredLocation: p.PreferredLocation,
		DurationPref:      p.DurationPref,
		EnrollmentStatus:  p.EnrollmentStatus,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
