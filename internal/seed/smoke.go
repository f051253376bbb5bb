package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"internmatch/internal/domain/model"
	"internmatch/pkg/logger"
)

// HTTPClient wraps http.Client with a timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with a timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// smokeRecommendation mirrors the response row shape of the recommend
// endpoint, keeping only the fields the verification needs.
type smokeRecommendation struct {
	OpportunityID int     `json:"opportunity_id"`
	Score         float64 `json:"score"`
	Reason        string  `json:"reason"`
}

type smokeResponse struct {
	CandidateID     int                   `json:"candidate_id"`
	Recommendations []smokeRecommendation `json:"recommendations"`
}

// runSmokeChecks requests recommendations for the first candidates in
// the generated catalog and verifies the responses are well formed.
func runSmokeChecks(ctx context.Context, config *Config, candidates []model.CandidateProfile, stats *Stats) error {
	if err := checkServiceHealth(ctx, config); err != nil {
		return err
	}

	n := config.SmokeRequests
	if n > len(candidates) {
		n = len(candidates)
	}

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/recommend"

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled during smoke checks: %w", ctx.Err())
		default:
		}

		stats.SmokeRequests++
		if err := smokeSingleCandidate(ctx, client, url, candidates[i].ID); err != nil {
			stats.SmokeFailed++
			logger.Get().Warn(ctx, "smoke check failed",
				logger.Int("candidateID", candidates[i].ID),
				logger.Error(err),
			)
			continue
		}
		stats.SmokeSuccessful++
	}

	if stats.SmokeFailed > 0 {
		return fmt.Errorf("%d of %d smoke checks failed", stats.SmokeFailed, stats.SmokeRequests)
	}
	logger.Get().Info(ctx, "smoke checks passed", logger.Int("requests", stats.SmokeRequests))
	return nil
}

// smokeSingleCandidate requests recommendations for one candidate and
// verifies the scores arrive in non-increasing order with reasons set.
func smokeSingleCandidate(ctx context.Context, client *HTTPClient, url string, candidateID int) error {
	resp, err := client.Post(ctx, url, map[string]interface{}{"candidate_id": candidateID})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed smokeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.CandidateID != candidateID {
		return fmt.Errorf("response candidate id %d does not match request %d", parsed.CandidateID, candidateID)
	}

	for i, rec := range parsed.Recommendations {
		if rec.Reason == "" {
			return fmt.Errorf("recommendation %d has no reason", i)
		}
		if i > 0 && rec.Score > parsed.Recommendations[i-1].Score {
			return fmt.Errorf("scores are not in non-increasing order at position %d", i)
		}
	}
	return nil
}
