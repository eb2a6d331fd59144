package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"rensadmin/pkg/config"
	apperrors "rensadmin/pkg/errors"
)

// HTTPAnalysisClient talks to the external analysis service over REST.
type HTTPAnalysisClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAnalysisClient(cfg config.AnalysisConfig) *HTTPAnalysisClient {
	return &HTTPAnalysisClient{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// FetchResult retrieves the analysis payload for an analysis id. A non-200
// response or transport failure surfaces as an upstream error.
func (c *HTTPAnalysisClient) FetchResult(ctx context.Context, analysisID string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/analysis_request/%s", c.baseURL, analysisID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, "analysis service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.ErrNoAnalysisResult
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, "read analysis response")
	}
	if len(body) == 0 || !json.Valid(body) {
		return nil, apperrors.ErrNoAnalysisResult
	}
	return json.RawMessage(body), nil
}
