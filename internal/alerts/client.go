// Package alerts fetches firing alerts from a Prometheus-compatible
// observability stack. The alert set is embedded in the agent's task
// prompt so the model starts with the live failure signal.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Alert is one alert as reported by the Prometheus alerts API. Labels and
// annotations are kept as-is; the agent serializes the whole record into
// the prompt.
type Alert struct {
	Labels      map[string]string `json:"labels"`
	Annotations map[string]string `json:"annotations"`
	State       string            `json:"state"`
	ActiveAt    string            `json:"activeAt,omitempty"`
	Value       string            `json:"value,omitempty"`
}

type alertsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Alerts []Alert `json:"alerts"`
	} `json:"data"`
}

// Client queries the Prometheus alerts endpoint.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates an alerts client. baseURL is the observability stack
// root (the /prometheus/api/v1/alerts path is appended); token, when
// non-empty, is sent as a bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Firing returns the alerts currently in the firing state. An empty base
// URL yields no alerts rather than an error, so the agent can still run
// against a scenario without an observability stack.
func (c *Client) Firing(ctx context.Context) ([]Alert, error) {
	if c.baseURL == "" {
		return nil, nil
	}

	url := c.baseURL + "/prometheus/api/v1/alerts"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build alerts request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alerts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("alerts endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed alertsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode alerts response: %w", err)
	}
	if parsed.Status != "success" {
		return nil, fmt.Errorf("alerts endpoint returned status %q", parsed.Status)
	}

	var firing []Alert
	for _, a := range parsed.Data.Alerts {
		if a.State == "firing" {
			firing = append(firing, a)
		}
	}
	return firing, nil
}
