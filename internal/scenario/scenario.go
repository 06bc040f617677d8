// Package scenario loads the injected scenario data and prepares the
// process environment for it: the embedded kubeconfig is written to disk
// and exported via KUBECONFIG so kubectl works for every command the
// agent runs.
package scenario

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// DefaultDataPath is where the harness drops the scenario description.
const DefaultDataPath = "/tmp/agent/scenario_data.json"

// defaultKubeconfigPath is where the embedded kubeconfig is materialized.
const defaultKubeconfigPath = "/tmp/kubeconfig.yaml"

// Data describes one injected failure scenario.
type Data struct {
	Kubeconfig    string `json:"kubeconfig,omitempty"`
	PrometheusURL string `json:"prometheus_url,omitempty"`
}

// Load reads the scenario file and applies its environment side effects.
// A missing file is not an error: the agent can run without scenario data
// (e.g. against a developer cluster), so it returns an empty Data.
func Load(path string) (Data, error) {
	if path == "" {
		path = DefaultDataPath
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("WARNING: scenario data not found at %s", path)
		return Data{}, nil
	}
	if err != nil {
		return Data{}, fmt.Errorf("failed to read scenario data: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("failed to parse scenario data: %w", err)
	}

	if data.Kubeconfig != "" {
		if err := os.WriteFile(defaultKubeconfigPath, []byte(data.Kubeconfig), 0600); err != nil {
			return Data{}, fmt.Errorf("failed to write kubeconfig: %w", err)
		}
		os.Setenv("KUBECONFIG", defaultKubeconfigPath)
		log.Printf("Kubeconfig written to %s", defaultKubeconfigPath)
	}

	return data, nil
}

// ObservabilityURL resolves the observability stack base URL. The
// OBSERVABILITY_STACK_URL environment variable wins; otherwise the
// scenario's prometheus_url is used with a trailing /prometheus segment
// stripped, since the alerts client appends it again.
func (d Data) ObservabilityURL() string {
	if url := os.Getenv("OBSERVABILITY_STACK_URL"); url != "" {
		return url
	}
	if d.PrometheusURL == "" {
		return ""
	}
	return strings.TrimSuffix(d.PrometheusURL, "/prometheus")
}
