package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	data, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Data{}, data)
}

func TestLoad_ParsesScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario_data.json")
	body := `{"prometheus_url": "http://obs.example/prometheus"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	data, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://obs.example/prometheus", data.PrometheusURL)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestObservabilityURL(t *testing.T) {
	tests := []struct {
		name   string
		envURL string
		data   Data
		want   string
	}{
		{
			name: "strips prometheus suffix",
			data: Data{PrometheusURL: "http://obs.example/prometheus"},
			want: "http://obs.example",
		},
		{
			name: "no suffix to strip",
			data: Data{PrometheusURL: "http://obs.example"},
			want: "http://obs.example",
		},
		{
			name:   "environment override wins",
			envURL: "http://override.example",
			data:   Data{PrometheusURL: "http://obs.example/prometheus"},
			want:   "http://override.example",
		},
		{
			name: "empty scenario",
			data: Data{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OBSERVABILITY_STACK_URL", tt.envURL)
			assert.Equal(t, tt.want, tt.data.ObservabilityURL())
		})
	}
}
