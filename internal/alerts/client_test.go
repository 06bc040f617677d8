package alerts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alertsBody = `{
  "status": "success",
  "data": {
    "alerts": [
      {
        "labels": {"alertname": "KubePodCrashLooping", "namespace": "shop"},
        "annotations": {"summary": "Pod is crash looping."},
        "state": "firing",
        "value": "1e+00"
      },
      {
        "labels": {"alertname": "HighLatency"},
        "annotations": {},
        "state": "pending"
      }
    ]
  }
}`

func TestFiring_FiltersPending(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(alertsBody))
	}))
	defer srv.Close()

	firing, err := NewClient(srv.URL, "secret-token").Firing(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/prometheus/api/v1/alerts", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	require.Len(t, firing, 1)
	assert.Equal(t, "KubePodCrashLooping", firing[0].Labels["alertname"])
	assert.Equal(t, "Pod is crash looping.", firing[0].Annotations["summary"])
}

func TestFiring_NoToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"success","data":{"alerts":[]}}`))
	}))
	defer srv.Close()

	firing, err := NewClient(srv.URL, "").Firing(context.Background())
	require.NoError(t, err)
	assert.Empty(t, firing)
	assert.Empty(t, gotAuth)
}

func TestFiring_EmptyBaseURL(t *testing.T) {
	firing, err := NewClient("", "").Firing(context.Background())
	require.NoError(t, err)
	assert.Nil(t, firing)
}

func TestFiring_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Firing(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestFiring_APIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","data":{"alerts":[]}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Firing(context.Background())
	require.Error(t, err)
}
