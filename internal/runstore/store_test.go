package runstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, RunRecord{
		Task:            "diagnose crash loop",
		Status:          "Submitted",
		Message:         "root cause identified",
		DurationSeconds: 42.5,
		LLMCalls:        7,
		Cost:            0.31,
		InputTokens:     12000,
		OutputTokens:    800,
		ToolCalls:       6,
		ToolErrors:      1,
		AvgToolLatency:  1.2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id, "a missing ID must be generated")

	records, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "diagnose crash loop", rec.Task)
	assert.Equal(t, "Submitted", rec.Status)
	assert.Equal(t, 7, rec.LLMCalls)
	assert.Equal(t, 1, rec.ToolErrors)
	assert.InDelta(t, 0.31, rec.Cost, 1e-9)
	assert.NotZero(t, rec.StartedAt, "a missing start time must be filled in")
}

func TestList_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, startedAt := range []int64{100, 300, 200} {
		_, err := store.Save(ctx, RunRecord{
			Task:      "run",
			Status:    "Submitted",
			StartedAt: startedAt,
			LLMCalls:  i,
		})
		require.NoError(t, err)
	}

	records, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, int64(300), records[0].StartedAt)
	assert.Equal(t, int64(200), records[1].StartedAt)
	assert.Equal(t, int64(100), records[2].StartedAt)
}

func TestList_Limit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		_, err := store.Save(ctx, RunRecord{Task: "run", Status: "Submitted", StartedAt: i})
		require.NoError(t, err)
	}

	records, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSave_DuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, RunRecord{ID: "fixed", Task: "a", Status: "Submitted"})
	require.NoError(t, err)
	_, err = store.Save(ctx, RunRecord{ID: "fixed", Task: "b", Status: "Submitted"})
	require.Error(t, err, "run IDs are primary keys")
}
