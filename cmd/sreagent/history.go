package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lumynops/sreagent/internal/runstore"
)

// resolveStorePath expands an empty store path to the default location
// under the user config directory and ensures the parent directory exists.
func resolveStorePath(storePath string) (string, error) {
	if storePath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		storePath = filepath.Join(configDir, "sreagent", "runs.db")
	}
	if err := os.MkdirAll(filepath.Dir(storePath), 0755); err != nil {
		return "", err
	}
	return storePath, nil
}

// runHistory prints the most recent recorded runs, newest first.
func runHistory(ctx context.Context, storePath string, limit int, w io.Writer) error {
	path, err := resolveStorePath(storePath)
	if err != nil {
		return err
	}
	store, err := runstore.New(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(w, "%s  %-15s  %7.1fs  %3d calls  $%.4f  %s\n",
			time.Unix(rec.StartedAt, 0).Format("2006-01-02 15:04"),
			rec.Status, rec.DurationSeconds, rec.LLMCalls, rec.Cost, rec.ID)
	}
	return nil
}
