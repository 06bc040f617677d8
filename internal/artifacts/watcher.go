package artifacts

import (
	"fmt"
	"log"
	"maps"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the working directory during a run and records when
// each expected artifact first appears. It is purely observational: the
// run outcome never depends on it, but the timings end up in the final
// report.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher
	mu      sync.Mutex
	seen    map[string]time.Time
	wg      sync.WaitGroup
}

// NewWatcher starts watching dir for artifact creation.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		dir:     dir,
		watcher: fsw,
		seen:    make(map[string]time.Time),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	expected := map[string]bool{
		DiagnosisFile:   true,
		RemediationFile: true,
		OutputFile:      true,
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Base(event.Name)
			if !expected[name] {
				continue
			}
			w.mu.Lock()
			if _, dup := w.seen[name]; !dup {
				w.seen[name] = time.Now()
				log.Printf("Artifact created: %s", name)
			}
			w.mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("WARNING: artifact watcher error: %v", err)
		}
	}
}

// Seen returns the artifacts observed so far with their first-seen times.
func (w *Watcher) Seen() map[string]time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return maps.Clone(w.seen)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
