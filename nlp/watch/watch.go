// Package watch re-runs the analysis when transcripts change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches bursts of file events into one run.
const DefaultDebounce = 500 * time.Millisecond

// RunFunc performs one analysis run.
type RunFunc func(ctx context.Context) error

// Watcher calls a RunFunc once on start and again after every settled
// change to a matching file in one directory.
type Watcher struct {
	dir      string
	ext      string
	debounce time.Duration
	run      RunFunc
	log      *slog.Logger
}

// New returns a watcher for files with extension ext in dir.
func New(dir, ext string, debounce time.Duration, run RunFunc, log *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{dir: dir, ext: ext, debounce: debounce, run: run, log: log}
}

// Relevant reports whether ev touches a transcript.
func (w *Watcher) Relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return strings.EqualFold(filepath.Ext(ev.Name), w.ext)
}

// Run blocks until ctx is done. A failing run is logged and the watcher
// keeps going; only watcher setup errors are returned.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch: %s: %w", w.dir, err)
	}
	w.log.Info("watching for changes", "dir", w.dir, "ext", w.ext, "debounce", w.debounce)

	w.runOnce(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.Relevant(ev) {
				continue
			}
			w.log.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)
		case <-timer.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.run(ctx); err != nil {
		w.log.Error("analysis run failed", "error", err)
	}
}
