// ============================================================================
// radscene - Radiance Scene Toolkit
// ============================================================================
//
// Package:     watch
// Description: Re-runs a callback when watched scene files change
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/radscene/foundation/core/error"
	"github.com/msto63/radscene/pkg/core/logging"
)

// DefaultDebounce is used when Config.Debounce is zero
const DefaultDebounce = 300 * time.Millisecond

// Config holds watcher settings
type Config struct {
	// Paths are files or directories to watch
	Paths []string

	// Match selects files inside watched directories. Nil matches every file.
	Match func(name string) bool

	// Debounce is the quiet period after the last event before OnChange runs
	Debounce time.Duration

	// OnChange runs once per debounced burst of events
	OnChange func(ctx context.Context)

	Logger *logging.Logger
}

// Watcher debounces file system events for a set of scene files
type Watcher struct {
	cfg     Config
	logger  *logging.Logger
	watcher *fsnotify.Watcher

	// files are watched individually, dirs with Match
	files map[string]bool
	dirs  map[string]bool

	mu      sync.Mutex
	running bool
	ready   chan struct{}
}

// New creates a watcher for the configured paths. Parent directories of
// files are watched so editors that replace files on save are followed.
func New(cfg Config) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.New("watch")
	}
	if cfg.OnChange == nil {
		return nil, mdwerror.New("watch: OnChange callback is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("watch.New")
	}

	w := &Watcher{
		cfg:    cfg,
		logger: cfg.Logger,
		files:  make(map[string]bool),
		dirs:   make(map[string]bool),
		ready:  make(chan struct{}),
	}

	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, watchError(err, p)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, watchError(err, p)
		}
		if info.IsDir() {
			w.dirs[abs] = true
		} else {
			w.files[abs] = true
		}
	}

	if len(w.files) == 0 && len(w.dirs) == 0 {
		return nil, mdwerror.New("watch: no paths to watch").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("watch.New")
	}

	return w, nil
}

// WatchedDirs returns the directories registered with the OS watcher
func (w *Watcher) WatchedDirs() []string {
	set := make(map[string]bool)
	for d := range w.dirs {
		set[d] = true
	}
	for f := range w.files {
		set[filepath.Dir(f)] = true
	}

	dirs := make([]string, 0, len(set))
	for d := range set {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// Relevant reports whether an event on name should trigger a re-run
func (w *Watcher) Relevant(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if w.files[abs] {
		return true
	}
	if w.dirs[filepath.Dir(abs)] {
		return w.cfg.Match == nil || w.cfg.Match(filepath.Base(abs))
	}
	return false
}

// Ready is closed once every directory is registered. A Watcher runs once.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled. It blocks.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return mdwerror.New("watch: watcher already started").
			WithCode(mdwerror.CodeWatchError).
			WithOperation("watch.Run")
	}
	w.running = true
	w.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return watchError(err, "")
	}
	defer watcher.Close()
	w.watcher = watcher

	for _, dir := range w.WatchedDirs() {
		if err := watcher.Add(dir); err != nil {
			return watchError(err, dir)
		}
	}
	w.logger.Info("Started watching for scene changes", "dirs", len(w.WatchedDirs()), "debounce", w.cfg.Debounce.String())
	close(w.ready)

	timer := time.NewTimer(w.cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			w.logger.Info("Stopping file watcher (context cancelled)")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod || !w.Relevant(event.Name) {
				continue
			}

			w.logger.Debug("Scene file changed", "file", filepath.Base(event.Name), "op", event.Op.String())

			// restart the quiet period
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.cfg.Debounce)
			pending = true

		case <-timer.C:
			pending = false
			w.cfg.OnChange(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.LogError(watchError(err, ""))
		}
	}
}

func watchError(err error, path string) error {
	e := mdwerror.Wrap(err, "file watcher failed").
		WithCode(mdwerror.CodeWatchError).
		WithOperation("watch.Run")
	if path != "" {
		e = e.WithDetail("path", path)
	}
	return e
}
