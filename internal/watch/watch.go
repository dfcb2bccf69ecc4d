// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/curriculumlab/internal/logging"
)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// ErrNoPaths is returned by New when there is nothing to watch.
var ErrNoPaths = errors.New("watch: no paths")

// Config configures a Watcher.
type Config struct {
	// Paths are files or directories. A file is watched through its parent
	// directory so editors that replace the file on save are still seen.
	Paths []string

	// Debounce is the quiet period before the action runs.
	Debounce time.Duration
}

// Action is run after each burst of changes.
type Action func(ctx context.Context) error

// Watcher watches paths with fsnotify.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *logging.Logger

	// files are watched file paths; dirs are watched directories whose
	// every entry counts.
	files map[string]bool
	dirs  map[string]bool

	closeOnce sync.Once
}

// New creates a watcher over cfg.Paths. Every path must exist.
func New(cfg Config, log *logging.Logger) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, ErrNoPaths
	}
	if log == nil {
		log = logging.Nop()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		debounce: debounce,
		log:      log,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}

	added := make(map[string]bool)
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch: %w", err)
		}

		dir := abs
		if info.IsDir() {
			w.dirs[abs] = true
		} else {
			w.files[abs] = true
			dir = filepath.Dir(abs)
		}
		if added[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		added[dir] = true
	}
	return w, nil
}

// relevant reports whether an event on name should trigger the action.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	if w.files[name] {
		return true
	}
	return w.dirs[filepath.Dir(name)]
}

// Run blocks until ctx is done, running action after each burst of changes.
// Action errors are logged and watching continues. Run returns nil when ctx
// is cancelled.
func (w *Watcher) Run(ctx context.Context, action Action) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			pending = false
			if err := w.runAction(ctx, action); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.log.Warn("re-export failed", "error", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// runAction calls action, turning a panic into an error.
func (w *Watcher) runAction(ctx context.Context, action Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("watch: action panicked: %v", r)
		}
	}()
	return action(ctx)
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}
