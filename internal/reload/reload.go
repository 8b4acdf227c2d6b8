// Package reload watches a widget file and pushes the re-resolved policy
// into a running session.
package reload

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ppiankov/phoneinput/internal/logger"
	"github.com/ppiankov/phoneinput/internal/machine"
	"github.com/ppiankov/phoneinput/internal/policy"
)

// DefaultDebounce is how long the watcher waits after the last write before reloading.
const DefaultDebounce = 500 * time.Millisecond

// Applier receives reloaded policies. *session.Session implements it.
type Applier interface {
	ApplyPolicy(policy.Policy) machine.State
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger. Nil keeps the discarding default.
func WithLogger(l *logger.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// Watcher reloads one widget file on change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	target   Applier
	log      *logger.Logger
	debounce time.Duration
}

// New creates a watcher for the widget file at path. The parent directory is
// watched so that editors that replace the file on save are still seen.
func New(path string, target Applier, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		watcher:  watcher,
		path:     abs,
		target:   target,
		log:      logger.Discard(),
		debounce: DefaultDebounce,
	}
	for _, o := range opts {
		o(w)
	}
	return w, nil
}

// Path returns the watched widget file.
func (w *Watcher) Path() string {
	return w.path
}

// Reload loads the widget file, resolves it, and applies the result.
// On error the target keeps its current policy.
func (w *Watcher) Reload() (policy.Policy, error) {
	src, err := policy.LoadSources(w.path)
	if err != nil {
		w.log.PolicyReloaded(w.path, err)
		return policy.Policy{}, err
	}
	p := policy.Resolve(src.Input())
	w.target.ApplyPolicy(p)
	w.log.PolicyReloaded(w.path, nil)
	return p, nil
}

// Run watches for file changes and reloads the policy. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(w.debounce, func() {
					_, _ = w.Reload()
				})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("file watcher error", "error", err)
		}
	}
}
