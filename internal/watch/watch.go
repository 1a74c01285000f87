// Package watch reloads the recipe store when its JSON document is edited
// outside the service.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matt-dz/silviakaka/internal/log"
)

const DefaultDebounce = 250 * time.Millisecond

// ReloadFunc is called after the watched file settles.
type ReloadFunc func(ctx context.Context) error

type Watcher struct {
	path     string
	reload   ReloadFunc
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// New watches the directory holding path. Editors and the store itself
// replace the file by renaming over it, which drops a watch on the file.
func New(path string, reload ReloadFunc, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", path, err)
	}
	w := &Watcher{
		path:     abs,
		reload:   reload,
		debounce: DefaultDebounce,
		logger:   log.NullLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %q: %w", filepath.Dir(abs), err)
	}
	w.watcher = fw
	return w, nil
}

// Run blocks until ctx is done, reloading once per burst of changes.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.ErrorContext(ctx, "watch error", slog.Any("error", err))
		case <-timer.C:
			if err := w.reload(ctx); err != nil {
				w.logger.ErrorContext(ctx, "failed to reload recipes",
					slog.String("path", w.path), slog.Any("error", err))
				continue
			}
			w.logger.InfoContext(ctx, "reloaded recipes", slog.String("path", w.path))
		}
	}
}

// relevant reports whether event touches the watched file. Chmod alone
// does not change content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Rename) || event.Op.Has(fsnotify.Remove)
}

// Store is the part of the recipe store a watcher reloads.
type Store interface {
	Reload(ctx context.Context) error
	Version() string
}

// OnChange returns a ReloadFunc that reloads s and calls changed only when
// the reload moved the collection to another version. Saves made by the
// store itself come back with the version it already holds.
func OnChange(s Store, changed func(ctx context.Context, version string) error) ReloadFunc {
	return func(ctx context.Context) error {
		before := s.Version()
		if err := s.Reload(ctx); err != nil {
			return err
		}
		after := s.Version()
		if after == before {
			return nil
		}
		return changed(ctx, after)
	}
}
