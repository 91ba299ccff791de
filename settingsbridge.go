package kilozed

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/kilocode/kilozed/settings"
)

// settingsHolder is stored on the host as an interface to allow generic
// settings types.
type settingsHolder interface {
	startWatcher(logger *slog.Logger, rootDir string) error
	close()
}

// typedSettingsHolder is the generic implementation of settingsHolder. One
// store is shared across worktrees; each opened worktree contributes a file
// watcher.
type typedSettingsHolder[T any] struct {
	store    *settings.Store[T]
	filename string
	defaults *T

	mu       sync.Mutex
	watchers []*settings.Watcher
}

// WithSettings enables a typed settings system with hot-reload. The
// filename is relative to each worktree root (e.g. ".kilocode.toml"); the
// defaults value is used when no settings file exists.
func WithSettings[T any](filename string, defaults T) Option {
	return func(h *Host) {
		initial := defaults
		h.settingsHolder = &typedSettingsHolder[T]{
			store:    settings.NewStore(&initial),
			filename: filename,
			defaults: &defaults,
		}
	}
}

// SettingsFor retrieves the current typed settings from the context.
// T must match the type used in WithSettings; otherwise nil is returned.
func SettingsFor[T any](ctx *Context) *T {
	return HostSettings[T](ctx.host)
}

// HostSettings retrieves the current typed settings directly from a host.
func HostSettings[T any](h *Host) *T {
	if h.settingsHolder == nil {
		return nil
	}
	if holder, ok := h.settingsHolder.(*typedSettingsHolder[T]); ok {
		return holder.store.Get()
	}
	return nil
}

// OnSettingsChange registers a callback for settings changes. Must be
// called with the same type T used in WithSettings.
func OnSettingsChange[T any](h *Host, fn func(ctx *Context, old, updated *T)) {
	if h.settingsHolder == nil {
		return
	}
	if holder, ok := h.settingsHolder.(*typedSettingsHolder[T]); ok {
		holder.store.OnChange(func(old, updated *T) {
			fn(newContext(context.Background(), h, nil), old, updated)
		})
	}
}

func (h *typedSettingsHolder[T]) startWatcher(logger *slog.Logger, rootDir string) error {
	fullPath := filepath.Join(rootDir, h.filename)
	reloader := settings.NewReloader(h.store, fullPath, h.defaults)

	// Load initial settings from file if it exists.
	if _, err := os.Stat(fullPath); err == nil {
		if err := reloader.Reload(); err != nil {
			logger.Warn("failed to load initial settings", "path", fullPath, "error", err)
		}
	}

	watcher, err := settings.NewWatcher(fullPath, func() {
		if err := reloader.Reload(); err != nil {
			logger.Warn("failed to reload settings", "path", fullPath, "error", err)
		}
	}, settings.WithWatcherLogger(logger))
	if err != nil {
		// File watching is best-effort; the settings file may not exist yet.
		logger.Warn("failed to start settings watcher", "path", fullPath, "error", err)
		return nil
	}

	h.mu.Lock()
	h.watchers = append(h.watchers, watcher)
	h.mu.Unlock()
	return nil
}

func (h *typedSettingsHolder[T]) close() {
	h.mu.Lock()
	watchers := h.watchers
	h.watchers = nil
	h.mu.Unlock()
	for _, w := range watchers {
		w.Close()
	}
}
