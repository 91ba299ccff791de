package kilozed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/kilocode/kilozed/api"
	"github.com/kilocode/kilozed/manifest"
	mw "github.com/kilocode/kilozed/middleware"
)

// Host is the central type of the kilozed framework. It registers
// extensions, resolves language-server commands through the middleware
// chain, manages worktrees, and tears everything down on Close.
//
// A host may hold multiple extension instances; each owns its own state.
type Host struct {
	name   string
	logger *slog.Logger

	// middleware chain around command resolution
	middlewares []mw.Middleware

	// settings system (nil if not enabled)
	settingsHolder settingsHolder

	// extension registry
	mu         sync.RWMutex
	extensions map[string]*registration
	worktrees  []*DirWorktree
	nextWtID   int64

	closeOnce sync.Once
}

type registration struct {
	manifest *manifest.Manifest
	ext      Extension
}

// NewHost creates a host with the given name (used only for logging).
func NewHost(name string, opts ...Option) *Host {
	h := &Host{
		name:       name,
		logger:     slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})),
		extensions: make(map[string]*registration),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Register adds an extension under the id its manifest declares. The
// manifest is validated; registering two extensions with the same id is an
// error.
func (h *Host) Register(m *manifest.Manifest, ext Extension) error {
	if err := m.Validate(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.extensions[m.ID]; exists {
		return fmt.Errorf("extension %q already registered", m.ID)
	}
	h.extensions[m.ID] = &registration{manifest: m, ext: ext}

	h.logger.Info("extension registered",
		"id", m.ID,
		"version", m.Version,
		"languageServers", len(m.LanguageServers),
	)
	return nil
}

// Extension returns the registered extension with the given id.
func (h *Host) Extension(id string) (Extension, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	reg, ok := h.extensions[id]
	if !ok {
		return nil, false
	}
	return reg.ext, true
}

// Manifests returns the manifests of all registered extensions.
func (h *Host) Manifests() []*manifest.Manifest {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*manifest.Manifest, 0, len(h.extensions))
	for _, reg := range h.extensions {
		out = append(out, reg.manifest)
	}
	return out
}

// LanguageServerCommand asks the extension registered under extID what
// command to run for the given language server and worktree. The call runs
// through the host's middleware chain. Any server id is passed through to
// the extension; the manifest's declared servers do not gate resolution.
func (h *Host) LanguageServerCommand(ctx context.Context, extID string, serverID api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
	h.mu.RLock()
	reg, ok := h.extensions[extID]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no extension registered as %q", extID)
	}

	resolver := mw.Resolver(func(ctx context.Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
		return reg.ext.LanguageServerCommand(newContext(ctx, h, wt), id, wt)
	})
	if len(h.middlewares) > 0 {
		resolver = mw.Chain(h.middlewares...)(resolver)
	}

	return resolver(ctx, serverID, wt)
}

// OpenWorktree registers a directory as a worktree and, when settings are
// enabled, starts a settings watcher rooted there. Watchers are stopped by
// Close.
func (h *Host) OpenWorktree(path string) (*DirWorktree, error) {
	h.mu.Lock()
	h.nextWtID++
	id := h.nextWtID
	h.mu.Unlock()

	wt, err := OpenDir(id, path)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.worktrees = append(h.worktrees, wt)
	h.mu.Unlock()

	if h.settingsHolder != nil {
		if err := h.settingsHolder.startWatcher(h.logger, wt.RootPath()); err != nil {
			h.logger.Warn("settings watcher failed to start", "worktree", wt.RootPath(), "error", err)
		}
	}

	h.logger.Info("worktree opened", "id", wt.ID(), "root", wt.RootPath())
	return wt, nil
}

// Worktrees returns the worktrees opened on this host.
func (h *Host) Worktrees() []*DirWorktree {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*DirWorktree, len(h.worktrees))
	copy(out, h.worktrees)
	return out
}

// Logger returns the host's logger.
func (h *Host) Logger() *slog.Logger { return h.logger }

// Name returns the host's name.
func (h *Host) Name() string { return h.name }

// Close tears the host down: settings watchers are stopped and every
// extension implementing io.Closer is closed. Extension close failures are
// logged, not returned; teardown always completes. Close is idempotent.
func (h *Host) Close() error {
	h.closeOnce.Do(func() {
		if h.settingsHolder != nil {
			h.settingsHolder.close()
		}

		h.mu.RLock()
		regs := make([]*registration, 0, len(h.extensions))
		for _, reg := range h.extensions {
			regs = append(regs, reg)
		}
		h.mu.RUnlock()

		for _, reg := range regs {
			if closer, ok := reg.ext.(io.Closer); ok {
				if err := closer.Close(); err != nil {
					h.logger.Warn("extension close failed", "id", reg.manifest.ID, "error", err)
				}
			}
		}

		h.logger.Info("host closed", "name", h.name)
	})
	return nil
}
