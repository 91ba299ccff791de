package kilozedtest

import (
	"fmt"
	"testing"

	"github.com/kilocode/kilozed"
)

// Worktree is an in-memory api.Worktree. The zero value is usable.
type Worktree struct {
	WorktreeID int64
	Root       string
	Files      map[string]string
	Binaries   map[string]string
	Env        map[string]string
}

// ID returns the configured worktree id.
func (w *Worktree) ID() int64 { return w.WorktreeID }

// RootPath returns the configured root, or "/test" if unset.
func (w *Worktree) RootPath() string {
	if w.Root == "" {
		return "/test"
	}
	return w.Root
}

// ReadTextFile returns the configured file content.
func (w *Worktree) ReadTextFile(rel string) (string, error) {
	if content, ok := w.Files[rel]; ok {
		return content, nil
	}
	return "", fmt.Errorf("reading %s: file not found", rel)
}

// Which resolves against the configured binaries map.
func (w *Worktree) Which(name string) (string, bool) {
	path, ok := w.Binaries[name]
	return path, ok
}

// ShellEnv returns the configured environment (never nil).
func (w *Worktree) ShellEnv() map[string]string {
	if w.Env == nil {
		return map[string]string{}
	}
	return w.Env
}

// TempWorktree creates a real directory-backed worktree under t.TempDir.
func TempWorktree(t testing.TB) *kilozed.DirWorktree {
	t.Helper()
	wt, err := kilozed.OpenDir(1, t.TempDir())
	if err != nil {
		t.Fatalf("opening temp worktree: %v", err)
	}
	return wt
}
