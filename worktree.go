package kilozed

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DirWorktree is a filesystem-backed api.Worktree rooted at a directory.
type DirWorktree struct {
	id   int64
	root string
}

// OpenDir creates a worktree for an existing directory. The path is made
// absolute so extensions always see a stable root.
func OpenDir(id int64, path string) (*DirWorktree, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving worktree path %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening worktree %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("worktree %s is not a directory", abs)
	}
	return &DirWorktree{id: id, root: abs}, nil
}

// ID returns the worktree's host-assigned id.
func (w *DirWorktree) ID() int64 { return w.id }

// RootPath returns the absolute worktree root.
func (w *DirWorktree) RootPath() string { return w.root }

// Name returns the last element of the root path.
func (w *DirWorktree) Name() string { return filepath.Base(w.root) }

// ReadTextFile reads a file relative to the worktree root. Paths that
// escape the root are rejected.
func (w *DirWorktree) ReadTextFile(rel string) (string, error) {
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("path %q escapes worktree root", rel)
	}
	data, err := os.ReadFile(filepath.Join(w.root, rel))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}
	return string(data), nil
}

// Which resolves a binary name against PATH.
func (w *DirWorktree) Which(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}

// ShellEnv returns the process environment as a map, the environment a
// shell spawned in this worktree would inherit.
func (w *DirWorktree) ShellEnv() map[string]string {
	env := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
