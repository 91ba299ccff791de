// Package kilozedtest provides testing utilities for kilozed hosts and
// extensions: a host fixture with automatic teardown, an in-memory worktree,
// and assertion helpers for command descriptors.
package kilozedtest

import (
	"context"
	"testing"
	"time"

	"github.com/kilocode/kilozed"
	"github.com/kilocode/kilozed/api"
	"github.com/kilocode/kilozed/manifest"
)

// NewHost creates a host that is closed automatically when the test
// completes.
func NewHost(t testing.TB, opts ...kilozed.Option) *kilozed.Host {
	t.Helper()
	h := kilozed.NewHost("kilozedtest", opts...)
	t.Cleanup(func() { h.Close() })
	return h
}

// Register registers an extension and fails the test on error.
func Register(t testing.TB, h *kilozed.Host, m *manifest.Manifest, ext kilozed.Extension) {
	t.Helper()
	if err := h.Register(m, ext); err != nil {
		t.Fatalf("register %s: %v", m.ID, err)
	}
}

// Resolve invokes the command-resolution hook and fails the test on error.
func Resolve(t testing.TB, h *kilozed.Host, extID string, serverID api.LanguageServerID, wt api.Worktree) *api.Command {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd, err := h.LanguageServerCommand(ctx, extID, serverID, wt)
	if err != nil {
		t.Fatalf("resolve %s/%s: %v", extID, serverID, err)
	}
	if cmd == nil {
		t.Fatalf("resolve %s/%s returned nil command", extID, serverID)
	}
	return cmd
}

// Manifest builds a minimal valid manifest for tests.
func Manifest(id string) *manifest.Manifest {
	return &manifest.Manifest{
		ID:            id,
		Name:          id,
		Version:       "0.0.1",
		SchemaVersion: 1,
		LanguageServers: map[string]manifest.LanguageServer{
			id: {Name: id, Languages: []string{"Plain Text"}},
		},
	}
}
