// Package kilocode contains the Kilocode editor extension. Two variants
// exist: the basic extension, which only answers the host's language-server
// command hook with a placeholder, and the assistant variant, which
// additionally keeps a placeholder sidecar process alive for the duration
// of the extension instance.
//
// Neither variant returns a working language-server invocation yet; both
// answer with an `echo` command whose output shows the extension is wired
// up.
package kilocode

import (
	_ "embed"
	"fmt"

	"github.com/kilocode/kilozed"
	"github.com/kilocode/kilozed/api"
	"github.com/kilocode/kilozed/manifest"
)

const (
	// DefaultServicePort is the port the AI assistant service is expected
	// to listen on.
	DefaultServicePort = 3001

	// SettingsFile is the per-worktree settings filename.
	SettingsFile = ".kilocode.toml"
)

//go:embed extension.toml
var manifestTOML []byte

// Manifest returns the extension's manifest, parsed from the embedded
// extension.toml.
func Manifest() *manifest.Manifest {
	m, err := manifest.Parse(manifestTOML)
	if err != nil {
		panic(fmt.Sprintf("kilocode: embedded manifest invalid: %v", err))
	}
	return m
}

// Settings are the worktree-level settings both variants honor. The zero
// file reproduces the defaults.
type Settings struct {
	ServicePort int `toml:"service_port"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{ServicePort: DefaultServicePort}
}

// Extension is the basic variant. Its hook ignores the requested server id
// and worktree entirely and always succeeds.
type Extension struct{}

// New creates the basic extension.
func New() *Extension {
	return &Extension{}
}

// LanguageServerCommand reports where the assistant sidecar would be
// reachable. The actual AI functionality is provided by the sidecar
// service; nothing here contacts it.
func (e *Extension) LanguageServerCommand(ctx *kilozed.Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
	port := DefaultServicePort
	if s := kilozed.SettingsFor[Settings](ctx); s != nil && s.ServicePort > 0 {
		port = s.ServicePort
	}
	msg := fmt.Sprintf("Kilocode AI Extension Loaded - Sidecar at http://localhost:%d", port)
	return api.NewCommand("echo", msg), nil
}
