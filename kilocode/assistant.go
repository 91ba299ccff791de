package kilocode

import (
	"log/slog"

	"github.com/kilocode/kilozed"
	"github.com/kilocode/kilozed/api"
	"github.com/kilocode/kilozed/sidecar"
)

// ReadyMessage is echoed by the assistant variant's placeholder command.
const ReadyMessage = "Kilocode AI Assistant Ready"

// sidecarBanner is what the placeholder sidecar prints instead of serving.
const sidecarBanner = "Kilocode sidecar would start here"

// Assistant is the sidecar-holding variant. On every hook invocation it
// makes sure its placeholder sidecar has been spawned; the spawn outcome
// never affects the returned command.
type Assistant struct {
	sidecar *sidecar.Sidecar
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantConfig)

type assistantConfig struct {
	logger  *slog.Logger
	program string
	args    []string
}

// WithLogger sets the logger for sidecar lifecycle events.
func WithLogger(l *slog.Logger) AssistantOption {
	return func(c *assistantConfig) { c.logger = l }
}

// WithSidecarCommand overrides the placeholder sidecar command. Tests use
// this to provoke spawn failures.
func WithSidecarCommand(program string, args ...string) AssistantOption {
	return func(c *assistantConfig) {
		c.program = program
		c.args = args
	}
}

// NewAssistant creates the assistant variant. Nothing is spawned until the
// first hook invocation.
func NewAssistant(opts ...AssistantOption) *Assistant {
	cfg := &assistantConfig{
		logger:  slog.Default(),
		program: "echo",
		args:    []string{sidecarBanner},
	}
	for _, o := range opts {
		o(cfg)
	}
	return &Assistant{
		sidecar: sidecar.New(cfg.program, cfg.args, sidecar.WithLogger(cfg.logger)),
	}
}

// Sidecar exposes the underlying sidecar handle.
func (a *Assistant) Sidecar() *sidecar.Sidecar { return a.sidecar }

// LanguageServerCommand starts the sidecar best-effort and returns the
// fixed ready command. A sidecar spawn failure is logged and swallowed: the
// hook itself cannot fail.
func (a *Assistant) LanguageServerCommand(ctx *kilozed.Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
	if err := a.sidecar.EnsureStarted(); err != nil {
		ctx.Logger().Warn("sidecar start failed", "error", err)
	}
	return api.NewCommand("echo", ReadyMessage), nil
}

// Close kills the sidecar, if one was spawned. Always returns nil.
func (a *Assistant) Close() error {
	return a.sidecar.Close()
}
