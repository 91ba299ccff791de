package kilozed

import (
	"context"
	"log/slog"

	"github.com/kilocode/kilozed/api"
)

// Context wraps context.Context with accessors for host services. One is
// created per hook invocation.
type Context struct {
	context.Context

	host     *Host
	worktree api.Worktree
}

func newContext(ctx context.Context, h *Host, wt api.Worktree) *Context {
	return &Context{
		Context:  ctx,
		host:     h,
		worktree: wt,
	}
}

// Host returns the invoking host, providing full access to internals.
func (c *Context) Host() *Host { return c.host }

// Logger returns the host's logger.
func (c *Context) Logger() *slog.Logger { return c.host.logger }

// Worktree returns the worktree this invocation targets. May be nil when
// the host resolves a command with no worktree open.
func (c *Context) Worktree() api.Worktree { return c.worktree }
