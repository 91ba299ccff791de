package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/kilocode/kilozed/api"
)

// Recovery returns middleware that recovers from panics in extension hooks,
// logs the stack trace, and converts the panic into an error for the host.
func Recovery(logger ...*slog.Logger) Middleware {
	var log *slog.Logger
	if len(logger) > 0 && logger[0] != nil {
		log = logger[0]
	} else {
		log = slog.Default()
	}

	return func(next Resolver) Resolver {
		return func(ctx context.Context, id api.LanguageServerID, wt api.Worktree) (cmd *api.Command, err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					log.Error("panic recovered in extension hook",
						"server", string(id),
						"panic", fmt.Sprint(r),
						"stack", string(stack),
					)
					cmd = nil
					err = fmt.Errorf("extension panic resolving %s: %v", id, r)
				}
			}()
			return next(ctx, id, wt)
		}
	}
}
