package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/kilocode/kilozed/api"
)

// Logging returns middleware that logs each resolution's server id,
// duration, and error.
func Logging(logger *slog.Logger) Middleware {
	return func(next Resolver) Resolver {
		return func(ctx context.Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
			start := time.Now()
			cmd, err := next(ctx, id, wt)
			duration := time.Since(start)

			attrs := []slog.Attr{
				slog.String("server", string(id)),
				slog.Duration("duration", duration),
			}
			if wt != nil {
				attrs = append(attrs, slog.String("worktree", wt.RootPath()))
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				logger.LogAttrs(ctx, slog.LevelError, "command resolution failed", attrs...)
			} else {
				if cmd != nil {
					attrs = append(attrs, slog.String("program", cmd.Program))
				}
				logger.LogAttrs(ctx, slog.LevelDebug, "command resolved", attrs...)
			}

			return cmd, err
		}
	}
}
