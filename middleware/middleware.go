// Package middleware provides composable middleware for kilozed hosts.
// Middleware wraps the command-resolution path, allowing cross-cutting
// concerns like logging, panic recovery, and telemetry to be applied to
// every extension hook invocation.
package middleware

import (
	"context"

	"github.com/kilocode/kilozed/api"
)

// Resolver resolves the command for a language server against a worktree.
// It is the unit middleware wraps; the innermost resolver is the
// extension's own hook.
type Resolver func(ctx context.Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error)

// Middleware wraps a Resolver to add cross-cutting behavior.
type Middleware func(Resolver) Resolver

// Chain composes multiple middleware into one. Middleware is applied in the
// order given: the first middleware in the slice is the outermost wrapper
// (executes first).
func Chain(mws ...Middleware) Middleware {
	return func(next Resolver) Resolver {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
