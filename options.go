package kilozed

import (
	"log/slog"

	"github.com/kilocode/kilozed/middleware"
)

// Option configures a Host during construction.
type Option func(*Host)

// WithLogger sets a custom slog logger on the host.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// WithMiddleware adds middleware to the host's resolution chain.
// Middleware is applied in order: the first middleware is outermost.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(h *Host) {
		h.middlewares = append(h.middlewares, mws...)
	}
}
