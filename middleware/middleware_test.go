package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/kilocode/kilozed/api"
)

func echoResolver(ctx context.Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
	return api.NewCommand("echo", "hello"), nil
}

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next Resolver) Resolver {
			return func(ctx context.Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
				order = append(order, name)
				return next(ctx, id, wt)
			}
		}
	}

	resolver := Chain(tag("outer"), tag("inner"))(echoResolver)
	if _, err := resolver(context.Background(), "kilocode", nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if strings.Join(order, ",") != "outer,inner" {
		t.Errorf("middleware order = %v, want [outer inner]", order)
	}
}

func TestRecoveryConvertsPanic(t *testing.T) {
	panicking := func(ctx context.Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
		panic("boom")
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cmd, err := Recovery(logger)(panicking)(context.Background(), "kilocode", nil)
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	if cmd != nil {
		t.Errorf("expected nil command after panic, got %v", cmd)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q does not mention the panic value", err)
	}
}

func TestTelemetryCountsResolutions(t *testing.T) {
	metrics := NewMetrics()
	failing := func(ctx context.Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
		return nil, errors.New("nope")
	}

	ok := Telemetry(metrics)(echoResolver)
	bad := Telemetry(metrics)(failing)

	ctx := context.Background()
	ok(ctx, "kilocode", nil)
	ok(ctx, "kilocode", nil)
	bad(ctx, "other", nil)

	snap := metrics.Snapshot()
	if got := snap["kilocode"]; got.Count != 2 || got.Errors != 0 {
		t.Errorf("kilocode metrics = %+v, want count 2, errors 0", got)
	}
	if got := snap["other"]; got.Count != 1 || got.Errors != 1 {
		t.Errorf("other metrics = %+v, want count 1, errors 1", got)
	}
}

func TestLoggingPassesThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cmd, err := Logging(logger)(echoResolver)(context.Background(), "kilocode", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cmd.Program != "echo" {
		t.Errorf("Program = %q, want echo", cmd.Program)
	}
}
