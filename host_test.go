package kilozed_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/kilocode/kilozed"
	"github.com/kilocode/kilozed/api"
	"github.com/kilocode/kilozed/kilozedtest"
	"github.com/kilocode/kilozed/middleware"
)

func quietHost(opts ...kilozed.Option) *kilozed.Host {
	opts = append([]kilozed.Option{kilozed.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return kilozed.NewHost("test", opts...)
}

func echoExt(message string) kilozed.Extension {
	return kilozed.ExtensionFunc(func(ctx *kilozed.Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
		return api.NewCommand("echo", message), nil
	})
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	h := quietHost()
	defer h.Close()

	if err := h.Register(kilozedtest.Manifest("demo"), echoExt("a")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := h.Register(kilozedtest.Manifest("demo"), echoExt("b")); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestRegisterValidatesManifest(t *testing.T) {
	h := quietHost()
	defer h.Close()

	m := kilozedtest.Manifest("demo")
	m.Version = "not-semver"
	if err := h.Register(m, echoExt("a")); err == nil {
		t.Error("expected invalid manifest to be rejected")
	}
}

func TestResolveUnknownExtension(t *testing.T) {
	h := quietHost()
	defer h.Close()

	_, err := h.LanguageServerCommand(context.Background(), "ghost", "kilocode", nil)
	if err == nil {
		t.Fatal("expected error for unregistered extension")
	}
}

func TestMiddlewareWrapsResolution(t *testing.T) {
	var calls int
	counting := func(next middleware.Resolver) middleware.Resolver {
		return func(ctx context.Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
			calls++
			return next(ctx, id, wt)
		}
	}

	h := quietHost(kilozed.WithMiddleware(counting))
	defer h.Close()
	if err := h.Register(kilozedtest.Manifest("demo"), echoExt("hi")); err != nil {
		t.Fatal(err)
	}

	cmd, err := h.LanguageServerCommand(context.Background(), "demo", "demo", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	kilozedtest.AssertCommand(t, cmd, "echo", "hi")
	if calls != 1 {
		t.Errorf("middleware calls = %d, want 1", calls)
	}
}

func TestRecoveryMiddlewareOnPanickingExtension(t *testing.T) {
	h := quietHost(kilozed.WithMiddleware(middleware.Recovery(slog.New(slog.NewTextHandler(io.Discard, nil)))))
	defer h.Close()

	boom := kilozed.ExtensionFunc(func(ctx *kilozed.Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
		panic("bad extension")
	})
	if err := h.Register(kilozedtest.Manifest("boom"), boom); err != nil {
		t.Fatal(err)
	}

	_, err := h.LanguageServerCommand(context.Background(), "boom", "boom", nil)
	if err == nil {
		t.Fatal("expected panic to surface as an error")
	}
}

type closeCounter struct {
	kilozed.Extension
	closes int
}

func (c *closeCounter) Close() error {
	c.closes++
	return errors.New("close failed")
}

func TestCloseClosesExtensionsExactlyOnce(t *testing.T) {
	h := quietHost()
	ext := &closeCounter{Extension: echoExt("x")}
	if err := h.Register(kilozedtest.Manifest("demo"), ext); err != nil {
		t.Fatal(err)
	}

	// Close failure is swallowed, and repeated Close does not re-close.
	if err := h.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if ext.closes != 1 {
		t.Errorf("extension closed %d times, want 1", ext.closes)
	}
}

type portSettings struct {
	ServicePort int `toml:"service_port"`
}

func TestOpenWorktreeLoadsSettings(t *testing.T) {
	h := quietHost(kilozed.WithSettings(".app.toml", portSettings{ServicePort: 3001}))
	defer h.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".app.toml"), []byte("service_port = 5000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	wt, err := h.OpenWorktree(dir)
	if err != nil {
		t.Fatalf("open worktree: %v", err)
	}
	if wt.RootPath() != dir {
		t.Errorf("RootPath = %q, want %q", wt.RootPath(), dir)
	}
	if len(h.Worktrees()) != 1 {
		t.Errorf("Worktrees = %d, want 1", len(h.Worktrees()))
	}

	s := kilozed.HostSettings[portSettings](h)
	if s == nil || s.ServicePort != 5000 {
		t.Errorf("settings = %+v, want service port 5000", s)
	}
}

func TestSettingsForWrongTypeIsNil(t *testing.T) {
	h := quietHost(kilozed.WithSettings(".app.toml", portSettings{}))
	defer h.Close()

	type other struct{ X int }
	if got := kilozed.HostSettings[other](h); got != nil {
		t.Errorf("expected nil for mismatched settings type, got %+v", got)
	}
}
