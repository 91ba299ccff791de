package kilozed

import (
	"github.com/kilocode/kilozed/api"
)

// Extension is the contract between the host and a loaded extension. The
// host invokes LanguageServerCommand whenever it needs to start a language
// server for a worktree; the extension answers with a command descriptor.
//
// The hook may be invoked concurrently; implementations guard any shared
// state themselves. An extension that also implements io.Closer is closed
// exactly once during host teardown.
type Extension interface {
	LanguageServerCommand(ctx *Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error)
}

// ExtensionFunc adapts a plain function into an Extension.
type ExtensionFunc func(ctx *Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error)

// LanguageServerCommand calls f.
func (f ExtensionFunc) LanguageServerCommand(ctx *Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
	return f(ctx, id, wt)
}
