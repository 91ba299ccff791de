// Package kilozed is a small framework for hosting editor extensions in Go.
// A host loads extensions described by an extension.toml manifest and asks
// them, through a single hook, what command should be run as the language
// server for a worktree. The package ships the Kilocode extension variants
// in kilocode/, hot-reloadable settings in settings/, composable middleware
// in middleware/, and first-class testing utilities in kilozedtest/.
//
// A minimal host needs only a few lines:
//
//	h := kilozed.NewHost("zed")
//	h.Register(m, kilocode.New())
//	cmd, err := h.LanguageServerCommand(ctx, "kilocode", "kilocode", wt)
//
// See the examples/ directory for progressively more complete hosts.
package kilozed
