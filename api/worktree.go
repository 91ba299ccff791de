package api

// Worktree is the view of an open workspace the host hands to an extension
// during command resolution. Implementations are provided by the host; the
// kilozed root package ships a filesystem-backed one.
type Worktree interface {
	// ID uniquely identifies the worktree within its host.
	ID() int64

	// RootPath returns the absolute path of the worktree root.
	RootPath() string

	// ReadTextFile reads a file relative to the worktree root.
	ReadTextFile(rel string) (string, error)

	// Which resolves a binary name against the worktree's search path.
	// The second return value reports whether the binary was found.
	Which(name string) (string, bool)

	// ShellEnv returns the environment a shell spawned in this worktree
	// would see.
	ShellEnv() map[string]string
}
