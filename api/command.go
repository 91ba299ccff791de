// Package api defines the types shared between the kilozed host and the
// extensions it loads. It has no dependencies beyond the standard library so
// that middleware, extensions, and test helpers can all import it freely.
package api

// LanguageServerID identifies a language server declared by an extension,
// e.g. "kilocode". The host passes it to the extension's command-resolution
// hook verbatim.
type LanguageServerID string

// Command describes how the host should launch a language server: the
// program to execute, its arguments in order, and extra environment
// variables. Env is a plain mapping, not "KEY=VALUE" pairs.
type Command struct {
	Program string
	Args    []string
	Env     map[string]string
}

// NewCommand builds a Command with an empty (non-nil) environment so the
// descriptor serializes as an empty object rather than null.
func NewCommand(program string, args ...string) *Command {
	return &Command{
		Program: program,
		Args:    args,
		Env:     map[string]string{},
	}
}

// Argv returns the command as a single program-plus-arguments slice,
// convenient for handing to exec.Command.
func (c *Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Program)
	argv = append(argv, c.Args...)
	return argv
}
