package kilozedtest

import (
	"testing"

	"github.com/kilocode/kilozed/api"
)

// AssertCommand asserts a command's program and exact argument list.
func AssertCommand(t testing.TB, cmd *api.Command, program string, args ...string) {
	t.Helper()
	if cmd == nil {
		t.Fatal("command is nil")
	}
	if cmd.Program != program {
		t.Errorf("program = %q, want %q", cmd.Program, program)
	}
	if len(cmd.Args) != len(args) {
		t.Fatalf("args = %v, want %v", cmd.Args, args)
	}
	for i := range args {
		if cmd.Args[i] != args[i] {
			t.Errorf("args[%d] = %q, want %q", i, cmd.Args[i], args[i])
		}
	}
}

// AssertEmptyEnv asserts the command carries an empty, non-nil environment.
func AssertEmptyEnv(t testing.TB, cmd *api.Command) {
	t.Helper()
	if cmd == nil {
		t.Fatal("command is nil")
	}
	if cmd.Env == nil {
		t.Error("env is nil, want empty map")
	}
	if len(cmd.Env) != 0 {
		t.Errorf("env = %v, want empty", cmd.Env)
	}
}
