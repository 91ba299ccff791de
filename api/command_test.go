package api

import (
	"slices"
	"testing"
)

func TestNewCommand(t *testing.T) {
	cmd := NewCommand("echo", "hello", "world")
	if cmd.Program != "echo" {
		t.Errorf("Program = %q, want echo", cmd.Program)
	}
	if !slices.Equal(cmd.Args, []string{"hello", "world"}) {
		t.Errorf("Args = %v", cmd.Args)
	}
	if cmd.Env == nil || len(cmd.Env) != 0 {
		t.Errorf("Env = %v, want empty non-nil map", cmd.Env)
	}
}

func TestArgv(t *testing.T) {
	cmd := NewCommand("echo", "a")
	if got := cmd.Argv(); !slices.Equal(got, []string{"echo", "a"}) {
		t.Errorf("Argv = %v", got)
	}

	bare := NewCommand("true")
	if got := bare.Argv(); !slices.Equal(got, []string{"true"}) {
		t.Errorf("Argv = %v", got)
	}
}
