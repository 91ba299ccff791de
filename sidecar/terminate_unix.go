//go:build unix

package sidecar

import (
	"os"

	"golang.org/x/sys/unix"
)

// terminate sends SIGKILL, matching the hard kill the original teardown
// performed. The caller swallows any error.
func terminate(p *os.Process) error {
	return p.Signal(unix.SIGKILL)
}
