//go:build windows

package sidecar

import "os"

func terminate(p *os.Process) error {
	return p.Kill()
}
