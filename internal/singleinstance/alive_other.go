//go:build !windows

package singleinstance

import (
	"os"
	"syscall"
)

// pidAlive probes pid with signal 0. FindProcess always succeeds on Unix,
// so only the signal result matters.
func pidAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return p.Signal(syscall.Signal(0)) == nil
}
