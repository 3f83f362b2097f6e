//go:build windows

package singleinstance

import "os"

// pidAlive reports whether pid names a live process. FindProcess opens a
// real handle on Windows and fails for dead PIDs.
func pidAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	_, err := os.FindProcess(pid)
	return err == nil
}
