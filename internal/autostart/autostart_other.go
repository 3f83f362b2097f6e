//go:build !windows

// Package autostart toggles launch-at-login for the current user.
package autostart

// Apply is a no-op on platforms without a Run-key equivalent wired up.
func Apply(enabled bool) error {
	return nil
}

func Enabled() (bool, error) {
	return false, nil
}
