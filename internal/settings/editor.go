// Package settings holds edits to the configuration until they are applied
// as one transaction.
package settings

import (
	"sync"

	"clock-overlay/internal/config"
)

// Editor separates the pending (edited) config from the applied one.
// Nothing the user changes takes effect until Apply validates the whole
// pending config and hands it to the commit callback.
type Editor struct {
	mu      sync.Mutex
	applied config.Config
	pending config.Config
	commit  func(config.Config)
}

// NewEditor starts with applied as both the live and the edited config.
// commit receives each successfully validated config.
func NewEditor(applied config.Config, commit func(config.Config)) *Editor {
	return &Editor{
		applied: applied,
		pending: applied,
		commit:  commit,
	}
}

// Pending returns the current edit state.
func (e *Editor) Pending() config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// Applied returns the last committed config.
func (e *Editor) Applied() config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applied
}

// Update mutates the pending config in place. The live config is untouched.
func (e *Editor) Update(f func(*config.Config)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f(&e.pending)
}

// ResetToDefaults replaces the pending config with the defaults. Nothing
// is committed until Apply.
func (e *Editor) ResetToDefaults() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = config.Default()
}

// HasUnsavedChanges reports whether pending differs from applied.
func (e *Editor) HasUnsavedChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending != e.applied
}

// Apply validates the pending config and, if valid, commits it. An invalid
// pending config is kept for further editing and the live config stays as
// it was.
func (e *Editor) Apply() error {
	e.mu.Lock()
	pending := e.pending
	e.mu.Unlock()

	if err := pending.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	e.applied = pending
	e.mu.Unlock()
	if e.commit != nil {
		e.commit(pending)
	}
	return nil
}

// Revert discards pending edits.
func (e *Editor) Revert() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = e.applied
}

// SyncApplied records a config change that happened outside the editor,
// such as a file reload. Unsaved edits survive; a clean editor follows
// along.
func (e *Editor) SyncApplied(cfg config.Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == e.applied {
		e.pending = cfg
	}
	e.applied = cfg
}
