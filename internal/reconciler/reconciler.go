// Package reconciler runs the control loop that keeps the clock window,
// the hotkey, the tray, and the persisted config in agreement.
package reconciler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"clock-overlay/internal/config"
	"clock-overlay/internal/hotkey"
	"clock-overlay/internal/logging"
	"clock-overlay/internal/monitor"
	"clock-overlay/internal/overlay"
	"clock-overlay/internal/tray"
)

// Overlay is the slice of overlay.Service the loop drives.
type Overlay interface {
	Visible() bool
	MonitorID() string
	Toggle() (bool, error)
	SetVisible(v bool) error
	ApplyAppearance(cfg config.Config)
	Reposition(m monitor.Monitor)
	RenderTick(now time.Time)
}

// Binding is the slice of hotkey.Binding the loop drives.
type Binding interface {
	Triggered() <-chan struct{}
	Rebind(c hotkey.Combo) error
	Combo() hotkey.Combo
}

// Notifier delivers user-facing messages.
type Notifier interface {
	Notify(title, message string)
}

// Deps wires the loop to the rest of the app. Function fields default to
// no-ops so tests only fill what they assert on.
type Deps struct {
	Overlay  Overlay
	Binding  Binding
	Queue    *monitor.Queue
	Notifier Notifier

	ListMonitors func() []monitor.Monitor
	ForegroundID func() string

	// Persist writes the config to disk. Called off-loop; the result comes
	// back as a loop event.
	Persist func(cfg config.Config) error

	// Autostart flips launch-at-login. Called only when the flag changes.
	Autostart func(enabled bool) error

	TrayEvents    <-chan tray.Event
	ConfigReloads <-chan config.Config

	// OpenSettings raises the settings surface.
	OpenSettings func()
	// SetTrayVisible syncs the tray toggle's check mark.
	SetTrayVisible func(v bool)
	// SetTrayHotkey refreshes the tray tooltip after a hotkey change.
	SetTrayHotkey func(label string)
	// OnApplied observes every successfully applied config.
	OnApplied func(cfg config.Config)
	// RequestQuit asks the app to shut down (tray Quit).
	RequestQuit func()

	TickInterval time.Duration
}

// Reconciler is the single writer of presentation state. Everything else
// talks to it through channels.
type Reconciler struct {
	deps    Deps
	applied config.Config

	applyCh     chan config.Config
	settingsCh  chan struct{}
	saveResults chan error
}

func New(initial config.Config, d Deps) *Reconciler {
	if d.TickInterval <= 0 {
		d.TickInterval = time.Second
	}
	if d.ListMonitors == nil {
		d.ListMonitors = func() []monitor.Monitor { return nil }
	}
	if d.ForegroundID == nil {
		d.ForegroundID = func() string { return "" }
	}
	if d.Queue == nil {
		d.Queue = monitor.NewQueue(16)
	}
	return &Reconciler{
		deps:        d,
		applied:     initial,
		applyCh:     make(chan config.Config, 1),
		settingsCh:  make(chan struct{}, 1),
		saveResults: make(chan error, 4),
	}
}

// Apply hands a config to the loop. If one is already pending it is
// replaced; intermediate states are not worth applying.
func (r *Reconciler) Apply(cfg config.Config) {
	for {
		select {
		case r.applyCh <- cfg:
			return
		default:
			select {
			case <-r.applyCh:
			default:
			}
		}
	}
}

// RequestSettings asks the loop to raise the settings surface. Safe from
// any goroutine, used by the single-instance forwarder.
func (r *Reconciler) RequestSettings() {
	select {
	case r.settingsCh <- struct{}{}:
	default:
	}
}

// Run drives the loop until ctx is cancelled. The clock starts shown.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.deps.TickInterval)
	defer ticker.Stop()

	r.reposition(r.deps.ForegroundID())
	if err := r.deps.Overlay.SetVisible(true); err != nil {
		r.notify("ClockOR", "The clock window is unavailable; running in tray only.")
	}
	r.deps.Overlay.RenderTick(time.Now())

	for {
		select {
		case <-ctx.Done():
			return

		case <-r.deps.Binding.Triggered():
			r.toggle()

		case ev := <-r.deps.TrayEvents:
			switch ev.Kind {
			case tray.ToggleClicked:
				r.toggle()
			case tray.SettingsClicked:
				r.openSettings()
			case tray.QuitClicked:
				if r.deps.RequestQuit != nil {
					r.deps.RequestQuit()
				}
				return
			}

		case <-r.settingsCh:
			r.openSettings()

		case cfg := <-r.applyCh:
			r.handleApply(cfg, false)

		case cfg := <-r.deps.ConfigReloads:
			r.handleApply(cfg, true)

		case <-r.deps.Queue.Wake():
			changes := r.deps.Queue.Drain()
			logging.L().Debug("display changed", zap.Int("events", len(changes)))
			r.reposition(r.deps.Overlay.MonitorID())

		case now := <-ticker.C:
			r.deps.Overlay.RenderTick(now)

		case err := <-r.saveResults:
			if err != nil {
				logging.L().Error("config save failed", zap.Error(err))
				r.notify("ClockOR", "Could not save settings to disk.")
			}
		}
	}
}

func (r *Reconciler) toggle() {
	visible, err := r.deps.Overlay.Toggle()
	if err != nil {
		r.notify("ClockOR", "The clock window is unavailable.")
	}
	if visible {
		// Shown clocks follow the monitor the user is working on.
		r.reposition(r.deps.ForegroundID())
		r.deps.Overlay.RenderTick(time.Now())
	}
	if r.deps.SetTrayVisible != nil {
		r.deps.SetTrayVisible(visible)
	}
}

func (r *Reconciler) openSettings() {
	if r.deps.OpenSettings != nil {
		r.deps.OpenSettings()
	}
}

// reposition places the window on the wanted monitor, falling back to the
// primary when it is gone.
func (r *Reconciler) reposition(wantID string) {
	monitors := r.deps.ListMonitors()
	m, ok := monitor.Resolve(monitors, wantID)
	if !ok {
		return
	}
	r.deps.Overlay.Reposition(m)
}

// handleApply is the one place config changes take effect. fromFile marks
// configs that came from the watcher: those were normalized on load and
// are not written back.
func (r *Reconciler) handleApply(cfg config.Config, fromFile bool) {
	if !fromFile {
		if err := cfg.Validate(); err != nil {
			logging.L().Warn("rejecting invalid config", zap.Error(err))
			r.notify("ClockOR", "Invalid settings were not applied.")
			return
		}
	}

	old := r.applied

	if cfg.Hotkey != old.Hotkey {
		if combo, err := hotkey.ParseCombo(cfg.Hotkey); err == nil {
			if err := r.deps.Binding.Rebind(combo); err != nil {
				if errors.Is(err, hotkey.ErrHotkeyConflict) {
					r.notify("ClockOR",
						cfg.Hotkey+" is in use by another app; keeping "+old.Hotkey+".")
				}
				cfg.Hotkey = old.Hotkey
			} else if r.deps.SetTrayHotkey != nil {
				r.deps.SetTrayHotkey(cfg.Hotkey)
			}
		}
	}

	if appearanceChanged(cfg, old) {
		r.deps.Overlay.ApplyAppearance(cfg)
	}
	if geometryChanged(cfg, old) {
		r.reposition(r.deps.Overlay.MonitorID())
	}

	if cfg.StartWithWindows != old.StartWithWindows && r.deps.Autostart != nil {
		if err := r.deps.Autostart(cfg.StartWithWindows); err != nil {
			logging.L().Warn("autostart change failed", zap.Error(err))
			r.notify("ClockOR", "Could not update the start-with-Windows setting.")
		}
	}

	r.applied = cfg
	r.deps.Overlay.RenderTick(time.Now())

	if r.deps.OnApplied != nil {
		r.deps.OnApplied(cfg)
	}
	if !fromFile && cfg != old && r.deps.Persist != nil {
		go func() {
			r.saveResults <- r.deps.Persist(cfg)
		}()
	}
}

func appearanceChanged(a, b config.Config) bool {
	return overlay.AppearanceOf(a) != overlay.AppearanceOf(b) ||
		a.Format24h != b.Format24h || a.ShowSeconds != b.ShowSeconds
}

func geometryChanged(a, b config.Config) bool {
	return a.Position != b.Position ||
		a.FontSize != b.FontSize ||
		a.Format24h != b.Format24h ||
		a.ShowSeconds != b.ShowSeconds ||
		a.TextStyle != b.TextStyle
}

func (r *Reconciler) notify(title, message string) {
	if r.deps.Notifier != nil {
		r.deps.Notifier.Notify(title, message)
	}
}
