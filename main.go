// ClockOR is a persistent desktop clock overlay: a topmost, click-through
// window toggled by a global hotkey and managed from the system tray.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"clock-overlay/internal/autostart"
	"clock-overlay/internal/config"
	"clock-overlay/internal/hotkey"
	"clock-overlay/internal/logging"
	"clock-overlay/internal/monitor"
	"clock-overlay/internal/notify"
	"clock-overlay/internal/overlay"
	"clock-overlay/internal/reconciler"
	"clock-overlay/internal/settings"
	"clock-overlay/internal/singleinstance"
	"clock-overlay/internal/tray"
)

func main() {
	debug := flag.Bool("debug", false, "enable verbose logging")
	flag.Parse()

	if err := logging.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "logging init failed: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := run(); err != nil {
		if errors.Is(err, singleinstance.ErrAlreadyRunning) {
			logging.L().Info("another instance is running; asked it to open settings")
			return
		}
		logging.L().Error("startup failed", zap.Error(err))
		os.Exit(1)
	}
}

// appState is the tray menu's read-only view of the app.
type appState struct {
	overlay *overlay.Service
	binding *hotkey.Binding
}

func (s *appState) ClockVisible() bool {
	return s.overlay.Visible()
}

func (s *appState) HotkeyLabel() string {
	return s.binding.Combo().String()
}

func run() error {
	cfgSvc, err := config.New()
	if err != nil {
		logging.L().Warn("config dir unavailable, settings will not persist", zap.Error(err))
		cfgSvc = config.NewAt(filepath.Join(os.TempDir(), "clockor", "config.toml"))
	}
	cfg := cfgSvc.Get()

	// The forward listener starts serving inside Acquire, before the rest
	// of the app exists; requests are buffered until the reconciler is up.
	settingsRequests := make(chan struct{}, 1)
	guard, err := singleinstance.Acquire(cfgSvc.Dir(), func() {
		select {
		case settingsRequests <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}

	queue := monitor.NewQueue(16)
	surface, err := overlay.New(queue)
	if err != nil {
		guard.Release()
		return fmt.Errorf("create clock window: %w", err)
	}
	ovl := overlay.NewService(surface, cfg)

	notifier := notify.New()
	binding := hotkey.NewBinding(hotkey.SystemRegistrar())
	combo, err := hotkey.ParseCombo(cfg.Hotkey)
	if err != nil {
		combo = hotkey.DefaultCombo()
	}
	if err := binding.Bind(combo); err != nil {
		logging.L().Warn("hotkey registration failed", zap.String("hotkey", combo.String()), zap.Error(err))
		notifier.Notify("ClockOR", combo.String()+" could not be registered; use the tray menu to toggle the clock.")
	}

	watcher, err := config.Watch(cfgSvc.Path())
	if err != nil {
		logging.L().Warn("config file watching disabled", zap.Error(err))
	}
	var reloads <-chan config.Config
	if watcher != nil {
		reloads = watcher.Events()
	}

	var rec *reconciler.Reconciler
	editor := settings.NewEditor(cfg, func(c config.Config) {
		rec.Apply(c)
	})
	openSettings := func() {
		logging.L().Info("settings requested", zap.String("path", cfgSvc.Path()))
		notifier.Notify("ClockOR", "Edit "+cfgSvc.Path()+" to change settings; changes apply live.")
	}

	rec = reconciler.New(cfg, reconciler.Deps{
		Overlay:      ovl,
		Binding:      binding,
		Queue:        queue,
		Notifier:     notifier,
		ListMonitors: monitor.Enumerate,
		ForegroundID: monitor.ForegroundID,
		Persist: func(c config.Config) error {
			cfgSvc.Replace(c)
			return cfgSvc.Save()
		},
		Autostart:      autostart.Apply,
		TrayEvents:     tray.Events(),
		ConfigReloads:  reloads,
		OpenSettings:   openSettings,
		OnApplied:      editor.SyncApplied,
		SetTrayVisible: tray.SetClockVisible,
		SetTrayHotkey:  tray.SetHotkeyLabel,
		RequestQuit:    tray.Quit,
	})
	go func() {
		for range settingsRequests {
			rec.RequestSettings()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	state := &appState{overlay: ovl, binding: binding}

	// systray must own the main goroutine; the reconciler gets its own.
	tray.Run(state,
		func() {
			go rec.Run(ctx)
		},
		func() {
			cancel()
			binding.Unbind()
			ovl.Shutdown()
			if watcher != nil {
				watcher.Close()
			}
			guard.Release()
			logging.L().Info("shut down")
		})
	return nil
}
