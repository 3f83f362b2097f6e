// Package tray owns the system tray icon and menu.
package tray

import (
	"fmt"

	"github.com/getlantern/systray"
)

// State is the read-only view of the app the menu renders from.
type State interface {
	ClockVisible() bool
	HotkeyLabel() string
}

// EventKind identifies a menu action.
type EventKind int

const (
	ToggleClicked EventKind = iota
	SettingsClicked
	QuitClicked
)

// Event is one user action on the tray menu.
type Event struct {
	Kind EventKind
}

var (
	state   State
	onStart func()
	onExit  func()
	events  = make(chan Event, 8)

	toggleItem   *systray.MenuItem
	settingsItem *systray.MenuItem
	quitItem     *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine (must be
// main on some platforms). onStartFn is called when the tray is ready;
// onExitFn when it exits.
func Run(s State, onStartFn, onExitFn func()) {
	state = s
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

// Events delivers menu actions. Actions arriving faster than they are
// drained are dropped.
func Events() <-chan Event {
	return events
}

// SetClockVisible syncs the toggle item's check mark.
func SetClockVisible(v bool) {
	if toggleItem == nil {
		return
	}
	if v {
		toggleItem.Check()
	} else {
		toggleItem.Uncheck()
	}
}

// SetHotkeyLabel refreshes the tooltip after a hotkey change.
func SetHotkeyLabel(label string) {
	systray.SetTooltip(tooltip(label))
}

func tooltip(hotkeyLabel string) string {
	return fmt.Sprintf("ClockOR - Press %s to toggle", hotkeyLabel)
}

func onReady() {
	systray.SetIcon(iconBytes())
	systray.SetTooltip(tooltip(state.HotkeyLabel()))

	header := systray.AddMenuItem("ClockOR", "")
	header.Disable()
	systray.AddSeparator()

	toggleItem = systray.AddMenuItemCheckbox("Show clock", "Show or hide the clock", state.ClockVisible())
	settingsItem = systray.AddMenuItem("Settings", "Open settings")
	systray.AddSeparator()
	quitItem = systray.AddMenuItem("Quit", "Exit ClockOR")

	if onStart != nil {
		onStart()
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-toggleItem.ClickedCh:
			push(Event{Kind: ToggleClicked})
		case <-settingsItem.ClickedCh:
			push(Event{Kind: SettingsClicked})
		case <-quitItem.ClickedCh:
			push(Event{Kind: QuitClicked})
		}
	}
}

func push(e Event) {
	select {
	case events <- e:
	default:
	}
}
