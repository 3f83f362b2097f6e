// golang.design/x/hotkey only provides key constants and a working
// implementation on Windows or cgo builds; mirror that constraint here.
//go:build windows || cgo

package hotkey

import (
	"fmt"

	hk "golang.design/x/hotkey"
)

var fKeys = [12]hk.Key{
	hk.KeyF1, hk.KeyF2, hk.KeyF3, hk.KeyF4,
	hk.KeyF5, hk.KeyF6, hk.KeyF7, hk.KeyF8,
	hk.KeyF9, hk.KeyF10, hk.KeyF11, hk.KeyF12,
}

// systemRegistrar registers combinations with the OS.
type systemRegistrar struct{}

func SystemRegistrar() Registrar {
	return systemRegistrar{}
}

func (systemRegistrar) Register(c Combo) (Registration, error) {
	if c.FKey < 1 || c.FKey > 12 {
		return nil, fmt.Errorf("key F%d out of range", c.FKey)
	}

	h := hk.New(platformModifiers(c.Mods), fKeys[c.FKey-1])
	if err := h.Register(); err != nil {
		return nil, fmt.Errorf("register %s (%v): %w", c, err, ErrHotkeyConflict)
	}

	reg := &systemRegistration{
		hk:      h,
		presses: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go reg.forward()
	return reg, nil
}

type systemRegistration struct {
	hk      *hk.Hotkey
	presses chan struct{}
	done    chan struct{}
}

func (r *systemRegistration) Keydown() <-chan struct{} {
	return r.presses
}

func (r *systemRegistration) Unregister() error {
	close(r.done)
	return r.hk.Unregister()
}

func (r *systemRegistration) forward() {
	defer close(r.presses)
	for {
		select {
		case <-r.hk.Keydown():
			select {
			case r.presses <- struct{}{}:
			default:
			}
		case <-r.done:
			return
		}
	}
}
