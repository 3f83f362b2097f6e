package hotkey

import (
	"errors"
	"testing"
	"time"
)

type fakeRegistration struct {
	presses      chan struct{}
	unregistered bool
}

func (r *fakeRegistration) Keydown() <-chan struct{} { return r.presses }

func (r *fakeRegistration) Unregister() error {
	r.unregistered = true
	close(r.presses)
	return nil
}

func (r *fakeRegistration) press() { r.presses <- struct{}{} }

type fakeRegistrar struct {
	failing map[string]bool
	live    map[string]*fakeRegistration
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{
		failing: make(map[string]bool),
		live:    make(map[string]*fakeRegistration),
	}
}

func (f *fakeRegistrar) Register(c Combo) (Registration, error) {
	if f.failing[c.String()] {
		return nil, ErrHotkeyConflict
	}
	reg := &fakeRegistration{presses: make(chan struct{})}
	f.live[c.String()] = reg
	return reg, nil
}

func waitTriggered(t *testing.T, b *Binding) {
	t.Helper()
	select {
	case <-b.Triggered():
	case <-time.After(time.Second):
		t.Fatal("no trigger delivered")
	}
}

func TestBindingTriggers(t *testing.T) {
	f := newFakeRegistrar()
	b := NewBinding(f)

	if err := b.Bind(Combo{ModCtrl, 12}); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	f.live["Ctrl+F12"].press()
	waitTriggered(t, b)
}

func TestBindingConflict(t *testing.T) {
	f := newFakeRegistrar()
	f.failing["Ctrl+F12"] = true
	b := NewBinding(f)

	err := b.Bind(Combo{ModCtrl, 12})
	if !errors.Is(err, ErrHotkeyConflict) {
		t.Errorf("Bind = %v; want ErrHotkeyConflict", err)
	}
	if b.Combo() != (Combo{}) {
		t.Errorf("Combo() = %v; want zero after failed bind", b.Combo())
	}
}

func TestRebindReleasesOld(t *testing.T) {
	f := newFakeRegistrar()
	b := NewBinding(f)

	if err := b.Bind(Combo{ModCtrl, 12}); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if err := b.Rebind(Combo{ModAlt, 1}); err != nil {
		t.Fatalf("Rebind failed: %v", err)
	}

	if !f.live["Ctrl+F12"].unregistered {
		t.Error("old registration should be released after rebind")
	}
	f.live["Alt+F1"].press()
	waitTriggered(t, b)
	if got := b.Combo(); got != (Combo{ModAlt, 1}) {
		t.Errorf("Combo() = %v; want Alt+F1", got)
	}
}

func TestRebindConflictKeepsOld(t *testing.T) {
	f := newFakeRegistrar()
	f.failing["Alt+F1"] = true
	b := NewBinding(f)

	if err := b.Bind(Combo{ModCtrl, 12}); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if err := b.Rebind(Combo{ModAlt, 1}); !errors.Is(err, ErrHotkeyConflict) {
		t.Fatalf("Rebind = %v; want ErrHotkeyConflict", err)
	}

	if f.live["Ctrl+F12"].unregistered {
		t.Error("old registration must survive a failed rebind")
	}
	f.live["Ctrl+F12"].press()
	waitTriggered(t, b)
	if got := b.Combo(); got != (Combo{ModCtrl, 12}) {
		t.Errorf("Combo() = %v; want Ctrl+F12", got)
	}
}

func TestRebindSameComboIsNoop(t *testing.T) {
	f := newFakeRegistrar()
	b := NewBinding(f)

	c := Combo{ModCtrl, 12}
	if err := b.Bind(c); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	first := f.live["Ctrl+F12"]
	if err := b.Rebind(c); err != nil {
		t.Fatalf("Rebind failed: %v", err)
	}
	if first.unregistered {
		t.Error("rebinding the active combination should not touch the registration")
	}
}

func TestUnbind(t *testing.T) {
	f := newFakeRegistrar()
	b := NewBinding(f)

	if err := b.Bind(Combo{ModCtrl, 12}); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	b.Unbind()

	if !f.live["Ctrl+F12"].unregistered {
		t.Error("Unbind should release the registration")
	}
	if b.Combo() != (Combo{}) {
		t.Errorf("Combo() = %v; want zero after Unbind", b.Combo())
	}
}
