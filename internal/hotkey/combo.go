// Package hotkey manages the global toggle key combination.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrHotkeyConflict reports that the OS refused a registration, almost always
// because another process already claimed the combination.
var ErrHotkeyConflict = errors.New("hotkey conflict")

// Modifiers is a set of modifier keys. At least one must be present in a
// valid combination.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift
)

// modifierNames is the canonical formatting order.
var modifierNames = []struct {
	name string
	bit  Modifiers
}{
	{"Ctrl", ModCtrl},
	{"Alt", ModAlt},
	{"Shift", ModShift},
}

// Combo is a parsed key combination: a non-empty modifier set plus one
// function key F1-F12.
type Combo struct {
	Mods Modifiers
	FKey int // 1..12
}

// DefaultCombo is the compiled-in binding.
func DefaultCombo() Combo {
	return Combo{Mods: ModCtrl, FKey: 12}
}

// ParseCombo parses the wire form "Ctrl+Shift+F5". Modifier order is not
// significant; matching is case-insensitive.
func ParseCombo(s string) (Combo, error) {
	parts := strings.Split(s, "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 {
		return Combo{}, fmt.Errorf("hotkey %q needs at least one modifier and a function key", s)
	}

	var c Combo
	keyName := strings.ToUpper(parts[len(parts)-1])
	if _, err := fmt.Sscanf(keyName, "F%d", &c.FKey); err != nil ||
		c.FKey < 1 || c.FKey > 12 || keyName != fmt.Sprintf("F%d", c.FKey) {
		return Combo{}, fmt.Errorf("hotkey %q: key %q is not F1-F12", s, keyName)
	}

	for _, part := range parts[:len(parts)-1] {
		matched := false
		for _, m := range modifierNames {
			if strings.EqualFold(part, m.name) {
				if c.Mods&m.bit != 0 {
					return Combo{}, fmt.Errorf("hotkey %q repeats modifier %s", s, m.name)
				}
				c.Mods |= m.bit
				matched = true
				break
			}
		}
		if !matched {
			return Combo{}, fmt.Errorf("hotkey %q: unknown modifier %q", s, part)
		}
	}
	if c.Mods == 0 {
		return Combo{}, fmt.Errorf("hotkey %q has no modifier", s)
	}
	return c, nil
}

// String renders the canonical wire form, e.g. "Ctrl+Alt+F5".
func (c Combo) String() string {
	var parts []string
	for _, m := range modifierNames {
		if c.Mods&m.bit != 0 {
			parts = append(parts, m.name)
		}
	}
	parts = append(parts, fmt.Sprintf("F%d", c.FKey))
	return strings.Join(parts, "+")
}
