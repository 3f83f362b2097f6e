// golang.design/x/hotkey defines modifier constants on these platforms
// only when cgo is enabled.
//go:build !windows && !darwin && cgo

package hotkey

import hk "golang.design/x/hotkey"

func platformModifiers(m Modifiers) []hk.Modifier {
	var mods []hk.Modifier
	if m&ModCtrl != 0 {
		mods = append(mods, hk.ModCtrl)
	}
	if m&ModAlt != 0 {
		mods = append(mods, hk.Mod1)
	}
	if m&ModShift != 0 {
		mods = append(mods, hk.ModShift)
	}
	return mods
}
