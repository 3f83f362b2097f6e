package hotkey

import hk "golang.design/x/hotkey"

func platformModifiers(m Modifiers) []hk.Modifier {
	var mods []hk.Modifier
	if m&ModCtrl != 0 {
		mods = append(mods, hk.ModCtrl)
	}
	if m&ModAlt != 0 {
		mods = append(mods, hk.ModOption)
	}
	if m&ModShift != 0 {
		mods = append(mods, hk.ModShift)
	}
	return mods
}
