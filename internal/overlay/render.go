// Package overlay draws the clock window and tracks its visibility.
package overlay

import (
	"time"

	"clock-overlay/internal/config"
)

// colorKey is the background color that the compositor keys out. RGB(1,0,1)
// is visually black but will never be produced by ordinary text colors.
const colorKey uint32 = 0x00010001

// FormatTime renders the clock text for the given layout flags.
func FormatTime(t time.Time, format24h, showSeconds bool) string {
	switch {
	case format24h && showSeconds:
		return t.Format("15:04:05")
	case format24h:
		return t.Format("15:04")
	case showSeconds:
		return t.Format("03:04:05 PM")
	default:
		return t.Format("03:04 PM")
	}
}

// ColorRef packs an RGBA into a GDI COLORREF (0x00BBGGRR).
func ColorRef(c config.RGBA) uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16
}

// guardColorKey keeps user-picked colors from colliding with the
// transparency key by flipping one blue-channel bit.
func guardColorKey(cr uint32) uint32 {
	if cr == colorKey {
		return cr ^ 0x00010000
	}
	return cr
}

// alphaByte converts a 25-100 opacity percentage to a layered-window alpha.
func alphaByte(opacity int) uint8 {
	return uint8(float64(opacity) / 100.0 * 255.0)
}
