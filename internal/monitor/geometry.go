// Package monitor models the virtual desktop and decides where the clock
// window sits on it.
package monitor

import (
	"clock-overlay/internal/config"
)

// Rect is a rectangle in virtual-desktop coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Monitor is one attached display.
type Monitor struct {
	ID       string
	Bounds   Rect
	WorkArea Rect
	Primary  bool
	Scale    float64 // DPI scale, 1.0 at 96 dpi
}

const (
	cornerMargin = 10
	framePadding = 24
	stylePadding = 4
)

// textChars estimates the rendered character count for a time layout.
func textChars(format24h, showSeconds bool) int {
	switch {
	case format24h && showSeconds:
		return 8 // "15:04:05"
	case format24h:
		return 5 // "15:04"
	case showSeconds:
		return 11 // "03:04:05 PM"
	default:
		return 8 // "03:04 PM"
	}
}

// Placement computes the window rectangle for cfg on m. Widths come from a
// proportional-font estimate of 0.6 character widths per font pixel; margins
// and the font itself scale with the monitor's DPI.
func Placement(cfg config.Config, m Monitor) Rect {
	fontPx := int(float64(cfg.FontSize)*m.Scale + 0.5)
	charW := int(float64(fontPx) * 0.6)

	textW := charW * textChars(cfg.Format24h, cfg.ShowSeconds)
	winW := textW + scaled(framePadding, m.Scale)
	if cfg.TextStyle == config.StyleOutline || cfg.TextStyle == config.StyleShadow {
		winW += scaled(stylePadding, m.Scale)
	}
	winH := fontPx + scaled(16, m.Scale)
	margin := scaled(cornerMargin, m.Scale)

	b := m.Bounds
	var x, y int
	switch cfg.Position {
	case config.TopLeft:
		x, y = b.X+margin, b.Y+margin
	case config.BottomRight:
		x, y = b.X+b.W-winW-margin, b.Y+b.H-winH-margin
	case config.BottomLeft:
		x, y = b.X+margin, b.Y+b.H-winH-margin
	default: // TopRight
		x, y = b.X+b.W-winW-margin, b.Y+margin
	}
	return Rect{X: x, Y: y, W: winW, H: winH}
}

func scaled(v int, scale float64) int {
	return int(float64(v)*scale + 0.5)
}

// Resolve picks the monitor the overlay should live on: the one whose ID
// matches wantID, else the primary, else the first. ok is false only when
// the list is empty.
func Resolve(monitors []Monitor, wantID string) (Monitor, bool) {
	if len(monitors) == 0 {
		return Monitor{}, false
	}
	for _, m := range monitors {
		if m.ID == wantID {
			return m, true
		}
	}
	for _, m := range monitors {
		if m.Primary {
			return m, true
		}
	}
	return monitors[0], true
}
