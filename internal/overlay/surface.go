package overlay

import (
	"errors"

	"clock-overlay/internal/config"
	"clock-overlay/internal/monitor"
)

// ErrPresentationUnavailable reports that the OS refused to create or show
// the clock window.
var ErrPresentationUnavailable = errors.New("presentation unavailable")

// Appearance is everything the window needs to paint one frame, minus the
// text itself.
type Appearance struct {
	FontSize    int
	Opacity     int
	Style       config.TextStyle
	TextColor   config.RGBA
	AccentColor config.RGBA
}

// AppearanceOf extracts the paint-relevant fields of a config.
func AppearanceOf(cfg config.Config) Appearance {
	return Appearance{
		FontSize:    cfg.FontSize,
		Opacity:     cfg.Opacity,
		Style:       cfg.TextStyle,
		TextColor:   cfg.TextColor,
		AccentColor: cfg.AccentColor,
	}
}

// Surface is the OS window behind the clock. Implementations may run their
// own thread; all methods are safe to call from any goroutine.
type Surface interface {
	// Show makes the window visible without activating it.
	Show() error
	Hide()
	// SetFrame moves the window; scale is the DPI scale of the monitor the
	// frame was computed for, so painting can size the font to match.
	SetFrame(r monitor.Rect, scale float64)
	SetAppearance(a Appearance)
	SetText(s string)
	Close()
}
