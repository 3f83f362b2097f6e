// Package config holds the clock overlay configuration and its persistence.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig reports a proposed configuration that violates an invariant.
// The previously applied configuration stays in effect when it is returned.
var ErrInvalidConfig = errors.New("invalid config")

// Position names the monitor corner the clock is anchored to.
type Position string

const (
	TopLeft     Position = "top-left"
	TopRight    Position = "top-right"
	BottomLeft  Position = "bottom-left"
	BottomRight Position = "bottom-right"
)

// TextStyle selects how the clock text is decorated.
type TextStyle string

const (
	StyleNone    TextStyle = "none"
	StyleOutline TextStyle = "outline"
	StyleShadow  TextStyle = "shadow"
)

// RGBA is a color with 8-bit channels.
type RGBA struct {
	R uint8 `toml:"r"`
	G uint8 `toml:"g"`
	B uint8 `toml:"b"`
	A uint8 `toml:"a"`
}

// Bounds for numeric fields. Edits outside these ranges are rejected at the
// Apply boundary; values read from disk are clamped instead.
const (
	MinFontSize = 10
	MaxFontSize = 60
	MinOpacity  = 25
	MaxOpacity  = 100
)

// Config is the full overlay configuration. It is treated as an immutable
// value: applied wholesale, never field-by-field.
type Config struct {
	Position         Position  `toml:"position"`
	Format24h        bool      `toml:"format_24h"`
	ShowSeconds      bool      `toml:"show_seconds"`
	FontSize         int       `toml:"font_size"`
	Opacity          int       `toml:"opacity"`
	Hotkey           string    `toml:"hotkey"`
	StartWithWindows bool      `toml:"start_with_windows"`
	TextStyle        TextStyle `toml:"text_style"`
	TextColor        RGBA      `toml:"text_color"`
	AccentColor      RGBA      `toml:"accent_color"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Position:         TopRight,
		Format24h:        true,
		ShowSeconds:      false,
		FontSize:         22,
		Opacity:          80,
		Hotkey:           "Ctrl+F12",
		StartWithWindows: false,
		TextStyle:        StyleOutline,
		TextColor:        RGBA{R: 255, G: 255, B: 255, A: 255},
		AccentColor:      RGBA{R: 0, G: 0, B: 0, A: 255},
	}
}

// Validate checks every invariant. It reports the first violation wrapped in
// ErrInvalidConfig and never mutates the receiver.
func (c Config) Validate() error {
	switch c.Position {
	case TopLeft, TopRight, BottomLeft, BottomRight:
	default:
		return fmt.Errorf("%w: unknown position %q", ErrInvalidConfig, c.Position)
	}
	if c.FontSize < MinFontSize || c.FontSize > MaxFontSize {
		return fmt.Errorf("%w: font_size %d outside [%d,%d]", ErrInvalidConfig, c.FontSize, MinFontSize, MaxFontSize)
	}
	if c.Opacity < MinOpacity || c.Opacity > MaxOpacity {
		return fmt.Errorf("%w: opacity %d outside [%d,%d]", ErrInvalidConfig, c.Opacity, MinOpacity, MaxOpacity)
	}
	switch c.TextStyle {
	case StyleNone, StyleOutline, StyleShadow:
	default:
		return fmt.Errorf("%w: unknown text_style %q", ErrInvalidConfig, c.TextStyle)
	}
	if err := validateHotkey(c.Hotkey); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Normalize clamps out-of-range numeric fields and replaces unknown enum
// values with defaults. Used when reading from disk, where a hand-edited file
// must never prevent startup.
func (c Config) Normalize() Config {
	def := Default()

	if c.FontSize < MinFontSize {
		c.FontSize = MinFontSize
	}
	if c.FontSize > MaxFontSize {
		c.FontSize = MaxFontSize
	}
	if c.Opacity < MinOpacity {
		c.Opacity = MinOpacity
	}
	if c.Opacity > MaxOpacity {
		c.Opacity = MaxOpacity
	}

	switch c.Position {
	case TopLeft, TopRight, BottomLeft, BottomRight:
	default:
		c.Position = def.Position
	}
	switch c.TextStyle {
	case StyleNone, StyleOutline, StyleShadow:
	default:
		c.TextStyle = def.TextStyle
	}
	if validateHotkey(c.Hotkey) != nil {
		c.Hotkey = def.Hotkey
	}
	return c
}
