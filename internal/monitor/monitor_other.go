//go:build !windows

package monitor

// Enumerate reports a single nominal display on platforms without a
// native backend.
func Enumerate() []Monitor {
	return []Monitor{{
		ID:       "primary",
		Bounds:   Rect{X: 0, Y: 0, W: 1920, H: 1080},
		WorkArea: Rect{X: 0, Y: 0, W: 1920, H: 1080},
		Primary:  true,
		Scale:    1.0,
	}}
}

func ForegroundID() string {
	return "primary"
}
