package overlay

import (
	"testing"
	"time"

	"clock-overlay/internal/config"
	"clock-overlay/internal/monitor"
)

func TestFormatTime(t *testing.T) {
	at := time.Date(2024, 3, 7, 14, 5, 9, 0, time.UTC)

	tests := []struct {
		format24h   bool
		showSeconds bool
		want        string
	}{
		{true, true, "14:05:09"},
		{true, false, "14:05"},
		{false, true, "02:05:09 PM"},
		{false, false, "02:05 PM"},
	}

	for _, tc := range tests {
		got := FormatTime(at, tc.format24h, tc.showSeconds)
		if got != tc.want {
			t.Errorf("FormatTime(24h=%v, sec=%v) = %q; want %q",
				tc.format24h, tc.showSeconds, got, tc.want)
		}
	}
}

func TestFormatTimeMorning(t *testing.T) {
	at := time.Date(2024, 3, 7, 0, 30, 0, 0, time.UTC)
	if got := FormatTime(at, false, false); got != "12:30 AM" {
		t.Errorf("FormatTime(midnight half hour) = %q; want 12:30 AM", got)
	}
	if got := FormatTime(at, true, false); got != "00:30" {
		t.Errorf("FormatTime(24h midnight) = %q; want 00:30", got)
	}
}

func TestColorRef(t *testing.T) {
	tests := []struct {
		c    config.RGBA
		want uint32
	}{
		{config.RGBA{R: 255, G: 255, B: 255, A: 255}, 0x00FFFFFF},
		{config.RGBA{R: 0, G: 0, B: 0, A: 255}, 0x00000000},
		{config.RGBA{R: 255, G: 0, B: 0, A: 255}, 0x000000FF},
		{config.RGBA{R: 0, G: 0, B: 255, A: 255}, 0x00FF0000},
		{config.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 255}, 0x00563412},
	}

	for _, tc := range tests {
		if got := ColorRef(tc.c); got != tc.want {
			t.Errorf("ColorRef(%v) = %#08x; want %#08x", tc.c, got, tc.want)
		}
	}
}

func TestGuardColorKey(t *testing.T) {
	if got := guardColorKey(colorKey); got == colorKey {
		t.Error("guardColorKey must move colors off the transparency key")
	}
	if got := guardColorKey(0x00FFFFFF); got != 0x00FFFFFF {
		t.Errorf("guardColorKey changed an unrelated color to %#08x", got)
	}
}

// Full rendering scenario: 24h clock with seconds, font 24, 80% opacity,
// anchored top-right of the active monitor.
func TestRenderScenarioTopRightWithSeconds(t *testing.T) {
	cfg := config.Default()
	cfg.Position = config.TopRight
	cfg.Format24h = true
	cfg.ShowSeconds = true
	cfg.FontSize = 24
	cfg.Opacity = 80

	at := time.Date(2024, 3, 7, 14, 5, 9, 0, time.UTC)
	if got := FormatTime(at, cfg.Format24h, cfg.ShowSeconds); got != "14:05:09" {
		t.Errorf("rendered text = %q; want 14:05:09", got)
	}

	m := monitor.Monitor{ID: "primary", Bounds: monitor.Rect{W: 1920, H: 1080}, Primary: true, Scale: 1.0}
	r := monitor.Placement(cfg, m)
	if r.X != 1920-r.W-10 || r.Y != 10 {
		t.Errorf("placement = (%d,%d); want the top-right corner", r.X, r.Y)
	}

	if got := alphaByte(cfg.Opacity); got != 204 {
		t.Errorf("alpha at 80%% = %d; want 204", got)
	}
}

func TestAlphaByte(t *testing.T) {
	tests := []struct {
		opacity int
		want    uint8
	}{
		{100, 255},
		{80, 204},
		{25, 63},
	}

	for _, tc := range tests {
		if got := alphaByte(tc.opacity); got != tc.want {
			t.Errorf("alphaByte(%d) = %d; want %d", tc.opacity, got, tc.want)
		}
	}
}
