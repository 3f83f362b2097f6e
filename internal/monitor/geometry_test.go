package monitor

import (
	"testing"

	"clock-overlay/internal/config"
)

var (
	primary = Monitor{
		ID:      "primary",
		Bounds:  Rect{X: 0, Y: 0, W: 1920, H: 1080},
		Primary: true,
		Scale:   1.0,
	}
	offset = Monitor{
		ID:     "second",
		Bounds: Rect{X: 1920, Y: 0, W: 2560, H: 1440},
		Scale:  1.0,
	}
)

func TestPlacementCorners(t *testing.T) {
	tests := []struct {
		pos  config.Position
		want func(r Rect) (x, y int)
	}{
		{config.TopRight, func(r Rect) (int, int) { return 1920 - r.W - 10, 10 }},
		{config.TopLeft, func(r Rect) (int, int) { return 10, 10 }},
		{config.BottomRight, func(r Rect) (int, int) { return 1920 - r.W - 10, 1080 - r.H - 10 }},
		{config.BottomLeft, func(r Rect) (int, int) { return 10, 1080 - r.H - 10 }},
	}

	for _, tc := range tests {
		t.Run(string(tc.pos), func(t *testing.T) {
			cfg := config.Default()
			cfg.Position = tc.pos
			r := Placement(cfg, primary)
			wantX, wantY := tc.want(r)
			if r.X != wantX || r.Y != wantY {
				t.Errorf("Placement(%s) = (%d,%d); want (%d,%d)", tc.pos, r.X, r.Y, wantX, wantY)
			}
		})
	}
}

func TestPlacementMultiMonitorOffset(t *testing.T) {
	cfg := config.Default()
	cfg.Position = config.TopLeft
	r := Placement(cfg, offset)
	if r.X != 1920+10 || r.Y != 10 {
		t.Errorf("Placement on offset monitor = (%d,%d); want (1930,10)", r.X, r.Y)
	}
}

func TestPlacementFontSize(t *testing.T) {
	small := config.Default()
	small.FontSize = 16
	large := config.Default()
	large.FontSize = 30

	rs := Placement(small, primary)
	rl := Placement(large, primary)
	if rl.W <= rs.W || rl.H <= rs.H {
		t.Errorf("larger font should grow the window: small %v, large %v", rs, rl)
	}
}

func TestPlacementSecondsWidth(t *testing.T) {
	without := config.Default()
	without.ShowSeconds = false
	with := config.Default()
	with.ShowSeconds = true

	if Placement(with, primary).W <= Placement(without, primary).W {
		t.Error("showing seconds should widen the window")
	}
}

func TestPlacementDPIScale(t *testing.T) {
	hidpi := primary
	hidpi.Scale = 2.0

	base := Placement(config.Default(), primary)
	scaled := Placement(config.Default(), hidpi)
	if scaled.W <= base.W || scaled.H <= base.H {
		t.Errorf("2x scale should grow the window: 1x %v, 2x %v", base, scaled)
	}
}

func TestPlacementExactDefault(t *testing.T) {
	// Default: 24h without seconds, font 22, outline style.
	// charW = 13, width = 13*5 + 24 + 4 = 93, height = 22 + 16 = 38.
	r := Placement(config.Default(), primary)
	if r.W != 93 || r.H != 38 {
		t.Errorf("Placement = %dx%d; want 93x38", r.W, r.H)
	}
	if r.X != 1920-93-10 || r.Y != 10 {
		t.Errorf("Placement origin = (%d,%d); want (%d,10)", r.X, r.Y, 1920-93-10)
	}
}

func TestResolve(t *testing.T) {
	monitors := []Monitor{offset, primary}

	if m, ok := Resolve(monitors, "second"); !ok || m.ID != "second" {
		t.Errorf("Resolve(second) = %v, %v; want second", m.ID, ok)
	}
	if m, ok := Resolve(monitors, "gone"); !ok || m.ID != "primary" {
		t.Errorf("Resolve(gone) = %v, %v; want primary fallback", m.ID, ok)
	}

	noPrimary := []Monitor{offset}
	if m, ok := Resolve(noPrimary, "gone"); !ok || m.ID != "second" {
		t.Errorf("Resolve without primary = %v, %v; want first monitor", m.ID, ok)
	}

	if _, ok := Resolve(nil, "any"); ok {
		t.Error("Resolve(empty) should report no monitor")
	}
}
