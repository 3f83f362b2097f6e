package overlay

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"clock-overlay/internal/config"
	"clock-overlay/internal/logging"
	"clock-overlay/internal/monitor"
)

// Service owns the clock's presentation state: visibility, the monitor the
// window sits on, and the last rendered text. All mutation goes through it
// so the window never sees conflicting updates.
type Service struct {
	mu        sync.Mutex
	surface   Surface
	cfg       config.Config
	visible   bool
	monitorID string
	scale     float64
	lastFrame monitor.Rect
	lastText  string
}

func NewService(s Surface, cfg config.Config) *Service {
	svc := &Service{surface: s, cfg: cfg, scale: 1.0}
	s.SetAppearance(AppearanceOf(cfg))
	return svc
}

// Visible reports whether the clock is currently shown.
func (s *Service) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// MonitorID names the monitor the window was last placed on.
func (s *Service) MonitorID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.monitorID
}

// SetVisible shows or hides the clock. A failed show leaves the clock
// hidden and reports ErrPresentationUnavailable; the caller decides whether
// to retry or carry on without a window.
func (s *Service) SetVisible(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v == s.visible {
		return nil
	}
	if !v {
		s.surface.Hide()
		s.visible = false
		return nil
	}
	if err := s.surface.Show(); err != nil {
		logging.L().Warn("overlay show failed", zap.Error(err))
		s.visible = false
		return err
	}
	s.visible = true
	return nil
}

// Toggle flips visibility and returns the new state.
func (s *Service) Toggle() (bool, error) {
	target := !s.Visible()
	err := s.SetVisible(target)
	return s.Visible(), err
}

// ApplyAppearance pushes the paint-relevant config to the window and forces
// a repaint on the next tick.
func (s *Service) ApplyAppearance(cfg config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.lastText = ""
	s.mu.Unlock()
	s.surface.SetAppearance(AppearanceOf(cfg))
}

// Reposition places the window on m at the configured corner. Calling it
// again with an unchanged result is a no-op.
func (s *Service) Reposition(m monitor.Monitor) {
	s.mu.Lock()
	frame := monitor.Placement(s.cfg, m)
	if frame == s.lastFrame && m.ID == s.monitorID {
		s.mu.Unlock()
		return
	}
	s.lastFrame = frame
	s.monitorID = m.ID
	s.scale = m.Scale
	s.mu.Unlock()
	s.surface.SetFrame(frame, m.Scale)
}

// RenderTick refreshes the clock text. Ticks that would repaint identical
// text are dropped, so a hidden or unchanged clock costs nothing.
func (s *Service) RenderTick(now time.Time) {
	s.mu.Lock()
	if !s.visible {
		s.mu.Unlock()
		return
	}
	text := FormatTime(now, s.cfg.Format24h, s.cfg.ShowSeconds)
	if text == s.lastText {
		s.mu.Unlock()
		return
	}
	s.lastText = text
	s.mu.Unlock()
	s.surface.SetText(text)
}

// Shutdown hides and tears down the window.
func (s *Service) Shutdown() {
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
	s.surface.Hide()
	s.surface.Close()
}
