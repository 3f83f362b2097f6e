//go:build !windows

package overlay

import (
	"sync"

	"clock-overlay/internal/monitor"
)

// headlessSurface records state without a native window, so the rest of the
// app keeps working on platforms without a presentation backend.
type headlessSurface struct {
	mu         sync.Mutex
	shown      bool
	frame      monitor.Rect
	scale      float64
	appearance Appearance
	text       string
}

func New(q *monitor.Queue) (Surface, error) {
	return &headlessSurface{scale: 1.0}, nil
}

func (h *headlessSurface) Show() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shown = true
	return nil
}

func (h *headlessSurface) Hide() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shown = false
}

func (h *headlessSurface) SetFrame(r monitor.Rect, scale float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frame = r
	h.scale = scale
}

func (h *headlessSurface) SetAppearance(a Appearance) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.appearance = a
}

func (h *headlessSurface) SetText(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.text = s
}

func (h *headlessSurface) Close() {}
