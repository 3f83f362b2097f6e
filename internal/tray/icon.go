package tray

import (
	"bytes"
	"image"
	"image/color"
	"math"

	ico "github.com/sergeymakinen/go-ico"
)

// clockFace draws the 16x16 tray icon: a blue disc with white clock hands
// at nine-o-clock-ish positions.
func clockFace() *image.RGBA {
	const size = 16
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	radius := center - 1

	face := color.RGBA{R: 100, G: 180, B: 255, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			if math.Sqrt(dx*dx+dy*dy) <= radius {
				img.SetRGBA(x, y, face)
			}
		}
	}

	cx, cy := int(center), int(center)
	for dy := 0; dy < 4; dy++ {
		img.SetRGBA(cx, cy-dy, white) // minute hand, straight up
	}
	for dx := 0; dx < 5; dx++ {
		img.SetRGBA(cx+dx, cy, white) // hour hand, out to three
	}
	return img
}

func iconBytes() []byte {
	var buf bytes.Buffer
	if err := ico.Encode(&buf, clockFace()); err != nil {
		return nil
	}
	return buf.Bytes()
}
