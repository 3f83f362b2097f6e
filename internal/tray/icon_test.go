package tray

import (
	"bytes"
	"testing"
)

func TestClockFace(t *testing.T) {
	img := clockFace()
	if got := img.Bounds().Dx(); got != 16 {
		t.Fatalf("icon width = %d; want 16", got)
	}

	// Center pixels carry the white hands, corners stay transparent.
	if r, _, _, _ := img.At(8, 8).RGBA(); r>>8 != 255 {
		t.Error("center pixel should be part of a white hand")
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("corner pixel should be transparent")
	}
	if _, _, b, _ := img.At(8, 13).RGBA(); b>>8 != 255 {
		t.Error("lower face pixel should be blue")
	}
}

func TestIconBytes(t *testing.T) {
	data := iconBytes()
	if len(data) == 0 {
		t.Fatal("iconBytes returned no data")
	}
	// ICO header: reserved 0, type 1.
	if !bytes.Equal(data[:4], []byte{0, 0, 1, 0}) {
		t.Errorf("icon header = %v; want ICO signature", data[:4])
	}
}
