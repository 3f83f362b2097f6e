package singleinstance

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireRelease(t *testing.T) {
	dir := t.TempDir()

	g, err := Acquire(dir, nil)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer g.Release()

	if g.Port() == 0 {
		t.Error("guard should listen on a real port")
	}

	info, err := loadInfo(filepath.Join(dir, instanceFileName))
	if err != nil {
		t.Fatalf("instance file not written: %v", err)
	}
	if info.Port != g.Port() || info.PID != os.Getpid() {
		t.Errorf("instance file = %+v; want port %d pid %d", info, g.Port(), os.Getpid())
	}
}

func TestSecondAcquireForwards(t *testing.T) {
	dir := t.TempDir()

	shown := make(chan struct{}, 1)
	g, err := Acquire(dir, func() { shown <- struct{}{} })
	if err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	defer g.Release()

	if _, err := Acquire(dir, nil); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Acquire = %v; want ErrAlreadyRunning", err)
	}

	select {
	case <-shown:
	case <-time.After(2 * time.Second):
		t.Fatal("second acquire should have raised settings on the first instance")
	}
}

// The forward listener serves before the rest of the app is wired up, so
// the callback must not touch app state directly; a buffered channel keeps
// requests that arrive during startup until a consumer is ready.
func TestForwardBufferedUntilConsumerReady(t *testing.T) {
	dir := t.TempDir()

	requests := make(chan struct{}, 1)
	g, err := Acquire(dir, func() {
		select {
		case requests <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	defer g.Release()

	// Forward arrives before anyone reads the channel.
	if _, err := Acquire(dir, nil); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Acquire = %v; want ErrAlreadyRunning", err)
	}

	select {
	case <-requests:
	case <-time.After(2 * time.Second):
		t.Fatal("buffered settings request was lost")
	}
}

func TestSettingsEndpointRejectsGet(t *testing.T) {
	dir := t.TempDir()

	g, err := Acquire(dir, func() { t.Error("GET must not trigger settings") })
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer g.Release()

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/settings", g.Port()))
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d; want 405", resp.StatusCode)
	}
}

func TestAcquireAfterRelease(t *testing.T) {
	dir := t.TempDir()

	g, err := Acquire(dir, nil)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	g.Release()

	g2, err := Acquire(dir, nil)
	if err != nil {
		t.Fatalf("re-Acquire after Release failed: %v", err)
	}
	g2.Release()
}

func TestInfoRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), instanceFileName)
	want := Info{Port: 4321, PID: 99, StartedAt: time.Now().Truncate(time.Second)}

	if err := saveInfo(path, want); err != nil {
		t.Fatalf("saveInfo failed: %v", err)
	}
	got, err := loadInfo(path)
	if err != nil {
		t.Fatalf("loadInfo failed: %v", err)
	}
	if got.Port != want.Port || got.PID != want.PID {
		t.Errorf("loadInfo = %+v; want %+v", got, want)
	}
}
