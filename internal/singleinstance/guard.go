// Package singleinstance keeps at most one ClockOR per user session and
// lets a second launch reach the first.
package singleinstance

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	singleinstance "github.com/allan-simon/go-singleinstance"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"clock-overlay/internal/logging"
)

// ErrAlreadyRunning reports that another instance holds the lock. The
// caller should exit cleanly; the running instance has been asked to raise
// its settings surface.
var ErrAlreadyRunning = errors.New("already running")

const (
	lockFileName     = "clockor.lock"
	instanceFileName = "instance.toml"
	forwardTimeout   = 2 * time.Second
)

// Info is the contents of the instance file: where the running instance
// listens for control requests.
type Info struct {
	Port      int       `toml:"port"`
	PID       int       `toml:"pid"`
	StartedAt time.Time `toml:"started_at"`
}

// Guard is a held single-instance lock plus the control endpoint other
// launches talk to.
type Guard struct {
	dir      string
	lock     *os.File
	listener net.Listener
	server   *http.Server
}

// Acquire takes the per-user lock under dir. When another live instance
// holds it, Acquire forwards a show-settings request to it and returns
// ErrAlreadyRunning. A stale lock left by a dead process is cleaned up and
// acquisition retried once.
func Acquire(dir string, onShowSettings func()) (*Guard, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create instance dir: %w", err)
	}
	lockPath := filepath.Join(dir, lockFileName)

	lock, err := singleinstance.CreateLockFile(lockPath)
	if err != nil {
		info, loadErr := loadInfo(filepath.Join(dir, instanceFileName))
		if loadErr == nil && !pidAlive(info.PID) {
			logging.L().Info("removing stale instance files", zap.Int("pid", info.PID))
			os.Remove(filepath.Join(dir, instanceFileName))
			os.Remove(lockPath)
			lock, err = singleinstance.CreateLockFile(lockPath)
		}
		if err != nil {
			if loadErr == nil {
				forwardShowSettings(info.Port)
			}
			return nil, ErrAlreadyRunning
		}
	}

	g := &Guard{dir: dir, lock: lock}
	if err := g.serve(onShowSettings); err != nil {
		lock.Close()
		return nil, err
	}
	return g, nil
}

func (g *Guard) serve(onShowSettings func()) error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("instance listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/settings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		logging.L().Info("settings request from second instance")
		if onShowSettings != nil {
			onShowSettings()
		}
		w.WriteHeader(http.StatusNoContent)
	})

	g.listener = ln
	g.server = &http.Server{Handler: mux}
	go g.server.Serve(ln)

	info := Info{
		Port:      ln.Addr().(*net.TCPAddr).Port,
		PID:       os.Getpid(),
		StartedAt: time.Now(),
	}
	if err := saveInfo(filepath.Join(g.dir, instanceFileName), info); err != nil {
		return err
	}
	return nil
}

// Port reports the control endpoint's port.
func (g *Guard) Port() int {
	if g.listener == nil {
		return 0
	}
	return g.listener.Addr().(*net.TCPAddr).Port
}

// Release drops the lock and removes the instance file.
func (g *Guard) Release() {
	if g.server != nil {
		g.server.Close()
	}
	os.Remove(filepath.Join(g.dir, instanceFileName))
	if g.lock != nil {
		g.lock.Close()
	}
	os.Remove(filepath.Join(g.dir, lockFileName))
}

func loadInfo(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, err
	}
	var info Info
	if err := toml.Unmarshal(data, &info); err != nil {
		return Info{}, err
	}
	return info, nil
}

func saveInfo(path string, info Info) error {
	data, err := toml.Marshal(info)
	if err != nil {
		return fmt.Errorf("encode instance info: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write instance info: %w", err)
	}
	return nil
}

// forwardShowSettings asks the running instance to open its settings.
// Failure is logged and swallowed; the second launch exits either way.
func forwardShowSettings(port int) {
	client := &http.Client{Timeout: forwardTimeout}
	url := fmt.Sprintf("http://127.0.0.1:%d/settings", port)
	resp, err := client.Post(url, "text/plain", nil)
	if err != nil {
		logging.L().Warn("could not reach running instance", zap.Error(err))
		return
	}
	resp.Body.Close()
}
