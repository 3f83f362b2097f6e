package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"clock-overlay/internal/logging"
)

// reloadDebounce coalesces the write bursts editors produce when saving.
const reloadDebounce = 500 * time.Millisecond

// Watcher turns hand-edits of the configuration document into reload events.
// Values read this way follow load semantics (clamped, never rejected).
type Watcher struct {
	fsw     *fsnotify.Watcher
	path    string
	events  chan Config
	done    chan struct{}
	stopped chan struct{}
}

// Watch starts watching the document at path. The returned watcher emits the
// freshly loaded configuration after each settled burst of writes.
func Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors replace the file, which
	// drops a direct file watch.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		path:    path,
		events:  make(chan Config, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Events delivers reloaded configurations.
func (w *Watcher) Events() <-chan Config {
	return w.events
}

// Close stops the watcher. The events channel stops producing afterwards.
func (w *Watcher) Close() {
	close(w.done)
	<-w.stopped
	w.fsw.Close()
}

func (w *Watcher) run() {
	defer close(w.stopped)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(reloadDebounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			cfg := LoadFrom(w.path)
			select {
			case w.events <- cfg:
			default:
				// A pending reload is replaced by the newer one.
				select {
				case <-w.events:
				default:
				}
				w.events <- cfg
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.L().Warn("config watcher error", zap.Error(err))

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
