package synth

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/handysynth/pkg/framework/debug"
)

// DefaultReloadDelay collapses the burst of writes a save produces into one
// reload.
const DefaultReloadDelay = 250 * time.Millisecond

// Watcher reloads the bound soundfont when its file is written or
// recreated. The directory is watched rather than the file so editors that
// replace the file still trigger a reload.
type Watcher struct {
	w      *fsnotify.Watcher
	log    *debug.Logger
	reload func(path string)
	delay  time.Duration

	mu   sync.Mutex
	path string
	dir  string

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher starts a watcher that calls reload from its own goroutine.
func NewWatcher(reload func(path string), log *debug.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = debug.Default()
	}
	w := &Watcher{
		w:      fw,
		log:    log,
		reload: reload,
		delay:  DefaultReloadDelay,
		done:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// SetDelay sets how long the watcher waits after the last change before
// reloading.
func (w *Watcher) SetDelay(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delay = d
}

// Watch switches the watched file to path. An empty path stops watching.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if path != "" {
		path = filepath.Clean(path)
	}
	if path == w.path {
		return nil
	}
	dir := ""
	if path != "" {
		dir = filepath.Dir(path)
	}
	if dir != w.dir {
		if w.dir != "" {
			_ = w.w.Remove(w.dir)
		}
		w.dir = ""
		if dir != "" {
			if err := w.w.Add(dir); err != nil {
				w.path = ""
				return err
			}
		}
		w.dir = dir
	}
	w.path = path
	w.log.Debug("watching %s", path)
	return nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

func (w *Watcher) matches(name string) (string, time.Duration, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path, w.delay, w.path != "" && filepath.Clean(name) == w.path
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var (
		timer   *time.Timer
		pending <-chan time.Time
		target  string
	)
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			path, delay, ok := w.matches(ev.Name)
			if !ok {
				continue
			}
			target = path
			if timer == nil {
				timer = time.NewTimer(delay)
			} else {
				timer.Reset(delay)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			if path := w.Path(); path == target {
				w.log.Info("soundfont %s changed, reloading", path)
				w.reload(path)
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.log.Warn("soundfont watcher: %v", err)
		}
	}
}

// Close stops the watcher and waits for a running reload to finish.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.w.Close()
	w.wg.Wait()
	return err
}
