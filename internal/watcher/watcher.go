package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ricekit/ricekit/internal/logger"
)

const defaultDebounce = 500 * time.Millisecond

// ThemesWatcher observes the themes directory and invokes a callback when the
// theme inventory changes. Rapid event bursts (editors doing atomic saves,
// recursive copies) are coalesced into one signal. The watcher only signals;
// dispatching themes_changed is the caller's job.
type ThemesWatcher struct {
	dir       string
	debounce  time.Duration
	logger    *logger.Logger
	onChanged func()

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	stop    chan struct{}
}

// Option configures a ThemesWatcher.
type Option func(*ThemesWatcher)

// WithDebounce overrides the coalescing window.
func WithDebounce(d time.Duration) Option {
	return func(w *ThemesWatcher) {
		w.debounce = d
	}
}

// New creates a watcher over the themes directory. onChanged runs on the
// watcher goroutine after the debounce window closes.
func New(themesDir string, log *logger.Logger, onChanged func(), opts ...Option) *ThemesWatcher {
	w := &ThemesWatcher{
		dir:       themesDir,
		debounce:  defaultDebounce,
		logger:    log,
		onChanged: onChanged,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. It returns once the underlying watch is established.
func (w *ThemesWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return err
	}

	w.watcher = fsw
	w.stop = make(chan struct{})
	go w.loop(fsw, w.stop)

	w.logger.Debugf("watching %s", w.dir)
	return nil
}

// Stop ends watching and releases the underlying resources.
func (w *ThemesWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
}

func (w *ThemesWatcher) stopLocked() {
	if w.stop != nil {
		close(w.stop)
		w.stop = nil
	}
	if w.watcher != nil {
		w.watcher.Close()
		w.watcher = nil
	}
}

// Run starts the watcher and blocks until the context is cancelled.
func (w *ThemesWatcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()
	<-ctx.Done()
	return ctx.Err()
}

func (w *ThemesWatcher) loop(fsw *fsnotify.Watcher, stop chan struct{}) {
	var debounce *time.Timer

	for {
		select {
		case <-stop:
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.debounce, func() {
				w.logger.Debug("theme inventory changed")
				if w.onChanged != nil {
					w.onChanged()
				}
			})

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("themes watcher: %v", err)
		}
	}
}
