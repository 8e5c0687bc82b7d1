// Package watcher reports changes to a fixture file so the dashboard can
// reload it. It uses fsnotify on the parent directory, which survives the
// rename-into-place saves most editors do, and falls back to polling on
// network filesystems or when SENTIDASH_FORCE_POLL is set.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is used in polling mode.
const DefaultPollInterval = 2 * time.Second

var (
	ErrFileRemoved    = errors.New("watched file was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// Event is one debounced notification.
type Event struct {
	Path string
	// Err is set for removals and watch failures; nil means the file changed.
	Err error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before an Event is emitted.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the polling period.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.pollInterval = d }
}

// WithForcePoll skips fsnotify entirely.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) { w.forcePoll = force }
}

// Watcher watches one file.
type Watcher struct {
	path         string
	debounce     time.Duration
	pollInterval time.Duration
	forcePoll    bool

	mu      sync.Mutex
	started bool
	polling bool
	fsType  FilesystemType
	cancel  context.CancelFunc
	done    chan struct{}

	debouncer *Debouncer
	events    chan Event
}

// New returns a watcher for path. The file need not exist yet.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	w := &Watcher{
		path:         abs,
		debounce:     DefaultDebounceDuration,
		pollInterval: DefaultPollInterval,
		events:       make(chan Event, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.pollInterval <= 0 {
		w.pollInterval = DefaultPollInterval
	}
	w.debouncer = NewDebouncer(w.debounce)
	return w, nil
}

// Start begins watching until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrAlreadyStarted
	}
	if _, err := os.Stat(w.path); os.IsPermission(err) {
		return ErrPermission
	}

	w.fsType = DetectFilesystemType(w.path)
	w.polling = w.forcePoll || envBool("SENTIDASH_FORCE_POLL") || w.fsType.Remote()

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	var fsw *fsnotify.Watcher
	if !w.polling {
		var err error
		fsw, err = fsnotify.NewWatcher()
		if err == nil {
			if err = fsw.Add(filepath.Dir(w.path)); err != nil {
				fsw.Close()
				fsw = nil
			}
		}
		w.polling = fsw == nil
	}

	if fsw != nil {
		go w.runNotify(ctx, fsw)
	} else {
		go w.runPoll(ctx)
	}
	w.started = true
	return nil
}

// Stop ends watching. Events already queued stay readable.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	w.cancel()
	done := w.done
	w.mu.Unlock()

	<-done
	w.debouncer.Cancel()
}

// Events delivers debounced notifications. At most one is buffered; later
// ones are dropped while it is unread, since a reload picks up every change.
func (w *Watcher) Events() <-chan Event { return w.events }

// Path returns the absolute watched path.
func (w *Watcher) Path() string { return w.path }

// IsPolling reports whether the watcher fell back to polling.
func (w *Watcher) IsPolling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polling
}

// IsStarted reports whether the watcher is running.
func (w *Watcher) IsStarted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}

// FilesystemType returns the classification made at Start.
func (w *Watcher) FilesystemType() FilesystemType {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fsType
}

// Mode describes the watch strategy for the status bar.
func (w *Watcher) Mode() string {
	if w.IsPolling() {
		return fmt.Sprintf("polling every %s", w.pollInterval)
	}
	return "fsnotify"
}

func (w *Watcher) runNotify(ctx context.Context, fsw *fsnotify.Watcher) {
	defer close(w.done)
	defer fsw.Close()
	name := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			switch {
			case ev.Has(fsnotify.Remove):
				// Atomic saves remove then create; only report if it stays gone.
				w.debouncer.Trigger(func() {
					if _, err := os.Stat(w.path); os.IsNotExist(err) {
						w.emit(Event{Path: w.path, Err: ErrFileRemoved})
					} else {
						w.emit(Event{Path: w.path})
					}
				})
			case ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename):
				w.debouncer.Trigger(func() { w.emit(Event{Path: w.path}) })
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.emit(Event{Path: w.path, Err: err})
		}
	}
}

func (w *Watcher) runPoll(ctx context.Context) {
	defer close(w.done)

	var lastMod time.Time
	var lastSize int64
	existed := false
	if st, err := os.Stat(w.path); err == nil {
		lastMod, lastSize, existed = st.ModTime(), st.Size(), true
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st, err := os.Stat(w.path)
			switch {
			case os.IsNotExist(err):
				if existed {
					existed = false
					w.emit(Event{Path: w.path, Err: ErrFileRemoved})
				}
				continue
			case os.IsPermission(err):
				w.emit(Event{Path: w.path, Err: ErrPermission})
				continue
			case err != nil:
				w.emit(Event{Path: w.path, Err: err})
				continue
			}
			if !existed || !st.ModTime().Equal(lastMod) || st.Size() != lastSize {
				existed = true
				lastMod, lastSize = st.ModTime(), st.Size()
				w.debouncer.Trigger(func() { w.emit(Event{Path: w.path}) })
			}
		}
	}
}

func (w *Watcher) emit(ev Event) {
	if !w.IsStarted() {
		return
	}
	select {
	case w.events <- ev:
	default:
	}
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
