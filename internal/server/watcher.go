package server

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Rapid event bursts from editors are coalesced into one notification
const debounceDelay = 100 * time.Millisecond

// Watcher watches a single source file for changes
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	events  chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	pending *time.Timer
	closed  bool
}

// NewWatcher creates a watcher for the given file. It watches the containing
// directory because many editors replace the file on save, which would drop
// a watch on the file itself.
func NewWatcher(path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		watcher: fsWatcher,
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	go w.watch()

	return w, nil
}

// Events returns a channel that receives a notification per change burst.
// The channel is closed when the watcher is closed.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher and cleans up its resources
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	close(w.events)
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}

// watch processes file system events
func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// handleEvent filters events down to the watched file and debounces them
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != filepath.Base(w.path) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(debounceDelay, w.notify)
}

func (w *Watcher) notify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	select {
	case w.events <- struct{}{}:
	default:
		// A notification is already pending
	}
}
