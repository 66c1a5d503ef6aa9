// Package watcher monitors the input directory and hands newly dropped PDF
// reports to a processing callback. It replaces the drag-and-drop surface of
// the desktop tool.
package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/medqa/suncheck-renamer/internal/pdf"
)

// DefaultDebounce is how long a file must stay quiet after its last write
// event before it is processed. Report exports are written in several
// chunks; processing on the first event would read a half-written file.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches one directory for incoming PDF files.
type Watcher struct {
	dir      string
	debounce time.Duration
	process  func(path string)

	fsw    *fsnotify.Watcher
	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup
}

// New creates a watcher over dir that calls process for every PDF dropped
// into it, after the debounce interval has elapsed without further writes.
// A non-positive debounce falls back to DefaultDebounce.
func New(dir string, debounce time.Duration, process func(path string)) (*Watcher, error) {
	if dir == "" {
		return nil, fmt.Errorf("watch directory cannot be empty")
	}
	if process == nil {
		return nil, fmt.Errorf("process callback cannot be nil")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cannot create filesystem watcher: %w", err)
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("cannot watch directory %s: %w", dir, err)
	}

	return &Watcher{
		dir:      dir,
		debounce: debounce,
		process:  process,
		fsw:      fsw,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Run blocks processing events until the context is canceled, then drains
// in-flight callbacks and returns nil. Watcher errors other than a closed
// event channel are returned as-is.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error on %s: %w", w.dir, err)
		}
	}
}

// handleEvent schedules processing for create/write events on PDF files,
// resetting the debounce timer on every further write to the same path.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if !pdf.IsPDFFile(event.Name) {
		return
	}

	path := event.Name

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.debounce)
		return
	}

	w.wg.Add(1)
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()

		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		w.process(path)
	})
}

func (w *Watcher) shutdown() {
	w.mu.Lock()
	for path, timer := range w.timers {
		if timer.Stop() {
			w.wg.Done()
		}
		delete(w.timers, path)
	}
	w.mu.Unlock()

	w.fsw.Close()
	w.wg.Wait()
}
