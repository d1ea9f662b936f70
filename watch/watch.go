// Package watch reruns a callback when a schema file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ridoystarlord/modelgen/debug"
)

// DefaultDebounce groups the bursts of events editors emit on save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches one file. The directory is watched so that editors
// replacing the file on save are still seen.
type Watcher struct {
	file     string
	debounce time.Duration
	callback func() error
	watcher  *fsnotify.Watcher

	// OnError receives watcher and callback errors. Nil drops them.
	OnError func(error)
}

// New starts watching file. Close releases the underlying watcher.
func New(file string, debounce time.Duration, callback func() error) (*Watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", file, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{file: abs, debounce: debounce, callback: callback, watcher: fw}, nil
}

// Run calls the callback once, then after every debounced change, until
// ctx is done. Only an error from the first call is returned.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.callback(); err != nil {
		return fmt.Errorf("initial run: %w", err)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			debug.Debug("schema changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			if err := w.callback(); err != nil {
				w.report(err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.report(err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	return err == nil && abs == w.file
}

func (w *Watcher) report(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
