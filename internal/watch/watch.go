package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher calls back when a single file is written or replaced.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Logger   *log.Logger
}

// Watch is shorthand for a Watcher with the default debounce.
func Watch(ctx context.Context, path string, logger *log.Logger, fn func()) error {
	return (&Watcher{Path: path, Logger: logger}).Run(ctx, fn)
}

// Run blocks until ctx is done. fn is called on the Run goroutine, so calls
// never overlap; bursts of events closer than Debounce collapse into one call.
//
// The parent directory is watched rather than the file so that editors that
// save by writing a new file and renaming it over the old one still trigger.
func (w *Watcher) Run(ctx context.Context, fn func()) error {
	target, err := filepath.Abs(w.Path)
	if err != nil {
		return err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch folder %s: %w", filepath.Dir(target), err)
	}
	w.logger().Printf("Watching %s", target)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounce)
			}

		case <-fire:
			fn()

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger().Printf("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) logger() *log.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return log.Default()
}
