// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package appicon

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"go.astrophena.name/base/logger"

	"github.com/fsnotify/fsnotify"
)

var (
	watchReadyHook     func() // used in tests, called when Watch started watching
	watchScheduledHook func() // used in tests, called when a generation is scheduled
)

// Watch generates icons and then regenerates them each time the source icon
// in c.Dir is created or written, until ctx is canceled. Generation errors
// are logged and don't stop watching.
func Watch(ctx context.Context, c *Config) error {
	if c == nil {
		c = &Config{}
	}

	generate := func() {
		outs, err := Generate(ctx, c)
		if err != nil {
			logger.Error(ctx, "failed to generate icons", slog.Any("err", err))
			return
		}
		for _, o := range outs {
			logger.Info(ctx, "wrote icon", slog.String("path", o.Path), slog.Int("size", o.Width))
		}
	}

	logger.Info(ctx, "performing an initial generation")
	generate()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Editors often replace files instead of writing them in place, so watch
	// the directory rather than the file.
	if err := watcher.Add(c.dir()); err != nil {
		return err
	}

	// Don't regenerate on each chunk of a file being written. Generation
	// itself runs on this goroutine.
	trigger := make(chan struct{}, 1)
	debouncer := newDebouncer(250*time.Millisecond, func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	logger.Info(ctx, "started watching for changes", slog.String("path", filepath.Join(c.dir(), SourceName)))
	if watchReadyHook != nil {
		watchReadyHook()
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !shouldRegenerate(event.Name, event.Op) {
				continue
			}
			logger.Info(ctx, "detected change, scheduling generation",
				slog.String("name", event.Name),
				slog.Any("op", event.Op),
			)
			debouncer.Do()
			if watchScheduledHook != nil {
				watchScheduledHook()
			}
		case <-trigger:
			logger.Info(ctx, "source changed, regenerating icons")
			generate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		case <-ctx.Done():
			logger.Info(ctx, "stopped watching")
			return nil
		}
	}
}

// shouldRegenerate reports whether a filesystem event affects the source icon.
func shouldRegenerate(path string, op fsnotify.Op) bool {
	// Outputs and their temporary files share the directory.
	if filepath.Base(path) != SourceName {
		return false
	}

	// A rename is followed by a create of the new name, and a removed
	// source can't be resized.
	return op&(fsnotify.Create|fsnotify.Write) != 0
}

// debouncer delays execution of a function until a specified duration has
// passed without any new events.
type debouncer struct {
	d  time.Duration
	mu sync.Mutex
	f  func()
	t  *time.Timer
}

func newDebouncer(d time.Duration, f func()) *debouncer {
	return &debouncer{d: d, f: f}
}

// Do schedules a function to be executed.
func (d *debouncer) Do() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.t != nil {
		d.t.Stop()
	}
	d.t = time.AfterFunc(d.d, d.f)
}

// Stop cancels a pending execution, if any.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.t != nil {
		d.t.Stop()
	}
}
