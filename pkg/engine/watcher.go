package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"voicesort/pkg/logger"
)

// WatchRoots watches the enabled, not-done input roots and delivers a
// debounced signal whenever files appear, disappear, or are renamed under
// them, so a UI can rescan automatically. The channel closes when ctx is
// done. Watching requires a real filesystem; missing roots are skipped.
func (e *Engine) WatchRoots(ctx context.Context, debounce time.Duration) (<-chan struct{}, error) {
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	roots, err := e.store.Inputs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inputs: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	watched := 0
	for _, r := range roots {
		if !r.Enabled || r.Done {
			continue
		}
		if err := w.Add(r.Path); err != nil {
			logger.Get().Warn().Str("root", r.Path).Err(err).Msg("watch skipped")
			continue
		}
		watched++
	}
	if watched == 0 {
		_ = w.Close()
		return nil, fmt.Errorf("no watchable input roots")
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer w.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
					fire = timer.C
				} else {
					timer.Reset(debounce)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Get().Warn().Err(err).Msg("watch error")
			case <-fire:
				timer = nil
				fire = nil
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ch, nil
}
