// Package watch reports changes to a single file on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/fsnotify/fsnotify"

	"github.com/felixgeelhaar/stackplan/infrastructure/logging"
)

// DefaultDebounce collapses the bursts of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches one file. The parent directory is observed so that
// editors which replace the file by renaming are still noticed.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *bolt.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger for watch errors.
func WithLogger(l *bolt.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// New creates a watcher for path.
func New(path string, opts ...Option) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. The returned channel receives one value per burst of
// changes and is closed when ctx is done or the watcher fails. The watch is
// established before Start returns.
func (w *Watcher) Start(ctx context.Context) (<-chan struct{}, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	changes := make(chan struct{}, 1)
	go w.loop(ctx, fw, changes)
	return changes, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, changes chan<- struct{}) {
	defer close(changes)
	defer fw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			select {
			case changes <- struct{}{}:
			default:
				// A change is already pending.
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				timer.Reset(w.debounce)
				continue
			}
			logging.NewEvent(w.logger.Warn()).Add(
				logging.Component("watch"),
				logging.Str("path", w.path),
				logging.ErrorField(err),
			).Msg("watch error")
		}
	}
}
