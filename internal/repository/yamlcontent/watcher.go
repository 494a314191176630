package yamlcontent

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"portfolio-site/pkg/logger"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Repository when its file changes on disk. It watches the
// parent directory because editors often replace files by rename.
type Watcher struct {
	repo     *Repository
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onReload func(error)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for repo. onReload, if set, is called after
// every reload attempt with its result.
func NewWatcher(repo *Repository, debounce time.Duration, onReload func(error)) (*Watcher, error) {
	if repo.Path() == "" {
		return nil, errors.New("embedded content cannot be watched")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{
		repo:     repo,
		watcher:  fw,
		debounce: debounce,
		onReload: onReload,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.repo.Path())); err != nil {
		return err
	}
	w.running = true
	go w.run(ctx)
	logger.Log.Info("watching content file", "path", w.repo.Path())
	return nil
}

// Stop ends the watch loop and releases the fsnotify handle.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	target := filepath.Clean(w.repo.Path())
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// Coalesce bursts of events from a single save.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerCh = timer.C
		case <-timerCh:
			timerCh = nil
			err := w.repo.Reload()
			if err != nil {
				logger.Log.Error("content reload failed, keeping previous content", "path", target, "error", err)
			} else {
				logger.Log.Info("content reloaded", "path", target)
			}
			if w.onReload != nil {
				w.onReload(err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Warn("content watcher error", "error", err)
		}
	}
}
