package api

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a listings file into a store whenever it changes.
// The parent directory is watched so editors that replace the file by
// rename are picked up too.
type Watcher struct {
	watcher  *fsnotify.Watcher
	store    *ListingStore
	path     string
	debounce time.Duration
	logger   *log.Logger

	// Reloaded receives the outcome of every reload attempt; nil on success
	Reloaded chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchListings starts watching path. The caller must Close the watcher.
func WatchListings(store *ListingStore, path string, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	if logger == nil {
		logger = log.Default()
	}
	watcher := &Watcher{
		watcher:  w,
		store:    store,
		path:     abs,
		debounce: debounce,
		logger:   logger,
		Reloaded: make(chan error, 4),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching and waits for the loop to exit
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// Run blocks until ctx is done, then closes the watcher
func (w *Watcher) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
	case <-w.done:
	}
	return w.Close()
}

func (w *Watcher) run() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
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
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Printf("listings watcher: %v", err)
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) reload() {
	err := w.store.LoadFile(w.path)
	if err != nil {
		w.logger.Printf("listings reload failed, keeping previous listings: %v", err)
	} else {
		w.logger.Printf("listings reloaded from %s (%d exhibitions)", w.path, len(w.store.Listings()))
	}
	select {
	case w.Reloaded <- err:
	default:
	}
}
