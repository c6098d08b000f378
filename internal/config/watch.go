package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler receives reloaded settings, or the error that prevented the
// reload.
type Handler func(Settings, error)

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	opts     Options
	path     string
	debounce time.Duration
	handler  Handler

	fsw     *fsnotify.Watcher
	closeCh chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// Watch starts watching opts.Path and calls handler after each change,
// coalescing bursts of events within debounce.
func Watch(opts Options, debounce time.Duration, handler Handler) (*Watcher, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("watch: no config path")
	}
	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors replace files on save, so watch the directory.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		opts:     opts,
		path:     abs,
		debounce: debounce,
		handler:  handler,
		fsw:      fsw,
		closeCh:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Close stops the watcher and waits for the event loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.handler(Settings{}, fmt.Errorf("watch %s: %w", w.path, err))

		case <-fire:
			fire = nil
			w.handler(Load(w.opts))
		}
	}
}
