package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file when it changes on disk.
type Watcher interface {
	// Close stops watching. Safe to call more than once.
	//
	// Returns:
	//   - error: an error from the underlying watcher
	Close() error
}

type watcher struct {
	fs        *fsnotify.Watcher
	path      string
	onChange  func(Config)
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

var _ Watcher = &watcher{}

// Watch calls onChange with the reloaded settings each time path is written or created. The
// parent directory is watched so editors that replace the file are seen. Files that fail to
// decode are logged and skipped. onChange runs on the watcher's goroutine; callers that mutate
// the scene should hand the value to the scheduler.
//
// Parameters:
//   - path: the config file path
//   - onChange: receives each valid reload
//
// Returns:
//   - Watcher: the running watcher
//   - error: an error creating the watcher or watching the directory
func Watch(path string, onChange func(Config)) (Watcher, error) {
	if onChange == nil {
		panic("config: Watch requires a non-nil onChange")
	}
	if _, err := FormatOf(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	w := &watcher{
		fs:       fw,
		path:     abs,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("[config] watch %s: %v", w.path, err)
		}
	}
}

func (w *watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		log.Printf("[config] reload %s: %v", w.path, err)
		return
	}
	log.Printf("[config] reloaded %s", w.path)
	w.onChange(cfg)
}

func (w *watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.fs.Close()
		w.wg.Wait()
	})
	return w.closeErr
}
