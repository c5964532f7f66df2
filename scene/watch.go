package scene

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce folds the burst of events an editor fires per save into one.
const debounce = 100 * time.Millisecond

// reloadOps are the filesystem changes that can invalidate a loaded scene.
const reloadOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher reports edits to scene and script files under a set of
// directories, debounced per path, so a viewer can rebuild its map live.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs for changes to the files a scene is built from:
// .yaml/.yml scenes and .tengo scripts.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes both channels. Safe to call twice.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&reloadOps == 0 || !watchable(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			w.Events <- event.Name
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		case <-w.closeCh:
			return
		}
	}
}

// watchable reports whether a path is one a scene is built from.
func watchable(path string) bool {
	return isSceneFile(path) || isScriptFile(path)
}

func isSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
