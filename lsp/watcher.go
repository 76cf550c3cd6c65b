package lsp

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/VoidCRDev/Artisan/ajex"
)

// FileWatcher polls a directory tree for directive files that were added,
// changed or removed outside the editor.
type FileWatcher struct {
	root         string
	onChange     func(path string)
	onRemove     func(path string)
	stopCh       chan struct{}
	stopOnce     sync.Once
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

func NewFileWatcher(root string, onChange, onRemove func(path string)) *FileWatcher {
	return &FileWatcher{
		root:         root,
		onChange:     onChange,
		onRemove:     onRemove,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *FileWatcher) scan() {
	currentFiles := make(map[string]bool)

	filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ajex.FileExtension {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			w.onChange(path)
		}
		return nil
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.onRemove(path)
		}
	}
}
