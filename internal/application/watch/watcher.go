package watch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-weight-trend/internal/util"
)

// FileEvent describes a change to the watched log file.
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher monitors a single log file for changes. It watches the parent
// directory rather than the file itself because exporters and editors
// replace the file via rename, which would drop a watch on the file node.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	target  string
	events  chan FileEvent
	done    chan struct{}
}

// NewFileWatcher creates a watcher for the given log file path.
func NewFileWatcher(target string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher: watcher,
		target:  filepath.Clean(target),
		events:  make(chan FileEvent, 100),
		done:    make(chan struct{}),
	}

	if err := watcher.Add(filepath.Dir(fw.target)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory of %s: %w", target, err)
	}

	go fw.processEvents()

	return fw, nil
}

// processEvents forwards directory events that concern the target file.
func (fw *FileWatcher) processEvents() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != fw.target {
				continue
			}

			select {
			case fw.events <- FileEvent{Path: event.Name, Operation: event.Op.String()}:
			default:
				util.LogWarn("File event channel full, dropping event")
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())

		case <-fw.done:
			return
		}
	}
}

// Events returns the channel of file change events.
func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

// Close stops watching and releases resources.
func (fw *FileWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}
