package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/colfilter/internal/core/ports/driven"
	"github.com/custodia-labs/colfilter/internal/logger"
)

// Verify interface compliance.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// Watcher implements driven.ChangeWatcher using fsnotify.
type Watcher struct{}

// NewWatcher creates a Watcher.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Watch emits the paths of files created or written under dir. With
// recursive set, existing and newly created subdirectories are watched too.
func (w *Watcher) Watch(ctx context.Context, dir string, recursive bool) (<-chan string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := addDirs(fsw, dir, recursive); err != nil {
		fsw.Close()
		return nil, err
	}

	changes := make(chan string)
	go func() {
		defer close(changes)
		defer fsw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				path, emit := handleFsEvent(fsw, event, recursive)
				if !emit {
					continue
				}
				select {
				case changes <- path:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("filesystem: watch error: %v", err)
			}
		}
	}()

	logger.Debug("filesystem: watching %s (recursive=%t)", dir, recursive)
	return changes, nil
}

// handleFsEvent decides whether an event names a changed file. New
// directories are added to the watch when recursive.
func handleFsEvent(fsw *fsnotify.Watcher, event fsnotify.Event, recursive bool) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(filepath.Base(event.Name)) {
		return "", false
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		if recursive && event.Has(fsnotify.Create) && fsw != nil {
			if err := addDirs(fsw, event.Name, true); err != nil {
				logger.Warn("filesystem: watch %s: %v", event.Name, err)
			}
		}
		return "", false
	}
	if !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}

func addDirs(fsw *fsnotify.Watcher, dir string, recursive bool) error {
	if !recursive {
		return fsw.Add(dir)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
