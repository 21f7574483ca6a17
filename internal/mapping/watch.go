package mapping

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of filesystem events an editor produces
// for a single logical save.
const debounceDelay = 100 * time.Millisecond

type watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching the mapping document for external edits. Whenever
// the document changes on disk the store reloads it and invokes onChange
// with the result. Writes issued through Save also trigger a reload; those
// republish the table the engine already holds, which is harmless.
func (s *Store) Watch(onChange func(Table)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		return nil
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create mapping watcher: %w", err)
	}

	// Watch the directory rather than the file: editors that replace the
	// file on save would otherwise drop the watch.
	if err := fs.Add(filepath.Dir(s.path)); err != nil {
		fs.Close()
		return fmt.Errorf("watch mapping directory: %w", err)
	}

	w := &watcher{fs: fs, done: make(chan struct{})}
	s.watcher = w
	go s.watchLoop(w, onChange)
	return nil
}

// Unwatch stops the mapping watcher. Safe to call when no watch is active.
func (s *Store) Unwatch() {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w != nil {
		close(w.done)
		w.fs.Close()
	}
}

func (s *Store) watchLoop(w *watcher, onChange func(Table)) {
	var debounce *time.Timer

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(s.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				s.logger.Info("mapping document changed, reloading",
					s.logger.Field().String("path", s.path))
				onChange(s.Load())
			})

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			s.logger.Warn("mapping watcher error", s.logger.Field().Error("error", err))
		}
	}
}
