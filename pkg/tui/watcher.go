package tui

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/stefanpenner/ninety/pkg/store"
)

// debounce is how long the watcher waits after the last change.
const debounce = 200 * time.Millisecond

// Sender receives messages from the watcher. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// StartWatcher watches the data directory for changes to plan.md and
// goals.md and sends FileChangedMsg. Our own atomic writes go through dotted
// temp files, which are ignored; the rename onto the real name is what
// triggers reload.
func StartWatcher(root string, program Sender) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(root); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})

	go func() {
		var debounceTimer *time.Timer

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isDataFile(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounce, func() {
					program.Send(FileChangedMsg{})
				})

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}

			case <-done:
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return
			}
		}
	}()

	cleanup := func() {
		close(done)
		watcher.Close()
	}

	return cleanup, nil
}

// isDataFile reports whether path is one of the files Tracker.Reload reads.
func isDataFile(path string) bool {
	name := filepath.Base(path)
	for _, f := range store.RepositoryFiles {
		if name == f {
			return true
		}
	}
	return false
}
