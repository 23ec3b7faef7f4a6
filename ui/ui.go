// Package ui implements the paginated document viewer.
package ui

import (
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/folio/paginate"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Loader renders the document being viewed. It is called again whenever the
// file changes.
type Loader func() (*paginate.Result, error)

// NewProgram returns a new Tea program viewing the document returned by load.
func NewProgram(cfg Config, load Loader) *tea.Program {
	log.Debug("Starting viewer", "path", cfg.Path, "style", cfg.GlamourStyle)
	m := newPagerModel(cfg, load)
	if cfg.Path != "" {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			log.Error("Unable to watch file", "path", cfg.Path, "err", err)
		} else {
			m.watcher = w
		}
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(m, opts...)
}

// MESSAGES

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type documentLoadedMsg struct {
	result  *paginate.Result
	modTime time.Time
}

type (
	watcherStartedMsg       struct{}
	fileChangedMsg          struct{}
	reloadMsg               struct{}
	statusMessageTimeoutMsg struct{ id int }
)

// COMMANDS

func loadDocument(cfg Config, load Loader) tea.Cmd {
	return func() tea.Msg {
		res, err := load()
		if err != nil {
			return errMsg{err}
		}
		msg := documentLoadedMsg{result: res}
		if cfg.Path != "" {
			if info, err := os.Stat(cfg.Path); err == nil {
				msg.modTime = info.ModTime()
			}
		}
		return msg
	}
}

// watchFile watches the directory of path, since editors often replace files
// instead of writing to them.
func watchFile(w *fsnotify.Watcher, path string) tea.Cmd {
	return func() tea.Msg {
		if err := w.Add(filepath.Dir(path)); err != nil {
			return errMsg{err}
		}
		log.Debug("Watching for changes", "path", path)
		return watcherStartedMsg{}
	}
}

func waitForChange(w *fsnotify.Watcher, path string) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					return fileChangedMsg{}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return errMsg{err}
			}
		}
	}
}

func waitForStatusMessageTimeout(id int) tea.Cmd {
	return tea.Tick(statusMessageTimeout, func(time.Time) tea.Msg {
		return statusMessageTimeoutMsg{id}
	})
}
