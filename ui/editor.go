package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/editor"
)

type editorFinishedMsg struct{ err error }

func openEditor(path string) tea.Cmd {
	c, err := editor.Cmd("folio", path)
	if err != nil {
		return func() tea.Msg {
			return errMsg{err}
		}
	}
	cb := func(err error) tea.Msg {
		return editorFinishedMsg{err}
	}
	return tea.ExecProcess(c, cb)
}
