package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/folio/paginate"
	"github.com/charmbracelet/folio/utils"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

const (
	statusBarHeight      = 1
	statusMessageTimeout = time.Second * 3
)

const helpMarkdown = `| Key | Action |
| --- | --- |
| n / p | next / previous page |
| g / G | first / last page |
| j / k | scroll down / up |
| f / b | page down / up by screen |
| c | copy the current page |
| e | edit the source file |
| ? | toggle help |
| q | quit |
`

type pagerModel struct {
	cfg     Config
	load    Loader
	watcher *fsnotify.Watcher

	width    int
	height   int
	viewport viewport.Model
	showHelp bool
	help     string

	// Current document. lines and starts are kept so pages can be copied
	// and jumped to.
	result  *paginate.Result
	starts  []int
	size    int
	modTime time.Time

	statusMessage string
	statusIsError bool
	statusID      int

	err error
}

func newPagerModel(cfg Config, load Loader) pagerModel {
	vp := viewport.New(0, 0)
	vp.YPosition = 0
	vp.MouseWheelEnabled = cfg.EnableMouse
	return pagerModel{
		cfg:      cfg,
		load:     load,
		viewport: vp,
	}
}

func (m pagerModel) Init() tea.Cmd {
	cmds := []tea.Cmd{loadDocument(m.cfg, m.load)}
	if m.watcher != nil {
		cmds = append(cmds, watchFile(m.watcher, m.cfg.Path))
	}
	return tea.Batch(cmds...)
}

func (m *pagerModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = max(h-statusBarHeight, 0)

	if m.showHelp {
		m.help = m.helpView()
		m.viewport.Height = max(m.viewport.Height-lipgloss.Height(m.help), 0)
	}
}

func (m *pagerModel) toggleHelp() {
	m.showHelp = !m.showHelp
	m.setSize(m.width, m.height)
	if m.viewport.PastBottom() {
		m.viewport.GotoBottom()
	}
}

func (m *pagerModel) setResult(res *paginate.Result) {
	page := m.currentPage()
	m.result = res
	m.starts = res.PageStarts()
	content := pageContent(res.Lines)
	m.size = len(res.String())
	m.viewport.SetContent(content)
	// stay on the same page across reloads
	if page < len(m.starts) {
		m.viewport.SetYOffset(m.starts[page])
	} else {
		m.viewport.GotoBottom()
	}
}

// currentPage returns the 0-based page at the top of the viewport.
func (m pagerModel) currentPage() int {
	if m.result == nil {
		return 0
	}
	if m.viewport.YOffset > 0 && m.viewport.AtBottom() {
		return len(m.starts) - 1
	}
	return pageAt(m.starts, m.viewport.YOffset)
}

// showStatusMessage shows msg in the status bar for a while.
func (m *pagerModel) showStatusMessage(msg string, isError bool) tea.Cmd {
	m.statusMessage = msg
	m.statusIsError = isError
	m.statusID++
	return waitForStatusMessageTimeout(m.statusID)
}

func (m *pagerModel) copyPage() tea.Cmd {
	if m.result == nil {
		return nil
	}
	page := m.currentPage()
	text := pageText(m.result.Lines, m.starts, page)

	// Copy using OSC 52
	termenv.Copy(text)
	// Copy using native system clipboard
	if err := clipboard.WriteAll(text); err != nil {
		log.Debug("Native clipboard unavailable", "err", err)
	}
	return m.showStatusMessage(fmt.Sprintf("Copied page %d", page+1), false)
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.watcher != nil {
				_ = m.watcher.Close()
			}
			return m, tea.Quit
		case "esc":
			if m.showHelp {
				m.toggleHelp()
			}
			return m, nil
		case "n":
			m.viewport.SetYOffset(nextPageStart(m.starts, m.viewport.YOffset))
			return m, nil
		case "p":
			m.viewport.SetYOffset(prevPageStart(m.starts, m.viewport.YOffset))
			return m, nil
		case "home", "g":
			m.viewport.GotoTop()
			return m, nil
		case "end", "G":
			m.viewport.GotoBottom()
			return m, nil
		case "c":
			cmd = m.copyPage()
			return m, cmd
		case "e":
			if m.cfg.Path == "" {
				cmd = m.showStatusMessage("Only local files can be edited", true)
				return m, cmd
			}
			return m, openEditor(m.cfg.Path)
		case "?":
			m.toggleHelp()
			return m, nil
		}

	// We've received terminal dimensions, either for the first time or
	// after a resize
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case documentLoadedMsg:
		reloaded := m.result != nil
		m.err = nil
		m.modTime = msg.modTime
		m.setResult(msg.result)
		log.Debug("Document loaded", "pages", msg.result.Pages, "passes", msg.result.Passes)
		if reloaded {
			cmd = m.showStatusMessage("Reloaded", false)
			return m, cmd
		}
		return m, nil

	case watcherStartedMsg:
		return m, waitForChange(m.watcher, m.cfg.Path)

	case fileChangedMsg:
		return m, tea.Batch(
			tea.Tick(m.cfg.ReloadDelay, func(time.Time) tea.Msg { return reloadMsg{} }),
			waitForChange(m.watcher, m.cfg.Path),
		)

	case reloadMsg:
		return m, loadDocument(m.cfg, m.load)

	case editorFinishedMsg:
		if msg.err != nil {
			cmd = m.showStatusMessage(msg.err.Error(), true)
			return m, cmd
		}
		if m.watcher == nil {
			return m, loadDocument(m.cfg, m.load)
		}
		return m, nil

	case errMsg:
		log.Error("Viewer error", "err", msg.err)
		m.err = msg.err
		cmd = m.showStatusMessage(msg.Error(), true)
		return m, cmd

	case statusMessageTimeoutMsg:
		if msg.id == m.statusID {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m pagerModel) View() string {
	if m.width == 0 {
		return ""
	}
	if m.result == nil && m.err != nil {
		return errorTitleStyle.Render("Error") + " " + m.err.Error()
	}

	var b strings.Builder
	fmt.Fprint(&b, m.viewport.View()+"\n")
	m.statusBarView(&b)
	if m.showHelp {
		fmt.Fprint(&b, "\n"+m.help)
	}
	return b.String()
}

func (m pagerModel) statusBarView(b *strings.Builder) {
	logo := logoStyle(" folio ")

	pages := 0
	if m.result != nil {
		pages = m.result.Pages
	}
	pageNote := statusBarPageStyle(fmt.Sprintf(" Page %d/%d ", m.currentPage()+1, pages))
	helpNote := statusBarHelpStyle(" ? Help ")

	var note string
	switch {
	case m.statusMessage != "":
		note = " " + m.statusMessage + " "
	default:
		note = " " + m.documentNote() + " "
	}
	room := max(0, m.width-lipgloss.Width(logo)-lipgloss.Width(pageNote)-lipgloss.Width(helpNote))
	note = truncate.StringWithTail(note, uint(room), "…")
	padding := strings.Repeat(" ", max(0, room-lipgloss.Width(note)))

	style := statusBarNoteStyle
	switch {
	case m.statusMessage != "" && m.statusIsError:
		style = statusBarErrorStyle
	case m.statusMessage != "":
		style = statusBarMessageStyle
	}

	fmt.Fprintf(b, "%s%s%s%s",
		logo,
		style(note+padding),
		pageNote,
		helpNote,
	)
}

// documentNote describes the document: its name, output size and, for local
// files, when it was last modified.
func (m pagerModel) documentNote() string {
	parts := []string{m.cfg.Title}
	if parts[0] == "" && m.cfg.Path != "" {
		parts[0] = filepath.Base(m.cfg.Path)
	}
	if m.result != nil {
		parts = append(parts, humanize.Bytes(uint64(m.size)))
	}
	if !m.modTime.IsZero() {
		parts = append(parts, "modified "+humanize.Time(m.modTime))
	}
	return strings.Join(parts, " · ")
}

// helpView renders the key bindings with glamour, falling back to the plain
// table when rendering fails.
func (m pagerModel) helpView() string {
	r, err := glamour.NewTermRenderer(
		utils.GlamourStyle(m.cfg.GlamourStyle),
		glamour.WithWordWrap(m.width),
	)
	if err != nil {
		log.Debug("Unable to render help", "err", err)
		return helpViewStyle.Render(helpMarkdown)
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		log.Debug("Unable to render help", "err", err)
		return helpViewStyle.Render(helpMarkdown)
	}
	return strings.Trim(out, "\n")
}
