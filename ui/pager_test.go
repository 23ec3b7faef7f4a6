package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/folio/paginate"
)

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m pagerModel, msg tea.Msg) pagerModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(pagerModel)
	if !ok {
		t.Fatalf("unexpected model %T", next)
	}
	return pm
}

func loadedPager(t *testing.T) pagerModel {
	t.Helper()
	lines, _ := testLines()
	res := &paginate.Result{Lines: lines, Pages: 3, Passes: 1}

	m := newPagerModel(Config{GlamourStyle: "notty", Title: "draft.md"}, func() (*paginate.Result, error) {
		return res, nil
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 14})
	return update(t, m, documentLoadedMsg{result: res})
}

func TestPagerNavigation(t *testing.T) {
	m := loadedPager(t)
	if m.viewport.Height != 13 {
		t.Fatalf("expected viewport height 13, got %d", m.viewport.Height)
	}

	steps := []struct {
		key  rune
		page int
	}{
		{'n', 1},
		{'n', 2},
		{'p', 1},
		{'G', 2},
		{'g', 0},
		{'p', 0},
	}
	for _, s := range steps {
		m = update(t, m, key(s.key))
		if got := m.currentPage(); got != s.page {
			t.Errorf("expected page %d after %q, got %d", s.page, s.key, got)
		}
	}
}

func TestPagerReloadKeepsPage(t *testing.T) {
	m := loadedPager(t)
	m = update(t, m, key('n'))

	lines, _ := testLines()
	m = update(t, m, documentLoadedMsg{result: &paginate.Result{Lines: lines, Pages: 3}})
	if got := m.currentPage(); got != 1 {
		t.Errorf("expected page 1 after reload, got %d", got)
	}
	if m.statusMessage != "Reloaded" {
		t.Errorf("expected reload message, got %q", m.statusMessage)
	}
}

func TestPagerStatusMessage(t *testing.T) {
	m := loadedPager(t)

	m = update(t, m, key('e'))
	if !m.statusIsError || m.statusMessage == "" {
		t.Fatalf("expected an error status, got %q", m.statusMessage)
	}

	m = update(t, m, statusMessageTimeoutMsg{id: m.statusID - 1})
	if m.statusMessage == "" {
		t.Error("stale timeout should not clear the status message")
	}
	m = update(t, m, statusMessageTimeoutMsg{id: m.statusID})
	if m.statusMessage != "" || m.statusIsError {
		t.Errorf("expected status message to be cleared, got %q", m.statusMessage)
	}
}

func TestPagerError(t *testing.T) {
	m := newPagerModel(Config{}, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 14})
	m = update(t, m, errMsg{errors.New("boom")})
	if !strings.Contains(m.View(), "boom") {
		t.Errorf("expected the error in the view, got %q", m.View())
	}
}

func TestPagerView(t *testing.T) {
	m := loadedPager(t)
	view := m.View()
	for _, want := range []string{"folio", "Page 1/3", "draft.md"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestPagerHelp(t *testing.T) {
	m := loadedPager(t)
	m = update(t, m, key('?'))
	if !m.showHelp {
		t.Fatal("expected help to be shown")
	}
	if m.viewport.Height >= 13 {
		t.Errorf("expected help to shrink the viewport, got height %d", m.viewport.Height)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp || m.viewport.Height != 13 {
		t.Errorf("expected help to be hidden, got height %d", m.viewport.Height)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("FOLIO_RELOAD_DELAY", "1s")
	t.Setenv("FOLIO_MOUSE", "true")
	t.Setenv("GLAMOUR_STYLE", "")

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.ReloadDelay != time.Second {
		t.Errorf("expected reload delay 1s, got %s", cfg.ReloadDelay)
	}
	if !cfg.EnableMouse {
		t.Error("expected mouse to be enabled")
	}
	if cfg.GlamourStyle != "auto" {
		t.Errorf("expected default style auto, got %q", cfg.GlamourStyle)
	}
}
