package ui

import "time"

// Config contains TUI-specific configuration.
type Config struct {
	// Local file being viewed. Empty for stdin and remote sources, which are
	// neither watched nor editable.
	Path string
	// Name shown in the status bar.
	Title string

	EnableMouse  bool          `env:"FOLIO_MOUSE"`
	GlamourStyle string        `env:"GLAMOUR_STYLE"      envDefault:"auto"`
	ReloadDelay  time.Duration `env:"FOLIO_RELOAD_DELAY" envDefault:"100ms"`
}
