package paginate

import (
	"io"

	"github.com/charmbracelet/log"
)

const (
	// DefaultCapacity is the number of body lines on a page.
	DefaultCapacity = 55
	// DefaultWidth is the page width in columns.
	DefaultWidth = 72
	// DefaultMaxPasses bounds how often layout is planned again when a
	// deferred section outgrows its reservation.
	DefaultMaxPasses = 4
)

// Option configures a Paginator.
type Option func(*config)

type config struct {
	capacity   int
	width      int
	autoBreaks bool
	strict     bool
	maxPasses  int
	logger     *log.Logger
}

func defaultConfig() config {
	return config{
		capacity:   DefaultCapacity,
		width:      DefaultWidth,
		autoBreaks: true,
		maxPasses:  DefaultMaxPasses,
		logger:     log.New(io.Discard),
	}
}

// WithCapacity sets the number of body lines per page. Values below one are
// ignored.
func WithCapacity(lines int) Option {
	return func(cfg *config) {
		if lines > 0 {
			cfg.capacity = lines
		}
	}
}

// WithWidth sets the page width used to justify running headers and footers.
func WithWidth(width int) Option {
	return func(cfg *config) {
		if width > 0 {
			cfg.width = width
		}
	}
}

// WithAutoBreaks enables or disables early breaks before units that would
// not fit on the rest of the page. Forced breaks are always honored.
func WithAutoBreaks(enabled bool) Option {
	return func(cfg *config) {
		cfg.autoBreaks = enabled
	}
}

// WithStrict makes an oversized deferred section an error right away
// instead of planning the layout again.
func WithStrict(enabled bool) Option {
	return func(cfg *config) {
		cfg.strict = enabled
	}
}

// WithMaxPasses sets how many layout passes may be attempted.
func WithMaxPasses(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxPasses = n
		}
	}
}

// WithLogger sets the logger used for planning diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}
