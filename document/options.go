package document

import (
	"io"

	"github.com/charmbracelet/folio/paginate"
	"github.com/charmbracelet/log"
)

const defaultTOCDepth = 3

// Option configures Parse.
type Option func(*options)

type options struct {
	width  int
	ascii  bool
	logger *log.Logger
}

func defaultOptions() options {
	return options{
		width:  paginate.DefaultWidth,
		logger: log.New(io.Discard),
	}
}

// WithWidth sets the page width text is wrapped to.
func WithWidth(width int) Option {
	return func(o *options) {
		if width > 0 {
			o.width = width
		}
	}
}

// WithASCII folds all text to plain ASCII.
func WithASCII(enabled bool) Option {
	return func(o *options) {
		o.ascii = enabled
	}
}

// WithLogger sets the logger used while rendering.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
