package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/folio/document"
	"github.com/charmbracelet/folio/paginate"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// renderOptions shape the paginated output of one document.
type renderOptions struct {
	width     int
	lines     int
	ascii     bool
	strict    bool
	overrides paginate.Overrides
}

// render parses markdown and paginates it.
func render(b []byte, o renderOptions) (*document.Document, *paginate.Result, error) {
	logger := log.Default()
	doc, err := document.Parse(b,
		document.WithWidth(o.width),
		document.WithASCII(o.ascii),
		document.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}

	p := paginate.New(
		paginate.WithCapacity(o.lines),
		paginate.WithWidth(o.width),
		paginate.WithAutoBreaks(doc.Overrides(o.overrides).AutoBreaks()),
		paginate.WithStrict(o.strict),
		paginate.WithLogger(logger),
	)
	res, err := p.Paginate(doc.Job(o.overrides))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to paginate: %w", err)
	}
	return doc, res, nil
}

// paginateArg reads the source named by arg and paginates it with the
// current settings.
func paginateArg(cmd *cobra.Command, arg string) (*document.Document, *paginate.Result, error) {
	src, err := sourceFromArg(commandContext(cmd), arg)
	if err != nil {
		return nil, nil, err
	}
	defer src.reader.Close() //nolint:errcheck

	b, err := io.ReadAll(src.reader)
	if err != nil {
		return nil, nil, err
	}
	return render(b, renderSettings())
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
