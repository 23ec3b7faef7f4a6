package paginate

import (
	"errors"
	"fmt"
)

var (
	// ErrReservationOverflow reports deferred content longer than the space
	// reserved for it.
	ErrReservationOverflow = errors.New("deferred section exceeds its reservation")
	// ErrExtentRange reports an extent outside the output lines.
	ErrExtentRange = errors.New("extent out of range")
)

// Splice writes content into lines across extents, in order. Reserved lines
// left over after content is exhausted stay as they are. Content that does
// not fit is not written; an error wrapping ErrReservationOverflow is
// returned instead.
func Splice(lines []string, extents []Extent, content []string) error {
	reserved := 0
	for _, ext := range extents {
		if ext.Start < 0 || ext.End > len(lines) || ext.Start > ext.End {
			return fmt.Errorf("%w: [%d, %d) of %d lines", ErrExtentRange, ext.Start, ext.End, len(lines))
		}
		reserved += ext.Len()
	}
	if len(content) > reserved {
		return fmt.Errorf("%w: %d lines rendered, %d reserved", ErrReservationOverflow, len(content), reserved)
	}

	i := 0
	for _, ext := range extents {
		for pos := ext.Start; pos < ext.End && i < len(content); pos++ {
			lines[pos] = content[i]
			i++
		}
	}
	return nil
}
