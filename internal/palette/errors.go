package palette

import (
	"fmt"

	"github.com/jmylchreest/chromaset/internal/colour"
)

// PartialPaletteWarning is returned together with a palette that is shorter
// than requested because the candidate pool ran out. The palette is still
// usable; callers should log the condition rather than abort.
type PartialPaletteWarning struct {
	Size     int
	Achieved int
}

func (w *PartialPaletteWarning) Error() string {
	return fmt.Sprintf("palette of size %d is partial: only %d colours available", w.Size, w.Achieved)
}

// InvariantError reports a broken internal guarantee, such as a hex value
// appearing twice in one palette. It indicates a programming error.
type InvariantError struct {
	Size int
	Hex  colour.Hex
	Msg  string
}

func (e *InvariantError) Error() string {
	if e.Hex != "" {
		return fmt.Sprintf("palette invariant violated (size %d, colour %s): %s", e.Size, e.Hex, e.Msg)
	}
	return fmt.Sprintf("palette invariant violated (size %d): %s", e.Size, e.Msg)
}
