package psf

import (
	"errors"
	"fmt"

	"github.com/npillmayer/psfgen/core"
	"github.com/npillmayer/psfgen/core/glyph"
)

// InconsistentDimensionsError is returned when the glyphs of a set do not
// all share the same pixel dimensions. It names both the offending and the
// expected values.
type InconsistentDimensionsError struct {
	Height, Width                 int
	ExpectedHeight, ExpectedWidth int
}

func (e InconsistentDimensionsError) Error() string {
	return fmt.Sprintf("glyphs in glyph set do not all have the same dimensions: glyphs so far were %d x %d px, but current glyph is %d x %d px",
		e.ExpectedHeight, e.ExpectedWidth, e.Height, e.Width)
}

func (e InconsistentDimensionsError) ErrorCode() int      { return core.EINVALID }
func (e InconsistentDimensionsError) UserMessage() string { return e.Error() }

// InconsistentLengthsError is returned when the glyphs of a set do not all
// have the same data length.
type InconsistentLengthsError struct {
	Length, ExpectedLength int
}

func (e InconsistentLengthsError) Error() string {
	return fmt.Sprintf("glyphs in glyph set do not all have the same length: glyphs so far were %d bytes, but current glyph is %d bytes",
		e.ExpectedLength, e.Length)
}

func (e InconsistentLengthsError) ErrorCode() int      { return core.EINVALID }
func (e InconsistentLengthsError) UserMessage() string { return e.Error() }

var (
	_ core.AppError = InconsistentDimensionsError{}
	_ core.AppError = InconsistentLengthsError{}
)

// asSetError lifts a glyph-level failure into the glyph-set error domain.
// The conversion is partial: glyph errors without a set-level counterpart
// are wrapped as internal errors instead of being mapped blindly.
func asSetError(err error) error {
	var dim glyph.WrongDimensionsError
	if errors.As(err, &dim) {
		return InconsistentDimensionsError{
			Height:         dim.Height,
			Width:          dim.Width,
			ExpectedHeight: dim.ExpectedHeight,
			ExpectedWidth:  dim.ExpectedWidth,
		}
	}
	var length glyph.WrongLengthError
	if errors.As(err, &length) {
		return InconsistentLengthsError{
			Length:         length.Length,
			ExpectedLength: length.ExpectedLength,
		}
	}
	return core.WrapError(err, core.EINTERNAL, "glyph set assembly failed: %v", err)
}
