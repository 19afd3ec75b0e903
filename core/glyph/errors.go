package glyph

import (
	"errors"
	"fmt"

	"github.com/npillmayer/psfgen/core"
)

// ErrEmptyGrapheme is returned when a client asks to render a grapheme
// with zero codepoints.
var ErrEmptyGrapheme = errors.New("cannot render an empty grapheme")

// WrongDimensionsError is returned by Add if the two operands do not have
// identical pixel dimensions. It carries both operands' values.
type WrongDimensionsError struct {
	Height, Width                 int
	ExpectedHeight, ExpectedWidth int
}

func (e WrongDimensionsError) Error() string {
	return fmt.Sprintf("glyph has the wrong dimensions: expected %d x %d px, but glyph was %d x %d px",
		e.ExpectedHeight, e.ExpectedWidth, e.Height, e.Width)
}

func (e WrongDimensionsError) ErrorCode() int      { return core.EINVALID }
func (e WrongDimensionsError) UserMessage() string { return e.Error() }

// WrongLengthError is returned if a bitmap's data buffer does not have the
// length required by its dimensions, or does not match a peer's length.
type WrongLengthError struct {
	Length, ExpectedLength int
}

func (e WrongLengthError) Error() string {
	return fmt.Sprintf("glyph data has the wrong length: expected %d bytes, but glyph was %d bytes",
		e.ExpectedLength, e.Length)
}

func (e WrongLengthError) ErrorCode() int      { return core.EINVALID }
func (e WrongLengthError) UserMessage() string { return e.Error() }

// PadTooSmallError is returned by Pad if the requested canvas does not fit
// the glyph.
type PadTooSmallError struct {
	Height, Width       int
	PadHeight, PadWidth int
}

func (e PadTooSmallError) Error() string {
	return fmt.Sprintf("cannot pad glyph to a smaller size: glyph is %d x %d px, requested padded size is %d x %d px",
		e.Height, e.Width, e.PadHeight, e.PadWidth)
}

func (e PadTooSmallError) ErrorCode() int      { return core.EINVALID }
func (e PadTooSmallError) UserMessage() string { return e.Error() }

// FormatUnsupportedError names an embedded bitmap format which cannot be
// normalized to the monochrome byte-aligned layout. Callers are expected to
// fall back to rasterizing the glyph's outline instead of aborting.
type FormatUnsupportedError struct {
	Format string
}

func (e FormatUnsupportedError) Error() string {
	return fmt.Sprintf("unsupported embedded bitmap format: %s", e.Format)
}

func (e FormatUnsupportedError) ErrorCode() int      { return core.EFORMAT }
func (e FormatUnsupportedError) UserMessage() string { return e.Error() }

var (
	_ core.AppError = WrongDimensionsError{}
	_ core.AppError = WrongLengthError{}
	_ core.AppError = PadTooSmallError{}
	_ core.AppError = FormatUnsupportedError{}
)
