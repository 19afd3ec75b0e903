package psf

import (
	"github.com/npillmayer/psfgen/core/glyph"
	"github.com/npillmayer/psfgen/core/unitable"
	"github.com/npillmayer/psfgen/engine/extract"
)

// GlyphSet is an ordered collection of glyph bitmaps sharing uniform
// dimensions. If a Unicode table is present in the font, glyph positions
// correspond to table entries; otherwise glyph i stands for codepoint i.
type GlyphSet struct {
	Glyphs []glyph.Bitmap
	Height int // height of each glyph, in pixels
	Width  int // width of each glyph, in pixels
	Length int // length of each glyph, in bytes
}

// NewGlyphSet validates a list of glyph bitmaps as a glyph set.
//
// In strict mode (pad=false), the first glyph's dimensions and data length
// become the expected baseline and every subsequent glyph has to match
// exactly, failing with InconsistentDimensionsError or
// InconsistentLengthsError otherwise. With pad=true, all glyphs are first
// padded to the per-axis maximum of the inputs, after which strict
// validation holds by construction.
//
// An empty input is not an error; it yields a set with all dimensions
// zero.
func NewGlyphSet(glyphs []glyph.Bitmap, pad bool) (*GlyphSet, error) {
	if pad {
		var err error
		if glyphs, err = padToMax(glyphs); err != nil {
			return nil, err
		}
	}
	set := &GlyphSet{Glyphs: glyphs}
	if len(glyphs) == 0 {
		return set, nil
	}
	set.Height = glyphs[0].Height
	set.Width = glyphs[0].Width
	set.Length = len(glyphs[0].Data)
	for _, g := range glyphs[1:] {
		if g.Height != set.Height || g.Width != set.Width {
			return nil, InconsistentDimensionsError{
				Height:         g.Height,
				Width:          g.Width,
				ExpectedHeight: set.Height,
				ExpectedWidth:  set.Width,
			}
		}
		if len(g.Data) != set.Length {
			return nil, InconsistentLengthsError{Length: len(g.Data), ExpectedLength: set.Length}
		}
	}
	return set, nil
}

// padToMax pads every glyph to the per-axis maximum of all inputs.
func padToMax(glyphs []glyph.Bitmap) ([]glyph.Bitmap, error) {
	maxHeight, maxWidth := 0, 0
	for _, g := range glyphs {
		if g.Height > maxHeight {
			maxHeight = g.Height
		}
		if g.Width > maxWidth {
			maxWidth = g.Width
		}
	}
	padded := make([]glyph.Bitmap, 0, len(glyphs))
	for _, g := range glyphs {
		p, err := g.Pad(maxHeight, maxWidth)
		if err != nil {
			return nil, asSetError(err)
		}
		padded = append(padded, p)
	}
	return padded, nil
}

// BuildGlyphSet renders one glyph per equivalence set of a Unicode table,
// in table order, and assembles the results (see NewGlyphSet for the pad
// parameter). Each set's reference grapheme is the one rendered.
func BuildGlyphSet(e *extract.Extractor, table *unitable.Table, pad bool) (*GlyphSet, error) {
	glyphs := make([]glyph.Bitmap, 0, table.Len())
	for _, set := range table.Sets {
		bm, err := e.RenderGrapheme(set.Reference())
		if err != nil {
			return nil, err
		}
		glyphs = append(glyphs, bm)
	}
	tracer().Debugf("rendered %d glyphs", len(glyphs))
	return NewGlyphSet(glyphs, pad)
}
