package extract

import (
	"github.com/npillmayer/psfgen/core"
	"github.com/npillmayer/psfgen/core/font"
	"github.com/npillmayer/psfgen/core/font/sbit"
	"github.com/npillmayer/psfgen/core/glyph"
	"github.com/npillmayer/psfgen/core/unitable"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Extractor renders glyph bitmaps of a fixed pixel height from one font.
// It is not safe for concurrent use.
type Extractor struct {
	font   *font.ScalableFont
	sbits  *sbit.Table // embedded bitmaps, may be nil
	height int
	ppem   fixed.Int26_6
	ascent int // baseline offset from the canvas top, in pixels
	buffer sfnt.Buffer
}

// New creates an extractor for the given target pixel height.
func New(f *font.ScalableFont, height int) (*Extractor, error) {
	if height <= 0 {
		return nil, core.Error(core.EINVALID, "glyph height must be positive, is %d", height)
	}
	e := &Extractor{
		font:   f,
		height: height,
		ppem:   fixed.I(height),
	}
	sbits, err := sbit.Parse(f.Binary)
	if err != nil {
		// defective bitmap tables only disable the embedded path
		tracer().Infof("ignoring defective embedded bitmap tables: %v", err)
	} else {
		e.sbits = sbits
	}
	m, err := f.SFNT.Metrics(&e.buffer, e.ppem, xfont.HintingNone)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read font metrics of %s", f.Fontname)
	}
	e.ascent = m.Ascent.Round()
	return e, nil
}

// Height returns the target pixel height.
func (e *Extractor) Height() int {
	return e.height
}

// RenderGrapheme renders every codepoint of g in order and overlays the
// resulting bitmaps into one glyph. It fails with glyph.ErrEmptyGrapheme
// for a grapheme with zero codepoints.
func (e *Extractor) RenderGrapheme(g unitable.Grapheme) (glyph.Bitmap, error) {
	if len(g) == 0 {
		return glyph.Bitmap{}, glyph.ErrEmptyGrapheme
	}
	result, err := e.RenderRune(g[0])
	if err != nil {
		return glyph.Bitmap{}, err
	}
	for _, r := range g[1:] {
		next, err := e.RenderRune(r)
		if err != nil {
			return glyph.Bitmap{}, err
		}
		if result, err = result.Add(next); err != nil {
			return glyph.Bitmap{}, err
		}
	}
	return result, nil
}

// RenderRune renders a single codepoint, preferring an embedded bitmap
// over rasterizing the outline.
func (e *Extractor) RenderRune(r rune) (glyph.Bitmap, error) {
	if bm, ok := e.embedded(r); ok {
		return bm, nil
	}
	return e.rasterize(r)
}

// embedded tries to use a pre-rendered raster image from the font. The
// second return value is false whenever the outline should be rasterized
// instead; embedded never fails extraction.
func (e *Extractor) embedded(r rune) (glyph.Bitmap, bool) {
	if e.sbits == nil {
		return glyph.Bitmap{}, false
	}
	gid, err := e.font.SFNT.GlyphIndex(&e.buffer, r)
	if err != nil {
		return glyph.Bitmap{}, false
	}
	img, err := e.sbits.Lookup(uint16(gid), e.height)
	if err != nil {
		tracer().Infof("embedded bitmap for %q unusable: %v -- rasterizing instead", r, err)
		return glyph.Bitmap{}, false
	}
	if img == nil {
		tracer().Debugf("no embedded bitmap for %q, rasterizing a vector outline instead", r)
		return glyph.Bitmap{}, false
	}
	data := img.Data
	if img.Packed {
		if data, err = glyph.PackedToByteAligned(data, img.Width, img.Height); err != nil {
			tracer().Infof("embedded bitmap for %q unusable: %v -- rasterizing instead", r, err)
			return glyph.Bitmap{}, false
		}
	} else {
		data = append([]byte(nil), data...) // do not alias the font binary
	}
	bm, err := glyph.FromBytes(img.Height, img.Width, data, string(r))
	if err != nil {
		tracer().Infof("embedded bitmap for %q unusable: %v -- rasterizing instead", r, err)
		return glyph.Bitmap{}, false
	}
	return bm, true
}

// --- Classification --------------------------------------------------------

// Kind classifies how a codepoint's glyph is stored in the font. It is
// used for reporting only; the conversion pipeline does not depend on it.
type Kind int

const (
	// KindVector marks a glyph which has to be rasterized from its outline.
	KindVector Kind = iota
	// KindEmbedded marks a glyph with a usable pre-rendered raster image.
	KindEmbedded
	// KindUndefined marks a codepoint the font does not define: it maps to
	// the same glyph as the font's canonical missing-glyph codepoint
	// without being that codepoint itself.
	KindUndefined
)

// Class is the classification of one codepoint.
type Class struct {
	Kind   Kind
	Format string // image format of the embedded bitmap, KindEmbedded only
}

func (c Class) String() string {
	switch c.Kind {
	case KindEmbedded:
		return "embedded bitmap (" + c.Format + ")"
	case KindUndefined:
		return "undefined"
	}
	return "rasterized from vector outline"
}

// missingGlyphRune is the codepoint which by convention maps to the
// font's missing-glyph symbol.
const missingGlyphRune rune = 0x0000

// Classify determines how the font stores the glyph for a codepoint.
func (e *Extractor) Classify(r rune) Class {
	gid, err := e.font.SFNT.GlyphIndex(&e.buffer, r)
	if err != nil {
		return Class{Kind: KindUndefined}
	}
	missing, _ := e.font.SFNT.GlyphIndex(&e.buffer, missingGlyphRune)
	if r != missingGlyphRune && gid == missing {
		return Class{Kind: KindUndefined}
	}
	if e.sbits != nil {
		if img, err := e.sbits.Lookup(uint16(gid), e.height); err == nil && img != nil {
			return Class{Kind: KindEmbedded, Format: img.Format}
		}
	}
	return Class{Kind: KindVector}
}
