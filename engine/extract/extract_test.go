package extract

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/psfgen/core/font"
	"github.com/npillmayer/psfgen/core/font/sbit"
	"github.com/npillmayer/psfgen/core/glyph"
	"github.com/npillmayer/psfgen/core/unitable"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func testExtractor(t *testing.T, height int) *Extractor {
	e, err := New(font.FallbackFont(), height)
	if err != nil {
		t.Fatalf("cannot create extractor: %v", err)
	}
	return e
}

func TestNewRejectsBadHeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.fonts")
	defer teardown()
	//
	if _, err := New(font.FallbackFont(), 0); err == nil {
		t.Errorf("expected an error for height 0")
	}
	if _, err := New(font.FallbackFont(), -4); err == nil {
		t.Errorf("expected an error for a negative height")
	}
}

func TestRenderLetter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.fonts")
	defer teardown()
	//
	e := testExtractor(t, 16)
	bm, err := e.RenderRune('A')
	if err != nil {
		t.Fatalf("cannot render 'A': %v", err)
	}
	if bm.Height != 16 {
		t.Errorf("expected glyph height 16, is %d", bm.Height)
	}
	if bm.Width <= 0 {
		t.Errorf("expected a positive glyph width, is %d", bm.Width)
	}
	ink := 0
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			if bm.Bit(x, y) {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Errorf("expected 'A' to produce set pixels")
	}
	if bm.Grapheme != "A" {
		t.Errorf("expected grapheme \"A\", is %q", bm.Grapheme)
	}
}

func TestRenderSpaceIsBlank(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.fonts")
	defer teardown()
	//
	e := testExtractor(t, 16)
	bm, err := e.RenderRune(' ')
	if err != nil {
		t.Fatalf("cannot render space: %v", err)
	}
	if bm.Width <= 0 {
		t.Errorf("expected the space to keep its advance width, is %d", bm.Width)
	}
	for _, b := range bm.Data {
		if b != 0 {
			t.Fatalf("expected a blank bitmap for the space, have %v", bm.Data)
		}
	}
}

func TestRenderGrapheme(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.fonts")
	defer teardown()
	//
	e := testExtractor(t, 16)
	base, err := e.RenderRune('e')
	if err != nil {
		t.Fatalf("cannot render 'e': %v", err)
	}
	// overlaying a glyph onto itself must be a no-op on the pixels and
	// concatenate the graphemes
	combined, err := e.RenderGrapheme(unitable.Grapheme{'e', 'e'})
	if err != nil {
		t.Fatalf("cannot render overlaid grapheme: %v", err)
	}
	if combined.Height != base.Height || combined.Width != base.Width {
		t.Fatalf("expected the overlay to keep the base dimensions, have %d x %d",
			combined.Height, combined.Width)
	}
	if combined.Grapheme != "ee" {
		t.Errorf("expected grapheme \"ee\", is %q", combined.Grapheme)
	}
	for y := 0; y < base.Height; y++ {
		for x := 0; x < base.Width; x++ {
			if base.Bit(x, y) != combined.Bit(x, y) {
				t.Fatalf("overlay changed pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestRenderEmptyGrapheme(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.fonts")
	defer teardown()
	//
	e := testExtractor(t, 16)
	if _, err := e.RenderGrapheme(nil); !errors.Is(err, glyph.ErrEmptyGrapheme) {
		t.Errorf("expected ErrEmptyGrapheme, got %v", err)
	}
}

func TestRenderFallsBackOnUnsupportedBitmaps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.fonts")
	defer teardown()
	//
	e := testExtractor(t, 16)
	table, err := sbit.Parse(greyscaleBitmapFont())
	if err != nil || table == nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	e.sbits = table
	// every glyph id now hits a strike the converter cannot use; the
	// outline has to be rasterized instead, without an error surfacing
	bm, err := e.RenderRune('A')
	if err != nil {
		t.Fatalf("expected a silent fallback to rasterization, got %v", err)
	}
	if bm.Height != 16 || bm.Width <= 0 {
		t.Fatalf("expected a 16 px rasterized glyph, have %d x %d", bm.Height, bm.Width)
	}
	ink := 0
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			if bm.Bit(x, y) {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Errorf("expected the rasterized 'A' to produce set pixels")
	}
	if c := e.Classify('A'); c.Kind != KindVector {
		t.Errorf("expected 'A' to classify as vector despite the bitmap strike, is %v", c)
	}
}

// greyscaleBitmapFont builds a minimal sfnt binary with an EBLC/EBDT pair
// whose single strike covers all glyph ids at 16 ppem with 8 bits per
// pixel, a depth the converter does not support.
func greyscaleBitmapFont() []byte {
	loc := make([]byte, 8+48)
	binary.BigEndian.PutUint16(loc[0:2], 2) // version 2.0
	binary.BigEndian.PutUint32(loc[4:8], 1) // numSizes
	strike := loc[8:56]
	binary.BigEndian.PutUint16(strike[42:44], 0xffff) // endGlyphIndex
	strike[44] = 16 // ppemX
	strike[45] = 16 // ppemY
	strike[46] = 8  // bitDepth
	dat := make([]byte, 4)
	binary.BigEndian.PutUint32(dat, 0x00020000)

	font := make([]byte, 12+2*16)
	binary.BigEndian.PutUint32(font[0:4], 0x00010000)
	binary.BigEndian.PutUint16(font[4:6], 2) // numTables
	locOffset := uint32(len(font))
	datOffset := locOffset + uint32(len(loc))
	rec := font[12:28]
	copy(rec[0:4], "EBLC")
	binary.BigEndian.PutUint32(rec[8:12], locOffset)
	binary.BigEndian.PutUint32(rec[12:16], uint32(len(loc)))
	rec = font[28:44]
	copy(rec[0:4], "EBDT")
	binary.BigEndian.PutUint32(rec[8:12], datOffset)
	binary.BigEndian.PutUint32(rec[12:16], uint32(len(dat)))
	font = append(font, loc...)
	font = append(font, dat...)
	return font
}

func TestClassify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.fonts")
	defer teardown()
	//
	e := testExtractor(t, 16)
	if c := e.Classify('A'); c.Kind != KindVector {
		t.Errorf("expected 'A' to be rasterized from its outline, is %v", c)
	}
	// Go Regular has no glyphs outside the BMP
	if c := e.Classify(0x20021); c.Kind != KindUndefined {
		t.Errorf("expected U+20021 to be undefined in Go Regular, is %v", c)
	}
	// the missing-glyph codepoint itself counts as defined
	if c := e.Classify(0); c.Kind == KindUndefined {
		t.Errorf("expected U+0000 to classify as the font's missing-glyph symbol")
	}
}

func TestClassString(t *testing.T) {
	if s := (Class{Kind: KindEmbedded, Format: "image format 1"}).String(); s != "embedded bitmap (image format 1)" {
		t.Errorf("unexpected class string %q", s)
	}
	if s := (Class{Kind: KindUndefined}).String(); s != "undefined" {
		t.Errorf("unexpected class string %q", s)
	}
}
