package sbit

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/psfgen/core/glyph"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseFontWithoutBitmaps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.fonts")
	defer teardown()
	//
	table, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("cannot parse Go Regular: %v", err)
	}
	if table != nil {
		t.Errorf("expected Go Regular to have no embedded bitmaps")
	}
}

func TestParseSyntheticFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.fonts")
	defer teardown()
	//
	table, err := Parse(syntheticFont(1))
	if err != nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	if table == nil {
		t.Fatalf("expected an embedded bitmap table")
	}
	if len(table.strikes) != 1 {
		t.Fatalf("expected 1 strike, have %d", len(table.strikes))
	}
	s := table.strikes[0]
	if s.ppemY != 8 || s.startGlyph != 1 || s.endGlyph != 1 {
		t.Errorf("strike record decoded wrongly: %+v", s)
	}
}

func TestLookupImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.fonts")
	defer teardown()
	//
	table, err := Parse(syntheticFont(1))
	if err != nil || table == nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	img, err := table.Lookup(1, 8)
	if err != nil {
		t.Fatalf("cannot look up glyph image: %v", err)
	}
	if img == nil {
		t.Fatalf("expected an image for glyph 1 at 8 ppem")
	}
	if img.Height != 8 || img.Width != 8 {
		t.Errorf("expected an 8 x 8 image, have %d x %d", img.Height, img.Width)
	}
	if img.Packed {
		t.Errorf("expected image format 1 to be byte-aligned")
	}
	if !bytes.Equal(img.Data, glyphPixels()) {
		t.Errorf("image data distorted: %v", img.Data)
	}
}

func TestLookupMisses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.fonts")
	defer teardown()
	//
	table, err := Parse(syntheticFont(1))
	if err != nil || table == nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	if img, err := table.Lookup(2, 8); err != nil || img != nil {
		t.Errorf("expected a nil image for a glyph outside the strike range, got %v, %v", img, err)
	}
	if img, err := table.Lookup(1, 16); err != nil || img != nil {
		t.Errorf("expected a nil image for a ppem without strike, got %v, %v", img, err)
	}
}

func TestLookupRejectsColourDepth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.fonts")
	defer teardown()
	//
	table, err := Parse(syntheticFont(8)) // 8 bits per pixel
	if err != nil || table == nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	_, err = table.Lookup(1, 8)
	var ferr glyph.FormatUnsupportedError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected a FormatUnsupportedError for bit depth 8, got %v", err)
	}
}

// --- Synthetic font --------------------------------------------------------

// glyphPixels is the byte-aligned 8 x 8 test image.
func glyphPixels() []byte {
	return []byte{0xff, 0x81, 0x81, 0x99, 0x99, 0x81, 0x81, 0xff}
}

// syntheticFont builds a minimal sfnt binary holding exactly an EBLC/EBDT
// pair: one strike at 8 ppem with the given bit depth, covering glyph 1
// with an image-format-1 bitmap addressed through an index-format-1
// subtable.
func syntheticFont(bitDepth byte) []byte {
	pixels := glyphPixels()

	// EBDT: version, then one glyph image with small metrics
	dat := make([]byte, 4, 32)
	binary.BigEndian.PutUint32(dat[0:4], 0x00020000)
	imageOffset := uint32(len(dat))
	dat = append(dat, 8, 8, 0, 8, 8) // height, width, bearingX, bearingY, advance
	dat = append(dat, pixels...)

	// EBLC
	loc := make([]byte, 56+8+8+8)
	binary.BigEndian.PutUint16(loc[0:2], 2) // version 2.0
	binary.BigEndian.PutUint32(loc[4:8], 1) // numSizes
	strike := loc[8:56]
	binary.BigEndian.PutUint32(strike[0:4], 56)  // indexSubTableArrayOffset
	binary.BigEndian.PutUint32(strike[8:12], 1)  // numberOfIndexSubTables
	binary.BigEndian.PutUint16(strike[40:42], 1) // startGlyphIndex
	binary.BigEndian.PutUint16(strike[42:44], 1) // endGlyphIndex
	strike[44] = 8 // ppemX
	strike[45] = 8 // ppemY
	strike[46] = bitDepth
	array := loc[56:64]
	binary.BigEndian.PutUint16(array[0:2], 1) // firstGlyphIndex
	binary.BigEndian.PutUint16(array[2:4], 1) // lastGlyphIndex
	binary.BigEndian.PutUint32(array[4:8], 8) // additionalOffsetToIndexSubtable
	sub := loc[64:72]
	binary.BigEndian.PutUint16(sub[0:2], 1) // indexFormat
	binary.BigEndian.PutUint16(sub[2:4], 1) // imageFormat
	binary.BigEndian.PutUint32(sub[4:8], imageOffset)
	offsets := loc[72:80]
	binary.BigEndian.PutUint32(offsets[0:4], 0)
	binary.BigEndian.PutUint32(offsets[4:8], uint32(5+len(pixels)))

	// sfnt wrapper: offset table plus two directory records
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
