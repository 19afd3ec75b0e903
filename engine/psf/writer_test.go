package psf

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/npillmayer/psfgen/core/glyph"
	"github.com/npillmayer/psfgen/core/unitable"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestHeaderBytes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.psf")
	defer teardown()
	//
	h := Header{
		HasUnicodeTable: false,
		GlyphCount:      256,
		GlyphSize:       32,
		GlyphHeight:     16,
		GlyphWidth:      16,
	}
	b := h.Bytes()
	want := []byte{
		0x72, 0xb5, 0x4a, 0x86, // magic
		0x00, 0x00, 0x00, 0x00, // version
		0x20, 0x00, 0x00, 0x00, // header size
		0x00, 0x00, 0x00, 0x00, // flags
		0x00, 0x01, 0x00, 0x00, // glyph count
		0x20, 0x00, 0x00, 0x00, // glyph size
		0x10, 0x00, 0x00, 0x00, // height
		0x10, 0x00, 0x00, 0x00, // width
	}
	assert.Equal(t, want, b[:])
}

func TestHeaderFlags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.psf")
	defer teardown()
	//
	h := Header{HasUnicodeTable: true}
	b := h.Bytes()
	assert.EqualValues(t, 1, binary.LittleEndian.Uint32(b[12:16]))
}

func TestFontSerialization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.psf")
	defer teardown()
	//
	a := glyph.New(8, 8, "A")
	a.SetBit(0, 0)
	b := glyph.New(8, 8, "B")
	b.SetBit(7, 7)
	set, err := NewGlyphSet([]glyph.Bitmap{a, b}, false)
	if err != nil {
		t.Fatalf("cannot build glyph set: %v", err)
	}
	f := NewFont(set, nil)
	assert.EqualValues(t, 2, f.Header.GlyphCount)
	assert.EqualValues(t, 8, f.Header.GlyphSize)
	assert.False(t, f.Header.HasUnicodeTable)
	//
	var buf bytes.Buffer
	n, err := f.WriteTo(&buf)
	if err != nil {
		t.Fatalf("cannot serialize font: %v", err)
	}
	assert.EqualValues(t, HeaderSize+2*8, n)
	out := buf.Bytes()
	assert.Equal(t, Magic[:], out[0:4])
	assert.Equal(t, a.Data, out[HeaderSize:HeaderSize+8])
	assert.Equal(t, b.Data, out[HeaderSize+8:HeaderSize+16])
	assert.Equal(t, out, f.Bytes())
}

func TestTrailerEncoding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.psf")
	defer teardown()
	//
	// glyph 0: 'A'; glyph 1: 'Á' with the equivalent combining sequence
	table := &unitable.Table{Sets: []unitable.EquivalenceSet{
		{unitable.Grapheme{'A'}},
		{unitable.Grapheme{0x00c1}, unitable.Grapheme{'A', 0x0301}},
	}}
	trailer := trailerBytes(table)
	want := []byte{'A', 0xff}
	want = append(want, []byte("Á")...)
	want = append(want, 0xfe)
	want = append(want, []byte("Á")...)
	want = append(want, 0xff)
	assert.Equal(t, want, trailer)
}

func TestFontWithTrailer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "psfgen.psf")
	defer teardown()
	//
	g := glyph.New(4, 4, "A")
	set, err := NewGlyphSet([]glyph.Bitmap{g}, false)
	if err != nil {
		t.Fatalf("cannot build glyph set: %v", err)
	}
	table := &unitable.Table{Sets: []unitable.EquivalenceSet{{unitable.Grapheme{'A'}}}}
	f := NewFont(set, table)
	assert.True(t, f.Header.HasUnicodeTable)
	out := f.Bytes()
	// trailer follows directly after the glyph data
	assert.Equal(t, []byte{'A', 0xff}, out[HeaderSize+set.Length:])
}
