package psf

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/npillmayer/psfgen/core/unitable"
)

// Fixed format values of the PSF2 container.
const (
	HeaderSize = 32 // size of the header, in bytes
	Version    = 0  // the only existing PSF2 version

	flagHasUnicodeTable = 0x00000001

	graphemeJoiner  = 0xfe // starts a multi-codepoint grapheme in the trailer
	entryTerminator = 0xff // terminates each equivalence set entry
)

// Magic identifies a PSF2 font file.
var Magic = [4]byte{0x72, 0xb5, 0x4a, 0x86}

// Header is the header of a PSF2 font file. All fields are serialized as
// little-endian 32-bit values.
type Header struct {
	// HasUnicodeTable specifies whether a Unicode mapping table trailer is
	// included. If false, glyph i simply represents codepoint i.
	HasUnicodeTable bool
	// GlyphCount is the number of glyphs in the font. The format allows
	// arbitrarily many; the Linux console accepts up to 512.
	GlyphCount uint32
	// GlyphSize is the number of bytes used to store each glyph.
	GlyphSize uint32
	// GlyphHeight is the height in pixels of each glyph.
	GlyphHeight uint32
	// GlyphWidth is the width in pixels of each glyph.
	GlyphWidth uint32
}

// Bytes encodes the header into its 32-byte wire form.
func (h Header) Bytes() [HeaderSize]byte {
	var flags uint32
	if h.HasUnicodeTable {
		flags = flagHasUnicodeTable
	}
	var b [HeaderSize]byte
	copy(b[0:4], Magic[:])
	binary.LittleEndian.PutUint32(b[4:8], Version)
	binary.LittleEndian.PutUint32(b[8:12], HeaderSize)
	binary.LittleEndian.PutUint32(b[12:16], flags)
	binary.LittleEndian.PutUint32(b[16:20], h.GlyphCount)
	binary.LittleEndian.PutUint32(b[20:24], h.GlyphSize)
	binary.LittleEndian.PutUint32(b[24:28], h.GlyphHeight)
	binary.LittleEndian.PutUint32(b[28:32], h.GlyphWidth)
	return b
}

// Font is a complete PSF2 font: header, glyph set and optional Unicode
// table. It is assembled once and immutable thereafter.
type Font struct {
	Header Header
	Glyphs *GlyphSet
	Table  *unitable.Table // emitted as trailer iff non-nil
}

// NewFont combines a glyph set and an optional Unicode table into a font,
// deriving the header from the set's dimensions.
func NewFont(set *GlyphSet, table *unitable.Table) *Font {
	return &Font{
		Header: Header{
			HasUnicodeTable: table != nil,
			GlyphCount:      uint32(len(set.Glyphs)),
			GlyphSize:       uint32(set.Length),
			GlyphHeight:     uint32(set.Height),
			GlyphWidth:      uint32(set.Width),
		},
		Glyphs: set,
		Table:  table,
	}
}

// WriteTo serializes the font. It implements io.WriterTo.
func (f *Font) WriteTo(w io.Writer) (int64, error) {
	var total int64
	hdr := f.Header.Bytes()
	n, err := w.Write(hdr[:])
	total += int64(n)
	if err != nil {
		return total, err
	}
	for _, g := range f.Glyphs.Glyphs {
		n, err = w.Write(g.Data)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	if f.Table != nil {
		n, err = w.Write(trailerBytes(f.Table))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	tracer().Debugf("wrote PSF2 font, %d bytes", total)
	return total, nil
}

// Bytes serializes the font into a byte slice.
func (f *Font) Bytes() []byte {
	var buf bytes.Buffer
	f.WriteTo(&buf) // writing to a bytes.Buffer cannot fail
	return buf.Bytes()
}

// trailerBytes encodes the Unicode table trailer. For each equivalence
// set, in glyph order: every single-codepoint grapheme as raw UTF-8,
// every multi-codepoint grapheme prefixed with the joiner marker, then
// the entry terminator. Graphemes are already sorted single-codepoint
// first by the table parser, so no re-sorting happens here.
func trailerBytes(t *unitable.Table) []byte {
	var buf []byte
	for _, set := range t.Sets {
		for _, g := range set {
			if len(g) > 1 {
				buf = append(buf, graphemeJoiner)
			}
			buf = append(buf, g.String()...)
		}
		buf = append(buf, entryTerminator)
	}
	return buf
}
