package sbit

import (
	"fmt"

	"github.com/npillmayer/psfgen/core/glyph"
)

// Bitmap is a raw embedded glyph image, as stored in the font's bitmap
// data table.
type Bitmap struct {
	Width, Height int
	Packed        bool   // rows bit-packed, no per-row padding to byte boundaries
	Format        string // image format name, for diagnostics
	Data          []byte
}

// strike is one bitmap size record: a set of pre-rendered images for a
// single pixels-per-em size.
type strike struct {
	arrayOffset  uint32 // offset of the index subtable array, from start of the location table
	numSubtables uint32
	startGlyph   uint16
	endGlyph     uint16
	ppemX, ppemY uint8
	bitDepth     uint8
}

// Table provides access to the embedded bitmap glyphs of one font.
type Table struct {
	loc     fontBinSegm // EBLC, bloc or CBLC
	dat     fontBinSegm // EBDT, bdat or CBDT
	strikes []strike
}

// Parse locates the embedded-bitmap table pair of an OpenType font and
// parses the location table's strike directory. Fonts without embedded
// bitmaps yield (nil, nil).
func Parse(fontBinary []byte) (*Table, error) {
	src := fontBinSegm(fontBinary)
	base := 0
	version, err := src.u32(0)
	if err != nil {
		return nil, err
	}
	if version == 0x74746366 { // 'ttcf', font collection: use the first font
		first, err := src.u32(12)
		if err != nil {
			return nil, err
		}
		base = int(first)
	}
	numTables, err := src.u16(base + 4)
	if err != nil {
		return nil, err
	}
	// "The table directory follows the table directory header …", 16 bytes
	// per record: tag, checksum, offset, length.
	records, err := src.view(base+12, 16*int(numTables))
	if err != nil {
		return nil, errFontFormat("table record entries")
	}
	tables := make(map[string]fontBinSegm)
	for b := records; len(b) > 0; b = b[16:] {
		tag := string(b[0:4])
		off, size := u32(b[8:12]), u32(b[12:16])
		switch tag {
		case "EBLC", "EBDT", "bloc", "bdat", "CBLC", "CBDT":
			seg, err := src.view(int(off), int(size))
			if err != nil {
				return nil, errFontFormat("bitmap table " + tag + " out of bounds")
			}
			tables[tag] = seg
		}
	}
	t := &Table{}
	switch {
	case tables["EBLC"] != nil && tables["EBDT"] != nil:
		t.loc, t.dat = tables["EBLC"], tables["EBDT"]
	case tables["bloc"] != nil && tables["bdat"] != nil:
		t.loc, t.dat = tables["bloc"], tables["bdat"]
	case tables["CBLC"] != nil && tables["CBDT"] != nil:
		t.loc, t.dat = tables["CBLC"], tables["CBDT"]
	default:
		return nil, nil // font has no embedded bitmaps
	}
	if err := t.parseStrikes(); err != nil {
		return nil, err
	}
	tracer().Debugf("font has %d embedded bitmap strikes", len(t.strikes))
	return t, nil
}

// parseStrikes reads the bitmapSize records of the location table,
// 48 bytes each.
func (t *Table) parseStrikes() error {
	major, err := t.loc.u16(0)
	if err != nil {
		return err
	}
	if major != 2 && major != 3 { // EBLC/bloc is 2.0, CBLC is 3.0
		return errFontFormat(fmt.Sprintf("bitmap location table version %d", major))
	}
	numSizes, err := t.loc.u32(4)
	if err != nil {
		return err
	}
	records, err := t.loc.view(8, 48*int(numSizes))
	if err != nil {
		return errFontFormat("bitmapSize records")
	}
	t.strikes = make([]strike, numSizes)
	for i := range t.strikes {
		b := records[48*i : 48*(i+1)]
		t.strikes[i] = strike{
			arrayOffset:  u32(b[0:4]),
			numSubtables: u32(b[8:12]),
			startGlyph:   u16(b[40:42]),
			endGlyph:     u16(b[42:44]),
			ppemX:        b[44],
			ppemY:        b[45],
			bitDepth:     b[46],
		}
	}
	return nil
}

// Lookup returns the embedded bitmap for a glyph at exactly the given
// pixel height, or nil if the font has no strike of that size or no image
// for the glyph. Images in encodings which cannot be normalized to a
// monochrome bitmap make Lookup fail with glyph.FormatUnsupportedError;
// callers are expected to rasterize the glyph's outline instead.
func (t *Table) Lookup(gid uint16, ppem int) (*Bitmap, error) {
	s := t.findStrike(ppem)
	if s == nil {
		tracer().Debugf("no embedded bitmap strike for %d ppem", ppem)
		return nil, nil
	}
	if gid < s.startGlyph || gid > s.endGlyph {
		return nil, nil
	}
	if s.bitDepth != 1 {
		return nil, glyph.FormatUnsupportedError{Format: fmt.Sprintf("bit depth %d", s.bitDepth)}
	}
	// IndexSubTableArray: 8-byte records of (firstGlyphIndex,
	// lastGlyphIndex, additionalOffsetToIndexSubtable).
	array, err := t.loc.view(int(s.arrayOffset), 8*int(s.numSubtables))
	if err != nil {
		return nil, errFontFormat("index subtable array")
	}
	for b := array; len(b) > 0; b = b[8:] {
		first, last := u16(b[0:2]), u16(b[2:4])
		if gid < first || gid > last {
			continue
		}
		subOff := int(s.arrayOffset) + int(u32(b[4:8]))
		return t.lookupSubtable(gid, first, last, subOff)
	}
	return nil, nil
}

func (t *Table) findStrike(ppem int) *strike {
	for i := range t.strikes {
		if int(t.strikes[i].ppemY) == ppem {
			return &t.strikes[i]
		}
	}
	return nil
}

// lookupSubtable locates the image data for gid within one index subtable
// and decodes its metrics.
func (t *Table) lookupSubtable(gid, first, last uint16, subOff int) (*Bitmap, error) {
	header, err := t.loc.view(subOff, 8)
	if err != nil {
		return nil, errFontFormat("index subtable header")
	}
	indexFormat := u16(header[0:2])
	imageFormat := u16(header[2:4])
	imageDataOffset := u32(header[4:8])
	idx := int(gid - first)
	var off, size int
	var metrics []byte // constant big metrics, index format 2 only
	switch indexFormat {
	case 1: // variable metrics, 32-bit offsets
		offsets, err := t.loc.view(subOff+8, 4*(int(last-first)+2))
		if err != nil {
			return nil, errFontFormat("index subtable offsets")
		}
		o1, o2 := u32(offsets[4*idx:]), u32(offsets[4*idx+4:])
		if o2 <= o1 {
			return nil, nil // no image for this glyph
		}
		off, size = int(imageDataOffset+o1), int(o2-o1)
	case 3: // variable metrics, 16-bit offsets
		offsets, err := t.loc.view(subOff+8, 2*(int(last-first)+2))
		if err != nil {
			return nil, errFontFormat("index subtable offsets")
		}
		o1, o2 := u16(offsets[2*idx:]), u16(offsets[2*idx+2:])
		if o2 <= o1 {
			return nil, nil
		}
		off, size = int(imageDataOffset+uint32(o1)), int(o2-o1)
	case 2: // constant metrics, constant image size
		b, err := t.loc.view(subOff+8, 12)
		if err != nil {
			return nil, errFontFormat("index subtable format 2")
		}
		imageSize := int(u32(b[0:4]))
		metrics = b[4:12]
		off, size = int(imageDataOffset)+idx*imageSize, imageSize
	default:
		return nil, glyph.FormatUnsupportedError{Format: fmt.Sprintf("index format %d", indexFormat)}
	}
	data, err := t.dat.view(off, size)
	if err != nil {
		return nil, errFontFormat("glyph image data out of bounds")
	}
	return decodeImage(imageFormat, data, metrics)
}

// decodeImage interprets one glyph image. metrics is non-nil iff constant
// big metrics from the index subtable apply (image format 5).
func decodeImage(format uint16, data, metrics []byte) (*Bitmap, error) {
	switch format {
	case 1, 2: // small metrics: height, width, bearingX, bearingY, advance
		if len(data) < 5 {
			return nil, errFontFormat("glyph image metrics")
		}
		h, w := int(data[0]), int(data[1])
		return imageBits(format, h, w, data[5:], format == 2)
	case 6, 7: // big metrics, 8 bytes
		if len(data) < 8 {
			return nil, errFontFormat("glyph image metrics")
		}
		h, w := int(data[0]), int(data[1])
		return imageBits(format, h, w, data[8:], format == 7)
	case 5: // metrics in the location table, bit-packed data
		if metrics == nil {
			return nil, glyph.FormatUnsupportedError{Format: "image format 5 without constant metrics"}
		}
		h, w := int(metrics[0]), int(metrics[1])
		return imageBits(format, h, w, data, true)
	case 8, 9:
		return nil, glyph.FormatUnsupportedError{Format: fmt.Sprintf("composite image format %d", format)}
	case 17, 18, 19:
		return nil, glyph.FormatUnsupportedError{Format: fmt.Sprintf("PNG colour image format %d", format)}
	default:
		return nil, glyph.FormatUnsupportedError{Format: fmt.Sprintf("image format %d", format)}
	}
}

func imageBits(format uint16, h, w int, data []byte, packed bool) (*Bitmap, error) {
	need := h * glyph.Stride(w)
	if packed {
		need = (h*w + 7) / 8
	}
	if len(data) < need {
		return nil, errFontFormat("glyph image data too short")
	}
	return &Bitmap{
		Width:  w,
		Height: h,
		Packed: packed,
		Format: fmt.Sprintf("image format %d", format),
		Data:   data[:need],
	}, nil
}
