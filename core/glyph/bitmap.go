package glyph

// Bitmap is a monochrome glyph bitmap. Rows are stored top-to-bottom, each
// row padded with zero bits to the next byte boundary. Within a byte the
// leftmost pixel is the most significant bit.
//
// The invariant len(Data) == Height * Stride(Width) holds for every Bitmap
// produced by this package.
type Bitmap struct {
	Height, Width int
	Data          []byte
	Grapheme      string
}

// Stride returns the number of bytes per byte-aligned row for a given pixel
// width.
func Stride(width int) int {
	return (width + 7) / 8
}

// New creates an all-blank bitmap of the given dimensions.
func New(height, width int, grapheme string) Bitmap {
	return Bitmap{
		Height:   height,
		Width:    width,
		Data:     make([]byte, height*Stride(width)),
		Grapheme: grapheme,
	}
}

// FromBytes wraps byte-aligned bitmap data in a Bitmap. It fails with a
// WrongLengthError if the data does not match the dimensions.
func FromBytes(height, width int, data []byte, grapheme string) (Bitmap, error) {
	if len(data) != height*Stride(width) {
		return Bitmap{}, WrongLengthError{Length: len(data), ExpectedLength: height * Stride(width)}
	}
	return Bitmap{Height: height, Width: width, Data: data, Grapheme: grapheme}, nil
}

// Bit reports whether the pixel at (x, y) is set. Coordinates outside the
// bitmap read as clear.
func (g Bitmap) Bit(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}
	return g.Data[y*Stride(g.Width)+(x>>3)]&(0x80>>uint(x&7)) != 0
}

// SetBit sets the pixel at (x, y). Coordinates outside the bitmap are
// ignored.
func (g Bitmap) SetBit(x, y int) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return
	}
	g.Data[y*Stride(g.Width)+(x>>3)] |= 0x80 >> uint(x&7)
}

// Add overlays other onto g and returns the combined bitmap. The two data
// buffers are combined with a bitwise OR, i.e. the union of set pixels,
// which is the correct operation for stacking a combining diacritic over a
// base glyph. The resulting grapheme is g's grapheme followed by other's.
//
// Both operands must have identical dimensions and data lengths; otherwise
// Add fails with WrongDimensionsError or WrongLengthError.
func (g Bitmap) Add(other Bitmap) (Bitmap, error) {
	if g.Height != other.Height || g.Width != other.Width {
		return Bitmap{}, WrongDimensionsError{
			Height:         other.Height,
			Width:          other.Width,
			ExpectedHeight: g.Height,
			ExpectedWidth:  g.Width,
		}
	}
	if len(g.Data) != len(other.Data) {
		return Bitmap{}, WrongLengthError{Length: len(other.Data), ExpectedLength: len(g.Data)}
	}
	sum := Bitmap{
		Height:   g.Height,
		Width:    g.Width,
		Data:     make([]byte, len(g.Data)),
		Grapheme: g.Grapheme + other.Grapheme,
	}
	for i := range g.Data {
		sum.Data[i] = g.Data[i] | other.Data[i]
	}
	return sum, nil
}

// Pad enlarges g's canvas to newHeight x newWidth pixels, anchoring the
// original bitmap at the top-left. Existing rows are padded with zero bytes
// on the right, and all-zero rows are appended at the bottom. The grapheme
// is unchanged.
//
// Pad fails with PadTooSmallError if the new canvas is smaller than g in
// either dimension.
func (g Bitmap) Pad(newHeight, newWidth int) (Bitmap, error) {
	if newHeight < g.Height || newWidth < g.Width {
		return Bitmap{}, PadTooSmallError{
			Height:    g.Height,
			Width:     g.Width,
			PadHeight: newHeight,
			PadWidth:  newWidth,
		}
	}
	tracer().Debugf("padding glyph %q from %d x %d to %d x %d px",
		g.Grapheme, g.Height, g.Width, newHeight, newWidth)
	oldStride, newStride := Stride(g.Width), Stride(newWidth)
	padded := Bitmap{
		Height:   newHeight,
		Width:    newWidth,
		Data:     make([]byte, newHeight*newStride),
		Grapheme: g.Grapheme,
	}
	for row := 0; row < g.Height; row++ {
		copy(padded.Data[row*newStride:], g.Data[row*oldStride:(row+1)*oldStride])
	}
	return padded, nil
}

// PackedToByteAligned converts bitmap data from the packed layout, where
// rows follow each other with no inter-row padding and the row stride is
// exactly width bits, into the byte-aligned layout. Bits are consumed and
// emitted MSB-first.
//
// It fails with a WrongLengthError if data is too short to hold
// height * width bits.
func PackedToByteAligned(data []byte, width, height int) ([]byte, error) {
	need := Stride(width * height)
	if len(data) < need {
		return nil, WrongLengthError{Length: len(data), ExpectedLength: need}
	}
	dstStride := Stride(width)
	out := make([]byte, height*dstStride)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			bit := row*width + col
			if data[bit>>3]&(0x80>>uint(bit&7)) != 0 {
				out[row*dstStride+(col>>3)] |= 0x80 >> uint(col&7)
			}
		}
	}
	return out, nil
}

// ByteAlignedToPacked is the inverse of PackedToByteAligned: it drops the
// per-row padding bits, producing a contiguous MSB-first bit stream with a
// row stride of exactly width bits.
//
// It fails with a WrongLengthError if data is too short for the
// byte-aligned layout.
func ByteAlignedToPacked(data []byte, width, height int) ([]byte, error) {
	srcStride := Stride(width)
	if len(data) < height*srcStride {
		return nil, WrongLengthError{Length: len(data), ExpectedLength: height * srcStride}
	}
	out := make([]byte, Stride(width*height))
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if data[row*srcStride+(col>>3)]&(0x80>>uint(col&7)) != 0 {
				bit := row*width + col
				out[bit>>3] |= 0x80 >> uint(bit&7)
			}
		}
	}
	return out, nil
}
