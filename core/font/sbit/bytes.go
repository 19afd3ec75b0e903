package sbit

// Reading bytes from a font's binary representation. All multi-byte values
// in sfnt structures are big-endian.

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler.
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler.
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// fontBinSegm is a segment of byte data. We use it throughout this package
// to navigate the font's binary data.
type fontBinSegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b fontBinSegm) view(offset, n int) (fontBinSegm, error) {
	if offset < 0 || n <= 0 || offset+n > len(b) {
		return nil, errFontFormat("buffer bounds overflow")
	}
	return b[offset : offset+n], nil
}

// u16 returns the uint16 in b at the offset i.
func (b fontBinSegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// u32 returns the uint32 in b at the offset i.
func (b fontBinSegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}
