/*
Package psf assembles glyph bitmaps into a PSF2 font and serializes it.

A PSF2 font file consists of a fixed 32-byte header, the raw bitmap data
of all glyphs in glyph-index order, and an optional Unicode table trailer
mapping graphemes to glyph indices. The serialization is a pure,
single-pass encode: all validation has happened when the glyph set was
assembled, so writing cannot fail halfway for semantic reasons.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package psf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'psfgen.psf'.
func tracer() tracing.Trace {
	return tracing.Select("psfgen.psf")
}
