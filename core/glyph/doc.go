/*
Package glyph implements monochrome glyph bitmaps, PSF2-style: one bit per
pixel, most significant bit first, rows stored top-to-bottom and padded to
byte boundaries.

Bitmaps are value types. Transforms like Add and Pad consume their operands
and produce new bitmaps; a Bitmap is never mutated in place.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyph

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'psfgen.glyph'.
func tracer() tracing.Trace {
	return tracing.Select("psfgen.glyph")
}
