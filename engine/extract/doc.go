/*
Package extract produces monochrome glyph bitmaps from OpenType fonts.

For every codepoint two sources are tried, in order and without retry:

▪︎ an embedded raster image at the target pixel height (see package
core/font/sbit), normalized to the byte-aligned layout,

▪︎ rasterization of the glyph's vector outline, thresholding pixel
coverage at 0.5.

An embedded image in an unsupported encoding never aborts extraction; a
diagnostic is traced and the outline is rasterized instead.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package extract

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'psfgen.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("psfgen.fonts")
}
