/*
Package sbit reads embedded bitmap glyphs ("sbits") from OpenType fonts.

OpenType fonts may carry pre-rendered raster images of their glyphs in
table pairs EBLC/EBDT (monochrome and greyscale), bloc/bdat (the Apple
variant, identical layout) or CBLC/CBDT (colour). This package locates the
table pair, navigates its strikes and index subtables, and hands out raw
glyph images together with their pixel dimensions and row layout.

Only monochrome images (bit depth 1) in the byte-aligned or bit-packed
image formats are produced. Every other encoding, including the PNG-based
colour formats of CBDT, is reported as an unsupported format, so that the
caller can fall back to rasterizing the glyph's outline.

Code comments often cite the OpenType specification version 1.9,
https://docs.microsoft.com/en-us/typography/opentype/spec/eblc.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sbit

import (
	"github.com/npillmayer/psfgen/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'psfgen.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("psfgen.fonts")
}

// errFontFormat produces user level errors for font parsing.
func errFontFormat(x string) error {
	return core.Error(core.EFORMAT, "OpenType font format: %s", x)
}
