/*
Package psfgen converts scalable OpenType fonts into PSF2 bitmap console
fonts.

The conversion is a one-shot, single-threaded pipeline: load the font,
load or synthesize a Unicode table, render one monochrome bitmap per
table entry (preferring embedded raster images over rasterized outlines),
assemble the bitmaps into a dimensionally uniform glyph set, and
serialize header, glyphs and optional Unicode table trailer into the
output file.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package psfgen

import (
	"os"

	"github.com/npillmayer/psfgen/core"
	"github.com/npillmayer/psfgen/core/font"
	"github.com/npillmayer/psfgen/core/unitable"
	"github.com/npillmayer/psfgen/engine/extract"
	"github.com/npillmayer/psfgen/engine/psf"
	"github.com/npillmayer/psfgen/engine/report"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'psfgen'.
func tracer() tracing.Trace {
	return tracing.Select("psfgen")
}

// Defaults for Options fields left zero.
const (
	DefaultHeight     = 16
	DefaultGlyphCount = 256
)

// Options control a conversion run.
type Options struct {
	// Height is the target glyph height in pixels. Zero means
	// DefaultHeight.
	Height int
	// TablePath optionally names a Unicode table file. Without a table,
	// the font will contain glyphs for the codepoints 0 … GlyphCount-1.
	TablePath string
	// GlyphCount limits the number of glyphs. With a table, the table is
	// truncated to this many entries right after parsing; without one,
	// zero means DefaultGlyphCount.
	GlyphCount int
	// Pad makes differently-sized glyphs legal by padding all of them to
	// the largest occurring dimensions. Without Pad, any dimension
	// mismatch between glyphs is an error.
	Pad bool
}

// Convert converts an OpenType font into a PSF2 font file. fontPath may
// be a file path or the name of an installed system font.
func Convert(fontPath, outputPath string, opts Options) error {
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}
	sf, err := font.ResolveFont(fontPath)
	if err != nil {
		return err
	}
	tracer().Infof("converting font %s at %d px", sf.Fontname, opts.Height)
	var table *unitable.Table
	if opts.TablePath != "" {
		if table, err = unitable.Load(opts.TablePath, opts.GlyphCount); err != nil {
			return err
		}
	}
	ex, err := extract.New(sf, opts.Height)
	if err != nil {
		return err
	}
	var set *psf.GlyphSet
	if table != nil {
		set, err = psf.BuildGlyphSet(ex, table, opts.Pad)
	} else {
		count := opts.GlyphCount
		if count <= 0 {
			count = DefaultGlyphCount
		}
		set, err = psf.BuildGlyphSet(ex, unitable.Default(count), opts.Pad)
	}
	if err != nil {
		return err
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot create output file %q", outputPath)
	}
	if _, err = psf.NewFont(set, table).WriteTo(out); err != nil {
		out.Close()
		return core.WrapError(err, core.EINTERNAL, "cannot write PSF2 font: %v", err)
	}
	if err = out.Close(); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write PSF2 font: %v", err)
	}
	tracer().Infof("wrote PSF2 font file %s", outputPath)
	return nil
}

// Report renders the glyphs a selector chooses and describes each one:
// its grapheme, how the font stores it, and its pixel dimensions.
// fontPath may be a file path or the name of an installed system font.
func Report(fontPath string, height int, sel report.Selector) ([]report.GlyphReport, error) {
	if height == 0 {
		height = DefaultHeight
	}
	sf, err := font.ResolveFont(fontPath)
	if err != nil {
		return nil, err
	}
	return report.Glyphs(sf, height, sel)
}
