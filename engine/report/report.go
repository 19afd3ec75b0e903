/*
Package report produces per-glyph reports about a font: how each glyph is
stored (embedded bitmap, vector outline, or not defined at all) and which
pixel dimensions it renders to. Reports are informational; the conversion
pipeline does not depend on this package.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/psfgen/core/font"
	"github.com/npillmayer/psfgen/core/unitable"
	"github.com/npillmayer/psfgen/engine/extract"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"golang.org/x/text/unicode/runenames"
)

// tracer writes to trace with key 'psfgen.report'.
func tracer() tracing.Trace {
	return tracing.Select("psfgen.report")
}

// GlyphReport describes one glyph of a font.
type GlyphReport struct {
	Grapheme string
	Class    extract.Class
	Height   int
	Width    int
}

func (r GlyphReport) String() string {
	return fmt.Sprintf("%s: %s, %d x %d px", charInfo(r.Grapheme), r.Class, r.Height, r.Width)
}

// charInfo formats a grapheme together with its codepoint values and,
// for single codepoints, the Unicode character name.
func charInfo(g string) string {
	runes := []rune(g)
	if len(runes) == 1 {
		r := runes[0]
		return fmt.Sprintf("'%c' (U+%04X, %s)", r, r, runenames.Name(r))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "'%s' (", g)
	for i, r := range runes {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "U+%04X", r)
	}
	b.WriteByte(')')
	return b.String()
}

// A Selector chooses the graphemes a report covers.
type Selector interface {
	Graphemes() ([]unitable.Grapheme, error)
}

// ForString selects every grapheme cluster of a text, using Unicode
// grapheme cluster segmentation.
func ForString(s string) Selector {
	return stringSelector(s)
}

// ForRange selects the codepoint range lo … hi inclusive, e.g. a Unicode
// block. Invalid scalar values within the range are skipped.
func ForRange(lo, hi rune) Selector {
	return rangeSelector{lo: lo, hi: hi}
}

// ForTable selects the reference grapheme of every equivalence set of a
// Unicode table file.
func ForTable(path string) Selector {
	return tableSelector(path)
}

type stringSelector string

func (s stringSelector) Graphemes() ([]unitable.Grapheme, error) {
	grapheme.SetupGraphemeClasses()
	onGraphemes := grapheme.NewBreaker(1)
	segmenter := segment.NewSegmenter(onGraphemes)
	segmenter.Init(strings.NewReader(string(s)))
	var gs []unitable.Grapheme
	for segmenter.Next() {
		gs = append(gs, unitable.Grapheme(string(segmenter.Bytes())))
	}
	return gs, nil
}

type rangeSelector struct {
	lo, hi rune
}

func (s rangeSelector) Graphemes() ([]unitable.Grapheme, error) {
	var gs []unitable.Grapheme
	for r := s.lo; r <= s.hi; r++ {
		if !utf8.ValidRune(r) {
			continue
		}
		gs = append(gs, unitable.Grapheme{r})
	}
	return gs, nil
}

type tableSelector string

func (s tableSelector) Graphemes() ([]unitable.Grapheme, error) {
	table, err := unitable.Load(string(s), 0)
	if err != nil {
		return nil, err
	}
	gs := make([]unitable.Grapheme, 0, table.Len())
	for _, set := range table.Sets {
		gs = append(gs, set.Reference())
	}
	return gs, nil
}

// Glyphs renders every selected grapheme at the given pixel height and
// reports its storage classification and dimensions.
func Glyphs(f *font.ScalableFont, height int, sel Selector) ([]GlyphReport, error) {
	ex, err := extract.New(f, height)
	if err != nil {
		return nil, err
	}
	graphemes, err := sel.Graphemes()
	if err != nil {
		return nil, err
	}
	reports := make([]GlyphReport, 0, len(graphemes))
	for _, g := range graphemes {
		bm, err := ex.RenderGrapheme(g)
		if err != nil {
			return nil, err
		}
		reports = append(reports, GlyphReport{
			Grapheme: g.String(),
			Class:    ex.Classify(g[0]),
			Height:   bm.Height,
			Width:    bm.Width,
		})
	}
	tracer().Debugf("reporting on %d glyphs", len(reports))
	return reports, nil
}
