package extract

import (
	"image"
	"image/draw"
	"math"

	"github.com/npillmayer/psfgen/core"
	"github.com/npillmayer/psfgen/core/glyph"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// rasterize renders the vector outline of a codepoint's glyph onto a
// canvas of the target height, with the canvas width taken from the
// glyph's horizontal advance. A pixel is set iff its outline coverage is
// at least 0.5; no greyscale information is retained.
//
// Pixels are positioned relative to the font's baseline, which sits
// ascent pixels below the canvas top. Covered pixels falling outside the
// canvas are dropped with a trace diagnostic, as are pixels with partial
// coverage ("imperfect outline"); neither condition is an error.
func (e *Extractor) rasterize(r rune) (glyph.Bitmap, error) {
	sf := e.font.SFNT
	gid, err := sf.GlyphIndex(&e.buffer, r)
	if err != nil {
		return glyph.Bitmap{}, core.WrapError(err, core.EINVALID, "cannot map codepoint %q to a glyph", r)
	}
	adv, err := sf.GlyphAdvance(&e.buffer, gid, e.ppem, xfont.HintingNone)
	if err != nil {
		return glyph.Bitmap{}, core.WrapError(err, core.EINVALID, "cannot read advance of glyph for %q", r)
	}
	width := int(math.Ceil(float64(adv) / 64.0))
	segments, err := sf.LoadGlyph(&e.buffer, gid, e.ppem, nil)
	if err != nil {
		return glyph.Bitmap{}, core.WrapError(err, core.EINVALID, "cannot load outline of glyph for %q", r)
	}
	tracer().Debugf("rasterizing %q onto a canvas of %d x %d px", r, e.height, width)
	bm := glyph.New(e.height, width, string(r))
	if len(segments) == 0 {
		return bm, nil // blank glyph, e.g. a space
	}
	// Pixel bounding box of the outline. Segment coordinates are in
	// pixels (26.6), y growing downwards, origin on the baseline; the
	// control points of the curve ops bound the curves.
	minX, minY, maxX, maxY := segmentBounds(segments)
	bw, bh := maxX-minX, maxY-minY
	if bw <= 0 || bh <= 0 {
		return bm, nil
	}
	z := vector.NewRasterizer(bw, bh)
	z.DrawOp = draw.Src
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			z.MoveTo(vecArg(seg.Args[0], minX, minY))
		case sfnt.SegmentOpLineTo:
			z.LineTo(vecArg(seg.Args[0], minX, minY))
		case sfnt.SegmentOpQuadTo:
			bx, by := vecArg(seg.Args[0], minX, minY)
			cx, cy := vecArg(seg.Args[1], minX, minY)
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := vecArg(seg.Args[0], minX, minY)
			cx, cy := vecArg(seg.Args[1], minX, minY)
			dx, dy := vecArg(seg.Args[2], minX, minY)
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	coverage := image.NewAlpha(image.Rect(0, 0, bw, bh))
	z.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})
	for y := 0; y < bh; y++ {
		for x := 0; x < bw; x++ {
			a := coverage.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			if a != 0xff {
				tracer().Debugf("imperfect outline of %q: coverage %d/255 at (%d,%d)", r, a, x+minX, y+minY)
			}
			if a < 0x80 { // coverage below 0.5
				continue
			}
			tx, ty := x+minX, y+minY+e.ascent
			if tx < 0 || tx >= width || ty < 0 || ty >= e.height {
				tracer().Debugf("dropping out-of-canvas pixel (%d,%d) of %q", tx, ty, r)
				continue
			}
			bm.SetBit(tx, ty)
		}
	}
	return bm, nil
}

// segmentBounds returns the pixel bounding box of a glyph's segments,
// relative to the baseline origin.
func segmentBounds(segments sfnt.Segments) (minX, minY, maxX, maxY int) {
	minX, minY = math.MaxInt32, math.MaxInt32
	maxX, maxY = math.MinInt32, math.MinInt32
	point := func(p fixed.Point26_6) {
		if x := p.X.Floor(); x < minX {
			minX = x
		}
		if x := p.X.Ceil(); x > maxX {
			maxX = x
		}
		if y := p.Y.Floor(); y < minY {
			minY = y
		}
		if y := p.Y.Ceil(); y > maxY {
			maxY = y
		}
	}
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo, sfnt.SegmentOpLineTo:
			point(seg.Args[0])
		case sfnt.SegmentOpQuadTo:
			point(seg.Args[0])
			point(seg.Args[1])
		case sfnt.SegmentOpCubeTo:
			point(seg.Args[0])
			point(seg.Args[1])
			point(seg.Args[2])
		}
	}
	return minX, minY, maxX, maxY
}

// vecArg translates a segment point into the rasterizer's coordinate
// space, anchored at the bounding box origin.
func vecArg(p fixed.Point26_6, minX, minY int) (float32, float32) {
	return float32(p.X)/64 - float32(minX), float32(p.Y)/64 - float32(minY)
}
