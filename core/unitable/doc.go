/*
Package unitable implements the Unicode table of a PSF2 font: an ordered
list of codepoint-equivalence classes, loaded from a simple line-oriented
text format.

Each non-blank, non-comment line of a table file is one equivalence set: a
comma-separated list of graphemes, each grapheme a whitespace-separated
sequence of codepoint tokens of the form U+<hex>. The position of a set in
the file becomes the glyph index of the resulting font; the set's first
grapheme (after sorting, see EquivalenceSet) is the one actually rendered.

# Example

	# ASCII letter A and friends
	U+0041
	U+0042 U+0301, U+0042

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package unitable

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'psfgen.table'.
func tracer() tracing.Trace {
	return tracing.Select("psfgen.table")
}
