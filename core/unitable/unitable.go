package unitable

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/psfgen/core"
)

// Grapheme is an ordered, non-empty sequence of codepoints treated as a
// single visual unit, e.g. a base character plus a combining mark.
type Grapheme []rune

func (g Grapheme) String() string {
	return string(g)
}

// EquivalenceSet is a non-empty ordered list of graphemes which all map to
// the same glyph. After parsing, the set is stably sorted so that graphemes
// with fewer codepoints come first; element 0 is the reference grapheme,
// the one actually rendered.
type EquivalenceSet []Grapheme

// Reference returns the set's reference grapheme.
func (s EquivalenceSet) Reference() Grapheme {
	return s[0]
}

// Table is an ordered sequence of equivalence sets. A set's position in the
// table is the glyph index it will receive in the font.
type Table struct {
	Sets []EquivalenceSet
}

// Len returns the number of equivalence sets, i.e. the number of glyphs the
// table describes.
func (t *Table) Len() int {
	return len(t.Sets)
}

// Default synthesizes a minimal table mapping the codepoints 0 … n-1 to the
// glyph indices 0 … n-1, with no equivalences. It is used when no table
// file is given.
func Default(n int) *Table {
	t := &Table{Sets: make([]EquivalenceSet, 0, n)}
	for i := 0; i < n; i++ {
		t.Sets = append(t.Sets, EquivalenceSet{Grapheme{rune(i)}})
	}
	return t
}

// Load reads and parses a Unicode table file. If maxGlyphs is positive,
// only the first maxGlyphs equivalence sets are kept; truncation happens
// immediately after parsing, before any glyph gets rendered.
func Load(path string, maxGlyphs int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read Unicode table file %q", path)
	}
	defer f.Close()
	return Parse(f, maxGlyphs)
}

// Parse parses a Unicode table from r. See Load for the meaning of
// maxGlyphs.
//
// The format is line-oriented: '#' starts a comment reaching to the end of
// the line; blank lines are skipped; every other line is one equivalence
// set, a comma-separated list of graphemes, each grapheme one or more
// whitespace-separated U+<hex> tokens.
func Parse(r io.Reader, maxGlyphs int) (*Table, error) {
	table := &Table{}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		set, err := parseSet(line, lineno)
		if err != nil {
			return nil, err
		}
		// list graphemes with fewer codepoints first, preserving input
		// order among equals
		sort.SliceStable(set, func(i, j int) bool {
			return len(set[i]) < len(set[j])
		})
		table.Sets = append(table.Sets, set)
	}
	if err := scanner.Err(); err != nil {
		return nil, core.WrapError(err, core.EMISSING, "I/O error while reading Unicode table")
	}
	if maxGlyphs > 0 && len(table.Sets) > maxGlyphs {
		tracer().Infof("truncating Unicode table from %d to %d entries", len(table.Sets), maxGlyphs)
		table.Sets = table.Sets[:maxGlyphs]
	}
	tracer().Debugf("parsed Unicode table with %d equivalence sets", len(table.Sets))
	return table, nil
}

// parseSet parses one line as an equivalence set.
func parseSet(line string, lineno int) (EquivalenceSet, error) {
	var set EquivalenceSet
	start := 0
	for {
		rest := line[start:]
		end := strings.IndexByte(rest, ',')
		seg := rest
		if end >= 0 {
			seg = rest[:end]
		}
		g, err := parseGrapheme(seg, lineno, start)
		if err != nil {
			return nil, err
		}
		set = append(set, g)
		if end < 0 {
			break
		}
		start += end + 1
	}
	return set, nil
}

// parseGrapheme parses one comma-separated segment as a grapheme. base is
// the byte offset of the segment within its line, used for error positions.
func parseGrapheme(seg string, lineno, base int) (Grapheme, error) {
	var g Grapheme
	i := 0
	for i < len(seg) {
		if seg[i] == ' ' || seg[i] == '\t' {
			i++
			continue
		}
		j := i
		for j < len(seg) && seg[j] != ' ' && seg[j] != '\t' {
			j++
		}
		tok := seg[i:j]
		col := base + i + 1
		if !strings.HasPrefix(tok, "U+") {
			return nil, ParseError{Line: lineno, Col: col,
				Msg: "expected a codepoint token of the form U+<hex>, got " + strconv.Quote(tok)}
		}
		value, err := strconv.ParseUint(tok[2:], 16, 32)
		if err != nil {
			return nil, IntParseError{Token: tok, Err: err}
		}
		if !utf8.ValidRune(rune(value)) {
			return nil, InvalidCodepointError{Value: uint32(value)}
		}
		g = append(g, rune(value))
		i = j
	}
	if len(g) == 0 {
		return nil, ParseError{Line: lineno, Col: base + 1, Msg: "empty grapheme in equivalence set"}
	}
	return g, nil
}
