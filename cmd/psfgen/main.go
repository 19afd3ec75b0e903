package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/psfgen"
	"github.com/npillmayer/psfgen/core"
	"github.com/npillmayer/psfgen/engine/report"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'psfgen'
func tracer() tracing.Trace {
	return tracing.Select("psfgen")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	height := flag.Int("height", psfgen.DefaultHeight, "Glyph height in pixels")
	table := flag.String("table", "", "Unicode table file")
	count := flag.Int("count", 0, "Number of glyphs (default 256 without a table)")
	pad := flag.Bool("pad", false, "Pad glyphs to uniform dimensions")
	rep := flag.String("report", "", "Report glyphs instead of converting: a string, or a U+xxxx-U+xxxx range")
	flag.Usage = usage
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.psfgen":        *tlevel,
		"trace.psfgen.table":  *tlevel,
		"trace.psfgen.glyph":  *tlevel,
		"trace.psfgen.fonts":  *tlevel,
		"trace.psfgen.psf":    *tlevel,
		"trace.psfgen.report": *tlevel,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("Trace level is %s", *tlevel)

	if *rep != "" {
		if flag.NArg() < 1 {
			usage()
			os.Exit(2)
		}
		if err := reportGlyphs(flag.Arg(0), *height, *table, *rep); err != nil {
			fail(err)
		}
		return
	}
	if flag.NArg() < 2 {
		usage()
		os.Exit(2)
	}
	opts := psfgen.Options{
		Height:     *height,
		TablePath:  *table,
		GlyphCount: *count,
		Pad:        *pad,
	}
	if err := psfgen.Convert(flag.Arg(0), flag.Arg(1), opts); err != nil {
		fail(err)
	}
	pterm.Info.Printfln("wrote %s", flag.Arg(1))
}

func reportGlyphs(fontname string, height int, table, rep string) error {
	sel, err := selector(table, rep)
	if err != nil {
		return err
	}
	reports, err := psfgen.Report(fontname, height, sel)
	if err != nil {
		return err
	}
	for _, r := range reports {
		pterm.Println(r.String())
	}
	return nil
}

// selector interprets the -report argument: "table" selects the glyphs of
// the Unicode table given with -table, "U+0041-U+005a" a codepoint range,
// anything else is segmented into graphemes.
func selector(table, rep string) (report.Selector, error) {
	if rep == "table" {
		if table == "" {
			return nil, core.Error(core.EINVALID, "-report table requires a -table file")
		}
		return report.ForTable(table), nil
	}
	if lo, hi, ok := parseRange(rep); ok {
		return report.ForRange(lo, hi), nil
	}
	return report.ForString(rep), nil
}

func parseRange(arg string) (lo, hi rune, ok bool) {
	parts := strings.Split(arg, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	bounds := [2]rune{}
	for i, p := range parts {
		p = strings.TrimPrefix(strings.TrimSpace(p), "U+")
		n, err := strconv.ParseUint(p, 16, 32)
		if err != nil {
			return 0, 0, false
		}
		bounds[i] = rune(n)
	}
	return bounds[0], bounds[1], true
}

func fail(err error) {
	tracer().Errorf("%s", err.Error())
	pterm.Error.Println(core.UserMessage(err))
	os.Exit(3)
}

func usage() {
	pterm.Println("Usage: psfgen [options] <font> <output.psf>")
	pterm.Println("       psfgen [options] -report <selection> <font>")
	flag.PrintDefaults()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
