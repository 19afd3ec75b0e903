/*
Package font is for loading and naming OpenType fonts.

Fonts are kept as raw binary data plus a parsed SFNT container. The raw
data stays available after parsing because the embedded-bitmap tables
(sub-package sbit) navigate the font's binary directly.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"io/ioutil"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/psfgen/core"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'psfgen.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("psfgen.fonts")
}

// ScalableFont is an OpenType font, i.e. a variant of a typeface with a
// certain weight, slant, etc.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// LoadOpenTypeFont loads an OpenType font from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := ioutil.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %q", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont interprets font binary data as an OpenType font.
func ParseOpenTypeFont(fbytes []byte) (*ScalableFont, error) {
	f := &ScalableFont{Binary: fbytes}
	sf, err := sfnt.Parse(fbytes)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid OpenType font: %v", err)
	}
	f.SFNT = sf
	f.Fontname, _ = sf.Name(nil, sfnt.NameIDFull)
	return f, nil
}

// ResolveFont locates and loads a font, either from a file path or, if no
// file of that name exists, from the system's font directories.
func ResolveFont(name string) (*ScalableFont, error) {
	if _, err := os.Stat(name); err == nil {
		return LoadOpenTypeFont(name)
	}
	fpath, err := findfont.Find(name) // try to find as system font
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "font not found: %s", name)
	}
	tracer().Infof("found font file %s", fpath)
	return LoadOpenTypeFont(fpath)
}

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	var err error
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}
