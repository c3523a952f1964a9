// Package font materializes the font resources a content stream can select,
// bundling each font's encoding and optional ToUnicode map for text decoding.
package font

import (
	"context"

	"pdfwalk/cmap"
	"pdfwalk/encodings"
	"pdfwalk/filters"
	"pdfwalk/objects"
	"pdfwalk/observability"
	"pdfwalk/xref"
)

// Font is one entry of a page's font table.
type Font struct {
	Label           string
	Subtype         string
	BaseFont        string
	Encoding        *encodings.Encoding
	DescendantFonts objects.Object
	ToUnicode       *cmap.CMap
}

// DecodeText converts a show-text byte string to UTF-8. The ToUnicode map
// wins when present; otherwise the font's base encoding applies.
func (f *Font) DecodeText(data []byte) []byte {
	if f.ToUnicode != nil && f.ToUnicode.Len() > 0 {
		return f.ToUnicode.Decode(data)
	}
	return f.Encoding.ToUTF8(data)
}

// Builder constructs font tables from resource dictionaries. Tables are
// rebuilt per page and per Form XObject scope; fonts are cheap enough that
// no cross-scope cache is kept.
type Builder struct {
	xref *xref.Xref
	pipe *filters.Pipeline
	log  observability.Logger
}

func NewBuilder(x *xref.Xref, pipe *filters.Pipeline, log observability.Logger) *Builder {
	if pipe == nil {
		pipe = filters.Default()
	}
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Builder{xref: x, pipe: pipe, log: log}
}

// BuildTable visits the Font sub-dictionary of res and returns one Font per
// label. A missing or misshapen Font entry yields an empty table.
func (b *Builder) BuildTable(res objects.Dictionary) map[string]*Font {
	table := make(map[string]*Font)
	fontsDict, ok := objects.DictValue(b.xref.Object(objects.DictGet(res, "Font")))
	if !ok {
		return table
	}
	for _, label := range fontsDict.Keys() {
		entry := objects.DictGet(fontsDict, label)
		if f := b.build(label, entry); f != nil {
			table[label] = f
		}
	}
	return table
}

func (b *Builder) build(label string, obj objects.Object) *Font {
	dict, ok := objects.DictValue(b.xref.Object(obj))
	if !ok {
		return nil
	}
	f := &Font{Label: label}
	f.Subtype, _ = objects.DictName(dict, "Subtype")
	f.BaseFont, _ = objects.DictName(dict, "BaseFont")
	if v, ok := dict.Get("DescendantFonts"); ok {
		f.DescendantFonts = b.xref.Object(v)
	}
	f.Encoding = encodings.New(b.xref.Object(objects.DictGet(dict, "Encoding")))
	if tu, ok := dict.Get("ToUnicode"); ok {
		f.ToUnicode = b.parseToUnicode(label, b.xref.Object(tu))
	}
	return f
}

// parseToUnicode decodes and parses a ToUnicode stream. Parse failures are
// swallowed: the font stays usable through its base encoding.
func (b *Builder) parseToUnicode(label string, obj objects.Object) *cmap.CMap {
	stream, ok := obj.(objects.Stream)
	if !ok {
		return nil
	}
	data, err := b.pipe.DecodeStream(context.Background(), stream)
	if err != nil {
		b.log.Warn("tounicode stream decode failed",
			observability.String("font", label), observability.Error("err", err))
		return nil
	}
	m, err := cmap.Parse(data)
	if err != nil {
		b.log.Warn("tounicode cmap rejected",
			observability.String("font", label), observability.Error("err", err))
		return nil
	}
	return m
}
