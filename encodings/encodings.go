// Package encodings converts PDF byte strings to UTF-8. Simple fonts map
// single bytes through a base encoding plus optional Differences; composite
// fonts using the Identity mappings carry two-byte code units.
package encodings

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"pdfwalk/objects"
)

// Encoding converts encoded byte strings into UTF-8.
type Encoding struct {
	name     string
	base     *charmap.Charmap
	table    *[256]rune
	identity bool
	diffs    map[byte]rune
}

// New builds an encoding from a font's Encoding entry: a name such as
// /WinAnsiEncoding, or a dictionary with BaseEncoding and Differences. An
// unrecognized or absent spec yields StandardEncoding, mirroring the PDF
// default for simple fonts.
func New(spec objects.Object) *Encoding {
	switch v := spec.(type) {
	case objects.Name:
		return fromName(v.Value())
	case objects.Dictionary:
		base, _ := objects.DictName(v, "BaseEncoding")
		enc := fromName(base)
		if diffArr, ok := objects.ArrayValue(objects.DictGet(v, "Differences")); ok {
			enc = enc.withDifferences(diffArr)
		}
		return enc
	default:
		return fromName("StandardEncoding")
	}
}

func fromName(name string) *Encoding {
	switch name {
	case "WinAnsiEncoding":
		return &Encoding{name: name, base: charmap.Windows1252}
	case "MacRomanEncoding":
		return &Encoding{name: name, base: charmap.Macintosh}
	case "PDFDocEncoding":
		return &Encoding{name: name, table: &pdfDocTable}
	case "Identity-H", "Identity-V":
		return &Encoding{name: name, identity: true}
	default:
		return &Encoding{name: "StandardEncoding", table: &standardTable}
	}
}

// Name reports the canonical name of the encoding.
func (e *Encoding) Name() string { return e.name }

// withDifferences overlays a Differences array: runs of glyph names preceded
// by the code of the first glyph in the run.
func (e *Encoding) withDifferences(arr objects.Array) *Encoding {
	out := *e
	out.diffs = make(map[byte]rune)
	code := 0
	for i := 0; i < arr.Len(); i++ {
		item, _ := arr.At(i)
		if n, ok := objects.IntValue(item); ok {
			code = int(n)
			continue
		}
		if name, ok := objects.NameValue(item); ok {
			if code >= 0 && code < 256 {
				if r, ok := runeForGlyphName(name); ok {
					out.diffs[byte(code)] = r
				}
			}
			code++
		}
	}
	return &out
}

// ToUTF8 converts data to UTF-8 bytes.
func (e *Encoding) ToUTF8(data []byte) []byte {
	if e.identity {
		return utf16BEToUTF8(data)
	}
	out := make([]byte, 0, len(data))
	var buf [utf8.UTFMax]byte
	for _, b := range data {
		r := e.decodeByte(b)
		n := utf8.EncodeRune(buf[:], r)
		out = append(out, buf[:n]...)
	}
	return out
}

func (e *Encoding) decodeByte(b byte) rune {
	if e.diffs != nil {
		if r, ok := e.diffs[b]; ok {
			return r
		}
	}
	if e.base != nil {
		return e.base.DecodeByte(b)
	}
	if e.table != nil {
		return e.table[b]
	}
	return rune(b)
}

// UTF16BEToUTF8 converts big-endian UTF-16 code units to UTF-8. A trailing
// odd byte is dropped.
func UTF16BEToUTF8(data []byte) []byte { return utf16BEToUTF8(data) }

func utf16BEToUTF8(data []byte) []byte {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return []byte(string(utf16.Decode(units)))
}
