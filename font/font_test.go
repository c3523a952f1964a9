package font

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pdfwalk/objects"
	"pdfwalk/xref"
)

func fontDict(kv map[string]objects.Object) *objects.DictObj {
	d := objects.NewDict()
	d.Set("Type", objects.NewName("Font"))
	for k, v := range kv {
		d.Set(k, v)
	}
	return d
}

func resourcesWithFonts(fonts map[string]objects.Object) *objects.DictObj {
	fd := objects.NewDict()
	for label, f := range fonts {
		fd.Set(label, f)
	}
	res := objects.NewDict()
	res.Set("Font", fd)
	return res
}

func TestBuildTableSimpleFont(t *testing.T) {
	res := resourcesWithFonts(map[string]objects.Object{
		"F1": fontDict(map[string]objects.Object{
			"Subtype":  objects.NewName("Type1"),
			"BaseFont": objects.NewName("Helvetica"),
			"Encoding": objects.NewName("WinAnsiEncoding"),
		}),
	})
	table := NewBuilder(xref.New(nil, nil, "1.4"), nil, nil).BuildTable(res)
	require.Len(t, table, 1)
	f := table["F1"]
	require.Equal(t, "F1", f.Label)
	require.Equal(t, "Type1", f.Subtype)
	require.Equal(t, "Helvetica", f.BaseFont)
	require.Equal(t, "WinAnsiEncoding", f.Encoding.Name())
	require.Nil(t, f.ToUnicode)
	require.Equal(t, []byte("é"), f.DecodeText([]byte{0xE9}))
}

func TestBuildTableResolvesReferences(t *testing.T) {
	objs := map[objects.Ref]objects.Object{
		{Num: 7, Gen: 0}: fontDict(map[string]objects.Object{
			"Subtype":  objects.NewName("TrueType"),
			"BaseFont": objects.NewName("Arial"),
		}),
	}
	res := resourcesWithFonts(map[string]objects.Object{"F2": objects.NewRef(7, 0)})
	table := NewBuilder(xref.New(objs, nil, "1.4"), nil, nil).BuildTable(res)
	require.Len(t, table, 1)
	require.Equal(t, "Arial", table["F2"].BaseFont)
	// Missing Encoding entry defaults to StandardEncoding.
	require.Equal(t, "StandardEncoding", table["F2"].Encoding.Name())
}

func TestBuildTableToUnicode(t *testing.T) {
	cmapSrc := `1 begincodespacerange
<00> <FF>
endcodespacerange
1 beginbfchar
<41> <0070>
endbfchar`
	tounicode := objects.NewStream(objects.NewDict(), []byte(cmapSrc))
	res := resourcesWithFonts(map[string]objects.Object{
		"F1": fontDict(map[string]objects.Object{
			"Subtype":   objects.NewName("Type1"),
			"Encoding":  objects.NewName("WinAnsiEncoding"),
			"ToUnicode": tounicode,
		}),
	})
	table := NewBuilder(xref.New(nil, nil, "1.4"), nil, nil).BuildTable(res)
	f := table["F1"]
	require.NotNil(t, f.ToUnicode)
	// The ToUnicode map wins over the base encoding.
	require.Equal(t, []byte("p"), f.DecodeText([]byte{0x41}))
}

func TestBuildTableBrokenToUnicodeIsSwallowed(t *testing.T) {
	tounicode := objects.NewStream(objects.NewDict(), []byte("not a cmap"))
	res := resourcesWithFonts(map[string]objects.Object{
		"F1": fontDict(map[string]objects.Object{
			"Subtype":   objects.NewName("Type1"),
			"Encoding":  objects.NewName("WinAnsiEncoding"),
			"ToUnicode": tounicode,
		}),
	})
	table := NewBuilder(xref.New(nil, nil, "1.4"), nil, nil).BuildTable(res)
	f := table["F1"]
	require.NotNil(t, f, "font survives a broken ToUnicode")
	require.Nil(t, f.ToUnicode)
	require.Equal(t, []byte("é"), f.DecodeText([]byte{0xE9}))
}

func TestBuildTableCompositeFont(t *testing.T) {
	descendants := objects.NewArray(fontDict(map[string]objects.Object{
		"Subtype": objects.NewName("CIDFontType2"),
	}))
	res := resourcesWithFonts(map[string]objects.Object{
		"F1": fontDict(map[string]objects.Object{
			"Subtype":         objects.NewName("Type0"),
			"BaseFont":        objects.NewName("NotoSans"),
			"Encoding":        objects.NewName("Identity-H"),
			"DescendantFonts": descendants,
		}),
	})
	table := NewBuilder(xref.New(nil, nil, "1.4"), nil, nil).BuildTable(res)
	f := table["F1"]
	require.Equal(t, "Type0", f.Subtype)
	require.NotNil(t, f.DescendantFonts)
	require.Equal(t, []byte("AB"), f.DecodeText([]byte{0x00, 0x41, 0x00, 0x42}))
}

func TestBuildTableNonDictResources(t *testing.T) {
	table := NewBuilder(xref.New(nil, nil, "1.4"), nil, nil).BuildTable(nil)
	require.Empty(t, table)
}
