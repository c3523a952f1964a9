package walker

import (
	"testing"

	"pdfwalk/objects"
)

func TestDecodeStringsUTF16(t *testing.T) {
	in := objects.NewString([]byte{0xFE, 0xFF, 0x00, 0x41, 0x00, 0x42})
	out := DecodeStrings(in).(objects.StringObj)
	if string(out.Bytes) != "AB" {
		t.Errorf("utf16 string: got %q", out.Bytes)
	}
}

func TestDecodeStringsPDFDocFallback(t *testing.T) {
	in := objects.NewString([]byte{0x41, 0x42})
	out := DecodeStrings(in).(objects.StringObj)
	if string(out.Bytes) != "AB" {
		t.Errorf("pdfdoc string: got %q", out.Bytes)
	}
	// PDFDocEncoding maps 0x84 to an em dash.
	em := DecodeStrings(objects.NewString([]byte{0x84})).(objects.StringObj)
	if string(em.Bytes) != "—" {
		t.Errorf("pdfdoc 0x84: got %q", em.Bytes)
	}
}

func TestDecodeStringsRecursesContainers(t *testing.T) {
	dict := objects.NewDict()
	dict.Set("Titles", objects.NewArray(
		objects.NewString([]byte{0xFE, 0xFF, 0x00, 0x58}),
		objects.NewInt(3),
	))
	out := DecodeStrings(dict).(*objects.DictObj)
	arr, _ := objects.ArrayValue(objects.DictGet(out, "Titles"))
	first, _ := arr.At(0)
	if string(first.(objects.StringObj).Bytes) != "X" {
		t.Errorf("nested string: got %q", first.(objects.StringObj).Bytes)
	}
	second, _ := arr.At(1)
	if _, ok := objects.IntValue(second); !ok {
		t.Errorf("non-string passthrough: %+v", second)
	}
}
