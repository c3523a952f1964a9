package walker

import (
	"pdfwalk/encodings"
	"pdfwalk/objects"
)

var pdfDocEncoding = encodings.New(objects.NewName("PDFDocEncoding"))

// DecodeStrings converts every byte string inside obj to UTF-8, recursing
// through dictionaries and arrays. Strings opening with the UTF-16BE byte
// order mark are decoded as UTF-16BE; everything else is PDFDocEncoding.
// Used for top-level metadata, never for content-stream text.
func DecodeStrings(obj objects.Object) objects.Object {
	switch v := obj.(type) {
	case objects.StringObj:
		return objects.NewString(decodeMetaString(v.Bytes))
	case *objects.ArrayObj:
		out := &objects.ArrayObj{Items: make([]objects.Object, 0, len(v.Items))}
		for _, item := range v.Items {
			out.Append(DecodeStrings(item))
		}
		return out
	case *objects.DictObj:
		out := objects.NewDict()
		for key, val := range v.KV {
			out.Set(key, DecodeStrings(val))
		}
		return out
	default:
		return obj
	}
}

func decodeMetaString(b []byte) []byte {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		return encodings.UTF16BEToUTF8(b[2:])
	}
	return pdfDocEncoding.ToUTF8(b)
}
