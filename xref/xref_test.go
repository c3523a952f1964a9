package xref

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"pdfwalk/objects"
)

func TestObjectDereference(t *testing.T) {
	target := objects.NewDict()
	target.Set("Marker", objects.NewInt(7))
	x := New(map[objects.Ref]objects.Object{{Num: 5, Gen: 0}: target}, nil, "1.7")

	resolved, ok := objects.DictValue(x.Object(objects.NewRef(5, 0)))
	require.True(t, ok)
	marker, _ := objects.IntValue(objects.DictGet(resolved, "Marker"))
	require.Equal(t, int64(7), marker)

	// Non-references pass through unchanged.
	n := objects.NewInt(3)
	require.Equal(t, n, x.Object(n))

	// Missing references resolve to null.
	require.IsType(t, objects.NullObj{}, x.Object(objects.NewRef(99, 0)))

	require.Equal(t, "1.7", x.Version())
}

const testPDF = `%PDF-1.4
1 0 obj
<< /Type /Catalog /Pages 2 0 R >>
endobj
2 0 obj
<< /Type /Pages /Kids [3 0 R] /Count 1 >>
endobj
3 0 obj
<< /Type /Page /Parent 2 0 R /Contents 4 0 R >>
endobj
4 0 obj
<< /Length 9 >>
stream
BT ET q Q
endstream
endobj
trailer
<< /Root 1 0 R /Size 5 >>
`

func TestLoadClassicFile(t *testing.T) {
	x, err := Load(context.Background(), bytes.NewReader([]byte(testPDF)), LoadConfig{})
	require.NoError(t, err)
	require.Equal(t, "1.4", x.Version())

	root := x.Root()
	require.NotNil(t, root)
	typ, _ := objects.DictName(root, "Type")
	require.Equal(t, "Catalog", typ)

	pages, ok := objects.DictValue(x.Object(objects.DictGet(root, "Pages")))
	require.True(t, ok)
	count, _ := objects.IntValue(objects.DictGet(pages, "Count"))
	require.Equal(t, int64(1), count)

	kids, ok := objects.ArrayValue(x.Object(objects.DictGet(pages, "Kids")))
	require.True(t, ok)
	kid, _ := kids.At(0)
	pageDict, ok := objects.DictValue(x.Object(kid))
	require.True(t, ok)
	content, ok := x.Object(objects.DictGet(pageDict, "Contents")).(objects.Stream)
	require.True(t, ok)
	require.Equal(t, "BT ET q Q", string(content.RawData()))
}

func TestLoadMissingTrailerFails(t *testing.T) {
	_, err := Load(context.Background(), bytes.NewReader([]byte("%PDF-1.4\n1 0 obj << >> endobj")), LoadConfig{})
	require.Error(t, err)
}

func TestLoadObjectStream(t *testing.T) {
	objA := "<< /A 1 >>"
	objB := "<< /B 2 >>"
	header := fmt.Sprintf("5 0 6 %d ", len(objA))
	payload := header + objA + objB

	pdf := fmt.Sprintf(`%%PDF-1.5
1 0 obj
<< /Type /Catalog >>
endobj
2 0 obj
<< /Type /ObjStm /N 2 /First %d /Length %d >>
stream
%s
endstream
endobj
trailer
<< /Root 1 0 R >>
`, len(header), len(payload), payload)

	x, err := Load(context.Background(), bytes.NewReader([]byte(pdf)), LoadConfig{})
	require.NoError(t, err)

	a, ok := objects.DictValue(x.Object(objects.NewRef(5, 0)))
	require.True(t, ok)
	av, _ := objects.IntValue(objects.DictGet(a, "A"))
	require.Equal(t, int64(1), av)

	b, ok := objects.DictValue(x.Object(objects.NewRef(6, 0)))
	require.True(t, ok)
	bv, _ := objects.IntValue(objects.DictGet(b, "B"))
	require.Equal(t, int64(2), bv)
}
