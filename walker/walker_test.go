package walker_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"pdfwalk/objects"
	"pdfwalk/receivers"
	"pdfwalk/walker"
	"pdfwalk/xref"
)

func dict(kv map[string]objects.Object) *objects.DictObj {
	d := objects.NewDict()
	for k, v := range kv {
		d.Set(k, v)
	}
	return d
}

func contentStream(body string) *objects.StreamObj {
	return objects.NewStream(objects.NewDict(), []byte(body))
}

func newXref(objs map[objects.Ref]objects.Object) *xref.Xref {
	return xref.New(objs, nil, "1.4")
}

// singlePageDoc builds a catalog with one page holding the given content and
// resources.
func singlePageDoc(content string, resources *objects.DictObj) (objects.Dictionary, *xref.Xref) {
	page := dict(map[string]objects.Object{
		"Type":     objects.NewName("Page"),
		"Contents": objects.NewRef(4, 0),
	})
	if resources != nil {
		page.Set("Resources", resources)
	}
	pages := dict(map[string]objects.Object{
		"Type":  objects.NewName("Pages"),
		"Kids":  objects.NewArray(objects.NewRef(3, 0)),
		"Count": objects.NewInt(1),
	})
	root := dict(map[string]objects.Object{
		"Type":  objects.NewName("Catalog"),
		"Pages": objects.NewRef(2, 0),
	})
	x := newXref(map[objects.Ref]objects.Object{
		{Num: 1, Gen: 0}: root,
		{Num: 2, Gen: 0}: pages,
		{Num: 3, Gen: 0}: page,
		{Num: 4, Gen: 0}: contentStream(content),
	})
	return root, x
}

func winAnsiFontResources() *objects.DictObj {
	return dict(map[string]objects.Object{
		"Font": dict(map[string]objects.Object{
			"F1": dict(map[string]objects.Object{
				"Type":     objects.NewName("Font"),
				"Subtype":  objects.NewName("Type1"),
				"BaseFont": objects.NewName("Helvetica"),
				"Encoding": objects.NewName("WinAnsiEncoding"),
			}),
		}),
	})
}

// operatorEvents strips lifecycle and resource events so scenario tests can
// pin operator callbacks exactly.
func operatorEvents(events []receivers.Event) []receivers.Event {
	var out []receivers.Event
	for _, e := range events {
		switch e.Name {
		case "begin_document", "end_document", "begin_page", "end_page",
			"begin_page_container", "end_page_container",
			"resource_procset", "resource_xobject", "resource_extgstate",
			"resource_colorspace", "resource_pattern", "resource_font":
			continue
		}
		out = append(out, e)
	}
	return out
}

func TestEmptyDocument(t *testing.T) {
	pages := dict(map[string]objects.Object{
		"Type":  objects.NewName("Pages"),
		"Kids":  objects.NewArray(),
		"Count": objects.NewInt(0),
	})
	root := dict(map[string]objects.Object{
		"Type":  objects.NewName("Catalog"),
		"Pages": objects.NewRef(2, 0),
	})
	x := newXref(map[objects.Ref]objects.Object{
		{Num: 1, Gen: 0}: root,
		{Num: 2, Gen: 0}: pages,
	})

	recv := &receivers.TraceReceiver{}
	w := walker.New(x, recv)
	require.NoError(t, w.Document(root))

	want := []string{"begin_document", "begin_page_container", "end_page_container", "end_document"}
	if diff := cmp.Diff(want, recv.Names()); diff != "" {
		t.Errorf("event sequence mismatch (-want +got):\n%s", diff)
	}
	require.Zero(t, w.ResourceDepth())
}

func TestMetadataEmptyInfo(t *testing.T) {
	pages := dict(map[string]objects.Object{
		"Type":  objects.NewName("Pages"),
		"Kids":  objects.NewArray(),
		"Count": objects.NewInt(0),
	})
	root := dict(map[string]objects.Object{
		"Type":  objects.NewName("Catalog"),
		"Pages": pages,
	})
	x := newXref(nil)

	recv := &receivers.TraceReceiver{}
	walker.New(x, recv).Metadata(root, objects.NewDict())

	want := []string{"pdf_version", "page_count"}
	if diff := cmp.Diff(want, recv.Names()); diff != "" {
		t.Errorf("metadata events (-want +got):\n%s", diff)
	}
	require.Equal(t, "1.4", string(recv.Events[0].Operands[0].(objects.StringObj).Bytes))
	require.Equal(t, int64(0), recv.Events[1].Operands[0].(objects.NumberObj).I)
}

func TestMetadataInfoStrings(t *testing.T) {
	root := dict(map[string]objects.Object{"Type": objects.NewName("Catalog")})
	info := dict(map[string]objects.Object{
		"Title":  objects.NewString([]byte{0xFE, 0xFF, 0x00, 'A', 0x00, 'B'}),
		"Author": objects.NewString([]byte{'A', 'B'}),
	})
	recv := &receivers.TraceReceiver{}
	walker.New(newXref(nil), recv).Metadata(root, info)

	require.Equal(t, []string{"pdf_version", "metadata"}, recv.Names())
	decoded := recv.Events[1].Operands[0].(*objects.DictObj)
	title, _ := objects.StringValue(objects.DictGet(decoded, "Title"))
	author, _ := objects.StringValue(objects.DictGet(decoded, "Author"))
	require.Equal(t, "AB", string(title))
	require.Equal(t, "AB", string(author))
}

func TestSinglePageTextObject(t *testing.T) {
	root, x := singlePageDoc("BT /F1 12 Tf (Hi) Tj ET", winAnsiFontResources())
	recv := &receivers.TraceReceiver{}
	w := walker.New(x, recv)
	require.NoError(t, w.Document(root))

	ops := operatorEvents(recv.Events)
	require.Len(t, ops, 4)
	require.Equal(t, "begin_text_object", ops[0].Name)
	require.Empty(t, ops[0].Operands)

	require.Equal(t, "set_text_font_and_size", ops[1].Name)
	require.Equal(t, objects.NewName("F1"), ops[1].Operands[0])
	require.Equal(t, int64(12), ops[1].Operands[1].(objects.NumberObj).I)

	require.Equal(t, "show_text", ops[2].Name)
	require.Equal(t, "Hi", string(ops[2].Operands[0].(objects.StringObj).Bytes))

	require.Equal(t, "end_text_object", ops[3].Name)
	require.Zero(t, w.ResourceDepth())
}

func TestShowTextWinAnsiDecoding(t *testing.T) {
	root, x := singlePageDoc("BT /F1 12 Tf (\xe9) Tj ET", winAnsiFontResources())
	recv := &receivers.TraceReceiver{}
	require.NoError(t, walker.New(x, recv).Document(root))

	ops := operatorEvents(recv.Events)
	require.Equal(t, "show_text", ops[2].Name)
	require.Equal(t, []byte("é"), ops[2].Operands[0].(objects.StringObj).Bytes)
}

func TestShowTextWithPositioningDecodesArrayElements(t *testing.T) {
	root, x := singlePageDoc("BT /F1 12 Tf [(\xe9) -250 (\xe9)] TJ ET", winAnsiFontResources())
	recv := &receivers.TraceReceiver{}
	require.NoError(t, walker.New(x, recv).Document(root))

	ops := operatorEvents(recv.Events)
	require.Equal(t, "show_text_with_positioning", ops[2].Name)
	arr := ops[2].Operands[0].(*objects.ArrayObj)
	require.Len(t, arr.Items, 3)
	require.Equal(t, []byte("é"), arr.Items[0].(objects.StringObj).Bytes)
	require.Equal(t, int64(-250), arr.Items[1].(objects.NumberObj).I)
	require.Equal(t, []byte("é"), arr.Items[2].(objects.StringObj).Bytes)
}

func TestShowTextWithoutFontPassesRawBytes(t *testing.T) {
	root, x := singlePageDoc("BT (\xe9) Tj ET", nil)
	recv := &receivers.TraceReceiver{}
	require.NoError(t, walker.New(x, recv).Document(root))

	ops := operatorEvents(recv.Events)
	require.Equal(t, "show_text", ops[1].Name)
	require.Equal(t, []byte{0xe9}, ops[1].Operands[0].(objects.StringObj).Bytes)
}

func TestInlineImage(t *testing.T) {
	root, x := singlePageDoc("BI /W 2 /H 2 /CS /G /BPC 8 ID \x00\x01\x02\x03 EI", nil)
	recv := &receivers.TraceReceiver{}
	require.NoError(t, walker.New(x, recv).Document(root))

	ops := operatorEvents(recv.Events)
	require.Equal(t, []string{"begin_inline_image", "begin_inline_image_data", "end_inline_image"},
		[]string{ops[0].Name, ops[1].Name, ops[2].Name})
	require.Empty(t, ops[0].Operands)
	require.Empty(t, ops[2].Operands)

	params := ops[1].Operands[0].(*objects.DictObj)
	w, _ := objects.IntValue(objects.DictGet(params, "W"))
	h, _ := objects.IntValue(objects.DictGet(params, "H"))
	cs, _ := objects.DictName(params, "CS")
	bpc, _ := objects.IntValue(objects.DictGet(params, "BPC"))
	require.Equal(t, int64(2), w)
	require.Equal(t, int64(2), h)
	require.Equal(t, "G", cs)
	require.Equal(t, int64(8), bpc)
	require.Equal(t, []byte{0x00, 0x01, 0x02, 0x03}, ops[1].Operands[1].(objects.StringObj).Bytes)
}

func TestFormXObjectRecursion(t *testing.T) {
	form := objects.NewStream(
		dict(map[string]objects.Object{
			"Type":    objects.NewName("XObject"),
			"Subtype": objects.NewName("Form"),
		}),
		[]byte("q Q"),
	)
	resources := dict(map[string]objects.Object{
		"XObject": dict(map[string]objects.Object{"Fm1": objects.NewRef(5, 0)}),
	})
	page := dict(map[string]objects.Object{
		"Type":      objects.NewName("Page"),
		"Contents":  objects.NewRef(4, 0),
		"Resources": resources,
	})
	pages := dict(map[string]objects.Object{
		"Type": objects.NewName("Pages"),
		"Kids": objects.NewArray(objects.NewRef(3, 0)),
	})
	root := dict(map[string]objects.Object{
		"Type":  objects.NewName("Catalog"),
		"Pages": objects.NewRef(2, 0),
	})
	x := newXref(map[objects.Ref]objects.Object{
		{Num: 2, Gen: 0}: pages,
		{Num: 3, Gen: 0}: page,
		{Num: 4, Gen: 0}: contentStream("/Fm1 Do"),
		{Num: 5, Gen: 0}: form,
	})

	recv := &receivers.TraceReceiver{}
	w := walker.New(x, recv)
	require.NoError(t, w.Document(root))

	ops := operatorEvents(recv.Events)
	want := []string{
		"invoke_xobject",
		"begin_form_xobject",
		"save_graphics_state",
		"restore_graphics_state",
		"end_form_xobject",
	}
	got := make([]string, len(ops))
	for i, e := range ops {
		got[i] = e.Name
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("operator sequence (-want +got):\n%s", diff)
	}
	require.Equal(t, objects.NewName("Fm1"), ops[0].Operands[0])
	require.Zero(t, w.ResourceDepth())
}

func TestTruncatedContentStreamIsMalformed(t *testing.T) {
	root, x := singlePageDoc("BT (oh no", nil)
	recv := &receivers.TraceReceiver{}
	w := walker.New(x, recv)

	err := w.Document(root)
	var malformed *walker.MalformedPDFError
	require.True(t, errors.As(err, &malformed))
	require.Equal(t, "End Of File while processing a content stream", malformed.Error())
	require.Zero(t, w.ResourceDepth())

	// No callbacks fire past the failure: the text object opened but the
	// page and document never closed.
	names := recv.Names()
	require.Equal(t, "begin_text_object", names[len(names)-1])
	require.NotContains(t, names, "end_page")
	require.NotContains(t, names, "end_document")
}

func TestNestedPageContainers(t *testing.T) {
	page := dict(map[string]objects.Object{
		"Type":     objects.NewName("Page"),
		"Contents": objects.NewRef(5, 0),
	})
	inner := dict(map[string]objects.Object{
		"Type": objects.NewName("Pages"),
		"Kids": objects.NewArray(objects.NewRef(4, 0)),
	})
	outer := dict(map[string]objects.Object{
		"Type": objects.NewName("Pages"),
		"Kids": objects.NewArray(objects.NewRef(3, 0)),
	})
	root := dict(map[string]objects.Object{
		"Type":  objects.NewName("Catalog"),
		"Pages": objects.NewRef(2, 0),
	})
	x := newXref(map[objects.Ref]objects.Object{
		{Num: 2, Gen: 0}: outer,
		{Num: 3, Gen: 0}: inner,
		{Num: 4, Gen: 0}: page,
		{Num: 5, Gen: 0}: contentStream(""),
	})

	recv := &receivers.TraceReceiver{}
	require.NoError(t, walker.New(x, recv).Document(root))

	want := []string{
		"begin_document",
		"begin_page_container",
		"begin_page_container",
		"begin_page",
		"end_page",
		"end_page_container",
		"end_page_container",
		"end_document",
	}
	if diff := cmp.Diff(want, recv.Names()); diff != "" {
		t.Errorf("event sequence (-want +got):\n%s", diff)
	}
}

func TestUnknownPageTreeTypeIgnored(t *testing.T) {
	odd := dict(map[string]objects.Object{"Type": objects.NewName("Sprocket")})
	pages := dict(map[string]objects.Object{
		"Type": objects.NewName("Pages"),
		"Kids": objects.NewArray(odd),
	})
	root := dict(map[string]objects.Object{
		"Type":  objects.NewName("Catalog"),
		"Pages": pages,
	})

	recv := &receivers.TraceReceiver{}
	require.NoError(t, walker.New(newXref(nil), recv).Document(root))
	want := []string{"begin_document", "begin_page_container", "end_page_container", "end_document"}
	require.Equal(t, want, recv.Names())
}

func TestInheritedResourcesReachThePage(t *testing.T) {
	// The font lives on the Pages container; the leaf page has none of its
	// own, so text must still decode through the inherited table.
	page := dict(map[string]objects.Object{
		"Type":     objects.NewName("Page"),
		"Contents": objects.NewRef(4, 0),
	})
	pages := dict(map[string]objects.Object{
		"Type":      objects.NewName("Pages"),
		"Kids":      objects.NewArray(objects.NewRef(3, 0)),
		"Resources": winAnsiFontResources(),
	})
	root := dict(map[string]objects.Object{
		"Type":  objects.NewName("Catalog"),
		"Pages": objects.NewRef(2, 0),
	})
	x := newXref(map[objects.Ref]objects.Object{
		{Num: 2, Gen: 0}: pages,
		{Num: 3, Gen: 0}: page,
		{Num: 4, Gen: 0}: contentStream("BT /F1 12 Tf (\xe9) Tj ET"),
	})

	recv := &receivers.TraceReceiver{}
	require.NoError(t, walker.New(x, recv).Document(root))

	ops := operatorEvents(recv.Events)
	require.Equal(t, "show_text", ops[2].Name)
	require.Equal(t, []byte("é"), ops[2].Operands[0].(objects.StringObj).Bytes)

	// The inherited font also fires a resource callback on the page.
	require.Contains(t, recv.Names(), "resource_font")
}

func TestContentsArrayRunsPerStream(t *testing.T) {
	// Operands do not leak across streams: each stream gets a fresh
	// interpreter run.
	page := dict(map[string]objects.Object{
		"Type": objects.NewName("Page"),
		"Contents": objects.NewArray(
			objects.NewRef(4, 0),
			objects.NewRef(5, 0),
		),
	})
	pages := dict(map[string]objects.Object{
		"Type": objects.NewName("Pages"),
		"Kids": objects.NewArray(objects.NewRef(3, 0)),
	})
	root := dict(map[string]objects.Object{
		"Type":  objects.NewName("Catalog"),
		"Pages": objects.NewRef(2, 0),
	})
	x := newXref(map[objects.Ref]objects.Object{
		{Num: 2, Gen: 0}: pages,
		{Num: 3, Gen: 0}: page,
		{Num: 4, Gen: 0}: contentStream("1 2"),
		{Num: 5, Gen: 0}: contentStream("q Q"),
	})

	recv := &receivers.TraceReceiver{}
	require.NoError(t, walker.New(x, recv).Document(root))

	ops := operatorEvents(recv.Events)
	require.Equal(t, "save_graphics_state", ops[0].Name)
	require.Empty(t, ops[0].Operands, "operands must not leak across streams")
}

func TestOperandsBeforeUnknownOperatorAttachToNext(t *testing.T) {
	// An unrecognized mnemonic never dispatches; its operands stay pending
	// and ride along with the next recognized operator.
	root, x := singlePageDoc("7 zz 5 w", nil)
	recv := &receivers.TraceReceiver{}
	require.NoError(t, walker.New(x, recv).Document(root))

	ops := operatorEvents(recv.Events)
	require.Len(t, ops, 1)
	require.Equal(t, "set_line_width", ops[0].Name)
	require.Len(t, ops[0].Operands, 2)
	require.Equal(t, int64(7), ops[0].Operands[0].(objects.NumberObj).I)
	require.Equal(t, int64(5), ops[0].Operands[1].(objects.NumberObj).I)
}

// subsetReceiver implements only ShowText on top of the no-op defaults.
type subsetReceiver struct {
	walker.NopReceiver
	shown []string
}

func (r *subsetReceiver) ShowText(ops []objects.Object) {
	for _, op := range ops {
		if s, ok := objects.StringValue(op); ok {
			r.shown = append(r.shown, string(s))
		}
	}
}

func TestReceiverSubsetSilence(t *testing.T) {
	root, x := singlePageDoc("q BT /F1 12 Tf (Hi) Tj ET Q", winAnsiFontResources())
	recv := &subsetReceiver{}
	require.NoError(t, walker.New(x, recv).Document(root))
	require.Equal(t, []string{"Hi"}, recv.shown)
}

func TestResolveReferencesInsideResources(t *testing.T) {
	// The XObject resource value is indirect; the resource callback must see
	// it fully dereferenced.
	inner := dict(map[string]objects.Object{"Marker": objects.NewInt(7)})
	resources := dict(map[string]objects.Object{
		"XObject": dict(map[string]objects.Object{"X1": objects.NewRef(9, 0)}),
	})
	page := dict(map[string]objects.Object{
		"Type":      objects.NewName("Page"),
		"Resources": resources,
	})
	pages := dict(map[string]objects.Object{
		"Type": objects.NewName("Pages"),
		"Kids": objects.NewArray(page),
	})
	root := dict(map[string]objects.Object{
		"Type":  objects.NewName("Catalog"),
		"Pages": pages,
	})
	x := newXref(map[objects.Ref]objects.Object{
		{Num: 9, Gen: 0}: inner,
	})

	recv := &receivers.TraceReceiver{}
	require.NoError(t, walker.New(x, recv).Document(root))

	var found bool
	for _, e := range recv.Events {
		if e.Name == "resource_xobject" {
			found = true
			val, ok := e.Operands[1].(*objects.DictObj)
			require.True(t, ok, "resource value should be dereferenced")
			marker, _ := objects.IntValue(objects.DictGet(val, "Marker"))
			require.Equal(t, int64(7), marker)
		}
	}
	require.True(t, found, "resource_xobject should have fired")
}
