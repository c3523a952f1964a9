// Package walker drives a parsed PDF object graph through a receiver: it
// recurses the page tree, maintains the resource inheritance chain, and
// interprets each page's content streams into operator callbacks.
package walker

import (
	"context"

	"pdfwalk/filters"
	"pdfwalk/font"
	"pdfwalk/objects"
	"pdfwalk/observability"
	"pdfwalk/xref"
)

// Walker walks one document at a time. Its resource stack is instance state;
// the operand stack and current font start fresh on every content-stream run.
// Use one Walker per document and do not share across goroutines.
type Walker struct {
	xref      *xref.Xref
	receiver  Receiver
	log       observability.Logger
	pipe      *filters.Pipeline
	fonts     *font.Builder
	operators map[string]string
	resources resourceStack
}

type Option func(*Walker)

// WithLogger routes the walker's diagnostics (swallowed anomalies) to log.
func WithLogger(log observability.Logger) Option {
	return func(w *Walker) { w.log = log }
}

// WithFilters substitutes the filter pipeline used for content and metadata
// streams.
func WithFilters(pipe *filters.Pipeline) Option {
	return func(w *Walker) { w.pipe = pipe }
}

// New builds a walker that resolves objects through x and reports events to
// receiver.
func New(x *xref.Xref, receiver Receiver, opts ...Option) *Walker {
	w := &Walker{
		xref:      x,
		receiver:  receiver,
		log:       observability.NopLogger{},
		operators: OperatorNames(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.pipe == nil {
		w.pipe = filters.Default()
	}
	w.fonts = font.NewBuilder(x, w.pipe, w.log)
	return w
}

// Metadata fires the metadata callbacks: version, decoded info dictionary,
// raw XML metadata payload, and page count. Missing fields are skipped.
func (w *Walker) Metadata(root, info objects.Dictionary) {
	w.receiver.PDFVersion(w.xref.Version())

	if info != nil && info.Len() > 0 {
		if decoded, ok := DecodeStrings(w.resolveReferences(info)).(objects.Dictionary); ok {
			w.receiver.Metadata(decoded)
		}
	}

	if md, ok := root.Get("Metadata"); ok {
		if stream, ok := w.xref.Object(md).(objects.Stream); ok {
			data, err := w.pipe.DecodeStream(context.Background(), stream)
			if err != nil {
				w.log.Warn("xml metadata decode failed", observability.Error("err", err))
			} else {
				w.receiver.XMLMetadata(data)
			}
		}
	}

	if pages, ok := objects.DictValue(w.xref.Object(objects.DictGet(root, "Pages"))); ok {
		if count, ok := objects.IntValue(w.xref.Object(objects.DictGet(pages, "Count"))); ok {
			w.receiver.PageCount(int(count))
		}
	}
}

// Document walks the page tree under root. On a malformed content stream the
// error propagates after the resource stack unwinds and no further
// callbacks fire.
func (w *Walker) Document(root objects.Dictionary) error {
	w.receiver.BeginDocument(root)
	if pages, ok := objects.DictValue(w.xref.Object(objects.DictGet(root, "Pages"))); ok {
		if err := w.walkPages(pages); err != nil {
			return err
		}
	}
	w.receiver.EndDocument()
	return nil
}

// walkPages dispatches on the node type: containers recurse into Kids with
// their resources pushed, leaves interpret their content. Unknown types are
// ignored.
func (w *Walker) walkPages(node objects.Dictionary) error {
	typ, _ := objects.DictName(node, "Type")
	switch typ {
	case "Pages":
		w.receiver.BeginPageContainer(node)
		if err := w.walkKids(node); err != nil {
			return err
		}
		w.receiver.EndPageContainer()
	case "Page":
		w.receiver.BeginPage(node)
		if err := w.walkPage(node); err != nil {
			return err
		}
		w.receiver.EndPage()
	default:
		w.log.Debug("ignoring page tree node", observability.String("type", typ))
	}
	return nil
}

func (w *Walker) walkKids(node objects.Dictionary) error {
	defer w.pushResources(node)()
	kids, ok := objects.ArrayValue(w.xref.Object(objects.DictGet(node, "Kids")))
	if !ok {
		return nil
	}
	for i := 0; i < kids.Len(); i++ {
		item, _ := kids.At(i)
		kid, ok := objects.DictValue(w.xref.Object(item))
		if !ok {
			continue
		}
		if err := w.walkPages(kid); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkPage(node objects.Dictionary) error {
	defer w.pushResources(node)()
	merged := w.resources.current()
	w.walkResources(merged)
	fonts := w.fonts.BuildTable(merged)
	for _, stream := range w.contentStreams(node) {
		if err := w.interpretStream(stream, fonts); err != nil {
			return err
		}
	}
	return nil
}

// pushResources pushes the node's own Resources entry, if any, and returns
// the matching pop for deferral. Nodes without resources get a no-op pair so
// every visit stays balanced.
func (w *Walker) pushResources(node objects.Dictionary) func() {
	res, ok := objects.DictValue(w.xref.Object(objects.DictGet(node, "Resources")))
	if !ok {
		return func() {}
	}
	w.resources.push(res)
	return w.resources.pop
}

// contentStreams normalizes a page's Contents entry to an ordered sequence:
// it may be a single stream or an array of streams, possibly indirect.
func (w *Walker) contentStreams(node objects.Dictionary) []objects.Stream {
	var out []objects.Stream
	switch v := w.xref.Object(objects.DictGet(node, "Contents")).(type) {
	case objects.Stream:
		out = append(out, v)
	case objects.Array:
		for i := 0; i < v.Len(); i++ {
			item, _ := v.At(i)
			if stream, ok := w.xref.Object(item).(objects.Stream); ok {
				out = append(out, stream)
			}
		}
	}
	return out
}

// walkResources fires one callback per resource entry after dereferencing
// everything reachable from res. Non-dictionary input is a no-op.
func (w *Walker) walkResources(res objects.Dictionary) {
	if res == nil {
		return
	}
	resolved, ok := w.resolveReferences(res).(objects.Dictionary)
	if !ok {
		return
	}
	if procset, ok := objects.ArrayValue(objects.DictGet(resolved, "ProcSet")); ok {
		w.receiver.ResourceProcSet(procset)
	}
	if xobjects, ok := objects.DictValue(objects.DictGet(resolved, "XObject")); ok {
		for _, name := range xobjects.Keys() {
			w.receiver.ResourceXObject(name, objects.DictGet(xobjects, name))
		}
	}
	if gstates, ok := objects.DictValue(objects.DictGet(resolved, "ExtGState")); ok {
		for _, name := range gstates.Keys() {
			w.receiver.ResourceExtGState(name, objects.DictGet(gstates, name))
		}
	}
	if spaces, ok := objects.DictValue(objects.DictGet(resolved, "ColorSpace")); ok {
		for _, name := range spaces.Keys() {
			w.receiver.ResourceColorSpace(name, objects.DictGet(spaces, name))
		}
	}
	if patterns, ok := objects.DictValue(objects.DictGet(resolved, "Pattern")); ok {
		for _, name := range patterns.Keys() {
			w.receiver.ResourcePattern(name, objects.DictGet(patterns, name))
		}
	}
	if _, ok := resolved.Get("Font"); ok {
		for label, f := range w.fonts.BuildTable(resolved) {
			w.receiver.ResourceFont(label, f)
		}
	}
}

// walkXObjectForm looks up label in the current XObject resources and, when
// it names a Form, interprets the form's content with its own resources
// pushed. Forms nest arbitrarily; the resource stack and the interpreter
// recurse together.
func (w *Walker) walkXObjectForm(label string) error {
	xobjects, ok := objects.DictValue(w.xref.Object(objects.DictGet(w.resources.current(), "XObject")))
	if !ok {
		return nil
	}
	stream, ok := w.xref.Object(objects.DictGet(xobjects, label)).(objects.Stream)
	if !ok {
		return nil
	}
	// Subtype is read off the stream dict as-is; an indirect Subtype would
	// fail the comparison, matching long-standing behavior.
	if subtype, _ := objects.DictName(stream.Dictionary(), "Subtype"); subtype != "Form" {
		return nil
	}

	w.receiver.BeginFormXObject()
	if err := w.walkForm(stream); err != nil {
		return err
	}
	w.receiver.EndFormXObject()
	return nil
}

func (w *Walker) walkForm(stream objects.Stream) error {
	fonts := map[string]*font.Font{}
	res, ok := objects.DictValue(w.xref.Object(objects.DictGet(stream.Dictionary(), "Resources")))
	if ok {
		w.resources.push(res)
		defer w.resources.pop()
		w.walkResources(res)
		fonts = w.fonts.BuildTable(res)
	}
	return w.interpretStream(stream, fonts)
}

// ResourceDepth reports the resource stack depth; exposed for invariants in
// tests and for receivers that want to sanity-check nesting.
func (w *Walker) ResourceDepth() int { return w.resources.depth() }
