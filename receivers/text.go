package receivers

import (
	"strings"

	"pdfwalk/objects"
	"pdfwalk/walker"
)

// PageText is the accumulated text of one page.
type PageText struct {
	Page    int
	Content string
}

// TextReceiver collects the decoded runs of every show-text operator, one
// buffer per page. Line breaks are approximated from the text-positioning
// operators; no layout model is built.
type TextReceiver struct {
	walker.NopReceiver

	pages   []PageText
	current strings.Builder
	page    int
	open    bool
}

// Pages returns the collected page texts.
func (r *TextReceiver) Pages() []PageText {
	r.flush()
	return r.pages
}

// Text returns all pages joined by form feeds.
func (r *TextReceiver) Text() string {
	r.flush()
	parts := make([]string, len(r.pages))
	for i, p := range r.pages {
		parts[i] = p.Content
	}
	return strings.Join(parts, "\f")
}

func (r *TextReceiver) flush() {
	if !r.open {
		return
	}
	r.pages = append(r.pages, PageText{
		Page:    r.page,
		Content: strings.TrimSpace(r.current.String()),
	})
	r.current.Reset()
	r.open = false
}

func (r *TextReceiver) BeginPage(objects.Dictionary) {
	r.flush()
	r.open = true
	r.page = len(r.pages)
}

func (r *TextReceiver) EndPage() { r.flush() }

func (r *TextReceiver) newline() {
	if r.current.Len() > 0 {
		r.current.WriteByte('\n')
	}
}

func (r *TextReceiver) writeStrings(ops []objects.Object) {
	for _, op := range ops {
		switch v := op.(type) {
		case objects.StringObj:
			r.current.Write(v.Bytes)
		case *objects.ArrayObj:
			r.writeStrings(v.Items)
		}
	}
}

func (r *TextReceiver) ShowText(ops []objects.Object)                { r.writeStrings(ops) }
func (r *TextReceiver) ShowTextWithPositioning(ops []objects.Object) { r.writeStrings(ops) }

func (r *TextReceiver) MoveToNextLineAndShowText(ops []objects.Object) {
	r.newline()
	r.writeStrings(ops)
}

func (r *TextReceiver) SetSpacingNextLineShowText(ops []objects.Object) {
	r.newline()
	r.writeStrings(ops)
}

func (r *TextReceiver) MoveToStartOfNextLine([]objects.Object) { r.newline() }

func (r *TextReceiver) MoveTextPosition(ops []objects.Object) {
	if len(ops) == 2 {
		if dy, ok := objects.FloatValue(ops[1]); ok && dy != 0 {
			r.newline()
		}
	}
}

func (r *TextReceiver) MoveTextPositionAndSetLeading(ops []objects.Object) {
	r.MoveTextPosition(ops)
}

var _ walker.Receiver = (*TextReceiver)(nil)
