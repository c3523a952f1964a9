// Package receivers ships reference implementations of walker.Receiver.
package receivers

import (
	"fmt"
	"sort"
	"strings"

	"pdfwalk/font"
	"pdfwalk/objects"
	"pdfwalk/walker"
)

// Event is one recorded walker callback.
type Event struct {
	Name     string
	Operands []objects.Object
}

// TraceReceiver records every event in document order. Tests assert on the
// trace; the CLI prints it.
type TraceReceiver struct {
	Events []Event
}

func (t *TraceReceiver) add(name string, operands ...objects.Object) {
	t.Events = append(t.Events, Event{Name: name, Operands: operands})
}

// Names returns the event names in order.
func (t *TraceReceiver) Names() []string {
	out := make([]string, len(t.Events))
	for i, e := range t.Events {
		out[i] = e.Name
	}
	return out
}

// Dump renders the trace one line per event.
func (t *TraceReceiver) Dump() string {
	var b strings.Builder
	for _, e := range t.Events {
		b.WriteString(e.Name)
		for _, op := range e.Operands {
			b.WriteByte(' ')
			b.WriteString(formatOperand(op))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatOperand(op objects.Object) string {
	switch v := op.(type) {
	case nil:
		return "nil"
	case objects.NameObj:
		return "/" + v.Val
	case objects.StringObj:
		return fmt.Sprintf("(%s)", v.Bytes)
	case objects.NumberObj:
		if v.IsInt {
			return fmt.Sprintf("%d", v.I)
		}
		return fmt.Sprintf("%g", v.F)
	case objects.BoolObj:
		return fmt.Sprintf("%t", v.V)
	case objects.NullObj:
		return "null"
	case *objects.ArrayObj:
		parts := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			parts = append(parts, formatOperand(item))
		}
		return "[" + strings.Join(parts, " ") + "]"
	case *objects.DictObj:
		keys := v.Keys()
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			val, _ := v.Get(k)
			parts = append(parts, "/"+k+" "+formatOperand(val))
		}
		return "<<" + strings.Join(parts, " ") + ">>"
	case objects.RefObj:
		return v.R.String()
	case *objects.StreamObj:
		return fmt.Sprintf("stream(%d)", len(v.Data))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (t *TraceReceiver) BeginDocument(root objects.Dictionary) { t.add("begin_document") }
func (t *TraceReceiver) EndDocument()                          { t.add("end_document") }
func (t *TraceReceiver) BeginPageContainer(node objects.Dictionary) {
	t.add("begin_page_container")
}
func (t *TraceReceiver) EndPageContainer()              { t.add("end_page_container") }
func (t *TraceReceiver) BeginPage(node objects.Dictionary) { t.add("begin_page") }
func (t *TraceReceiver) EndPage()                       { t.add("end_page") }
func (t *TraceReceiver) BeginFormXObject()              { t.add("begin_form_xobject") }
func (t *TraceReceiver) EndFormXObject()                { t.add("end_form_xobject") }

func (t *TraceReceiver) PDFVersion(version string) {
	t.add("pdf_version", objects.NewString([]byte(version)))
}
func (t *TraceReceiver) Metadata(info objects.Dictionary) {
	if d, ok := info.(*objects.DictObj); ok {
		t.add("metadata", d)
	} else {
		t.add("metadata")
	}
}
func (t *TraceReceiver) XMLMetadata(data []byte) { t.add("xml_metadata", objects.NewString(data)) }
func (t *TraceReceiver) PageCount(n int)         { t.add("page_count", objects.NewInt(int64(n))) }

func (t *TraceReceiver) ResourceProcSet(list objects.Array) {
	if a, ok := list.(*objects.ArrayObj); ok {
		t.add("resource_procset", a)
	} else {
		t.add("resource_procset")
	}
}
func (t *TraceReceiver) ResourceXObject(name string, obj objects.Object) {
	t.add("resource_xobject", objects.NewName(name), obj)
}
func (t *TraceReceiver) ResourceExtGState(name string, obj objects.Object) {
	t.add("resource_extgstate", objects.NewName(name), obj)
}
func (t *TraceReceiver) ResourceColorSpace(name string, obj objects.Object) {
	t.add("resource_colorspace", objects.NewName(name), obj)
}
func (t *TraceReceiver) ResourcePattern(name string, obj objects.Object) {
	t.add("resource_pattern", objects.NewName(name), obj)
}
func (t *TraceReceiver) ResourceFont(label string, f *font.Font) {
	t.add("resource_font", objects.NewName(label), objects.NewString([]byte(f.BaseFont)))
}

func (t *TraceReceiver) BeginCompatibilitySection(ops []objects.Object) {
	t.add("begin_compatibility_section", ops...)
}
func (t *TraceReceiver) EndCompatibilitySection(ops []objects.Object) {
	t.add("end_compatibility_section", ops...)
}

func (t *TraceReceiver) BeginTextObject(ops []objects.Object)       { t.add("begin_text_object", ops...) }
func (t *TraceReceiver) EndTextObject(ops []objects.Object)         { t.add("end_text_object", ops...) }
func (t *TraceReceiver) MoveToStartOfNextLine(ops []objects.Object) {
	t.add("move_to_start_of_next_line", ops...)
}
func (t *TraceReceiver) SetCharacterSpacing(ops []objects.Object) {
	t.add("set_character_spacing", ops...)
}
func (t *TraceReceiver) MoveTextPosition(ops []objects.Object) { t.add("move_text_position", ops...) }
func (t *TraceReceiver) MoveTextPositionAndSetLeading(ops []objects.Object) {
	t.add("move_text_position_and_set_leading", ops...)
}
func (t *TraceReceiver) SetTextFontAndSize(ops []objects.Object) {
	t.add("set_text_font_and_size", ops...)
}
func (t *TraceReceiver) ShowText(ops []objects.Object) { t.add("show_text", ops...) }
func (t *TraceReceiver) ShowTextWithPositioning(ops []objects.Object) {
	t.add("show_text_with_positioning", ops...)
}
func (t *TraceReceiver) SetTextLeading(ops []objects.Object) { t.add("set_text_leading", ops...) }
func (t *TraceReceiver) SetTextMatrixAndTextLineMatrix(ops []objects.Object) {
	t.add("set_text_matrix_and_text_line_matrix", ops...)
}
func (t *TraceReceiver) SetTextRenderingMode(ops []objects.Object) {
	t.add("set_text_rendering_mode", ops...)
}
func (t *TraceReceiver) SetTextRise(ops []objects.Object)    { t.add("set_text_rise", ops...) }
func (t *TraceReceiver) SetWordSpacing(ops []objects.Object) { t.add("set_word_spacing", ops...) }
func (t *TraceReceiver) SetHorizontalTextScaling(ops []objects.Object) {
	t.add("set_horizontal_text_scaling", ops...)
}
func (t *TraceReceiver) MoveToNextLineAndShowText(ops []objects.Object) {
	t.add("move_to_next_line_and_show_text", ops...)
}
func (t *TraceReceiver) SetSpacingNextLineShowText(ops []objects.Object) {
	t.add("set_spacing_next_line_show_text", ops...)
}

func (t *TraceReceiver) SaveGraphicsState(ops []objects.Object) {
	t.add("save_graphics_state", ops...)
}
func (t *TraceReceiver) RestoreGraphicsState(ops []objects.Object) {
	t.add("restore_graphics_state", ops...)
}
func (t *TraceReceiver) ConcatenateMatrix(ops []objects.Object) {
	t.add("concatenate_matrix", ops...)
}
func (t *TraceReceiver) SetLineWidth(ops []objects.Object)    { t.add("set_line_width", ops...) }
func (t *TraceReceiver) SetLineCapStyle(ops []objects.Object) { t.add("set_line_cap_style", ops...) }
func (t *TraceReceiver) SetLineJoinStyle(ops []objects.Object) {
	t.add("set_line_join_style", ops...)
}
func (t *TraceReceiver) SetMiterLimit(ops []objects.Object) { t.add("set_miter_limit", ops...) }
func (t *TraceReceiver) SetLineDash(ops []objects.Object)   { t.add("set_line_dash", ops...) }
func (t *TraceReceiver) SetColorRenderingIntent(ops []objects.Object) {
	t.add("set_color_rendering_intent", ops...)
}
func (t *TraceReceiver) SetFlatnessTolerance(ops []objects.Object) {
	t.add("set_flatness_tolerance", ops...)
}
func (t *TraceReceiver) SetGraphicsStateParameters(ops []objects.Object) {
	t.add("set_graphics_state_parameters", ops...)
}

func (t *TraceReceiver) BeginNewSubpath(ops []objects.Object) { t.add("begin_new_subpath", ops...) }
func (t *TraceReceiver) AppendLine(ops []objects.Object)      { t.add("append_line", ops...) }
func (t *TraceReceiver) AppendCurvedSegment(ops []objects.Object) {
	t.add("append_curved_segment", ops...)
}
func (t *TraceReceiver) AppendCurvedSegmentInitialPointReplicated(ops []objects.Object) {
	t.add("append_curved_segment_initial_point_replicated", ops...)
}
func (t *TraceReceiver) AppendCurvedSegmentFinalPointReplicated(ops []objects.Object) {
	t.add("append_curved_segment_final_point_replicated", ops...)
}
func (t *TraceReceiver) CloseSubpath(ops []objects.Object)    { t.add("close_subpath", ops...) }
func (t *TraceReceiver) AppendRectangle(ops []objects.Object) { t.add("append_rectangle", ops...) }

func (t *TraceReceiver) StrokePath(ops []objects.Object) { t.add("stroke_path", ops...) }
func (t *TraceReceiver) CloseAndStrokePath(ops []objects.Object) {
	t.add("close_and_stroke_path", ops...)
}
func (t *TraceReceiver) FillPathWithNonzero(ops []objects.Object) {
	t.add("fill_path_with_nonzero", ops...)
}
func (t *TraceReceiver) FillPathWithEvenOdd(ops []objects.Object) {
	t.add("fill_path_with_even_odd", ops...)
}
func (t *TraceReceiver) FillStroke(ops []objects.Object)      { t.add("fill_stroke", ops...) }
func (t *TraceReceiver) CloseFillStroke(ops []objects.Object) { t.add("close_fill_stroke", ops...) }
func (t *TraceReceiver) FillStrokeWithEvenOdd(ops []objects.Object) {
	t.add("fill_stroke_with_even_odd", ops...)
}
func (t *TraceReceiver) CloseFillStrokeWithEvenOdd(ops []objects.Object) {
	t.add("close_fill_stroke_with_even_odd", ops...)
}
func (t *TraceReceiver) EndPath(ops []objects.Object) { t.add("end_path", ops...) }
func (t *TraceReceiver) SetClippingPathWithNonzero(ops []objects.Object) {
	t.add("set_clipping_path_with_nonzero", ops...)
}
func (t *TraceReceiver) SetClippingPathWithEvenOdd(ops []objects.Object) {
	t.add("set_clipping_path_with_even_odd", ops...)
}

func (t *TraceReceiver) SetStrokeColorSpace(ops []objects.Object) {
	t.add("set_stroke_color_space", ops...)
}
func (t *TraceReceiver) SetNonstrokeColorSpace(ops []objects.Object) {
	t.add("set_nonstroke_color_space", ops...)
}
func (t *TraceReceiver) SetGrayForStroking(ops []objects.Object) {
	t.add("set_gray_for_stroking", ops...)
}
func (t *TraceReceiver) SetGrayForNonstroking(ops []objects.Object) {
	t.add("set_gray_for_nonstroking", ops...)
}
func (t *TraceReceiver) SetRGBColorForStroking(ops []objects.Object) {
	t.add("set_rgb_color_for_stroking", ops...)
}
func (t *TraceReceiver) SetRGBColorForNonstroking(ops []objects.Object) {
	t.add("set_rgb_color_for_nonstroking", ops...)
}
func (t *TraceReceiver) SetCMYKColorForStroking(ops []objects.Object) {
	t.add("set_cmyk_color_for_stroking", ops...)
}
func (t *TraceReceiver) SetCMYKColorForNonstroking(ops []objects.Object) {
	t.add("set_cmyk_color_for_nonstroking", ops...)
}
func (t *TraceReceiver) SetColorForStroking(ops []objects.Object) {
	t.add("set_color_for_stroking", ops...)
}
func (t *TraceReceiver) SetColorForNonstroking(ops []objects.Object) {
	t.add("set_color_for_nonstroking", ops...)
}
func (t *TraceReceiver) SetColorForStrokingAndSpecial(ops []objects.Object) {
	t.add("set_color_for_stroking_and_special", ops...)
}
func (t *TraceReceiver) SetColorForNonstrokingAndSpecial(ops []objects.Object) {
	t.add("set_color_for_nonstroking_and_special", ops...)
}
func (t *TraceReceiver) PaintAreaWithShadingPattern(ops []objects.Object) {
	t.add("paint_area_with_shading_pattern", ops...)
}

func (t *TraceReceiver) InvokeXObject(ops []objects.Object)    { t.add("invoke_xobject", ops...) }
func (t *TraceReceiver) BeginInlineImage(ops []objects.Object) { t.add("begin_inline_image", ops...) }
func (t *TraceReceiver) BeginInlineImageData(ops []objects.Object) {
	t.add("begin_inline_image_data", ops...)
}
func (t *TraceReceiver) EndInlineImage(ops []objects.Object) { t.add("end_inline_image", ops...) }

func (t *TraceReceiver) BeginMarkedContent(ops []objects.Object) {
	t.add("begin_marked_content", ops...)
}
func (t *TraceReceiver) BeginMarkedContentWithPL(ops []objects.Object) {
	t.add("begin_marked_content_with_pl", ops...)
}
func (t *TraceReceiver) DefineMarkedContentPoint(ops []objects.Object) {
	t.add("define_marked_content_point", ops...)
}
func (t *TraceReceiver) DefineMarkedContentWithPL(ops []objects.Object) {
	t.add("define_marked_content_with_pl", ops...)
}
func (t *TraceReceiver) EndMarkedContent(ops []objects.Object) { t.add("end_marked_content", ops...) }

func (t *TraceReceiver) SetGlyphWidth(ops []objects.Object) { t.add("set_glyph_width", ops...) }
func (t *TraceReceiver) SetGlyphWidthAndBoundingBox(ops []objects.Object) {
	t.add("set_glyph_width_and_bounding_box", ops...)
}

var _ walker.Receiver = (*TraceReceiver)(nil)
