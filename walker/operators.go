package walker

import "pdfwalk/objects"

// operator couples a callback name with the receiver method it fires. The
// mnemonic → name mapping is a stable contract: tests pin it and the
// tokenizer uses mnemonic membership to tell operators from keywords.
type operator struct {
	Name string
	fire func(Receiver, []objects.Object)
}

var operatorTable = map[string]operator{
	"b":   {"close_fill_stroke", Receiver.CloseFillStroke},
	"B":   {"fill_stroke", Receiver.FillStroke},
	"b*":  {"close_fill_stroke_with_even_odd", Receiver.CloseFillStrokeWithEvenOdd},
	"B*":  {"fill_stroke_with_even_odd", Receiver.FillStrokeWithEvenOdd},
	"BDC": {"begin_marked_content_with_pl", Receiver.BeginMarkedContentWithPL},
	"BI":  {"begin_inline_image", Receiver.BeginInlineImage},
	"BMC": {"begin_marked_content", Receiver.BeginMarkedContent},
	"BT":  {"begin_text_object", Receiver.BeginTextObject},
	"BX":  {"begin_compatibility_section", Receiver.BeginCompatibilitySection},
	"c":   {"append_curved_segment", Receiver.AppendCurvedSegment},
	"cm":  {"concatenate_matrix", Receiver.ConcatenateMatrix},
	"cs":  {"set_nonstroke_color_space", Receiver.SetNonstrokeColorSpace},
	"CS":  {"set_stroke_color_space", Receiver.SetStrokeColorSpace},
	"d":   {"set_line_dash", Receiver.SetLineDash},
	"d0":  {"set_glyph_width", Receiver.SetGlyphWidth},
	"d1":  {"set_glyph_width_and_bounding_box", Receiver.SetGlyphWidthAndBoundingBox},
	"Do":  {"invoke_xobject", Receiver.InvokeXObject},
	"DP":  {"define_marked_content_with_pl", Receiver.DefineMarkedContentWithPL},
	"EI":  {"end_inline_image", Receiver.EndInlineImage},
	"EMC": {"end_marked_content", Receiver.EndMarkedContent},
	"ET":  {"end_text_object", Receiver.EndTextObject},
	"EX":  {"end_compatibility_section", Receiver.EndCompatibilitySection},
	"f":   {"fill_path_with_nonzero", Receiver.FillPathWithNonzero},
	"f*":  {"fill_path_with_even_odd", Receiver.FillPathWithEvenOdd},
	"F":   {"fill_path_with_nonzero", Receiver.FillPathWithNonzero},
	"G":   {"set_gray_for_stroking", Receiver.SetGrayForStroking},
	"g":   {"set_gray_for_nonstroking", Receiver.SetGrayForNonstroking},
	"gs":  {"set_graphics_state_parameters", Receiver.SetGraphicsStateParameters},
	"h":   {"close_subpath", Receiver.CloseSubpath},
	"i":   {"set_flatness_tolerance", Receiver.SetFlatnessTolerance},
	"ID":  {"begin_inline_image_data", Receiver.BeginInlineImageData},
	"j":   {"set_line_join_style", Receiver.SetLineJoinStyle},
	"J":   {"set_line_cap_style", Receiver.SetLineCapStyle},
	"K":   {"set_cmyk_color_for_stroking", Receiver.SetCMYKColorForStroking},
	"k":   {"set_cmyk_color_for_nonstroking", Receiver.SetCMYKColorForNonstroking},
	"l":   {"append_line", Receiver.AppendLine},
	"m":   {"begin_new_subpath", Receiver.BeginNewSubpath},
	"M":   {"set_miter_limit", Receiver.SetMiterLimit},
	"MP":  {"define_marked_content_point", Receiver.DefineMarkedContentPoint},
	"n":   {"end_path", Receiver.EndPath},
	"q":   {"save_graphics_state", Receiver.SaveGraphicsState},
	"Q":   {"restore_graphics_state", Receiver.RestoreGraphicsState},
	"re":  {"append_rectangle", Receiver.AppendRectangle},
	"RG":  {"set_rgb_color_for_stroking", Receiver.SetRGBColorForStroking},
	"rg":  {"set_rgb_color_for_nonstroking", Receiver.SetRGBColorForNonstroking},
	"ri":  {"set_color_rendering_intent", Receiver.SetColorRenderingIntent},
	"s":   {"close_and_stroke_path", Receiver.CloseAndStrokePath},
	"S":   {"stroke_path", Receiver.StrokePath},
	"sc":  {"set_color_for_nonstroking", Receiver.SetColorForNonstroking},
	"SC":  {"set_color_for_stroking", Receiver.SetColorForStroking},
	"scn": {"set_color_for_nonstroking_and_special", Receiver.SetColorForNonstrokingAndSpecial},
	"SCN": {"set_color_for_stroking_and_special", Receiver.SetColorForStrokingAndSpecial},
	"sh":  {"paint_area_with_shading_pattern", Receiver.PaintAreaWithShadingPattern},
	"T*":  {"move_to_start_of_next_line", Receiver.MoveToStartOfNextLine},
	"Tc":  {"set_character_spacing", Receiver.SetCharacterSpacing},
	"Td":  {"move_text_position", Receiver.MoveTextPosition},
	"TD":  {"move_text_position_and_set_leading", Receiver.MoveTextPositionAndSetLeading},
	"Tf":  {"set_text_font_and_size", Receiver.SetTextFontAndSize},
	"Tj":  {"show_text", Receiver.ShowText},
	"TJ":  {"show_text_with_positioning", Receiver.ShowTextWithPositioning},
	"TL":  {"set_text_leading", Receiver.SetTextLeading},
	"Tm":  {"set_text_matrix_and_text_line_matrix", Receiver.SetTextMatrixAndTextLineMatrix},
	"Tr":  {"set_text_rendering_mode", Receiver.SetTextRenderingMode},
	"Ts":  {"set_text_rise", Receiver.SetTextRise},
	"Tw":  {"set_word_spacing", Receiver.SetWordSpacing},
	"Tz":  {"set_horizontal_text_scaling", Receiver.SetHorizontalTextScaling},
	"v":   {"append_curved_segment_initial_point_replicated", Receiver.AppendCurvedSegmentInitialPointReplicated},
	"w":   {"set_line_width", Receiver.SetLineWidth},
	"W":   {"set_clipping_path_with_nonzero", Receiver.SetClippingPathWithNonzero},
	"W*":  {"set_clipping_path_with_even_odd", Receiver.SetClippingPathWithEvenOdd},
	"y":   {"append_curved_segment_final_point_replicated", Receiver.AppendCurvedSegmentFinalPointReplicated},
	"'":   {"move_to_next_line_and_show_text", Receiver.MoveToNextLineAndShowText},
	"\"":  {"set_spacing_next_line_show_text", Receiver.SetSpacingNextLineShowText},
}

// OperatorNames returns the mnemonic → callback-name mapping. The scanner
// takes this as its operator membership set; callers must not mutate it.
func OperatorNames() map[string]string {
	out := make(map[string]string, len(operatorTable))
	for mnemonic, op := range operatorTable {
		out[mnemonic] = op.Name
	}
	return out
}
