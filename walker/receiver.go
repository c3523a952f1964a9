package walker

import (
	"pdfwalk/font"
	"pdfwalk/objects"
)

// Receiver is the walker's sole extension point. Every event the walker can
// emit has a method here; implementations embed NopReceiver and override only
// the events they care about. Operator callbacks receive the operand stack
// accumulated since the previous operator, in left-to-right order.
type Receiver interface {
	// Lifecycle.
	BeginDocument(root objects.Dictionary)
	EndDocument()
	BeginPageContainer(node objects.Dictionary)
	EndPageContainer()
	BeginPage(node objects.Dictionary)
	EndPage()
	BeginFormXObject()
	EndFormXObject()

	// Metadata.
	PDFVersion(version string)
	Metadata(info objects.Dictionary)
	XMLMetadata(data []byte)
	PageCount(n int)

	// Resources.
	ResourceProcSet(list objects.Array)
	ResourceXObject(name string, obj objects.Object)
	ResourceExtGState(name string, obj objects.Object)
	ResourceColorSpace(name string, obj objects.Object)
	ResourcePattern(name string, obj objects.Object)
	ResourceFont(label string, f *font.Font)

	// Compatibility sections.
	BeginCompatibilitySection(operands []objects.Object)
	EndCompatibilitySection(operands []objects.Object)

	// Text objects and text state.
	BeginTextObject(operands []objects.Object)
	EndTextObject(operands []objects.Object)
	MoveToStartOfNextLine(operands []objects.Object)
	SetCharacterSpacing(operands []objects.Object)
	MoveTextPosition(operands []objects.Object)
	MoveTextPositionAndSetLeading(operands []objects.Object)
	SetTextFontAndSize(operands []objects.Object)
	ShowText(operands []objects.Object)
	ShowTextWithPositioning(operands []objects.Object)
	SetTextLeading(operands []objects.Object)
	SetTextMatrixAndTextLineMatrix(operands []objects.Object)
	SetTextRenderingMode(operands []objects.Object)
	SetTextRise(operands []objects.Object)
	SetWordSpacing(operands []objects.Object)
	SetHorizontalTextScaling(operands []objects.Object)
	MoveToNextLineAndShowText(operands []objects.Object)
	SetSpacingNextLineShowText(operands []objects.Object)

	// Graphics state.
	SaveGraphicsState(operands []objects.Object)
	RestoreGraphicsState(operands []objects.Object)
	ConcatenateMatrix(operands []objects.Object)
	SetLineWidth(operands []objects.Object)
	SetLineCapStyle(operands []objects.Object)
	SetLineJoinStyle(operands []objects.Object)
	SetMiterLimit(operands []objects.Object)
	SetLineDash(operands []objects.Object)
	SetColorRenderingIntent(operands []objects.Object)
	SetFlatnessTolerance(operands []objects.Object)
	SetGraphicsStateParameters(operands []objects.Object)

	// Path construction.
	BeginNewSubpath(operands []objects.Object)
	AppendLine(operands []objects.Object)
	AppendCurvedSegment(operands []objects.Object)
	AppendCurvedSegmentInitialPointReplicated(operands []objects.Object)
	AppendCurvedSegmentFinalPointReplicated(operands []objects.Object)
	CloseSubpath(operands []objects.Object)
	AppendRectangle(operands []objects.Object)

	// Path painting.
	StrokePath(operands []objects.Object)
	CloseAndStrokePath(operands []objects.Object)
	FillPathWithNonzero(operands []objects.Object)
	FillPathWithEvenOdd(operands []objects.Object)
	FillStroke(operands []objects.Object)
	CloseFillStroke(operands []objects.Object)
	FillStrokeWithEvenOdd(operands []objects.Object)
	CloseFillStrokeWithEvenOdd(operands []objects.Object)
	EndPath(operands []objects.Object)
	SetClippingPathWithNonzero(operands []objects.Object)
	SetClippingPathWithEvenOdd(operands []objects.Object)

	// Color.
	SetStrokeColorSpace(operands []objects.Object)
	SetNonstrokeColorSpace(operands []objects.Object)
	SetGrayForStroking(operands []objects.Object)
	SetGrayForNonstroking(operands []objects.Object)
	SetRGBColorForStroking(operands []objects.Object)
	SetRGBColorForNonstroking(operands []objects.Object)
	SetCMYKColorForStroking(operands []objects.Object)
	SetCMYKColorForNonstroking(operands []objects.Object)
	SetColorForStroking(operands []objects.Object)
	SetColorForNonstroking(operands []objects.Object)
	SetColorForStrokingAndSpecial(operands []objects.Object)
	SetColorForNonstrokingAndSpecial(operands []objects.Object)
	PaintAreaWithShadingPattern(operands []objects.Object)

	// XObjects and inline images.
	InvokeXObject(operands []objects.Object)
	BeginInlineImage(operands []objects.Object)
	BeginInlineImageData(operands []objects.Object)
	EndInlineImage(operands []objects.Object)

	// Marked content.
	BeginMarkedContent(operands []objects.Object)
	BeginMarkedContentWithPL(operands []objects.Object)
	DefineMarkedContentPoint(operands []objects.Object)
	DefineMarkedContentWithPL(operands []objects.Object)
	EndMarkedContent(operands []objects.Object)

	// Type 3 glyph metrics.
	SetGlyphWidth(operands []objects.Object)
	SetGlyphWidthAndBoundingBox(operands []objects.Object)
}

// NopReceiver implements every Receiver method as a no-op. Embed it to pick
// up silent defaults for the events a receiver does not handle.
type NopReceiver struct{}

func (NopReceiver) BeginDocument(objects.Dictionary)      {}
func (NopReceiver) EndDocument()                          {}
func (NopReceiver) BeginPageContainer(objects.Dictionary) {}
func (NopReceiver) EndPageContainer()                     {}
func (NopReceiver) BeginPage(objects.Dictionary)          {}
func (NopReceiver) EndPage()                              {}
func (NopReceiver) BeginFormXObject()                     {}
func (NopReceiver) EndFormXObject()                       {}

func (NopReceiver) PDFVersion(string)               {}
func (NopReceiver) Metadata(objects.Dictionary)     {}
func (NopReceiver) XMLMetadata([]byte)              {}
func (NopReceiver) PageCount(int)                   {}

func (NopReceiver) ResourceProcSet(objects.Array)            {}
func (NopReceiver) ResourceXObject(string, objects.Object)   {}
func (NopReceiver) ResourceExtGState(string, objects.Object) {}
func (NopReceiver) ResourceColorSpace(string, objects.Object) {}
func (NopReceiver) ResourcePattern(string, objects.Object)   {}
func (NopReceiver) ResourceFont(string, *font.Font)          {}

func (NopReceiver) BeginCompatibilitySection([]objects.Object) {}
func (NopReceiver) EndCompatibilitySection([]objects.Object)   {}

func (NopReceiver) BeginTextObject([]objects.Object)                {}
func (NopReceiver) EndTextObject([]objects.Object)                  {}
func (NopReceiver) MoveToStartOfNextLine([]objects.Object)          {}
func (NopReceiver) SetCharacterSpacing([]objects.Object)            {}
func (NopReceiver) MoveTextPosition([]objects.Object)               {}
func (NopReceiver) MoveTextPositionAndSetLeading([]objects.Object)  {}
func (NopReceiver) SetTextFontAndSize([]objects.Object)             {}
func (NopReceiver) ShowText([]objects.Object)                       {}
func (NopReceiver) ShowTextWithPositioning([]objects.Object)        {}
func (NopReceiver) SetTextLeading([]objects.Object)                 {}
func (NopReceiver) SetTextMatrixAndTextLineMatrix([]objects.Object) {}
func (NopReceiver) SetTextRenderingMode([]objects.Object)           {}
func (NopReceiver) SetTextRise([]objects.Object)                    {}
func (NopReceiver) SetWordSpacing([]objects.Object)                 {}
func (NopReceiver) SetHorizontalTextScaling([]objects.Object)       {}
func (NopReceiver) MoveToNextLineAndShowText([]objects.Object)      {}
func (NopReceiver) SetSpacingNextLineShowText([]objects.Object)     {}

func (NopReceiver) SaveGraphicsState([]objects.Object)          {}
func (NopReceiver) RestoreGraphicsState([]objects.Object)       {}
func (NopReceiver) ConcatenateMatrix([]objects.Object)          {}
func (NopReceiver) SetLineWidth([]objects.Object)               {}
func (NopReceiver) SetLineCapStyle([]objects.Object)            {}
func (NopReceiver) SetLineJoinStyle([]objects.Object)           {}
func (NopReceiver) SetMiterLimit([]objects.Object)              {}
func (NopReceiver) SetLineDash([]objects.Object)                {}
func (NopReceiver) SetColorRenderingIntent([]objects.Object)    {}
func (NopReceiver) SetFlatnessTolerance([]objects.Object)       {}
func (NopReceiver) SetGraphicsStateParameters([]objects.Object) {}

func (NopReceiver) BeginNewSubpath([]objects.Object)                           {}
func (NopReceiver) AppendLine([]objects.Object)                                {}
func (NopReceiver) AppendCurvedSegment([]objects.Object)                       {}
func (NopReceiver) AppendCurvedSegmentInitialPointReplicated([]objects.Object) {}
func (NopReceiver) AppendCurvedSegmentFinalPointReplicated([]objects.Object)   {}
func (NopReceiver) CloseSubpath([]objects.Object)                              {}
func (NopReceiver) AppendRectangle([]objects.Object)                           {}

func (NopReceiver) StrokePath([]objects.Object)                  {}
func (NopReceiver) CloseAndStrokePath([]objects.Object)          {}
func (NopReceiver) FillPathWithNonzero([]objects.Object)         {}
func (NopReceiver) FillPathWithEvenOdd([]objects.Object)         {}
func (NopReceiver) FillStroke([]objects.Object)                  {}
func (NopReceiver) CloseFillStroke([]objects.Object)             {}
func (NopReceiver) FillStrokeWithEvenOdd([]objects.Object)       {}
func (NopReceiver) CloseFillStrokeWithEvenOdd([]objects.Object)  {}
func (NopReceiver) EndPath([]objects.Object)                     {}
func (NopReceiver) SetClippingPathWithNonzero([]objects.Object)  {}
func (NopReceiver) SetClippingPathWithEvenOdd([]objects.Object)  {}

func (NopReceiver) SetStrokeColorSpace([]objects.Object)              {}
func (NopReceiver) SetNonstrokeColorSpace([]objects.Object)           {}
func (NopReceiver) SetGrayForStroking([]objects.Object)               {}
func (NopReceiver) SetGrayForNonstroking([]objects.Object)            {}
func (NopReceiver) SetRGBColorForStroking([]objects.Object)           {}
func (NopReceiver) SetRGBColorForNonstroking([]objects.Object)        {}
func (NopReceiver) SetCMYKColorForStroking([]objects.Object)          {}
func (NopReceiver) SetCMYKColorForNonstroking([]objects.Object)       {}
func (NopReceiver) SetColorForStroking([]objects.Object)              {}
func (NopReceiver) SetColorForNonstroking([]objects.Object)           {}
func (NopReceiver) SetColorForStrokingAndSpecial([]objects.Object)    {}
func (NopReceiver) SetColorForNonstrokingAndSpecial([]objects.Object) {}
func (NopReceiver) PaintAreaWithShadingPattern([]objects.Object)      {}

func (NopReceiver) InvokeXObject([]objects.Object)        {}
func (NopReceiver) BeginInlineImage([]objects.Object)     {}
func (NopReceiver) BeginInlineImageData([]objects.Object) {}
func (NopReceiver) EndInlineImage([]objects.Object)       {}

func (NopReceiver) BeginMarkedContent([]objects.Object)       {}
func (NopReceiver) BeginMarkedContentWithPL([]objects.Object) {}
func (NopReceiver) DefineMarkedContentPoint([]objects.Object) {}
func (NopReceiver) DefineMarkedContentWithPL([]objects.Object) {}
func (NopReceiver) EndMarkedContent([]objects.Object)         {}

func (NopReceiver) SetGlyphWidth([]objects.Object)               {}
func (NopReceiver) SetGlyphWidthAndBoundingBox([]objects.Object) {}
