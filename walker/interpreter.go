package walker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"pdfwalk/font"
	"pdfwalk/objects"
	"pdfwalk/scanner"
)

// interpretStream decodes a content stream's payload and interprets it.
func (w *Walker) interpretStream(stream objects.Stream, fonts map[string]*font.Font) error {
	data, err := w.pipe.DecodeStream(context.Background(), stream)
	if err != nil {
		return err
	}
	return w.interpret(data, fonts)
}

// interpret drives the tokenizer over raw content bytes, accumulating
// operands and firing one callback per recognized operator. The operand
// stack is consumed atomically on each dispatch; a premature end of input is
// terminal.
func (w *Walker) interpret(data []byte, fonts map[string]*font.Font) error {
	s := scanner.New(bytes.NewReader(data), scanner.Config{Operators: w.operators})
	tr := scanner.NewTokenReader(s)
	var operands []objects.Object
	currentFont := ""

	for {
		tok, err := tr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return &MalformedPDFError{Msg: contentStreamEOF, Err: err}
		}
		switch tok.Type {
		case scanner.TokenOperator:
			op := operatorTable[tok.Str]
			if tok.Str == "Tf" && len(operands) > 0 {
				if name, ok := objects.NameValue(operands[0]); ok {
					currentFont = name
				}
			}
			if strings.Contains(op.Name, "show_text") {
				if f, ok := fonts[currentFont]; ok && f != nil {
					operands = decodeTextOperands(operands, f)
				}
			}
			op.fire(w.receiver, operands)
			if tok.Str == "Do" {
				label := ""
				if len(operands) > 0 {
					label, _ = objects.NameValue(operands[0])
				}
				operands = nil
				if label != "" {
					if err := w.walkXObjectForm(label); err != nil {
						return err
					}
				}
				continue
			}
			operands = nil

		case scanner.TokenInlineImage:
			// The ID operator: collapse accumulated name/value pairs into
			// the image dictionary and attach the raw byte span.
			dict := pairDict(operands)
			op := operatorTable["ID"]
			op.fire(w.receiver, []objects.Object{dict, objects.NewString(tok.Bytes)})
			operands = nil

		case scanner.TokenKeyword:
			// A mnemonic missing from the operator table. It is never
			// dispatched; pending operands stay on the stack and attach to
			// the next recognized operator.

		default:
			tr.Unread(tok)
			obj, err := scanner.ParseObject(tr)
			if err != nil {
				return &MalformedPDFError{Msg: contentStreamEOF, Err: err}
			}
			operands = append(operands, obj)
		}
	}
}

// decodeTextOperands rewrites show-text operands through the current font:
// strings become their UTF-8 conversion, positioning numbers inside TJ
// arrays pass through unchanged.
func decodeTextOperands(operands []objects.Object, f *font.Font) []objects.Object {
	out := make([]objects.Object, len(operands))
	for i, op := range operands {
		out[i] = decodeTextOperand(op, f)
	}
	return out
}

func decodeTextOperand(op objects.Object, f *font.Font) objects.Object {
	switch v := op.(type) {
	case objects.StringObj:
		return objects.NewString(f.DecodeText(v.Bytes))
	case *objects.ArrayObj:
		out := &objects.ArrayObj{Items: make([]objects.Object, 0, len(v.Items))}
		for _, item := range v.Items {
			out.Append(decodeTextOperand(item, f))
		}
		return out
	default:
		return op
	}
}

// pairDict folds a [name, value, name, value, …] operand run into a dict.
func pairDict(operands []objects.Object) *objects.DictObj {
	dict := objects.NewDict()
	for i := 0; i+1 < len(operands); i += 2 {
		key, ok := objects.NameValue(operands[i])
		if !ok {
			continue
		}
		dict.Set(key, operands[i+1])
	}
	return dict
}
