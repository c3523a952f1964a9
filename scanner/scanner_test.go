package scanner

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func collect(t *testing.T, src string, cfg Config) []Token {
	t.Helper()
	s := New(bytes.NewReader([]byte(src)), cfg)
	var out []Token
	for {
		tok, err := s.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("scan %q: %v", src, err)
		}
		out = append(out, tok)
	}
}

var contentOps = map[string]string{
	"BT": "begin_text_object", "ET": "end_text_object",
	"Tf": "set_text_font_and_size", "Tj": "show_text",
	"ID": "begin_inline_image_data", "EI": "end_inline_image",
	"BI": "begin_inline_image", "T*": "move_to_start_of_next_line",
	"'": "move_to_next_line_and_show_text", "\"": "set_spacing_next_line_show_text",
	"w": "set_line_width",
}

func TestScanBasicTokens(t *testing.T) {
	toks := collect(t, "/Name 42 -1.5 (hi) <414243> true null", Config{})
	if len(toks) != 7 {
		t.Fatalf("got %d tokens: %+v", len(toks), toks)
	}
	if toks[0].Type != TokenName || toks[0].Str != "Name" {
		t.Errorf("name token: %+v", toks[0])
	}
	if toks[1].Type != TokenNumber || !toks[1].IsInt || toks[1].Int != 42 {
		t.Errorf("int token: %+v", toks[1])
	}
	if toks[2].Type != TokenNumber || toks[2].IsInt || toks[2].Float != -1.5 {
		t.Errorf("real token: %+v", toks[2])
	}
	if toks[3].Type != TokenString || string(toks[3].Bytes) != "hi" {
		t.Errorf("string token: %+v", toks[3])
	}
	if toks[4].Type != TokenString || string(toks[4].Bytes) != "ABC" {
		t.Errorf("hex string token: %+v", toks[4])
	}
	if toks[5].Type != TokenBoolean || !toks[5].Bool {
		t.Errorf("bool token: %+v", toks[5])
	}
	if toks[6].Type != TokenNull {
		t.Errorf("null token: %+v", toks[6])
	}
}

func TestScanStringEscapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`(a\(b\))`, "a(b)"},
		{`(line\nbreak)`, "line\nbreak"},
		{`(octal \101)`, "octal A"},
		{"(nested (paren))", "nested (paren)"},
		{"(split\\\nline)", "splitline"},
	}
	for _, tc := range cases {
		toks := collect(t, tc.in, Config{})
		if len(toks) != 1 || toks[0].Type != TokenString {
			t.Fatalf("%q: unexpected tokens %+v", tc.in, toks)
		}
		if got := string(toks[0].Bytes); got != tc.want {
			t.Errorf("%q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestScanHexStringOddDigits(t *testing.T) {
	toks := collect(t, "<41424>", Config{})
	if string(toks[0].Bytes) != "AB@" {
		t.Errorf("odd hex: got %q", toks[0].Bytes)
	}
}

func TestScanNameHexEscape(t *testing.T) {
	toks := collect(t, "/A#20B", Config{})
	if toks[0].Str != "A B" {
		t.Errorf("name hex escape: got %q", toks[0].Str)
	}
}

func TestScanIndirectRef(t *testing.T) {
	toks := collect(t, "5 0 R", Config{})
	if len(toks) != 1 || toks[0].Type != TokenRef || toks[0].Int != 5 || toks[0].Gen != 0 {
		t.Fatalf("ref: %+v", toks)
	}
	// Two numbers not followed by R stay numbers.
	toks = collect(t, "5 0 obj", Config{})
	if len(toks) != 3 || toks[0].Type != TokenNumber || toks[1].Type != TokenNumber {
		t.Fatalf("non-ref: %+v", toks)
	}
	if toks[2].Type != TokenKeyword || toks[2].Str != "obj" {
		t.Fatalf("obj keyword: %+v", toks[2])
	}
}

func TestScanComments(t *testing.T) {
	toks := collect(t, "42 % a comment\n7", Config{})
	if len(toks) != 2 || toks[0].Int != 42 || toks[1].Int != 7 {
		t.Fatalf("comments: %+v", toks)
	}
}

func TestScanStreamWithLength(t *testing.T) {
	src := "<< /Length 4 >>\nstream\nabcd\nendstream 9"
	s := New(bytes.NewReader([]byte(src)), Config{})
	// Walk past the dict tokens.
	for i := 0; i < 4; i++ {
		if _, err := s.Next(); err != nil {
			t.Fatal(err)
		}
	}
	s.SetNextStreamLength(4)
	tok, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Type != TokenStream || string(tok.Bytes) != "abcd" {
		t.Fatalf("stream token: %+v", tok)
	}
	tok, err = s.Next()
	if err != nil || tok.Type != TokenNumber || tok.Int != 9 {
		t.Fatalf("token after stream: %+v err %v", tok, err)
	}
}

func TestScanStreamWithoutLength(t *testing.T) {
	src := "stream\nabcd\nendstream"
	toks := collect(t, src, Config{})
	if len(toks) != 1 || toks[0].Type != TokenStream || string(toks[0].Bytes) != "abcd" {
		t.Fatalf("stream: %+v", toks)
	}
}

func TestContentModeOperators(t *testing.T) {
	toks := collect(t, "BT /F1 12 Tf (Hi) Tj ET", Config{Operators: contentOps})
	var kinds []TokenType
	for _, tok := range toks {
		kinds = append(kinds, tok.Type)
	}
	want := []TokenType{TokenOperator, TokenName, TokenNumber, TokenOperator, TokenString, TokenOperator, TokenOperator}
	if len(kinds) != len(want) {
		t.Fatalf("token kinds: %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d: got %v want %v (%+v)", i, kinds[i], want[i], toks[i])
		}
	}
}

func TestContentModeQuoteOperators(t *testing.T) {
	toks := collect(t, "(a) ' (b) \"", Config{Operators: contentOps})
	if toks[1].Type != TokenOperator || toks[1].Str != "'" {
		t.Errorf("quote operator: %+v", toks[1])
	}
	if toks[3].Type != TokenOperator || toks[3].Str != "\"" {
		t.Errorf("double quote operator: %+v", toks[3])
	}
}

func TestContentModeUnknownKeyword(t *testing.T) {
	toks := collect(t, "gg T*", Config{Operators: contentOps})
	if toks[0].Type != TokenKeyword || toks[0].Str != "gg" {
		t.Errorf("unknown keyword: %+v", toks[0])
	}
	if toks[1].Type != TokenOperator || toks[1].Str != "T*" {
		t.Errorf("star operator: %+v", toks[1])
	}
}

func TestInlineImageCapture(t *testing.T) {
	src := "BI /W 2 ID \x00\x01 \xffEI junk EI"
	toks := collect(t, src, Config{Operators: contentOps})
	// BI, /W, 2, inline data, EI
	var inline *Token
	for i := range toks {
		if toks[i].Type == TokenInlineImage {
			inline = &toks[i]
		}
	}
	if inline == nil {
		t.Fatalf("no inline image token: %+v", toks)
	}
	// The EI inside binary data is preceded by 0xff, not whitespace, so the
	// real sentinel is the later one.
	if string(inline.Bytes) != "\x00\x01 \xffEI junk" {
		t.Errorf("inline payload: %q", inline.Bytes)
	}
	last := toks[len(toks)-1]
	if last.Type != TokenOperator || last.Str != "EI" {
		t.Errorf("trailing EI operator: %+v", last)
	}
}

func TestUnterminatedStringFails(t *testing.T) {
	s := New(bytes.NewReader([]byte("(oh no")), Config{})
	_, err := s.Next()
	if err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("want hard error, got %v", err)
	}
}

func TestUnterminatedInlineImageFails(t *testing.T) {
	s := New(bytes.NewReader([]byte("ID \x00\x01\x02")), Config{Operators: contentOps})
	_, err := s.Next()
	if err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("want hard error, got %v", err)
	}
}

func TestSeek(t *testing.T) {
	s := New(bytes.NewReader([]byte("0123456789 42")), Config{})
	if err := s.Seek(11); err != nil {
		t.Fatal(err)
	}
	tok, err := s.Next()
	if err != nil || tok.Int != 42 {
		t.Fatalf("after seek: %+v err %v", tok, err)
	}
}
