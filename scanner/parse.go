package scanner

import (
	"fmt"

	"pdfwalk/objects"
)

// TokenReader adds one-token pushback on top of a Scanner, which is all the
// object parser needs.
type TokenReader struct {
	s   Scanner
	buf []Token
}

func NewTokenReader(s Scanner) *TokenReader { return &TokenReader{s: s} }

func (r *TokenReader) Next() (Token, error) {
	if l := len(r.buf); l > 0 {
		t := r.buf[l-1]
		r.buf = r.buf[:l-1]
		return t, nil
	}
	return r.s.Next()
}

func (r *TokenReader) Unread(tok Token) { r.buf = append(r.buf, tok) }

// Scanner returns the underlying scanner.
func (r *TokenReader) Scanner() Scanner { return r.s }

// ParseObject assembles the next complete PDF object from the token stream.
// Structural tokens that cannot begin an object (']', '>>', keywords) are an
// error; callers that may legitimately hit them should inspect the next token
// first and Unread it.
func ParseObject(tr *TokenReader) (objects.Object, error) {
	tok, err := tr.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case TokenName:
		return objects.NameObj{Val: tok.Str}, nil
	case TokenNumber:
		if tok.IsInt {
			return objects.NumberObj{I: tok.Int, IsInt: true}, nil
		}
		return objects.NumberObj{F: tok.Float}, nil
	case TokenBoolean:
		return objects.BoolObj{V: tok.Bool}, nil
	case TokenNull:
		return objects.NullObj{}, nil
	case TokenString:
		return objects.StringObj{Bytes: tok.Bytes}, nil
	case TokenRef:
		return objects.NewRef(int(tok.Int), tok.Gen), nil
	case TokenArray:
		return parseArray(tr)
	case TokenDict:
		return parseDict(tr)
	}
	return nil, fmt.Errorf("unexpected token %q at offset %d", tok.Str, tok.Pos)
}

func parseArray(tr *TokenReader) (objects.Object, error) {
	arr := &objects.ArrayObj{}
	for {
		tok, err := tr.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenKeyword && tok.Str == "]" {
			return arr, nil
		}
		tr.Unread(tok)
		item, err := ParseObject(tr)
		if err != nil {
			return nil, err
		}
		arr.Append(item)
	}
}

func parseDict(tr *TokenReader) (objects.Object, error) {
	d := objects.NewDict()
	for {
		tok, err := tr.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenKeyword && tok.Str == ">>" {
			return d, nil
		}
		if tok.Type != TokenName {
			return nil, fmt.Errorf("expected name key in dict, got %q at offset %d", tok.Str, tok.Pos)
		}
		val, err := ParseObject(tr)
		if err != nil {
			return nil, err
		}
		d.Set(tok.Str, val)
	}
}
