// Package scanner tokenizes PDF syntax from an io.ReaderAt. It serves two
// consumers: the xref loader, which scans whole files (indirect objects,
// stream payloads), and the walker's content-stream interpreter, which runs
// the scanner in content mode with an operator table so that operator
// mnemonics come back as operator tokens and inline image data is captured
// raw.
package scanner

import (
	"errors"
	"io"

	"pdfwalk/recovery"
)

type TokenType int

const (
	TokenDict        TokenType = iota // '<<'
	TokenArray                        // '['
	TokenName                         // '/Name'
	TokenString                       // literal or hex string
	TokenNumber                       // numeric value
	TokenBoolean                      // true/false
	TokenNull                         // null
	TokenRef                          // indirect ref '5 0 R'
	TokenStream                       // stream payload (file mode)
	TokenInlineImage                  // raw bytes between ID and EI (content mode)
	TokenOperator                     // content-stream operator (content mode)
	TokenKeyword                      // other keywords (obj, endobj, >>, ], etc.)
)

type Token struct {
	Type  TokenType
	Pos   int64
	Str   string
	Bytes []byte
	Int   int64
	Gen   int
	Float float64
	Bool  bool
	IsInt bool
}

type Scanner interface {
	Next() (Token, error)
	Position() int64
	Seek(offset int64) error
	SetNextStreamLength(n int64)
}

// Config controls scanning limits and modes. Operators switches the scanner
// into content-stream mode: keywords present in the map are emitted as
// TokenOperator and the ID operator triggers raw inline-image capture.
type Config struct {
	MaxStringLength int64
	MaxNameLength   int64
	MaxStreamLength int64
	MaxInlineImage  int64
	ChunkSize       int64
	Operators       map[string]string
	Recovery        recovery.Strategy
}

// pdfScanner incrementally buffers data from a ReaderAt in fixed-size chunks.
type pdfScanner struct {
	reader        io.ReaderAt
	data          []byte
	base          int64
	pos           int64
	cfg           Config
	nextStreamLen int64
	chunkSize     int64
	eof           bool
	recLoc        recovery.Location
	lastAction    recovery.Action
	tempBuf       []byte
}

// New returns a scanner over r.
func New(r io.ReaderAt, cfg Config) Scanner {
	chunk := cfg.ChunkSize
	if chunk <= 0 {
		chunk = 64 * 1024
	}
	return &pdfScanner{
		reader:        r,
		cfg:           cfg,
		nextStreamLen: -1,
		chunkSize:     chunk,
		tempBuf:       make([]byte, 0, 256),
	}
}

func (s *pdfScanner) Position() int64 { return s.pos }

func (s *pdfScanner) Seek(offset int64) error {
	if offset < 0 {
		return errors.New("seek out of range")
	}
	if err := s.ensure(offset); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if offset > s.base+int64(len(s.data)) {
		return errors.New("seek out of range")
	}
	s.pos = offset
	return nil
}

func (s *pdfScanner) SetNextStreamLength(n int64)               { s.nextStreamLen = n }
func (s *pdfScanner) SetRecoveryLocation(loc recovery.Location) { s.recLoc = loc }

func (s *pdfScanner) contentMode() bool { return s.cfg.Operators != nil }

func (s *pdfScanner) isOperator(kw string) bool {
	_, ok := s.cfg.Operators[kw]
	return ok
}

func (s *pdfScanner) Next() (Token, error) {
	s.lastAction = recovery.ActionFail
	if err := s.skipWSAndComments(); err != nil {
		if errors.Is(err, io.EOF) {
			return Token{}, io.EOF
		}
		return Token{}, err
	}
	c, err := s.byteAt(s.pos)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Token{}, io.EOF
		}
		return Token{}, err
	}
	start := s.pos
	switch c {
	case '<':
		if s.peekAhead(1) == '<' {
			s.pos += 2
			return Token{Type: TokenDict, Str: "<<", Pos: start}, nil
		}
		return s.scanHexString()
	case '>':
		if s.peekAhead(1) == '>' {
			s.pos += 2
			return Token{Type: TokenKeyword, Str: ">>", Pos: start}, nil
		}
		s.pos++
		return Token{Type: TokenKeyword, Str: string(c), Pos: start}, nil
	case '[':
		s.pos++
		return Token{Type: TokenArray, Str: "[", Pos: start}, nil
	case ']':
		s.pos++
		return Token{Type: TokenKeyword, Str: "]", Pos: start}, nil
	case '(':
		return s.scanLiteralString()
	case '/':
		return s.scanName()
	}
	if isNumberStart(c) {
		return s.scanNumberOrRef()
	}
	if isRegular(c) {
		return s.scanKeyword()
	}
	// Fallback: a lone delimiter that starts no token (')', '{', '}') comes
	// back as a one-character keyword. The ' and " operators are regular
	// characters and arrive through scanKeyword instead.
	s.pos++
	kw := string(c)
	if s.contentMode() && s.isOperator(kw) {
		return Token{Type: TokenOperator, Str: kw, Pos: start}, nil
	}
	return Token{Type: TokenKeyword, Str: kw, Pos: start}, nil
}

func (s *pdfScanner) skipWSAndComments() error {
	for {
		c, err := s.byteAt(s.pos)
		if err != nil {
			return err
		}
		if isWhitespace(c) {
			s.pos++
			continue
		}
		if c == '%' {
			for {
				s.pos++
				ch, err := s.byteAt(s.pos)
				if err != nil {
					return err
				}
				if ch == '\n' || ch == '\r' {
					break
				}
			}
			continue
		}
		return nil
	}
}

func (s *pdfScanner) ensure(n int64) error {
	for n >= s.base+int64(len(s.data)) {
		if s.eof {
			return io.EOF
		}
		if err := s.loadMore(); err != nil {
			return err
		}
	}
	return nil
}

func (s *pdfScanner) loadMore() error {
	buf := make([]byte, s.chunkSize)
	off := s.base + int64(len(s.data))
	n, err := s.reader.ReadAt(buf, off)
	if n > 0 {
		s.data = append(s.data, buf[:n]...)
	}
	if err == io.EOF {
		s.eof = true
		return nil
	}
	if err != nil {
		return err
	}
	if n == 0 {
		s.eof = true
	}
	return nil
}

func (s *pdfScanner) byteAt(off int64) (byte, error) {
	if err := s.ensure(off); err != nil {
		return 0, err
	}
	idx := off - s.base
	if idx < 0 || idx >= int64(len(s.data)) {
		return 0, io.EOF
	}
	return s.data[idx], nil
}

func (s *pdfScanner) tailFrom(off int64) ([]byte, error) {
	for !s.eof {
		if err := s.loadMore(); err != nil {
			return nil, err
		}
	}
	idx := off - s.base
	if idx < 0 || idx > int64(len(s.data)) {
		return nil, io.EOF
	}
	return s.data[idx:], nil
}

func (s *pdfScanner) slice(start, end int64) ([]byte, error) {
	if end < start {
		return nil, errors.New("invalid slice")
	}
	if end > start {
		if err := s.ensure(end - 1); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}
	sIdx := start - s.base
	eIdx := end - s.base
	if sIdx < 0 || eIdx > int64(len(s.data)) {
		return nil, io.EOF
	}
	return s.data[sIdx:eIdx], nil
}

func (s *pdfScanner) peekAhead(n int64) byte {
	if err := s.ensure(s.pos + n); err != nil {
		return 0
	}
	idx := s.pos + n - s.base
	if idx < 0 || idx >= int64(len(s.data)) {
		return 0
	}
	return s.data[idx]
}

func isNumberStart(c byte) bool { return c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9') }

// isRegular reports whether c can start a multi-character keyword. Operators
// like T*, b* and B* continue with '*', which is a regular character too.
func isRegular(c byte) bool {
	return !isWhitespace(c) && !isDelimiter(c)
}

func isWhitespace(c byte) bool {
	return c == 0x00 || c == 0x09 || c == 0x0A || c == 0x0C || c == 0x0D || c == 0x20
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	default:
		return isWhitespace(c)
	}
}

func (s *pdfScanner) scanName() (Token, error) {
	start := s.pos
	s.pos++ // skip '/'
	s.tempBuf = s.tempBuf[:0]
	for {
		c, err := s.byteAt(s.pos)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Token{}, err
		}
		if isDelimiter(c) {
			break
		}
		if c == '#' { // hex escape in name
			s.pos++
			a := s.hexNibble()
			b := s.hexNibble()
			s.tempBuf = append(s.tempBuf, (a<<4)|b)
			continue
		}
		s.tempBuf = append(s.tempBuf, c)
		s.pos++
		if s.cfg.MaxNameLength > 0 && int64(len(s.tempBuf)) > s.cfg.MaxNameLength {
			return Token{}, s.recover(errors.New("name too long"), "name")
		}
	}
	return Token{Type: TokenName, Str: string(s.tempBuf), Pos: start}, nil
}

func (s *pdfScanner) hexNibble() byte {
	c, err := s.byteAt(s.pos)
	if err != nil {
		return 0
	}
	s.pos++
	return fromHex(c)
}

func fromHex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return 0
	}
}

func (s *pdfScanner) scanLiteralString() (Token, error) {
	start := s.pos
	s.pos++ // skip '('
	s.tempBuf = s.tempBuf[:0]
	depth := 1
	for depth > 0 {
		c, err := s.byteAt(s.pos)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Token{}, err
		}
		switch c {
		case '\\':
			s.pos++
			esc, err := s.byteAt(s.pos)
			if err != nil {
				if errors.Is(err, io.EOF) {
					depth = -1
				} else {
					return Token{}, err
				}
				break
			}
			switch {
			case esc == '\r':
				// Line continuation, swallow optional LF.
				s.pos++
				if next, err := s.byteAt(s.pos); err == nil && next == '\n' {
					s.pos++
				}
			case esc == '\n':
				s.pos++
			case esc >= '0' && esc <= '7':
				val := int(esc - '0')
				s.pos++
				for k := 0; k < 2; k++ {
					d, err := s.byteAt(s.pos)
					if err != nil || d < '0' || d > '7' {
						break
					}
					val = (val << 3) + int(d-'0')
					s.pos++
				}
				s.tempBuf = append(s.tempBuf, byte(val))
			default:
				s.tempBuf = append(s.tempBuf, translateEscape(esc))
				s.pos++
			}
		case '(':
			depth++
			s.tempBuf = append(s.tempBuf, c)
			s.pos++
		case ')':
			depth--
			s.pos++
			if depth > 0 {
				s.tempBuf = append(s.tempBuf, c)
			}
		default:
			s.tempBuf = append(s.tempBuf, c)
			s.pos++
		}
		if s.cfg.MaxStringLength > 0 && int64(len(s.tempBuf)) > s.cfg.MaxStringLength {
			return Token{}, s.recover(errors.New("literal string too long"), "literal")
		}
	}
	if depth != 0 {
		if err := s.recover(errors.New("unterminated literal string"), "literal"); err != nil && s.lastAction != recovery.ActionFix {
			return Token{}, err
		}
	}
	val := append([]byte(nil), s.tempBuf...)
	return Token{Type: TokenString, Bytes: val, Pos: start}, nil
}

func translateEscape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	default:
		return c
	}
}

func (s *pdfScanner) scanHexString() (Token, error) {
	start := s.pos
	s.pos++ // skip '<'
	s.tempBuf = s.tempBuf[:0]
	closed := false
	for {
		c, err := s.byteAt(s.pos)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Token{}, err
		}
		if c == '>' {
			s.pos++
			closed = true
			break
		}
		if isWhitespace(c) {
			s.pos++
			continue
		}
		s.tempBuf = append(s.tempBuf, c)
		s.pos++
		if s.cfg.MaxStringLength > 0 && int64(len(s.tempBuf))/2 > s.cfg.MaxStringLength {
			return Token{}, s.recover(errors.New("hex string too long"), "hex")
		}
	}
	if !closed {
		if err := s.recover(errors.New("unterminated hex string"), "hex"); err != nil && s.lastAction != recovery.ActionFix {
			return Token{}, err
		}
	}
	hexbuf := s.tempBuf
	if len(hexbuf)%2 == 1 {
		hexbuf = append(hexbuf, '0')
	}
	out := make([]byte, 0, len(hexbuf)/2)
	for i := 0; i < len(hexbuf); i += 2 {
		out = append(out, (fromHex(hexbuf[i])<<4)|fromHex(hexbuf[i+1]))
	}
	return Token{Type: TokenString, Bytes: out, Pos: start}, nil
}

func (s *pdfScanner) scanKeyword() (Token, error) {
	start := s.pos
	s.tempBuf = s.tempBuf[:0]
	for {
		c, err := s.byteAt(s.pos)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Token{}, err
		}
		if isDelimiter(c) {
			break
		}
		s.tempBuf = append(s.tempBuf, c)
		s.pos++
	}
	kw := string(s.tempBuf)
	switch kw {
	case "true":
		return Token{Type: TokenBoolean, Bool: true, Pos: start}, nil
	case "false":
		return Token{Type: TokenBoolean, Bool: false, Pos: start}, nil
	case "null":
		return Token{Type: TokenNull, Pos: start}, nil
	}
	if s.contentMode() {
		if s.isOperator(kw) {
			if kw == "ID" {
				return s.scanInlineData(start)
			}
			return Token{Type: TokenOperator, Str: kw, Pos: start}, nil
		}
		return Token{Type: TokenKeyword, Str: kw, Pos: start}, nil
	}
	if kw == "stream" {
		return s.scanStream(start)
	}
	return Token{Type: TokenKeyword, Str: kw, Pos: start}, nil
}

// scanStream consumes a stream payload after the stream keyword (file mode).
func (s *pdfScanner) scanStream(start int64) (Token, error) {
	c, err := s.byteAt(s.pos)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Token{}, s.recover(errors.New("stream missing data"), "stream")
		}
		return Token{}, err
	}
	// The stream keyword is followed by an EOL before the data.
	if c == '\r' {
		s.pos++
		if next, err := s.byteAt(s.pos); err == nil && next == '\n' {
			s.pos++
		}
	} else if c == '\n' {
		s.pos++
	}
	dataStart := s.pos
	if s.nextStreamLen >= 0 {
		l := s.nextStreamLen
		s.nextStreamLen = -1
		if s.cfg.MaxStreamLength > 0 && l > s.cfg.MaxStreamLength {
			return Token{}, s.recover(errors.New("stream too long"), "stream")
		}
		if err := s.ensure(dataStart + l - 1); err != nil && !errors.Is(err, io.EOF) {
			return Token{}, err
		}
		end := dataStart + l
		if avail := s.base + int64(len(s.data)); end > avail {
			end = avail
		}
		payloadSlice, err := s.slice(dataStart, end)
		if err != nil && !errors.Is(err, io.EOF) {
			return Token{}, err
		}
		payload := append([]byte(nil), payloadSlice...)
		s.pos = end
		s.skipPastEndstream()
		return Token{Type: TokenStream, Bytes: payload, Pos: start}, nil
	}
	// No declared length: search for the endstream keyword.
	tail, err := s.tailFrom(dataStart)
	if err != nil {
		return Token{}, err
	}
	idx := indexEndstream(tail)
	if idx < 0 {
		payload := append([]byte(nil), tail...)
		s.pos = dataStart + int64(len(payload))
		return Token{Type: TokenStream, Bytes: payload, Pos: start}, nil
	}
	end := int64(idx)
	// Trim the EOL that separates data from the marker.
	if end > 0 && tail[end-1] == '\n' {
		end--
	}
	if end > 0 && tail[end-1] == '\r' {
		end--
	}
	payload := append([]byte(nil), tail[:end]...)
	if s.cfg.MaxStreamLength > 0 && int64(len(payload)) > s.cfg.MaxStreamLength {
		return Token{}, s.recover(errors.New("stream too long"), "stream")
	}
	s.pos = dataStart + int64(idx) + int64(len("endstream"))
	return Token{Type: TokenStream, Bytes: payload, Pos: start}, nil
}

func (s *pdfScanner) skipPastEndstream() {
	for {
		c, err := s.byteAt(s.pos)
		if err != nil {
			return
		}
		if isWhitespace(c) {
			s.pos++
			continue
		}
		break
	}
	needle := "endstream"
	for i := 0; i < len(needle); i++ {
		c, err := s.byteAt(s.pos + int64(i))
		if err != nil || c != needle[i] {
			return
		}
	}
	s.pos += int64(len(needle))
}

func indexEndstream(data []byte) int {
	needle := []byte("endstream")
	for i := 0; i+len(needle) <= len(data); i++ {
		if data[i] != 'e' {
			continue
		}
		if string(data[i:i+len(needle)]) != string(needle) {
			continue
		}
		if i > 0 && !isWhitespace(data[i-1]) {
			continue
		}
		follow := i + len(needle)
		if follow < len(data) && !isDelimiter(data[follow]) {
			continue
		}
		return i
	}
	return -1
}

// scanInlineData captures the raw bytes between the ID operator and the EI
// sentinel. The scanner consumes the single whitespace byte after ID, returns
// the span before the whitespace that precedes EI, and leaves the position on
// the sentinel so EI is tokenized as a normal operator afterwards.
func (s *pdfScanner) scanInlineData(start int64) (Token, error) {
	c, err := s.byteAt(s.pos)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Token{}, s.recover(errors.New("unterminated inline image"), "inline_image")
		}
		return Token{}, err
	}
	if isWhitespace(c) {
		s.pos++
	}
	dataStart := s.pos
	for {
		cur, err := s.byteAt(s.pos)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Token{}, s.recover(errors.New("unterminated inline image"), "inline_image")
			}
			return Token{}, err
		}
		if cur == 'E' && s.peekAhead(1) == 'I' {
			prevOK := s.pos == dataStart
			if s.pos > dataStart {
				prev, _ := s.byteAt(s.pos - 1)
				prevOK = isWhitespace(prev)
			}
			after := s.peekAhead(2)
			afterOK := after == 0 || isDelimiter(after)
			if prevOK && afterOK {
				end := s.pos
				if end > dataStart {
					end-- // the separator byte before EI is not image data
				}
				payloadSlice, err := s.slice(dataStart, end)
				if err != nil && !errors.Is(err, io.EOF) {
					return Token{}, err
				}
				payload := append([]byte(nil), payloadSlice...)
				return Token{Type: TokenInlineImage, Bytes: payload, Pos: start}, nil
			}
		}
		s.pos++
		if s.cfg.MaxInlineImage > 0 && s.pos-dataStart > s.cfg.MaxInlineImage {
			return Token{}, s.recover(errors.New("inline image too long"), "inline_image")
		}
	}
}

func (s *pdfScanner) scanNumberOrRef() (Token, error) {
	start := s.pos
	n1, f1, isInt1, ok := s.scanNumber()
	if !ok {
		c, _ := s.byteAt(s.pos)
		s.pos++
		return Token{Type: TokenKeyword, Str: string(rune(c)), Pos: start}, nil
	}
	if isInt1 && !s.contentMode() {
		// Possible "N G R" indirect reference.
		save := s.pos
		if err := s.skipWSAndComments(); err == nil {
			if n2, _, isInt2, ok2 := s.scanNumber(); ok2 && isInt2 {
				if err := s.skipWSAndComments(); err == nil {
					if c, err := s.byteAt(s.pos); err == nil && c == 'R' {
						follow := s.peekAhead(1)
						if follow == 0 || isDelimiter(follow) {
							s.pos++
							return Token{Type: TokenRef, Int: n1, Gen: int(n2), Pos: start}, nil
						}
					}
				}
			}
		}
		s.pos = save
	}
	if isInt1 {
		return Token{Type: TokenNumber, Int: n1, IsInt: true, Pos: start}, nil
	}
	return Token{Type: TokenNumber, Float: f1, Pos: start}, nil
}

func (s *pdfScanner) scanNumber() (int64, float64, bool, bool) {
	start := s.pos
	neg := false
	seenDigit := false
	dotSeen := false
	var intPart int64
	var frac float64
	fracScale := 1.0
	for {
		c, err := s.byteAt(s.pos)
		if err != nil {
			break
		}
		switch {
		case c == '+' || c == '-':
			if s.pos != start {
				goto done
			}
			neg = c == '-'
			s.pos++
		case c == '.':
			if dotSeen {
				goto done
			}
			dotSeen = true
			s.pos++
		case c >= '0' && c <= '9':
			seenDigit = true
			if dotSeen {
				fracScale /= 10
				frac += float64(c-'0') * fracScale
			} else {
				intPart = intPart*10 + int64(c-'0')
			}
			s.pos++
		default:
			goto done
		}
	}
done:
	if !seenDigit {
		s.pos = start
		return 0, 0, false, false
	}
	if dotSeen {
		f := float64(intPart) + frac
		if neg {
			f = -f
		}
		return 0, f, false, true
	}
	if neg {
		intPart = -intPart
	}
	return intPart, 0, true, true
}

func (s *pdfScanner) recover(err error, loc string) error {
	if s.cfg.Recovery == nil {
		return err
	}
	location := s.recLoc
	location.ByteOffset = s.pos
	if location.Component != "" {
		location.Component += "->"
	}
	location.Component += "scanner:" + loc
	action := s.cfg.Recovery.OnError(err, location)
	s.lastAction = action
	switch action {
	case recovery.ActionSkip, recovery.ActionFix:
		return nil
	default:
		return err
	}
}
