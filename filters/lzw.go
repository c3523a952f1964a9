package filters

import (
	"bytes"
	"errors"
)

// lzwDecompress implements the PDF flavor of LZW. When earlyChange is set
// (the default) the code width grows one code before the table fills, which
// is why compress/lzw cannot be used directly.
func lzwDecompress(in []byte, earlyChange bool) ([]byte, error) {
	const (
		clearCode = 256
		eodCode   = 257
		firstCode = 258
		maxWidth  = 12
	)
	early := 0
	if earlyChange {
		early = 1
	}

	var out bytes.Buffer
	table := make([][]byte, firstCode, 1<<maxWidth)
	for i := 0; i < 256; i++ {
		table[i] = []byte{byte(i)}
	}
	width := 9
	var prev []byte

	bitPos := 0
	readCode := func() (int, bool) {
		if (bitPos+width+7)/8 > len(in) {
			return 0, false
		}
		code := 0
		for i := 0; i < width; i++ {
			byteIdx := (bitPos + i) / 8
			bitIdx := 7 - (bitPos+i)%8
			code = code << 1
			if in[byteIdx]&(1<<bitIdx) != 0 {
				code |= 1
			}
		}
		bitPos += width
		return code, true
	}

	for {
		code, ok := readCode()
		if !ok {
			break
		}
		switch {
		case code == clearCode:
			table = table[:firstCode]
			width = 9
			prev = nil
			continue
		case code == eodCode:
			return out.Bytes(), nil
		}
		var entry []byte
		switch {
		case code < len(table) && table[code] != nil:
			entry = table[code]
		case code == len(table) && prev != nil:
			entry = append(append([]byte(nil), prev...), prev[0])
		default:
			return nil, errors.New("lzw: invalid code")
		}
		out.Write(entry)
		if prev != nil {
			next := append(append([]byte(nil), prev...), entry[0])
			table = append(table, next)
		}
		prev = entry
		if len(table)+early >= 1<<width && width < maxWidth {
			width++
		}
	}
	return out.Bytes(), nil
}
