// Package filters decodes PDF stream filters. Decoders are composed into a
// Pipeline that applies a stream's Filter chain in order, honoring
// per-filter DecodeParms.
package filters

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"context"
	stdascii85 "encoding/ascii85"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"io"
	"time"

	"golang.org/x/image/ccitt"

	"pdfwalk/objects"
)

type Decoder interface {
	Name() string
	Decode(ctx context.Context, input []byte, params objects.Dictionary) ([]byte, error)
}

// UnsupportedError reports a filter that is recognized but not implemented.
type UnsupportedError struct{ Filter string }

func (e UnsupportedError) Error() string { return fmt.Sprintf("%s filter not supported", e.Filter) }

type Limits struct {
	MaxDecompressedSize int64
	MaxDecodeTime       time.Duration
}

type Pipeline struct {
	decoders map[string]Decoder
	limits   Limits
}

// NewPipeline constructs a pipeline from the given decoders.
func NewPipeline(decoders []Decoder, limits Limits) *Pipeline {
	m := make(map[string]Decoder, len(decoders))
	for _, d := range decoders {
		m[d.Name()] = d
	}
	return &Pipeline{decoders: m, limits: limits}
}

// Default returns a pipeline with every decoder this package implements.
func Default() *Pipeline {
	return NewPipeline([]Decoder{
		flateDecoder{},
		lzwDecoder{},
		runLengthDecoder{},
		ascii85Decoder{},
		asciiHexDecoder{},
		dctDecoder{},
		ccittFaxDecoder{},
	}, Limits{})
}

// Decode applies the named filters in order.
func (p *Pipeline) Decode(ctx context.Context, input []byte, filterNames []string, params []objects.Dictionary) ([]byte, error) {
	data := input
	for i, name := range filterNames {
		dec, ok := p.decoders[name]
		if !ok {
			return nil, UnsupportedError{Filter: name}
		}
		if p.limits.MaxDecompressedSize > 0 && int64(len(data)) > p.limits.MaxDecompressedSize {
			return nil, errors.New("decompressed size exceeds limit")
		}
		var param objects.Dictionary
		if i < len(params) {
			param = params[i]
		}
		decodeCtx := ctx
		var cancel context.CancelFunc
		if p.limits.MaxDecodeTime > 0 {
			decodeCtx, cancel = context.WithTimeout(ctx, p.limits.MaxDecodeTime)
		}
		out, err := dec.Decode(decodeCtx, data, param)
		if cancel != nil {
			cancel()
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if p.limits.MaxDecompressedSize > 0 && int64(len(out)) > p.limits.MaxDecompressedSize {
			return nil, errors.New("decompressed size exceeds limit")
		}
		data = out
	}
	return data, nil
}

// DecodeStream decodes a stream object's payload using its own Filter and
// DecodeParms entries.
func (p *Pipeline) DecodeStream(ctx context.Context, stream objects.Stream) ([]byte, error) {
	names, params := ExtractFilters(stream.Dictionary())
	return p.Decode(ctx, stream.RawData(), names, params)
}

type flateDecoder struct{}

func (flateDecoder) Name() string { return "FlateDecode" }
func (flateDecoder) Decode(ctx context.Context, in []byte, params objects.Dictionary) ([]byte, error) {
	var r io.ReadCloser
	var err error
	r, err = zlib.NewReader(bytes.NewReader(in))
	if err != nil {
		// Some producers omit the zlib envelope.
		r = flate.NewReader(bytes.NewReader(in))
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil && len(out) == 0 {
		return nil, err
	}
	return applyPredictor(out, params)
}

type lzwDecoder struct{}

func (lzwDecoder) Name() string { return "LZWDecode" }
func (lzwDecoder) Decode(ctx context.Context, in []byte, params objects.Dictionary) ([]byte, error) {
	earlyChange := int64(1)
	if v, ok := objects.IntValue(objects.DictGet(params, "EarlyChange")); ok {
		earlyChange = v
	}
	out, err := lzwDecompress(in, earlyChange != 0)
	if err != nil {
		return nil, err
	}
	return applyPredictor(out, params)
}

type runLengthDecoder struct{}

func (runLengthDecoder) Name() string { return "RunLengthDecode" }
func (runLengthDecoder) Decode(ctx context.Context, in []byte, params objects.Dictionary) ([]byte, error) {
	var out bytes.Buffer
	for i := 0; i < len(in); {
		b := in[i]
		if b == 128 { // EOD
			break
		}
		i++
		if b <= 127 {
			lit := int(b) + 1
			if i+lit > len(in) {
				return nil, errors.New("runlength literal overrun")
			}
			out.Write(in[i : i+lit])
			i += lit
		} else {
			if i >= len(in) {
				return nil, errors.New("runlength truncated")
			}
			val := in[i]
			i++
			for j := 0; j < 257-int(b); j++ {
				out.WriteByte(val)
			}
		}
	}
	return out.Bytes(), nil
}

type ascii85Decoder struct{}

func (ascii85Decoder) Name() string { return "ASCII85Decode" }
func (ascii85Decoder) Decode(ctx context.Context, in []byte, params objects.Dictionary) ([]byte, error) {
	trimmed := bytes.TrimSpace(in)
	if bytes.HasPrefix(trimmed, []byte("<~")) {
		trimmed = trimmed[2:]
	}
	if i := bytes.Index(trimmed, []byte("~>")); i >= 0 {
		trimmed = trimmed[:i]
	}
	out := make([]byte, len(trimmed)*2)
	n, _, err := stdascii85.Decode(out, trimmed, true)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

type asciiHexDecoder struct{}

func (asciiHexDecoder) Name() string { return "ASCIIHexDecode" }
func (asciiHexDecoder) Decode(ctx context.Context, in []byte, params objects.Dictionary) ([]byte, error) {
	compact := make([]byte, 0, len(in))
	for _, c := range in {
		if c == '>' {
			break
		}
		if isHexWS(c) {
			continue
		}
		compact = append(compact, c)
	}
	if len(compact)%2 == 1 {
		compact = append(compact, '0')
	}
	result := make([]byte, hex.DecodedLen(len(compact)))
	n, err := hex.Decode(result, compact)
	if err != nil {
		return nil, err
	}
	return result[:n], nil
}

func isHexWS(c byte) bool {
	return c == 0x00 || c == 0x09 || c == 0x0A || c == 0x0C || c == 0x0D || c == 0x20
}

type dctDecoder struct{}

func (dctDecoder) Name() string { return "DCTDecode" }
func (dctDecoder) Decode(ctx context.Context, in []byte, params objects.Dictionary) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	img, err := jpeg.Decode(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	rgba := image.NewNRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba.Pix, nil
}

type ccittFaxDecoder struct{}

func (ccittFaxDecoder) Name() string { return "CCITTFaxDecode" }
func (ccittFaxDecoder) Decode(ctx context.Context, in []byte, params objects.Dictionary) ([]byte, error) {
	columns := int64(1728)
	if v, ok := objects.IntValue(objects.DictGet(params, "Columns")); ok {
		columns = v
	}
	rows := int64(ccitt.AutoDetectHeight)
	if v, ok := objects.IntValue(objects.DictGet(params, "Rows")); ok && v > 0 {
		rows = v
	}
	k := int64(0)
	if v, ok := objects.IntValue(objects.DictGet(params, "K")); ok {
		k = v
	}
	subFmt := ccitt.Group3
	if k < 0 {
		subFmt = ccitt.Group4
	}
	opts := &ccitt.Options{}
	if v, ok := objects.DictGet(params, "BlackIs1").(objects.Boolean); ok {
		opts.Invert = !v.Value()
	} else {
		opts.Invert = true
	}
	if v, ok := objects.DictGet(params, "EncodedByteAlign").(objects.Boolean); ok {
		opts.Align = v.Value()
	}
	r := ccitt.NewReader(bytes.NewReader(in), ccitt.MSB, subFmt, int(columns), int(rows), opts)
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExtractFilters reads the Filter and DecodeParms entries of a stream dict.
func ExtractFilters(dict objects.Dictionary) ([]string, []objects.Dictionary) {
	var names []string
	switch v := objects.DictGet(dict, "Filter").(type) {
	case objects.Name:
		names = append(names, v.Value())
	case objects.Array:
		for i := 0; i < v.Len(); i++ {
			item, _ := v.At(i)
			if n, ok := objects.NameValue(item); ok {
				names = append(names, n)
			}
		}
	}
	var params []objects.Dictionary
	switch p := objects.DictGet(dict, "DecodeParms").(type) {
	case objects.Dictionary:
		params = append(params, p)
	case objects.Array:
		for i := 0; i < p.Len(); i++ {
			item, _ := p.At(i)
			if d, ok := item.(objects.Dictionary); ok {
				params = append(params, d)
			} else {
				params = append(params, nil)
			}
		}
	}
	return names, params
}
