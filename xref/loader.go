package xref

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"pdfwalk/filters"
	"pdfwalk/objects"
	"pdfwalk/scanner"
)

// LoadConfig controls file loading.
type LoadConfig struct {
	Scanner scanner.Config
	Filters *filters.Pipeline
}

var versionRe = regexp.MustCompile(`%PDF-(\d+\.\d+)`)

// Load reads a whole PDF file into an object graph. Objects are discovered
// by a sequential scan for "N G obj" markers rather than by xref offsets,
// which also copes with files whose tables are stale; compressed objects
// inside ObjStm streams are inflated afterwards through the filter pipeline.
func Load(ctx context.Context, r io.ReaderAt, cfg LoadConfig) (*Xref, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	version := ""
	if m := versionRe.FindSubmatch(data); m != nil {
		version = string(m[1])
	}

	objs, err := scanObjects(data, cfg.Scanner)
	if err != nil {
		return nil, err
	}

	trailer := findTrailer(data, cfg.Scanner, objs)
	if trailer == nil {
		return nil, errors.New("trailer not found")
	}

	pipe := cfg.Filters
	if pipe == nil {
		pipe = filters.Default()
	}
	if err := inflateObjectStreams(ctx, objs, pipe, cfg.Scanner); err != nil {
		return nil, err
	}

	return New(objs, trailer, version), nil
}

// scanObjects walks the file token by token collecting every indirect object.
func scanObjects(data []byte, cfg scanner.Config) (map[objects.Ref]objects.Object, error) {
	cfg.Operators = nil
	s := scanner.New(bytes.NewReader(data), cfg)
	tr := scanner.NewTokenReader(s)
	objs := make(map[objects.Ref]objects.Object)

	for {
		tok, err := tr.Next()
		if err != nil {
			break
		}
		if tok.Type != scanner.TokenNumber || !tok.IsInt {
			continue
		}
		num := int(tok.Int)

		genTok, err := tr.Next()
		if err != nil {
			break
		}
		if genTok.Type != scanner.TokenNumber || !genTok.IsInt {
			tr.Unread(genTok)
			continue
		}
		gen := int(genTok.Int)

		kwTok, err := tr.Next()
		if err != nil {
			break
		}
		if kwTok.Type != scanner.TokenKeyword || kwTok.Str != "obj" {
			tr.Unread(kwTok)
			tr.Unread(genTok)
			continue
		}

		obj, err := scanner.ParseObject(tr)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse object %d %d: %w", num, gen, err)
		}

		// A dictionary followed by the stream keyword is a stream object.
		if dict, ok := obj.(*objects.DictObj); ok {
			if length, ok := objects.IntValue(objects.DictGet(dict, "Length")); ok {
				s.SetNextStreamLength(length)
			} else {
				s.SetNextStreamLength(-1)
			}
			if streamTok, err := tr.Next(); err == nil {
				if streamTok.Type == scanner.TokenStream {
					obj = objects.NewStream(dict, streamTok.Bytes)
				} else {
					tr.Unread(streamTok)
				}
			}
		}

		if t, err := tr.Next(); err == nil {
			if t.Type != scanner.TokenKeyword || t.Str != "endobj" {
				tr.Unread(t)
			}
		}

		objs[objects.Ref{Num: num, Gen: gen}] = obj
	}
	return objs, nil
}

// findTrailer locates the newest trailer dictionary. Classic files carry a
// "trailer" keyword; files with cross-reference streams keep the trailer
// entries in the XRef stream's dictionary.
func findTrailer(data []byte, cfg scanner.Config, objs map[objects.Ref]objects.Object) objects.Dictionary {
	search := data
	for {
		idx := bytes.LastIndex(search, []byte("trailer"))
		if idx < 0 {
			break
		}
		cfg.Operators = nil
		s := scanner.New(bytes.NewReader(data), cfg)
		if err := s.Seek(int64(idx + len("trailer"))); err == nil {
			tr := scanner.NewTokenReader(s)
			if obj, err := scanner.ParseObject(tr); err == nil {
				if dict, ok := obj.(objects.Dictionary); ok {
					if _, hasRoot := dict.Get("Root"); hasRoot {
						return dict
					}
				}
			}
		}
		search = search[:idx]
	}
	for _, obj := range objs {
		stream, ok := obj.(objects.Stream)
		if !ok {
			continue
		}
		if typ, _ := objects.DictName(stream.Dictionary(), "Type"); typ == "XRef" {
			return stream.Dictionary()
		}
	}
	return nil
}

// inflateObjectStreams expands ObjStm containers so their embedded objects
// resolve like ordinary ones. Existing entries are never overwritten.
func inflateObjectStreams(ctx context.Context, objs map[objects.Ref]objects.Object, pipe *filters.Pipeline, cfg scanner.Config) error {
	found := make(map[objects.Ref]objects.Object)
	for _, obj := range objs {
		stream, ok := obj.(objects.Stream)
		if !ok {
			continue
		}
		if typ, _ := objects.DictName(stream.Dictionary(), "Type"); typ != "ObjStm" {
			continue
		}
		embedded, err := decodeObjectStream(ctx, stream, pipe, cfg)
		if err != nil {
			// A broken container hides its objects but does not sink the load.
			continue
		}
		for num, e := range embedded {
			key := objects.Ref{Num: num, Gen: 0}
			if _, exists := objs[key]; !exists {
				found[key] = e
			}
		}
	}
	for ref, obj := range found {
		objs[ref] = obj
	}
	return nil
}

func decodeObjectStream(ctx context.Context, stream objects.Stream, pipe *filters.Pipeline, cfg scanner.Config) (map[int]objects.Object, error) {
	data, err := pipe.DecodeStream(ctx, stream)
	if err != nil {
		return nil, err
	}
	dict := stream.Dictionary()
	count, ok := objects.IntValue(objects.DictGet(dict, "N"))
	if !ok || count <= 0 {
		return nil, errors.New("object stream: invalid N")
	}
	first, ok := objects.IntValue(objects.DictGet(dict, "First"))
	if !ok || first < 0 || first > int64(len(data)) {
		return nil, errors.New("object stream: invalid First")
	}

	type entry struct{ num, off int }
	entries := make([]entry, 0, count)
	reader := bufio.NewReader(bytes.NewReader(data[:first]))
	for i := int64(0); i < count; i++ {
		var num, off int
		if _, err := fmt.Fscan(reader, &num, &off); err != nil {
			return nil, fmt.Errorf("object stream header: %w", err)
		}
		entries = append(entries, entry{num: num, off: off})
	}

	body := data[first:]
	out := make(map[int]objects.Object, len(entries))
	for _, ent := range entries {
		if ent.off < 0 || ent.off > len(body) {
			continue
		}
		cfg.Operators = nil
		s := scanner.New(bytes.NewReader(body), cfg)
		if err := s.Seek(int64(ent.off)); err != nil {
			continue
		}
		obj, err := scanner.ParseObject(scanner.NewTokenReader(s))
		if err != nil {
			return nil, fmt.Errorf("object stream entry %d: %w", ent.num, err)
		}
		out[ent.num] = obj
	}
	return out, nil
}

func readAll(r io.ReaderAt) ([]byte, error) {
	var buf bytes.Buffer
	const chunk = 64 * 1024
	tmp := make([]byte, chunk)
	for off := int64(0); ; off += chunk {
		n, err := r.ReadAt(tmp, off)
		if n > 0 {
			buf.Write(tmp[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if n < chunk {
			break
		}
	}
	return buf.Bytes(), nil
}
