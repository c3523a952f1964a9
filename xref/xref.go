// Package xref provides the cross-reference service: given a loaded object
// graph, it dereferences indirect references and reports the file's version.
package xref

import (
	"pdfwalk/objects"
)

// Xref resolves indirect references against a concrete object graph.
type Xref struct {
	objects map[objects.Ref]objects.Object
	trailer objects.Dictionary
	version string
}

// New wraps an already-materialized object graph. Tests and callers that
// build graphs in memory use this directly; files go through Load.
func New(objs map[objects.Ref]objects.Object, trailer objects.Dictionary, version string) *Xref {
	if objs == nil {
		objs = make(map[objects.Ref]objects.Object)
	}
	return &Xref{objects: objs, trailer: trailer, version: version}
}

// Object returns the concrete object behind o: an indirect reference is
// looked up (yielding null when absent), anything else passes through.
func (x *Xref) Object(o objects.Object) objects.Object {
	ref, ok := o.(objects.Reference)
	if !ok {
		return o
	}
	if resolved, ok := x.objects[ref.Ref()]; ok {
		return resolved
	}
	return objects.NullObj{}
}

// Version reports the PDF version string from the file header, e.g. "1.4".
func (x *Xref) Version() string { return x.version }

// Trailer returns the trailer dictionary, which may be nil for in-memory
// graphs constructed without one.
func (x *Xref) Trailer() objects.Dictionary { return x.trailer }

// Root resolves the document catalog out of the trailer.
func (x *Xref) Root() objects.Dictionary {
	d, _ := objects.DictValue(x.Object(objects.DictGet(x.trailer, "Root")))
	return d
}

// Info resolves the document information dictionary out of the trailer.
func (x *Xref) Info() objects.Dictionary {
	d, _ := objects.DictValue(x.Object(objects.DictGet(x.trailer, "Info")))
	return d
}
