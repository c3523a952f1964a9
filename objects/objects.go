// Package objects defines the tagged PDF object model shared by the scanner,
// the xref service, and the walker. A value is one of: null, boolean, number,
// name, string, array, dictionary, stream, or indirect reference.
package objects

import "fmt"

// Ref uniquely identifies an indirect PDF object.
type Ref struct {
	Num int
	Gen int
}

func (r Ref) String() string { return fmt.Sprintf("%d %d R", r.Num, r.Gen) }

// Object is the base interface for all PDF objects.
type Object interface {
	Kind() string
}

// Dictionary is a mapping from name to object. Insertion order is irrelevant.
type Dictionary interface {
	Object
	Get(key string) (Object, bool)
	Set(key string, value Object)
	Keys() []string
	Len() int
}

// Array is an ordered sequence of objects.
type Array interface {
	Object
	At(index int) (Object, bool)
	Len() int
	Append(obj Object)
}

// Stream is a dictionary plus a byte payload decodable on demand.
type Stream interface {
	Object
	Dictionary() Dictionary
	RawData() []byte
}

// Name is a PDF name object.
type Name interface {
	Object
	Value() string
}

// String is a PDF byte string (literal or hex).
type String interface {
	Object
	Value() []byte
}

// Number is a PDF numeric value.
type Number interface {
	Object
	Int() int64
	Float() float64
	IsInteger() bool
}

// Boolean is a PDF boolean.
type Boolean interface {
	Object
	Value() bool
}

// Null is the PDF null object.
type Null interface{ Object }

// Reference is an indirect object reference.
type Reference interface {
	Object
	Ref() Ref
}
