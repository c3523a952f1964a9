package objects

// Concrete implementations for the object variants.

// NameObj is a PDF name.
type NameObj struct{ Val string }

func (n NameObj) Kind() string  { return "name" }
func (n NameObj) Value() string { return n.Val }

// NumberObj is a PDF number, integer or real.
type NumberObj struct {
	I     int64
	F     float64
	IsInt bool
}

func (n NumberObj) Kind() string { return "number" }
func (n NumberObj) Int() int64 {
	if n.IsInt {
		return n.I
	}
	return int64(n.F)
}
func (n NumberObj) Float() float64 {
	if n.IsInt {
		return float64(n.I)
	}
	return n.F
}
func (n NumberObj) IsInteger() bool { return n.IsInt }

// BoolObj is a PDF boolean.
type BoolObj struct{ V bool }

func (b BoolObj) Kind() string { return "boolean" }
func (b BoolObj) Value() bool  { return b.V }

// NullObj is the PDF null object.
type NullObj struct{}

func (NullObj) Kind() string { return "null" }

// StringObj is a PDF byte string.
type StringObj struct{ Bytes []byte }

func (s StringObj) Kind() string  { return "string" }
func (s StringObj) Value() []byte { return s.Bytes }

// ArrayObj is a PDF array.
type ArrayObj struct{ Items []Object }

func (a *ArrayObj) Kind() string { return "array" }
func (a *ArrayObj) At(i int) (Object, bool) {
	if i < 0 || i >= len(a.Items) {
		return nil, false
	}
	return a.Items[i], true
}
func (a *ArrayObj) Len() int        { return len(a.Items) }
func (a *ArrayObj) Append(o Object) { a.Items = append(a.Items, o) }

// DictObj is a PDF dictionary.
type DictObj struct{ KV map[string]Object }

func (d *DictObj) Kind() string { return "dict" }
func (d *DictObj) Get(key string) (Object, bool) {
	o, ok := d.KV[key]
	return o, ok
}
func (d *DictObj) Set(key string, value Object) {
	if d.KV == nil {
		d.KV = make(map[string]Object)
	}
	d.KV[key] = value
}
func (d *DictObj) Keys() []string {
	keys := make([]string, 0, len(d.KV))
	for k := range d.KV {
		keys = append(keys, k)
	}
	return keys
}
func (d *DictObj) Len() int { return len(d.KV) }

// StreamObj is a PDF stream: dictionary plus raw (still filtered) payload.
type StreamObj struct {
	Dict *DictObj
	Data []byte
}

func (s *StreamObj) Kind() string           { return "stream" }
func (s *StreamObj) Dictionary() Dictionary { return s.Dict }
func (s *StreamObj) RawData() []byte        { return s.Data }

// RefObj is an indirect object reference.
type RefObj struct{ R Ref }

func (r RefObj) Kind() string { return "ref" }
func (r RefObj) Ref() Ref     { return r.R }

// Constructors.

func NewName(v string) NameObj       { return NameObj{Val: v} }
func NewInt(i int64) NumberObj       { return NumberObj{I: i, IsInt: true} }
func NewReal(f float64) NumberObj    { return NumberObj{F: f} }
func NewBool(v bool) BoolObj         { return BoolObj{V: v} }
func NewString(b []byte) StringObj   { return StringObj{Bytes: b} }
func NewArray(items ...Object) *ArrayObj { return &ArrayObj{Items: items} }
func NewDict() *DictObj              { return &DictObj{KV: make(map[string]Object)} }
func NewRef(num, gen int) RefObj     { return RefObj{R: Ref{Num: num, Gen: gen}} }

// NewStream builds a stream from a dictionary and payload.
func NewStream(dict *DictObj, data []byte) *StreamObj { return &StreamObj{Dict: dict, Data: data} }
