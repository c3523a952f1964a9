package objects

// Typed accessors used across the xref service and the walker. All of them
// tolerate nil inputs and wrong shapes by reporting !ok.

// NameValue extracts the value of a name object.
func NameValue(obj Object) (string, bool) {
	if n, ok := obj.(Name); ok {
		return n.Value(), true
	}
	return "", false
}

// IntValue extracts an integer.
func IntValue(obj Object) (int64, bool) {
	if n, ok := obj.(Number); ok && n.IsInteger() {
		return n.Int(), true
	}
	return 0, false
}

// FloatValue extracts a numeric value as float64.
func FloatValue(obj Object) (float64, bool) {
	if n, ok := obj.(Number); ok {
		return n.Float(), true
	}
	return 0, false
}

// StringValue extracts the bytes of a string object.
func StringValue(obj Object) ([]byte, bool) {
	if s, ok := obj.(String); ok {
		return s.Value(), true
	}
	return nil, false
}

// DictValue extracts a dictionary, unwrapping a stream's dictionary as well.
func DictValue(obj Object) (Dictionary, bool) {
	switch v := obj.(type) {
	case Dictionary:
		return v, true
	case Stream:
		return v.Dictionary(), true
	}
	return nil, false
}

// ArrayValue extracts an array.
func ArrayValue(obj Object) (Array, bool) {
	if a, ok := obj.(Array); ok {
		return a, true
	}
	return nil, false
}

// DictGet looks up a key in a possibly-nil dictionary.
func DictGet(dict Dictionary, key string) Object {
	if dict == nil {
		return nil
	}
	val, _ := dict.Get(key)
	return val
}

// DictName looks up a key and returns its name value.
func DictName(dict Dictionary, key string) (string, bool) {
	return NameValue(DictGet(dict, key))
}
