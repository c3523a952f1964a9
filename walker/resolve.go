package walker

import "pdfwalk/objects"

// maxResolveDepth bounds recursion through nested containers so that a
// pathological cyclic reference graph terminates instead of diverging.
const maxResolveDepth = 512

// resolveReferences replaces every indirect reference inside obj with its
// resolved object. Dictionaries and arrays are rebuilt; a stream keeps its
// payload and gets a resolved dictionary.
func (w *Walker) resolveReferences(obj objects.Object) objects.Object {
	return w.resolve(obj, 0)
}

func (w *Walker) resolve(obj objects.Object, depth int) objects.Object {
	if depth > maxResolveDepth {
		return obj
	}
	switch v := obj.(type) {
	case objects.Reference:
		return w.resolve(w.xref.Object(v), depth+1)
	case *objects.ArrayObj:
		out := &objects.ArrayObj{Items: make([]objects.Object, 0, len(v.Items))}
		for _, item := range v.Items {
			out.Append(w.resolve(item, depth+1))
		}
		return out
	case *objects.DictObj:
		out := objects.NewDict()
		for key, val := range v.KV {
			out.Set(key, w.resolve(val, depth+1))
		}
		return out
	case *objects.StreamObj:
		dict, _ := w.resolve(v.Dict, depth+1).(*objects.DictObj)
		return objects.NewStream(dict, v.Data)
	default:
		return obj
	}
}
