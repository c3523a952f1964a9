package walker

import "pdfwalk/objects"

// resourceStack tracks the resource-dictionary inheritance chain
// Pages → … → Page → Form XObject. Pushes and pops are paired around every
// page-tree and form visit, on every exit path.
type resourceStack struct {
	stack []objects.Dictionary
}

func (s *resourceStack) push(res objects.Dictionary) { s.stack = append(s.stack, res) }

func (s *resourceStack) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

func (s *resourceStack) depth() int { return len(s.stack) }

// current returns the shallow merge of the stack, later entries winning.
func (s *resourceStack) current() objects.Dictionary {
	merged := objects.NewDict()
	for _, res := range s.stack {
		if res == nil {
			continue
		}
		for _, key := range res.Keys() {
			if v, ok := res.Get(key); ok {
				merged.Set(key, v)
			}
		}
	}
	return merged
}
