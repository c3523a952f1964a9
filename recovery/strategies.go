package recovery

import "fmt"

// Strict fails on the first error. Equivalent to running with no strategy,
// but useful when a caller wants to be explicit.
type Strict struct{}

func (Strict) OnError(error, Location) Action { return ActionFail }

// Lenient records every error and asks the scanner to patch up and continue
// where it can.
type Lenient struct {
	Errors []error
}

func (s *Lenient) OnError(err error, location Location) Action {
	s.Errors = append(s.Errors, fmt.Errorf("[%s] offset %d: %w", location.Component, location.ByteOffset, err))
	return ActionFix
}
