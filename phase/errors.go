package phase

import (
	"errors"
	"fmt"
)

// ErrInvalidKneeDef indicates an inconsistent or doubly-specified knee
// within a phase definition.
var ErrInvalidKneeDef = errors.New("phase: invalid knee definition")

// ErrUnfinished indicates a phase definition that ends mid-token or
// without a single leg.
var ErrUnfinished = errors.New("unfinished expression")

// ParseError reports a malformed phase definition string. Position is the
// zero-based index of the offending character.
type ParseError struct {
	Definition string
	Position   int
	Err        error
}

// Error renders the message with a one-based character position, matching
// the format users see in diagnostics.
func (e *ParseError) Error() string {
	return fmt.Sprintf("phase: invalid phase definition: %q (at character %d: %v)",
		e.Definition, e.Position+1, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *ParseError) Unwrap() error { return e.Err }

// parseError wraps a cause into a ParseError at the given position.
func parseError(definition string, position int, cause error) error {
	return &ParseError{Definition: definition, Position: position, Err: cause}
}
