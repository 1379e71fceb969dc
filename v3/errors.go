package v3

import (
	"errors"
	"fmt"
)

// Sentinel errors a caller can test for with errors.Is. The loader never
// returns these - a malformed pact document is tolerated, logged, and
// dropped (see store.go). Only the DSL builder surfaces them, because an
// incorrect pattern there is a programming error, not untrusted input.
var (
	// ErrPatternTypeMismatch is returned when a Pattern's extracted example
	// cannot be coerced to the destination field's concrete type (e.g. a
	// path expects a string but the pattern produced an array).
	ErrPatternTypeMismatch = errors.New("pact: pattern example has the wrong type for this field")
)

// ConstructionError wraps a sentinel with the path expression that was
// being built when the failure occurred, so a caller debugging a failed
// Build() knows where to look.
type ConstructionError struct {
	Path string
	Err  error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("pact: %s: %v", e.Path, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

func newConstructionError(path string, err error) *ConstructionError {
	return &ConstructionError{Path: path, Err: err}
}
