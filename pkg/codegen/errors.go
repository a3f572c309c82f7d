package codegen

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when the requested artifact kind has no
// registered generator.
var ErrUnknownKind = errors.New("unknown artifact kind")

// GenerateError wraps a generator failure with the kind that produced
// it. The only failure a built-in generator can report is an unmapped
// field type, which indicates a model document written by a newer
// schema version.
type GenerateError struct {
	Kind Kind
	Err  error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Kind, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}
