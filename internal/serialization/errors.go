package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrTruncated          = errors.New("file truncated: tensor extends beyond data section")
	ErrMissingTensor      = errors.New("missing tensor")
	ErrShapeMismatch      = errors.New("tensor shape mismatch")
	ErrDuplicateTensor    = errors.New("duplicate tensor name")
)

// LoadError wraps any failure while loading or validating a parameter
// file, carrying the file path for context.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error so callers can use errors.Is.
func (e *LoadError) Unwrap() error {
	return e.Err
}
