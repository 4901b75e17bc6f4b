package storage

import (
	"errors"
	"fmt"
)

// ErrIO indicates an output file could not be created, written or read.
var ErrIO = errors.New("storage: i/o failure")

// ErrFormat indicates a file that does not match the expected CSV layout.
var ErrFormat = errors.New("storage: malformed file")

// ExportError records which file failed and why.
type ExportError struct {
	Path string
	Op   string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ExportError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}
