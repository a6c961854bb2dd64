package sample

import (
	"errors"
	"fmt"
)

// ErrIO is matched by every error caused by an unreadable sample source.
var ErrIO = errors.New("sample source unreadable")

// IOError records a failed operation on a sample source.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports ErrIO so callers can test the error kind without knowing the cause.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
