package mutator

import (
	"errors"
	"fmt"
)

var (
	// ErrIO matches any *IOError.
	ErrIO = errors.New("file system error")
	// ErrParse matches any *ParseError.
	ErrParse = errors.New("malformed JSON")
)

// IOError reports a missing source or an unwritable destination.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// ParseError reports a file that is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }
