package bencode

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed matches every primitive syntax error.
	ErrMalformed     = errors.New("malformed bencode")
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	ErrTooDeep       = errors.New("nesting too deep")
	ErrTrailingData  = errors.New("trailing data after top-level value")
	ErrEmpty         = errors.New("no top-level value")
)

type SyntaxError struct {
	Offset int
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bencode: %s at offset %d", e.Msg, e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrMalformed
}

func syntaxErr(offset int, cause error, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
		Err:    cause,
	}
}
