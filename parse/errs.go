package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/codable/token"
)

var (
	ErrParse       = errors.New("parse error")
	ErrTrailing    = fmt.Errorf("%w: trailing data", ErrParse)
	ErrDupKey      = fmt.Errorf("%w: duplicate key", ErrParse)
	ErrEOF         = fmt.Errorf("%w: unexpected end of document", ErrParse)
	ErrTooDeep     = fmt.Errorf("%w: nesting too deep", ErrParse)
	ErrUnsupported = fmt.Errorf("%w: unsupported value", ErrParse)
)

// Error is a syntax error located in the source document.
type Error struct {
	Err error
	Pos *token.Pos
}

func (e *Error) Error() string {
	if e.Pos == nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func (e *Error) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// Offset returns the byte offset of the error, or -1 if unknown.
func (e *Error) Offset() int {
	if e.Pos == nil {
		return -1
	}
	return e.Pos.I
}

// Line returns the 1-based line of the error.
func (e *Error) Line() int {
	if e.Pos == nil {
		return 0
	}
	return e.Pos.Line() + 1
}

// Col returns the 1-based column of the error.
func (e *Error) Col() int {
	if e.Pos == nil {
		return 0
	}
	return e.Pos.Col() + 1
}

func errAt(err error, pos *token.Pos) *Error {
	return &Error{Err: err, Pos: pos}
}

func fromTokenize(err error) error {
	te := &token.TokenizeErr{}
	if errors.As(err, &te) {
		return errAt(te.Err, te.Pos)
	}
	return &Error{Err: err}
}
