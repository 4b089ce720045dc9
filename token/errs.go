package token

import (
	"errors"
	"fmt"
)

var (
	ErrBadUTF8           = errors.New("bad utf8")
	ErrUnterminated      = errors.New("unterminated")
	ErrNumberLeadingZero = errors.New("leading zero")
	ErrLiteral           = errors.New("bad literal")
	ErrBadEscape         = errors.New("bad escape")
	ErrBadUnicode        = errors.New("bad unicode")
	ErrUnicodeControl    = errors.New("unicode control")
	ErrEmptyDoc          = errors.New("empty document")
	ErrNumber            = errors.New("number")
	ErrUnexpected        = errors.New("unexpected")
)

// TokenizeErr is an error located at a position in the document.
type TokenizeErr struct {
	Err error
	Pos *Pos
}

func NewTokenizeErr(e error, pos *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: pos}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func (e *TokenizeErr) Unwrap() error {
	return e.Err
}

func UnexpectedErr(what string, pos *Pos) error {
	return NewTokenizeErr(fmt.Errorf("%w %q", ErrUnexpected, what), pos)
}

func LeadingZeroErr(pos *Pos) error {
	return NewTokenizeErr(ErrNumberLeadingZero, pos)
}
