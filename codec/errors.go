package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/codable/ir/kpath"
)

// Kind classifies codec errors.
type Kind int

const (
	TypeMismatch Kind = iota + 1
	KeyMissing
	MalformedTimestamp
	NoMatchingVariant
	ParseError
)

var (
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrKeyMissing         = errors.New("key missing")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrNoMatchingVariant  = errors.New("no matching variant")
	ErrParse              = errors.New("parse error")
)

func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) sentinel() error {
	switch k {
	case TypeMismatch:
		return ErrTypeMismatch
	case KeyMissing:
		return ErrKeyMissing
	case MalformedTimestamp:
		return ErrMalformedTimestamp
	case NoMatchingVariant:
		return ErrNoMatchingVariant
	case ParseError:
		return ErrParse
	}
	return nil
}

// Error is a decode or encode failure located at a path in the document.
// errors.Is matches it against the sentinel of its Kind and against Err.
type Error struct {
	Kind    Kind
	Path    *kpath.KPath
	Message string
	Err     error
}

func (e *Error) Error() string {
	buf := strings.Builder{}
	buf.WriteString(e.Kind.String())
	if e.Path != nil {
		buf.WriteString(" at ")
		buf.WriteString(e.Path.String())
	}
	if e.Message != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Message)
	}
	if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	return buf.String()
}

func (e *Error) Unwrap() []error {
	res := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		res = append(res, s)
	}
	if e.Err != nil {
		res = append(res, e.Err)
	}
	return res
}

// PathString returns the rendered path, "." for the document root.
func (e *Error) PathString() string {
	if e.Path == nil {
		return "."
	}
	return e.Path.String()
}

// VariantErrors lists why each union variant failed. It does not unwrap, so
// a NoMatchingVariant error never matches the kinds of its variant failures.
type VariantErrors []VariantError

type VariantError struct {
	Name string
	Err  error
}

func (v VariantErrors) Error() string {
	parts := make([]string, len(v))
	for i := range v {
		parts[i] = fmt.Sprintf("%s: %v", v[i].Name, v[i].Err)
	}
	return strings.Join(parts, "; ")
}

func newError(kind Kind, path *kpath.KPath, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
}
