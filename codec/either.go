package codec

import (
	"fmt"
	"reflect"

	"github.com/signadot/codable/debug"
)

// State is the state of a union value.
type State int

const (
	Undetermined State = iota
	Left
	Right
)

func (s State) String() string {
	switch s {
	case Undetermined:
		return "undetermined"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Either holds a value of type L or of type R. The wire form carries no tag:
// decoding tries L first and R second, and the first variant that decodes
// wins even if the other would decode too. Encoding writes the held value.
//
// L and R must both be decodable and encodable by this package; a variant
// type the codec cannot handle never matches.
type Either[L, R any] struct {
	state State
	left  L
	right R
}

func NewLeft[L, R any](v L) Either[L, R] {
	return Either[L, R]{state: Left, left: v}
}

func NewRight[L, R any](v R) Either[L, R] {
	return Either[L, R]{state: Right, right: v}
}

func (e Either[L, R]) State() State { return e.state }

// Left returns the left value and whether e holds one.
func (e Either[L, R]) Left() (L, bool) {
	return e.left, e.state == Left
}

// Right returns the right value and whether e holds one.
func (e Either[L, R]) Right() (R, bool) {
	return e.right, e.state == Right
}

// Value returns the held value, or nil if e is undetermined.
func (e Either[L, R]) Value() any {
	switch e.state {
	case Left:
		return e.left
	case Right:
		return e.right
	}
	return nil
}

func (e Either[L, R]) typeName() string {
	return fmt.Sprintf("Either[%s, %s]", reflect.TypeFor[L](), reflect.TypeFor[R]())
}

func (e *Either[L, R]) DecodeFrom(d *Decoder) error {
	var l L
	errL := d.try(&l)
	if errL == nil {
		*e = NewLeft[L, R](l)
		if debug.Union() {
			debug.Logf("%s at %s: left\n", e.typeName(), d.path)
		}
		return nil
	}
	var r R
	errR := d.try(&r)
	if errR == nil {
		*e = NewRight[L, R](r)
		if debug.Union() {
			debug.Logf("%s at %s: right\n", e.typeName(), d.path)
		}
		return nil
	}
	*e = Either[L, R]{}
	return &Error{
		Kind:    NoMatchingVariant,
		Path:    d.path,
		Message: fmt.Sprintf("cannot decode %s or %s", reflect.TypeFor[L](), reflect.TypeFor[R]()),
		Err: VariantErrors{
			{Name: reflect.TypeFor[L]().String(), Err: errL},
			{Name: reflect.TypeFor[R]().String(), Err: errR},
		},
	}
}

func (e Either[L, R]) EncodeTo(enc *Encoder) error {
	switch e.state {
	case Left:
		return enc.Encode(e.left)
	case Right:
		return enc.Encode(e.right)
	}
	return enc.Fail(NoMatchingVariant, "cannot encode undetermined %s", e.typeName())
}
